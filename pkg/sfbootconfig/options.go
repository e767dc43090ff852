package sfbootconfig

import "time"

// DefaultSelectFlag is the sfboot switch that restricts a run to one adapter.
const DefaultSelectFlag = "-i"

// RenderOptions controls the forward rendering process (attributes → sfboot argv).
type RenderOptions struct {
	SelectFlag string // Adapter selector switch, DefaultSelectFlag when empty
	Unquoted   bool   // Emit flag=value without the surrounding single quotes
}

// ParseOptions controls the reverse parsing process (report text → sections).
type ParseOptions struct {
	Sections         []string      // Only decode these sections (all when empty)
	KeepUnrecognized bool          // Record labels missing from the dictionary on each section
	Timeout          time.Duration // Maximum time allowed for parsing
}

// WantsSection reports whether name passes the Sections filter.
func (o ParseOptions) WantsSection(name string) bool {
	if len(o.Sections) == 0 {
		return true
	}
	for _, s := range o.Sections {
		if s == name {
			return true
		}
	}
	return false
}
