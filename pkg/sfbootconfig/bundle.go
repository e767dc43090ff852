package sfbootconfig

import "time"

// Metadata stores information about how and when an sfboot exchange happened.
type Metadata struct {
	Backend   string            // Backend name that produced this bundle
	Target    string            // Adapter selected with -i, empty for all adapters
	Generated time.Time         // Timestamp when the bundle was created
	Custom    map[string]string // Extensible metadata (exit code, runner name, ...)
}

// Bundle carries one native sfboot exchange.
// The forward direction fills Args (one quoted token per attribute, optionally
// prefixed by the target selector); the reverse direction reads Output, the
// captured report text.
type Bundle struct {
	Args     []string
	Output   []byte
	Metadata Metadata
}

// NewBundle creates an empty Bundle with initialized metadata.
// The Generated timestamp is set to the current time.
func NewBundle(backend string) *Bundle {
	return &Bundle{
		Args: make([]string, 0),
		Metadata: Metadata{
			Backend:   backend,
			Generated: time.Now(),
			Custom:    make(map[string]string),
		},
	}
}

// OutputBundle wraps captured report text so it can be handed to a Parser.
func OutputBundle(backend string, output []byte) *Bundle {
	b := NewBundle(backend)
	b.Output = output
	return b
}
