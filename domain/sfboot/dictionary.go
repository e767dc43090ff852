package sfboot

import (
	"errors"
	"fmt"
	"strings"

	ast "github.com/honeybbq/sfbootconfig/pkg/ast/sfboot"
	"github.com/honeybbq/sfbootconfig/pkg/nxerrors"
)

// Scope tells which report block an attribute belongs to.
type Scope int

const (
	// ScopeGlobal attributes are NIC-wide; sfboot repeats them under every adapter.
	ScopeGlobal Scope = iota
	// ScopeAdapter attributes apply to one physical port.
	ScopeAdapter
)

func (s Scope) String() string {
	switch s {
	case ScopeGlobal:
		return "global"
	case ScopeAdapter:
		return "adapter"
	default:
		return fmt.Sprintf("scope(%d)", int(s))
	}
}

// AttributeSpec ties a report label to a normalized name, a command-line flag and a Rule.
type AttributeSpec struct {
	Label       string // report label, matched case-insensitively
	Name        string // normalized attribute name
	Flag        string // sfboot option name
	Scope       Scope
	Rule        Rule
	Description string
}

// Dictionary is the immutable label ⇄ name ⇄ flag table.
type Dictionary struct {
	specs   []AttributeSpec
	byLabel map[string]int
	byName  map[string]int
	byFlag  map[string]int
}

// NewDictionary validates specs and indexes them. Labels (case-insensitive),
// names and flags must each be unique.
func NewDictionary(specs ...AttributeSpec) (*Dictionary, error) {
	d := &Dictionary{
		specs:   make([]AttributeSpec, 0, len(specs)),
		byLabel: make(map[string]int, len(specs)),
		byName:  make(map[string]int, len(specs)),
		byFlag:  make(map[string]int, len(specs)),
	}
	var errs []error
	for i, spec := range specs {
		label := normalize(spec.Label)
		switch {
		case label == "" || spec.Name == "" || spec.Flag == "":
			errs = append(errs, fmt.Errorf("spec %d: label, name and flag are required", i))
			continue
		case spec.Rule == nil:
			errs = append(errs, fmt.Errorf("spec %q: rule is required", spec.Name))
			continue
		}
		if _, dup := d.byLabel[label]; dup {
			errs = append(errs, fmt.Errorf("duplicate label %q", spec.Label))
			continue
		}
		if _, dup := d.byName[spec.Name]; dup {
			errs = append(errs, fmt.Errorf("duplicate name %q", spec.Name))
			continue
		}
		if _, dup := d.byFlag[spec.Flag]; dup {
			errs = append(errs, fmt.Errorf("duplicate flag %q", spec.Flag))
			continue
		}
		idx := len(d.specs)
		d.specs = append(d.specs, spec)
		d.byLabel[label] = idx
		d.byName[spec.Name] = idx
		d.byFlag[spec.Flag] = idx
	}
	if len(errs) > 0 {
		return nil, nxerrors.New(nxerrors.KindInternal, errors.Join(errs...))
	}
	return d, nil
}

// Specs returns the attribute specs in declaration order.
func (d *Dictionary) Specs() []AttributeSpec {
	return append([]AttributeSpec(nil), d.specs...)
}

// LookupLabel finds a spec by report label.
func (d *Dictionary) LookupLabel(label string) (AttributeSpec, bool) {
	idx, ok := d.byLabel[normalize(label)]
	if !ok {
		return AttributeSpec{}, false
	}
	return d.specs[idx], true
}

// Lookup finds a spec by normalized attribute name.
func (d *Dictionary) Lookup(name string) (AttributeSpec, bool) {
	idx, ok := d.byName[name]
	if !ok {
		return AttributeSpec{}, false
	}
	return d.specs[idx], true
}

// LookupFlag finds a spec by sfboot option name.
func (d *Dictionary) LookupFlag(flag string) (AttributeSpec, bool) {
	idx, ok := d.byFlag[flag]
	if !ok {
		return AttributeSpec{}, false
	}
	return d.specs[idx], true
}

// Names returns the attribute names of the given scope in declaration order.
func (d *Dictionary) Names(scope Scope) []string {
	var out []string
	for _, spec := range d.specs {
		if spec.Scope == scope {
			out = append(out, spec.Name)
		}
	}
	return out
}

// Decode converts one raw report line. ok is false for labels the dictionary
// does not know; those are not errors.
func (d *Dictionary) Decode(label, value string) (name string, v Value, ok bool, err error) {
	spec, found := d.LookupLabel(label)
	if !found {
		return "", nil, false, nil
	}
	v, err = spec.Rule.Decode(normalize(value))
	if err != nil {
		return "", nil, false, &nxerrors.DecodeError{
			Label: strings.TrimSpace(label),
			Value: strings.TrimSpace(value),
			Err:   err,
		}
	}
	return spec.Name, v, true, nil
}

// Encode converts one requested attribute into a command option. ok is false
// for names the dictionary does not know; those are dropped, not rejected.
func (d *Dictionary) Encode(name string, v Value) (opt ast.Option, ok bool, err error) {
	spec, found := d.Lookup(name)
	if !found {
		return ast.Option{}, false, nil
	}
	text, err := spec.Rule.Encode(v)
	if err != nil {
		return ast.Option{}, false, nxerrors.New(nxerrors.KindValidation, fmt.Errorf("attribute %s: %w", name, err))
	}
	return ast.Option{Flag: spec.Flag, Value: text}, true, nil
}

// Coerce retypes v the way name's rule decodes report text: "none" becomes the
// VLAN sentinel, a single VLAN becomes a one-element list, numeric strings
// become integers. Unknown names and nil values are returned unchanged.
func (d *Dictionary) Coerce(name string, v Value) Value {
	spec, ok := d.Lookup(name)
	if !ok || v == nil {
		return v
	}
	return coerce(spec.Rule, v)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
