package sfbootconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	domain "github.com/honeybbq/sfbootconfig/domain/sfboot"
	"github.com/honeybbq/sfbootconfig/pkg/nxerrors"
)

// DesiredState is the contents of a desired-state file:
//
//	global:
//	  boot_image: uefi
//	adapters:
//	  enp0:
//	    link_speed: auto
//	    pf_vlans: [0, 100]
type DesiredState struct {
	Global   map[string]any            `yaml:"global,omitempty" json:"global,omitempty"`
	Adapters map[string]map[string]any `yaml:"adapters,omitempty" json:"adapters,omitempty"`
}

// Targets returns the adapter names in sorted order.
func (s *DesiredState) Targets() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.Adapters))
	for name := range s.Adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the state requests nothing.
func (s *DesiredState) Empty() bool {
	if s == nil {
		return true
	}
	if len(s.Global) > 0 {
		return false
	}
	for _, attrs := range s.Adapters {
		if len(attrs) > 0 {
			return false
		}
	}
	return true
}

// Resolve converts the state into typed attributes and checks every name
// against dict: a global attribute listed under an adapter (or the reverse)
// and names dict does not know are rejected. Values are retyped by their
// attribute's rule, so "none" and "default" come back as sentinels.
func (s *DesiredState) Resolve(dict *domain.Dictionary) (domain.Attributes, map[string]domain.Attributes, error) {
	if s == nil {
		return nil, nil, nil
	}
	var errs []error

	global, err := resolveScope(dict, domain.ScopeGlobal, "global", s.Global)
	if err != nil {
		errs = append(errs, err)
	}

	adapters := make(map[string]domain.Attributes, len(s.Adapters))
	for _, name := range s.Targets() {
		attrs, err := resolveScope(dict, domain.ScopeAdapter, "adapters."+name, s.Adapters[name])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		adapters[name] = attrs
	}

	if len(errs) > 0 {
		return nil, nil, nxerrors.New(nxerrors.KindValidation, errors.Join(errs...))
	}
	return global, adapters, nil
}

func resolveScope(dict *domain.Dictionary, scope domain.Scope, path string, raw map[string]any) (domain.Attributes, error) {
	attrs, err := domain.AttributesOf(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for _, name := range attrs.Names() {
		spec, ok := dict.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%s: unknown attribute %q", path, name)
		}
		if spec.Scope != scope {
			return nil, fmt.Errorf("%s: attribute %q is %s scoped", path, name, spec.Scope)
		}
	}
	return attrs.Coerce(dict), nil
}

// DecodeState parses one YAML desired-state document. Unknown top-level keys are rejected.
func DecodeState(r io.Reader) (*DesiredState, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var state DesiredState
	if err := dec.Decode(&state); err != nil {
		if errors.Is(err, io.EOF) {
			return &DesiredState{}, nil
		}
		return nil, nxerrors.New(nxerrors.KindParse, fmt.Errorf("decode desired state: %w", err))
	}
	return &state, nil
}

// LoadStates reads each file and merges them in order.
func LoadStates(paths ...string) (*DesiredState, error) {
	if len(paths) == 0 {
		return nil, nxerrors.New(nxerrors.KindValidation, fmt.Errorf("no desired-state files given"))
	}
	states := make([]*DesiredState, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		state, err := DecodeState(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		states = append(states, state)
	}
	return MergeStates(states...), nil
}

// MergeStates layers states with later states overriding earlier keys.
// Lists replace, they are never concatenated.
func MergeStates(states ...*DesiredState) *DesiredState {
	layers := make([]map[string]any, 0, len(states))
	for _, s := range states {
		if s != nil {
			layers = append(layers, s.asMap())
		}
	}
	return stateFromMap(MergeMaps(layers...))
}

func (s *DesiredState) asMap() map[string]any {
	m := make(map[string]any, 2)
	if s.Global != nil {
		m["global"] = s.Global
	}
	if s.Adapters != nil {
		adapters := make(map[string]any, len(s.Adapters))
		for name, attrs := range s.Adapters {
			adapters[name] = attrs
		}
		m["adapters"] = adapters
	}
	return m
}

func stateFromMap(m map[string]any) *DesiredState {
	state := &DesiredState{}
	if global, ok := m["global"].(map[string]any); ok {
		state.Global = global
	}
	if adapters, ok := m["adapters"].(map[string]any); ok {
		state.Adapters = make(map[string]map[string]any, len(adapters))
		for name, raw := range adapters {
			if attrs, ok := raw.(map[string]any); ok {
				state.Adapters[name] = attrs
			} else {
				state.Adapters[name] = map[string]any{}
			}
		}
	}
	return state
}
