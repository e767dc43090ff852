package sfboot

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	ast "github.com/honeybbq/sfbootconfig/pkg/ast/sfboot"
	"github.com/honeybbq/sfbootconfig/pkg/nxerrors"
)

// Section holds the decoded attributes of one report block.
type Section struct {
	Name         string
	Values       map[string]Value
	Unrecognized []string // raw labels not in the dictionary, when requested
}

// NewSection creates a Section with an initialized value map.
func NewSection(name string) *Section {
	return &Section{Name: name, Values: make(map[string]Value)}
}

// Get returns the value of attribute name.
func (s *Section) Get(name string) (Value, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.Values[name]
	return v, ok
}

// Names returns the decoded attribute names in sorted order.
func (s *Section) Names() []string {
	names := make([]string, 0, len(s.Values))
	for name := range s.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Scoped returns a copy of s that keeps only attributes of the given scope,
// renamed to name (the original name when empty).
func (s *Section) Scoped(dict *Dictionary, scope Scope, name string) *Section {
	if name == "" {
		name = s.Name
	}
	out := NewSection(name)
	for attr, v := range s.Values {
		if spec, ok := dict.Lookup(attr); ok && spec.Scope == scope {
			out.Values[attr] = v
		}
	}
	return out
}

// Config is the decoded form of one sfboot report.
type Config struct {
	Sections map[string]*Section
	Order    []string // section names in report order
}

// NewConfig creates an empty Config.
func NewConfig() *Config {
	return &Config{Sections: make(map[string]*Section)}
}

// Section returns the named section or nil.
func (c *Config) Section(name string) *Section {
	if c == nil {
		return nil
	}
	return c.Sections[name]
}

// First returns the first section in report order, or nil.
func (c *Config) First() *Section {
	if c == nil || len(c.Order) == 0 {
		return nil
	}
	return c.Sections[c.Order[0]]
}

// Len reports the number of sections.
func (c *Config) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Order)
}

func (c *Config) put(s *Section) {
	if _, exists := c.Sections[s.Name]; !exists {
		c.Order = append(c.Order, s.Name)
	}
	c.Sections[s.Name] = s
}

// DecodeOptions tunes FromAST.
type DecodeOptions struct {
	KeepUnrecognized bool
	Logger           *zap.Logger
}

// FromAST decodes every scanned field through dict. The first value that does
// not fit its rule aborts the whole decode with a *nxerrors.DecodeError.
func FromAST(dict *Dictionary, doc *ast.Document, opts DecodeOptions) (*Config, error) {
	if doc == nil {
		return nil, nxerrors.New(nxerrors.KindParse, fmt.Errorf("document is nil"))
	}
	if dict == nil {
		return nil, nxerrors.New(nxerrors.KindInternal, fmt.Errorf("dictionary is nil"))
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg := NewConfig()
	for _, raw := range doc.Sections {
		if raw == nil {
			continue
		}
		section := NewSection(raw.Name)
		for _, field := range raw.Fields {
			name, v, ok, err := dict.Decode(field.Label, field.Value)
			if err != nil {
				var de *nxerrors.DecodeError
				if errors.As(err, &de) {
					de.Section = raw.Name
				}
				return nil, err
			}
			if !ok {
				logger.Debug("unrecognized sfboot field",
					zap.String("section", raw.Name),
					zap.String("label", field.Label),
					zap.Int("line", field.Line))
				if opts.KeepUnrecognized {
					section.Unrecognized = append(section.Unrecognized, field.Label)
				}
				continue
			}
			section.Values[name] = v
		}
		cfg.put(section)
	}
	return cfg, nil
}

// Attributes is a caller's requested attribute set.
type Attributes map[string]Value

// Names returns the attribute names in sorted order.
func (a Attributes) Names() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AttributesOf converts loosely typed input through ValueOf.
func AttributesOf(raw map[string]any) (Attributes, error) {
	attrs := make(Attributes, len(raw))
	for name, rv := range raw {
		v, err := ValueOf(rv)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", name, err)
		}
		attrs[name] = v
	}
	return attrs, nil
}

// Coerce returns a copy of a with every value retyped by dict.Coerce.
func (a Attributes) Coerce(dict *Dictionary) Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	for name, v := range a {
		if dict != nil {
			v = dict.Coerce(name, v)
		}
		out[name] = v
	}
	return out
}

// EncodeOptions tunes ToAST.
type EncodeOptions struct {
	Logger *zap.Logger
}

// ToAST encodes a in sorted name order. Names unknown to dict are dropped.
func (a Attributes) ToAST(dict *Dictionary, target string, opts EncodeOptions) (*ast.Command, error) {
	if dict == nil {
		return nil, nxerrors.New(nxerrors.KindInternal, fmt.Errorf("dictionary is nil"))
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cmd := &ast.Command{Target: target}
	for _, name := range a.Names() {
		opt, ok, err := dict.Encode(name, a[name])
		if err != nil {
			return nil, err
		}
		if !ok {
			logger.Debug("dropping unknown attribute", zap.String("attribute", name))
			continue
		}
		cmd.Options = append(cmd.Options, opt)
	}
	return cmd, nil
}
