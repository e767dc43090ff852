package format

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	domain "github.com/honeybbq/sfbootconfig/domain/sfboot"
	"github.com/honeybbq/sfbootconfig/pkg/sfbootconfig"
	sfsync "github.com/honeybbq/sfbootconfig/pkg/sync"
)

// Output is a result encoding.
type Output string

const (
	Table Output = "table"
	JSON  Output = "json"
	YAML  Output = "yaml"
)

// ParseOutput validates an output name.
func ParseOutput(name string) (Output, error) {
	switch o := Output(strings.ToLower(name)); o {
	case Table, JSON, YAML:
		return o, nil
	case "":
		return Table, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: table, json, yaml)", name)
	}
}

// Printer writes results to one writer in one encoding.
type Printer struct {
	w      io.Writer
	output Output
	mode   Mode
}

// NewPrinter creates a Printer. Tables use the ASCII mode.
func NewPrinter(w io.Writer, output Output) *Printer {
	return &Printer{w: w, output: output, mode: ASCII}
}

// WithMode switches the table mode.
func (p *Printer) WithMode(m Mode) *Printer {
	p.mode = m
	return p
}

// Config prints every section of cfg in report order.
func (p *Printer) Config(cfg *domain.Config) error {
	switch p.output {
	case Table:
		if cfg.Len() == 0 {
			_, err := fmt.Fprintln(p.w, "no sections reported")
			return err
		}
		for i, name := range cfg.Order {
			if i > 0 {
				if _, err := fmt.Fprintln(p.w); err != nil {
					return err
				}
			}
			if err := p.sectionTable(cfg.Sections[name]); err != nil {
				return err
			}
		}
		return nil
	default:
		return p.Map(sfbootconfig.ConfigMap(cfg))
	}
}

// Sections prints sections as a config, keeping their order.
func (p *Printer) Sections(sections ...*domain.Section) error {
	cfg := domain.NewConfig()
	for _, s := range sections {
		if s == nil {
			continue
		}
		if _, dup := cfg.Sections[s.Name]; !dup {
			cfg.Order = append(cfg.Order, s.Name)
		}
		cfg.Sections[s.Name] = s
	}
	return p.Config(cfg)
}

func (p *Printer) sectionTable(s *domain.Section) error {
	tb := NewTable(p.mode)
	tb.Title(s.Name)
	tb.Header("Attribute", "Value")
	for _, name := range s.Names() {
		tb.Row(name, s.Values[name].Text())
	}
	for _, label := range s.Unrecognized {
		tb.Row("? "+label, "")
	}
	_, err := fmt.Fprintln(p.w, tb.String())
	return err
}

// Map prints a caller-facing map. Tables fall back to YAML for nested data.
func (p *Printer) Map(m map[string]any) error {
	switch p.output {
	case JSON:
		data, err := sfbootconfig.MarshalMapJSON(m, true)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(p.w, string(data))
		return err
	default:
		data, err := yaml.Marshal(m)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		_, err = p.w.Write(data)
		return err
	}
}

// Attributes prints the dictionary, global attributes first.
func (p *Printer) Attributes(dict *domain.Dictionary) error {
	specs := dict.Specs()
	sort.SliceStable(specs, func(i, j int) bool {
		if specs[i].Scope != specs[j].Scope {
			return specs[i].Scope < specs[j].Scope
		}
		return specs[i].Name < specs[j].Name
	})

	if p.output != Table {
		rows := make([]any, 0, len(specs))
		for _, spec := range specs {
			rows = append(rows, map[string]any{
				"name":        spec.Name,
				"flag":        spec.Flag,
				"label":       spec.Label,
				"scope":       spec.Scope.String(),
				"rule":        spec.Rule.Kind(),
				"description": spec.Description,
			})
		}
		return p.Map(map[string]any{"attributes": rows})
	}

	tb := NewTable(p.mode)
	tb.Header("Name", "Scope", "Flag", "Rule", "Values")
	for _, spec := range specs {
		tb.Row(spec.Name, spec.Scope.String(), spec.Flag, spec.Rule.Kind(), ruleValues(spec.Rule))
	}
	tb.Columns(ColumnConfig{Number: 5, MaxWidth: 60})
	_, err := fmt.Fprintln(p.w, tb.String())
	return err
}

func ruleValues(r domain.Rule) string {
	switch rule := r.(type) {
	case domain.Lookup:
		return strings.Join(rule.Tags(), ", ")
	case domain.Template:
		if rule.Sentinel != "" {
			return fmt.Sprintf("<n> %s | %s", rule.Unit, rule.Sentinel)
		}
		return "<n> " + rule.Unit
	case domain.SentinelList:
		return rule.Sentinel + " | <n>,<n>,..."
	case domain.Integer:
		return "<n>"
	default:
		return "any"
	}
}

// Diff prints the verification result of an apply.
func (p *Printer) Diff(cs *sfsync.ChangeSet) error {
	if p.output != Table {
		changed := make([]any, 0, len(cs.Diff.Changed))
		for _, m := range cs.Diff.Changed {
			changed = append(changed, map[string]any{
				"name":      m.Name,
				"requested": m.Requested.Text(),
				"reported":  m.Reported.Text(),
			})
		}
		return p.Map(map[string]any{
			"target":  cs.Target,
			"matched": stringsToAny(cs.Diff.Matched),
			"changed": changed,
			"missing": stringsToAny(cs.Diff.Missing),
		})
	}

	tb := NewTable(p.mode)
	title := cs.Target
	if title == "" {
		title = "global"
	}
	tb.Title("verify " + title)
	tb.Header("Attribute", "Requested", "Reported", "Status")
	for _, name := range cs.Diff.Matched {
		v := cs.Requested[name]
		tb.Row(name, v.Text(), v.Text(), "ok")
	}
	for _, m := range cs.Diff.Changed {
		tb.Row(m.Name, m.Requested.Text(), m.Reported.Text(), "changed")
	}
	for _, name := range cs.Diff.Missing {
		tb.Row(name, cs.Requested[name].Text(), "", "missing")
	}
	_, err := fmt.Fprintln(p.w, tb.String())
	return err
}

func stringsToAny(list []string) []any {
	out := make([]any, len(list))
	for i, s := range list {
		out[i] = s
	}
	return out
}
