package sfboot

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Rule converts one attribute between report text and Value.
// The set of rules is closed: Lookup, Template, Integer, SentinelList and Passthrough.
type Rule interface {
	// Decode parses trimmed, lowercased report text.
	Decode(text string) (Value, error)
	// Encode renders v as the value half of a flag=value token.
	Encode(v Value) (string, error)
	// Kind names the rule for listings.
	Kind() string
	rule()
}

var (
	errListForScalar = errors.New("list value given for a scalar attribute")
	errNotInteger    = errors.New("not a base-10 integer")
)

// Lookup maps descriptive report phrases to canonical tags.
type Lookup struct {
	Table map[string]string
}

func (r Lookup) Decode(text string) (Value, error) {
	tag, ok := r.Table[text]
	if !ok {
		return nil, fmt.Errorf("no lookup entry (known: %s)", strings.Join(r.Phrases(), ", "))
	}
	return String(tag), nil
}

func (r Lookup) Encode(v Value) (string, error) {
	return scalarText(v)
}

func (Lookup) Kind() string { return "lookup" }
func (Lookup) rule()        {}

// Phrases returns the report phrases in sorted order.
func (r Lookup) Phrases() []string {
	out := make([]string, 0, len(r.Table))
	for k := range r.Table {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Tags returns the distinct canonical tags in sorted order.
func (r Lookup) Tags() []string {
	seen := make(map[string]struct{}, len(r.Table))
	out := make([]string, 0, len(r.Table))
	for _, tag := range r.Table {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// Template extracts the integer from "<int> <Unit>". When Sentinel is set, that
// word is accepted on its own and decodes to a Sentinel.
type Template struct {
	Unit     string
	Sentinel string
}

func (r Template) Decode(text string) (Value, error) {
	if r.Sentinel != "" && text == r.Sentinel {
		return Sentinel(r.Sentinel), nil
	}
	num, ok := strings.CutSuffix(text, " "+r.Unit)
	if !ok {
		return nil, fmt.Errorf("does not match %q", r.pattern())
	}
	// 只接受无符号十进制数字，不允许多余空格
	if !digits(num) {
		return nil, fmt.Errorf("does not match %q: %w", r.pattern(), errNotInteger)
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return nil, fmt.Errorf("does not match %q: %w", r.pattern(), err)
	}
	return Int(n), nil
}

func (r Template) Encode(v Value) (string, error) {
	return scalarText(v)
}

func (Template) Kind() string { return "template" }
func (Template) rule()        {}

func (r Template) pattern() string {
	p := "<int> " + r.Unit
	if r.Sentinel != "" {
		p += " | " + r.Sentinel
	}
	return p
}

// Integer parses a bare base-10 integer.
type Integer struct{}

func (Integer) Decode(text string) (Value, error) {
	n, err := strconv.Atoi(text)
	if err != nil {
		return nil, errNotInteger
	}
	return Int(n), nil
}

func (Integer) Encode(v Value) (string, error) {
	return scalarText(v)
}

func (Integer) Kind() string { return "integer" }
func (Integer) rule()        {}

// SentinelList decodes either the Sentinel word or a comma-separated integer list.
type SentinelList struct {
	Sentinel string
}

func (r SentinelList) Decode(text string) (Value, error) {
	if strings.EqualFold(text, r.Sentinel) {
		return Sentinel(r.Sentinel), nil
	}
	segments := strings.Split(text, ",")
	list := make(IntList, 0, len(segments))
	for i, seg := range segments {
		n, err := strconv.Atoi(strings.TrimSpace(seg))
		if err != nil {
			return nil, fmt.Errorf("segment %d %q: %w", i, seg, errNotInteger)
		}
		list = append(list, n)
	}
	return list, nil
}

// Encode joins lists with commas; the sentinel and single integers go through verbatim.
func (r SentinelList) Encode(v Value) (string, error) {
	if v == nil {
		return "", errors.New("value is nil")
	}
	return v.Text(), nil
}

func (SentinelList) Kind() string { return "sentinel-list" }
func (SentinelList) rule()        {}

// Passthrough keeps the normalized text as is.
type Passthrough struct{}

func (Passthrough) Decode(text string) (Value, error) {
	return String(text), nil
}

func (Passthrough) Encode(v Value) (string, error) {
	return scalarText(v)
}

func (Passthrough) Kind() string { return "passthrough" }
func (Passthrough) rule()        {}

func digits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// coerce retypes a caller-supplied value into the variant r.Decode produces
// for the same text, so requested and reported values compare equal.
// Values that cannot be retyped are returned unchanged; Encode judges them.
func coerce(r Rule, v Value) Value {
	switch r := r.(type) {
	case SentinelList:
		switch val := v.(type) {
		case String:
			if strings.EqualFold(strings.TrimSpace(string(val)), r.Sentinel) {
				return Sentinel(r.Sentinel)
			}
			if list, ok := parseIntList(string(val)); ok {
				return list
			}
		case Sentinel:
			if strings.EqualFold(string(val), r.Sentinel) {
				return Sentinel(r.Sentinel)
			}
		case Int:
			return IntList{int(val)}
		}
	case Template:
		switch val := v.(type) {
		case String:
			text := strings.TrimSpace(string(val))
			if r.Sentinel != "" && strings.EqualFold(text, r.Sentinel) {
				return Sentinel(r.Sentinel)
			}
			if n, err := strconv.Atoi(text); err == nil {
				return Int(n)
			}
		case Sentinel:
			if r.Sentinel != "" && strings.EqualFold(string(val), r.Sentinel) {
				return Sentinel(r.Sentinel)
			}
		}
	case Integer:
		if val, ok := v.(String); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(string(val))); err == nil {
				return Int(n)
			}
		}
	case Lookup, Passthrough:
		switch val := v.(type) {
		case Int, Sentinel:
			return String(val.Text())
		}
	}
	return v
}

func parseIntList(s string) (IntList, bool) {
	parts := strings.Split(s, ",")
	list := make(IntList, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, false
		}
		list = append(list, n)
	}
	return list, true
}

func scalarText(v Value) (string, error) {
	switch v.(type) {
	case nil:
		return "", errors.New("value is nil")
	case IntList:
		return "", errListForScalar
	}
	return v.Text(), nil
}
