package sfboot

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/honeybbq/sfbootconfig/pkg/nxerrors"
)

// Value is a decoded attribute value. It is one of String, Int, IntList or Sentinel.
type Value interface {
	// Text is the caller-facing textual form; it is what goes on the sfboot command line.
	Text() string
	// Interface returns the plain Go value (string, int or []int).
	Interface() any
	isValue()
}

// String is free text or an enumerated tag.
type String string

// Int is a decoded integer.
type Int int

// IntList is an ordered list of integers; order and duplicates are preserved.
type IntList []int

// Sentinel is a "no specific setting" word such as "none" or "default".
// Only rules that explicitly allow a sentinel produce one.
type Sentinel string

func (s String) Text() string   { return string(s) }
func (s String) Interface() any { return string(s) }
func (String) isValue()         {}

func (n Int) Text() string   { return strconv.Itoa(int(n)) }
func (n Int) Interface() any { return int(n) }
func (Int) isValue()         {}

func (l IntList) Text() string {
	parts := make([]string, len(l))
	for i, n := range l {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

func (l IntList) Interface() any { return append([]int(nil), l...) }
func (IntList) isValue()         {}

func (s Sentinel) Text() string   { return string(s) }
func (s Sentinel) Interface() any { return string(s) }
func (Sentinel) isValue()         {}

// Equal reports whether a and b hold the same value.
// String and Sentinel compare case-insensitively, since sfboot reports lowercase
// what callers may have written as "PXE".
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case String:
		bv, ok := b.(String)
		return ok && strings.EqualFold(string(av), string(bv))
	case Sentinel:
		bv, ok := b.(Sentinel)
		return ok && strings.EqualFold(string(av), string(bv))
	case Int:
		bv, ok := b.(Int)
		return ok && av == bv
	case IntList:
		bv, ok := b.(IntList)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	default:
		return a == nil && b == nil
	}
}

// ValueOf converts loosely typed input (flags, YAML, JSON) into a Value.
// Integral float64 values are accepted because JSON decoders produce them.
func ValueOf(raw any) (Value, error) {
	switch v := raw.(type) {
	case Value:
		return v, nil
	case string:
		return String(v), nil
	case int:
		return Int(v), nil
	case int8:
		return Int(v), nil
	case int16:
		return Int(v), nil
	case int32:
		return Int(v), nil
	case int64:
		return Int(v), nil
	case uint:
		return Int(v), nil
	case uint8:
		return Int(v), nil
	case uint16:
		return Int(v), nil
	case uint32:
		return Int(v), nil
	case float64:
		n, err := integral(v)
		if err != nil {
			return nil, err
		}
		return Int(n), nil
	case []int:
		return IntList(append([]int(nil), v...)), nil
	case []any:
		list := make(IntList, 0, len(v))
		for i, item := range v {
			el, err := ValueOf(item)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			n, ok := el.(Int)
			if !ok {
				return nil, nxerrors.New(nxerrors.KindValidation, fmt.Errorf("item %d: list items must be integers, got %T", i, item))
			}
			list = append(list, int(n))
		}
		return list, nil
	case nil:
		return nil, nxerrors.New(nxerrors.KindValidation, fmt.Errorf("value is nil"))
	default:
		return nil, nxerrors.New(nxerrors.KindValidation, fmt.Errorf("unsupported value type %T", raw))
	}
}

func integral(f float64) (int, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, nxerrors.New(nxerrors.KindValidation, fmt.Errorf("%v is not an integer", f))
	}
	return int(f), nil
}

// VLANTags is the two-case view of the pf_vlans attribute: NoVLANs or TaggedVLANs.
type VLANTags interface {
	Value() Value
	isVLANTags()
}

// NoVLANs is the "none" case.
type NoVLANs struct{}

// TaggedVLANs lists one tag per PF, in PF order.
type TaggedVLANs []int

func (NoVLANs) Value() Value { return Sentinel(VLANNone) }
func (NoVLANs) isVLANTags()  {}

func (t TaggedVLANs) Value() Value { return IntList(append([]int(nil), t...)) }
func (TaggedVLANs) isVLANTags()    {}

// VLANNone is the sentinel word sfboot prints for an untagged port.
const VLANNone = "none"

// AsVLANTags interprets a decoded pf_vlans value.
func AsVLANTags(v Value) (VLANTags, error) {
	switch tv := v.(type) {
	case Sentinel:
		if strings.EqualFold(string(tv), VLANNone) {
			return NoVLANs{}, nil
		}
	case IntList:
		return TaggedVLANs(append([]int(nil), tv...)), nil
	case Int:
		return TaggedVLANs{int(tv)}, nil
	}
	return nil, nxerrors.New(nxerrors.KindValidation, fmt.Errorf("not a VLAN tag value: %v", v))
}
