package sfbootconfig

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	domain "github.com/honeybbq/sfbootconfig/domain/sfboot"
	"github.com/honeybbq/sfbootconfig/pkg/nxerrors"
)

// SectionMap returns the caller-facing form of one section: attribute name to
// string, int or list of ints.
func SectionMap(s *domain.Section) map[string]any {
	if s == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(s.Values))
	for name, v := range s.Values {
		out[name] = plain(v)
	}
	return out
}

// ConfigMap returns section name → SectionMap for every section of cfg.
func ConfigMap(cfg *domain.Config) map[string]any {
	out := make(map[string]any, cfg.Len())
	if cfg == nil {
		return out
	}
	for _, name := range cfg.Order {
		out[name] = SectionMap(cfg.Sections[name])
	}
	return out
}

// plain converts v into values structpb understands.
func plain(v domain.Value) any {
	switch val := v.(type) {
	case domain.IntList:
		list := make([]any, len(val))
		for i, n := range val {
			list[i] = n
		}
		return list
	case nil:
		return nil
	default:
		return val.Interface()
	}
}

// ConfigToStruct converts cfg into a protobuf Struct.
func ConfigToStruct(cfg *domain.Config) (*structpb.Struct, error) {
	return MapToStruct(ConfigMap(cfg))
}

// MapToStruct converts a caller-facing map into a protobuf Struct.
func MapToStruct(m map[string]any) (*structpb.Struct, error) {
	st, err := structpb.NewStruct(m)
	if err != nil {
		return nil, nxerrors.New(nxerrors.KindInternal, fmt.Errorf("build struct: %w", err))
	}
	return st, nil
}

// MarshalJSON renders cfg as a JSON object keyed by section name.
func MarshalJSON(cfg *domain.Config, pretty bool) ([]byte, error) {
	return MarshalMapJSON(ConfigMap(cfg), pretty)
}

// MarshalMapJSON renders m through protojson.
func MarshalMapJSON(m map[string]any, pretty bool) ([]byte, error) {
	st, err := MapToStruct(m)
	if err != nil {
		return nil, err
	}
	opts := protojson.MarshalOptions{}
	if pretty {
		opts.Multiline = true
		opts.Indent = "  "
	}
	data, err := opts.Marshal(st)
	if err != nil {
		return nil, nxerrors.New(nxerrors.KindInternal, fmt.Errorf("marshal json: %w", err))
	}
	return data, nil
}

// UnmarshalMapJSON parses a JSON object through protojson. Numbers come back as float64.
func UnmarshalMapJSON(data []byte) (map[string]any, error) {
	var st structpb.Struct
	if err := protojson.Unmarshal(data, &st); err != nil {
		return nil, nxerrors.New(nxerrors.KindParse, fmt.Errorf("unmarshal json: %w", err))
	}
	return st.AsMap(), nil
}
