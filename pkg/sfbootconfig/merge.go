package sfbootconfig

// MergeMaps merges layers with later layers overriding earlier ones.
//
// Merge rules:
//   - Simple values (string, number, bool): later value overwrites earlier
//   - Objects (maps): recursively merged, with later keys overriding earlier
//   - Arrays: replaced as a whole (a VLAN list is one attribute value)
//
// The inputs are never modified.
func MergeMaps(layers ...map[string]any) map[string]any {
	result := make(map[string]any)
	for _, layer := range layers {
		result = deepMerge(result, layer)
	}
	return result
}

// deepMerge performs a deep merge of two maps, with override taking precedence over base.
func deepMerge(base, override map[string]any) map[string]any {
	if base == nil {
		return deepCopy(override)
	}
	if override == nil {
		return deepCopy(base)
	}

	result := deepCopy(base)

	for key, overrideVal := range override {
		baseVal, exists := result[key]
		if !exists {
			result[key] = deepCopyValue(overrideVal)
			continue
		}

		// 只有两侧都是对象时才递归合并
		if overrideMap, ok := overrideVal.(map[string]any); ok {
			if baseMap, ok := baseVal.(map[string]any); ok {
				result[key] = deepMerge(baseMap, overrideMap)
				continue
			}
		}
		result[key] = deepCopyValue(overrideVal)
	}

	return result
}

// deepCopy creates a deep copy of a map.
func deepCopy(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	result := make(map[string]any, len(m))
	for k, v := range m {
		result[k] = deepCopyValue(v)
	}
	return result
}

// deepCopySlice creates a deep copy of a slice.
func deepCopySlice(s []any) []any {
	if s == nil {
		return nil
	}
	result := make([]any, len(s))
	for i, v := range s {
		result[i] = deepCopyValue(v)
	}
	return result
}

// deepCopyValue creates a deep copy of any value.
// Recursively handles maps and slices; simple types are returned as-is.
func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return deepCopy(val)
	case []any:
		return deepCopySlice(val)
	case []int:
		return append([]int(nil), val...)
	default:
		return val
	}
}
