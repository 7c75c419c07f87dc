package format

import "github.com/iancoleman/orderedmap"

// ToOrderedMapPtr converts both value and pointer types of OrderedMap to a pointer.
// Returns nil if the value is not an OrderedMap.
func ToOrderedMapPtr(v any) *orderedmap.OrderedMap {
	switch val := v.(type) {
	case *orderedmap.OrderedMap:
		return val
	case orderedmap.OrderedMap:
		return &val
	default:
		return nil
	}
}

// Get walks keys through nested maps.
func Get(tree *orderedmap.OrderedMap, keys ...string) (any, bool) {
	var current any = tree
	for _, k := range keys {
		m := ToOrderedMapPtr(current)
		if m == nil {
			return nil, false
		}
		v, ok := m.Get(k)
		if !ok {
			return nil, false
		}
		current = v
	}
	return current, true
}

// Normalize converts nested values so that every map is a
// *orderedmap.OrderedMap.
func Normalize(v any) any {
	switch val := v.(type) {
	case orderedmap.OrderedMap:
		return Normalize(&val)
	case *orderedmap.OrderedMap:
		for _, k := range val.Keys() {
			child, _ := val.Get(k)
			val.Set(k, Normalize(child))
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = Normalize(item)
		}
		return val
	default:
		return val
	}
}
