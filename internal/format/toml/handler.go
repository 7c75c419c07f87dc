// Package toml provides a TOML format handler for chezmoi-toggle configs.
package toml

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/iancoleman/orderedmap"
	"github.com/thirteen37/chezmoi-toggle/internal/format"
)

// Handler implements format.Handler for TOML files.
type Handler struct{}

// New creates a new TOML handler.
func New() *Handler {
	return &Handler{}
}

// Name returns "toml".
func (h *Handler) Name() string { return "toml" }

// Parse reads TOML bytes. Key order from the original TOML document is
// preserved using the decoder metadata.
func (h *Handler) Parse(data []byte, opts format.ParseOptions) (*orderedmap.OrderedMap, error) {
	if opts.StripComments {
		return nil, fmt.Errorf("strip-comments is not supported for TOML format")
	}

	var raw map[string]any
	meta, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	order := keyOrder(meta)
	return toOrdered(raw, nil, order).(*orderedmap.OrderedMap), nil
}

// keyOrder maps a dotted table path to its child keys in document order.
func keyOrder(meta toml.MetaData) map[string][]string {
	order := make(map[string][]string)
	seen := make(map[string]bool)
	for _, key := range meta.Keys() {
		if len(key) == 0 {
			continue
		}
		parent := key[:len(key)-1].String()
		full := key.String()
		if seen[full] {
			continue
		}
		seen[full] = true
		order[parent] = append(order[parent], key[len(key)-1])
	}
	return order
}

func toOrdered(v any, prefix toml.Key, order map[string][]string) any {
	switch val := v.(type) {
	case map[string]any:
		result := orderedmap.New()
		for _, k := range orderedKeys(val, order[prefix.String()]) {
			result.Set(k, toOrdered(val[k], append(prefix[:len(prefix):len(prefix)], k), order))
		}
		return result
	case []map[string]any:
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = toOrdered(item, prefix, order)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = toOrdered(item, prefix, order)
		}
		return result
	default:
		return val
	}
}

// orderedKeys returns the keys of m, those listed in want first and in
// that order.
func orderedKeys(m map[string]any, want []string) []string {
	keys := make([]string, 0, len(m))
	used := make(map[string]bool, len(m))
	for _, k := range want {
		if _, ok := m[k]; ok && !used[k] {
			keys = append(keys, k)
			used[k] = true
		}
	}
	for k := range m {
		if !used[k] {
			keys = append(keys, k)
		}
	}
	return keys
}

// Ensure Handler implements format.Handler.
var _ format.Handler = (*Handler)(nil)
