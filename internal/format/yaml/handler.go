// Package yaml provides a YAML format handler for chezmoi-toggle configs.
package yaml

import (
	"fmt"

	"github.com/iancoleman/orderedmap"
	"github.com/thirteen37/chezmoi-toggle/internal/format"
	"gopkg.in/yaml.v3"
)

// Handler implements format.Handler for YAML files.
type Handler struct{}

// New creates a new YAML handler.
func New() *Handler {
	return &Handler{}
}

// Name returns "yaml".
func (h *Handler) Name() string { return "yaml" }

// Parse reads a YAML mapping. Key order is taken from the node tree. An
// empty document yields an empty map.
func (h *Handler) Parse(data []byte, opts format.ParseOptions) (*orderedmap.OrderedMap, error) {
	if opts.StripComments {
		return nil, fmt.Errorf("strip-comments is not supported for YAML format")
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc.Kind == 0 {
		return orderedmap.New(), nil
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	v, err := convert(root)
	if err != nil {
		return nil, err
	}
	om, ok := v.(*orderedmap.OrderedMap)
	if !ok {
		return nil, fmt.Errorf("failed to parse YAML: top level must be a mapping")
	}
	return om, nil
}

func convert(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.MappingNode:
		result := orderedmap.New()
		for i := 0; i+1 < len(n.Content); i += 2 {
			var key string
			if err := n.Content[i].Decode(&key); err != nil {
				return nil, fmt.Errorf("line %d: invalid key: %w", n.Content[i].Line, err)
			}
			v, err := convert(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			result.Set(key, v)
		}
		return result, nil
	case yaml.SequenceNode:
		result := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := convert(item)
			if err != nil {
				return nil, err
			}
			result = append(result, v)
		}
		return result, nil
	case yaml.AliasNode:
		return convert(n.Alias)
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	}
}

// Ensure Handler implements format.Handler.
var _ format.Handler = (*Handler)(nil)
