// Package ini provides an INI format handler for chezmoi-toggle configs.
package ini

import (
	"fmt"
	"strings"

	"github.com/iancoleman/orderedmap"
	"github.com/thirteen37/chezmoi-toggle/internal/format"
	"gopkg.in/ini.v1"
)

// Handler implements format.Handler for INI files.
type Handler struct{}

// New creates a new INI handler.
func New() *Handler {
	return &Handler{}
}

// Name returns "ini".
func (h *Handler) Name() string { return "ini" }

// Parse reads INI bytes. Structure: {"section": {"key": "value"}}. Dotted
// section names nest: [syntaxes.kitty] becomes {"syntaxes": {"kitty": ...}}.
// Global keys (before any section) are stored at the top level. All values
// are strings.
func (h *Handler) Parse(data []byte, opts format.ParseOptions) (*orderedmap.OrderedMap, error) {
	if opts.StripComments {
		return nil, fmt.Errorf("strip-comments is not supported for INI format")
	}

	cfg, err := ini.LoadSources(ini.LoadOptions{SpaceBeforeInlineComment: true}, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse INI: %w", err)
	}

	result := orderedmap.New()
	for _, section := range cfg.Sections() {
		target := result
		// ini.v1 uses "DEFAULT" for global section
		if name := section.Name(); name != ini.DefaultSection {
			for _, part := range strings.Split(name, ".") {
				target = child(target, part)
			}
		}
		for _, key := range section.Keys() {
			target.Set(key.Name(), key.Value())
		}
	}
	return result, nil
}

// child returns the nested map stored under key, creating it if needed.
func child(m *orderedmap.OrderedMap, key string) *orderedmap.OrderedMap {
	if v, ok := m.Get(key); ok {
		if nested := format.ToOrderedMapPtr(v); nested != nil {
			return nested
		}
	}
	nested := orderedmap.New()
	m.Set(key, nested)
	return nested
}

// Ensure Handler implements format.Handler.
var _ format.Handler = (*Handler)(nil)
