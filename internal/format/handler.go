// Package format provides decoders that turn configuration files of
// different formats into one ordered tree.
package format

import "github.com/iancoleman/orderedmap"

// ParseOptions configures parsing behavior.
type ParseOptions struct {
	StripComments bool // Strip // comments (for JSON/JSONC)
}

// Handler defines the interface for configuration file format handlers.
type Handler interface {
	// Parse reads raw bytes and returns the document as an ordered tree.
	// Nested tables become *orderedmap.OrderedMap values, lists become
	// []any and scalars keep their decoded Go type.
	Parse(data []byte, opts ParseOptions) (*orderedmap.OrderedMap, error)

	// Name returns the format name, e.g. "toml".
	Name() string
}
