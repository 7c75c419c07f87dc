// Package rewrite comments and uncomments individual lines.
package rewrite

import (
	"strings"

	"github.com/thirteen37/chezmoi-toggle/internal/block"
	"github.com/thirteen37/chezmoi-toggle/internal/document"
	"github.com/thirteen37/chezmoi-toggle/internal/syntax"
	"github.com/thirteen37/chezmoi-toggle/internal/toggle"
)

// Convention is the way commented-out code is written in a document.
type Convention struct {
	Prefix string
	Suffix string
	// Space is set when a space separates the prefix from the code.
	Space bool
}

// DefaultConvention is used when a document has no commented code yet.
func DefaultConvention(syn syntax.Syntax) Convention {
	return Convention{Prefix: syn.Primary(), Suffix: syn.Suffix, Space: true}
}

// DetectConvention looks at the first commented line inside a block and
// adopts its prefix and spacing.
func DetectConvention(doc *document.Document, plan *toggle.Plan) Convention {
	conv := DefaultConvention(doc.Syntax)
	for i, l := range doc.Lines {
		if plan.Owner[i] == block.Root || !l.Commented() || !toggle.Toggleable(doc, l) {
			continue
		}
		conv.Prefix = l.Prefix
		conv.Space = strings.HasPrefix(l.Body[len(l.Prefix):], " ")
		return conv
	}
	return conv
}

// Apply returns the text of l in the wanted state. A line already in that
// state comes back unchanged.
func Apply(l document.Line, want toggle.State, conv Convention) string {
	switch want {
	case toggle.Active:
		if l.Commented() {
			return Uncomment(l, conv)
		}
	case toggle.Inactive:
		if !l.Commented() {
			return Comment(l, conv)
		}
	}
	return l.Text()
}

// Comment inserts the prefix right after the indentation.
func Comment(l document.Line, conv Convention) string {
	var sb strings.Builder
	sb.WriteString(l.Indent)
	sb.WriteString(conv.Prefix)
	// A body starting with the prefix's last rune would read as a note.
	if conv.Space || guardsNote(conv.Prefix, l.Body) {
		sb.WriteByte(' ')
	}
	sb.WriteString(l.Body)
	if conv.Suffix != "" {
		sb.WriteByte(' ')
		sb.WriteString(conv.Suffix)
	}
	return sb.String()
}

// Uncomment removes one prefix and the closing suffix when there is one.
// The space after the prefix goes too when the convention puts one there,
// or when it keeps the body from reading as a note.
func Uncomment(l document.Line, conv Convention) string {
	body := l.Body[len(l.Prefix):]
	if strings.HasPrefix(body, " ") && (conv.Space || guardsNote(l.Prefix, body[1:])) {
		body = body[1:]
	}
	if conv.Suffix != "" {
		trimmed := strings.TrimRight(body, " \t")
		if strings.HasSuffix(trimmed, conv.Suffix) {
			body = strings.TrimSuffix(strings.TrimSuffix(trimmed, conv.Suffix), " ")
		}
	}
	return l.Indent + body
}

// guardsNote reports whether body starts with the last rune of prefix, so
// that joining them without a space would make a note.
func guardsNote(prefix, body string) bool {
	return prefix != "" && strings.HasPrefix(body, prefix[len(prefix)-1:])
}
