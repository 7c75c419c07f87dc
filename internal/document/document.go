// Package document splits file contents into lines that can be rewritten
// individually and joined back without altering untouched bytes.
package document

import (
	"strings"

	"github.com/thirteen37/chezmoi-toggle/internal/syntax"
)

// Line is one line of a document.
type Line struct {
	// Index is the 0-based position of the line in the document.
	Index int
	// Indent is the leading run of spaces and tabs.
	Indent string
	// Body is the text after Indent, without the line terminator.
	Body string
	// Ending is "\n", "\r\n" or "" for a final line without terminator.
	Ending string
	// Prefix is the comment prefix Body starts with, or "".
	Prefix string
	// Directive is set when the line is a toggle directive.
	Directive bool
}

// Commented reports whether the line is a comment.
func (l Line) Commented() bool {
	return l.Prefix != ""
}

// Blank reports whether the line has no content besides whitespace.
func (l Line) Blank() bool {
	return strings.TrimSpace(l.Body) == ""
}

// Text returns the line without its terminator.
func (l Line) Text() string {
	return l.Indent + l.Body
}

// Document is the parsed form of one file.
type Document struct {
	Syntax syntax.Syntax
	Lines  []Line
}

// Parse splits data into lines. Joining the lines with String reproduces
// data exactly.
func Parse(data []byte, syn syntax.Syntax) *Document {
	doc := &Document{Syntax: syn}
	text := string(data)
	for text != "" {
		var raw, ending string
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			raw, text = text[:i], text[i+1:]
			ending = "\n"
			if strings.HasSuffix(raw, "\r") {
				raw = raw[:len(raw)-1]
				ending = "\r\n"
			}
		} else {
			raw, text = text, ""
		}
		doc.Lines = append(doc.Lines, newLine(len(doc.Lines), raw, ending, syn))
	}
	return doc
}

func newLine(index int, raw, ending string, syn syntax.Syntax) Line {
	body := strings.TrimLeft(raw, " \t")
	l := Line{
		Index:  index,
		Indent: raw[:len(raw)-len(body)],
		Body:   body,
		Ending: ending,
	}
	if p, ok := syn.MatchPrefix(body); ok {
		l.Prefix = p
	}
	return l
}

// WithText returns a copy of l holding new text (indent and body). The
// ending and index are kept.
func (l Line) WithText(text string, syn syntax.Syntax) Line {
	n := newLine(l.Index, text, l.Ending, syn)
	n.Directive = l.Directive
	return n
}

// MarkDirectives flags the lines at the given indices as directives.
func (d *Document) MarkDirectives(indices []int) {
	for _, i := range indices {
		if i >= 0 && i < len(d.Lines) {
			d.Lines[i].Directive = true
		}
	}
}

// String joins the lines back into file contents.
func (d *Document) String() string {
	var sb strings.Builder
	for _, l := range d.Lines {
		sb.WriteString(l.Indent)
		sb.WriteString(l.Body)
		sb.WriteString(l.Ending)
	}
	return sb.String()
}

// Bytes is String as a byte slice.
func (d *Document) Bytes() []byte {
	return []byte(d.String())
}
