// Package commenter runs the toggle pipeline over file contents:
// split, scan directives, resolve blocks, plan states, rewrite lines.
package commenter

import (
	"log/slog"

	"github.com/thirteen37/chezmoi-toggle/internal/block"
	"github.com/thirteen37/chezmoi-toggle/internal/directive"
	"github.com/thirteen37/chezmoi-toggle/internal/document"
	"github.com/thirteen37/chezmoi-toggle/internal/errs"
	log "github.com/thirteen37/chezmoi-toggle/internal/log"
	"github.com/thirteen37/chezmoi-toggle/internal/rewrite"
	"github.com/thirteen37/chezmoi-toggle/internal/syntax"
	"github.com/thirteen37/chezmoi-toggle/internal/toggle"
)

// Result is the outcome of a successful Apply.
type Result struct {
	Output []byte
	// Changed is the number of rewritten lines.
	Changed int
	// Shadowed lists requested groups that stay inactive under an inactive
	// enclosing block.
	Shadowed []string
}

// Parsed is a document with its resolved block tree.
type Parsed struct {
	Doc  *document.Document
	Tree *block.Tree
}

// Parse validates data: it splits the lines, scans the directives and
// resolves the block tree.
func Parse(data []byte, syn syntax.Syntax) (*Parsed, error) {
	doc := document.Parse(data, syn)
	dirs, err := directive.Scan(doc.Lines, syn)
	if err != nil {
		return nil, err
	}
	lines := make([]int, len(dirs))
	for i, d := range dirs {
		lines[i] = d.Line
	}
	doc.MarkDirectives(lines)

	tree, err := block.Resolve(dirs, len(doc.Lines))
	if err != nil {
		return nil, err
	}
	slog.Debug("resolved blocks",
		slog.String(log.SyntaxKey, syn.Name),
		slog.Int("lines", len(doc.Lines)),
		slog.Int("directives", len(dirs)),
		slog.Int("blocks", len(tree.Blocks)))
	return &Parsed{Doc: doc, Tree: tree}, nil
}

// Apply rewrites data so that sel is in effect. On error no output is
// produced.
func Apply(data []byte, syn syntax.Syntax, sel toggle.Selection) (*Result, error) {
	p, err := Parse(data, syn)
	if err != nil {
		return nil, err
	}
	plan, err := toggle.Compute(p.Doc, p.Tree, sel)
	if err != nil {
		return nil, err
	}

	conv := rewrite.DetectConvention(p.Doc, plan)
	out := &document.Document{Syntax: syn, Lines: make([]document.Line, len(p.Doc.Lines))}
	changed := 0
	for i, l := range p.Doc.Lines {
		text := rewrite.Apply(l, plan.Lines[i], conv)
		if text != l.Text() {
			l = l.WithText(text, syn)
			if _, ok, err := directive.Parse(l, syn); ok || err != nil {
				return nil, &errs.DirectiveCollisionError{Group: p.Tree.Blocks[plan.Owner[i]].Label(), Line: i + 1}
			}
			changed++
		}
		out.Lines[i] = l
	}

	for _, name := range plan.Shadowed {
		slog.Warn("requested group stays inactive because an enclosing block is inactive", slog.String(log.GroupKey, name))
	}
	slog.Debug("planned rewrite", slog.Int("changed", changed), slog.String("prefix", conv.Prefix), slog.Bool("space", conv.Space))

	return &Result{Output: out.Bytes(), Changed: changed, Shadowed: plan.Shadowed}, nil
}
