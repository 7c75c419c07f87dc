package commenter

import (
	"sort"

	"github.com/thirteen37/chezmoi-toggle/internal/directive"
	"github.com/thirteen37/chezmoi-toggle/internal/syntax"
	"github.com/thirteen37/chezmoi-toggle/internal/toggle"
)

// Group describes one block as it currently stands.
type Group struct {
	Name    string
	Label   string
	Mode    directive.Mode
	Negated bool
	Default bool
	// Terms are the flags of a Flag group; more than one for a combined
	// group.
	Terms []directive.Term
	// Line is the 1-based line of the opening directive.
	Line  int
	State toggle.State
	// Depth is 0 for top-level blocks.
	Depth    int
	Children []Group
}

// Report is the group structure of a document.
type Report struct {
	Syntax   syntax.Syntax
	Groups   []Group
	Profiles []string
	Flags    []string
}

// Inspect parses data and reports its groups and their current states.
func Inspect(data []byte, syn syntax.Syntax) (*Report, error) {
	p, err := Parse(data, syn)
	if err != nil {
		return nil, err
	}
	owner := p.Tree.Owner(len(p.Doc.Lines))

	var build func(ids []int, depth int) []Group
	build = func(ids []int, depth int) []Group {
		var groups []Group
		for _, id := range ids {
			b := p.Tree.Blocks[id]
			groups = append(groups, Group{
				Name:     b.Name,
				Label:    b.Label(),
				Mode:     b.Mode,
				Negated:  b.Negated,
				Default:  b.Default,
				Terms:    b.Terms,
				Line:     b.Open + 1,
				State:    toggle.CurrentState(p.Doc, p.Tree, id, owner),
				Depth:    depth,
				Children: build(b.Children, depth+1),
			})
		}
		return groups
	}

	return &Report{
		Syntax:   syn,
		Groups:   build(p.Tree.Roots, 0),
		Profiles: p.Tree.Names(directive.Exclusive),
		Flags:    p.Tree.Names(directive.Flag),
	}, nil
}

// EnabledFlags returns the sorted flags that are currently on: a plain
// flag block is active or a negated one is inactive. Combined groups say
// nothing about a single flag and are skipped.
func (r *Report) EnabledFlags() []string {
	seen := make(map[string]bool)
	var names []string
	r.Walk(func(g Group) {
		if g.Mode != directive.Flag || len(g.Terms) > 1 || seen[g.Name] {
			return
		}
		on := (g.State == toggle.Active && !g.Negated) || (g.State == toggle.Inactive && g.Negated)
		if on {
			seen[g.Name] = true
			names = append(names, g.Name)
		}
	})
	sort.Strings(names)
	return names
}

// Walk calls fn for every group, parents first.
func (r *Report) Walk(fn func(Group)) {
	var walk func([]Group)
	walk = func(groups []Group) {
		for _, g := range groups {
			fn(g)
			walk(g.Children)
		}
	}
	walk(r.Groups)
}
