// Package block resolves scanned directives into a tree of named blocks.
package block

import (
	"sort"

	"github.com/thirteen37/chezmoi-toggle/internal/directive"
	"github.com/thirteen37/chezmoi-toggle/internal/errs"
)

// Root is the parent of top-level blocks.
const Root = -1

// Block is a contiguous range of lines owned by one group occurrence.
type Block struct {
	// ID is the index of the block in Tree.Blocks.
	ID      int
	Name    string
	Mode    directive.Mode
	Negated bool
	Default bool
	// Terms are the flags a Flag block depends on; all must hold.
	Terms []directive.Term

	// Parent is the ID of the enclosing block, or Root.
	Parent int

	// Open and Close are the directive lines. For a single-line block
	// both are the line directive.
	Open, Close int

	// Start and End bound the content lines, inclusive. End < Start for
	// an empty block.
	Start, End int

	// Children are the IDs of directly nested blocks in document order.
	Children []int
}

// Label returns the name with its flag sigils.
func (b *Block) Label() string {
	return directive.Label(b.Mode, b.Name, b.Terms)
}

// Tree is the resolved block structure of a document. Blocks are stored in
// order of their opening line; parents come before children.
type Tree struct {
	Blocks []Block
	Roots  []int
}

// GroupSet is a set of sibling blocks selected together. Profile siblings
// under the same parent share one set; every flag block is its own set.
type GroupSet struct {
	Parent    int
	Exclusive bool
	Members   []int
}

// Resolve builds the block tree from directives in document order.
// lineCount is the number of lines in the document.
func Resolve(dirs []directive.Directive, lineCount int) (*Tree, error) {
	t := &Tree{}
	isDirective := make(map[int]bool, len(dirs))
	for _, d := range dirs {
		isDirective[d.Line] = true
	}

	var stack []int
	parent := func() int {
		if len(stack) == 0 {
			return Root
		}
		return stack[len(stack)-1]
	}

	for _, d := range dirs {
		switch d.Kind {
		case directive.Open, directive.Toggle:
			b := Block{
				ID:      len(t.Blocks),
				Name:    d.Name,
				Mode:    d.Mode,
				Negated: d.Negated,
				Default: d.Default,
				Terms:   d.Terms,
				Parent:  parent(),
				Open:    d.Line,
				Start:   d.Line + 1,
			}
			if d.Kind == directive.Toggle {
				next := d.Line + 1
				if next >= lineCount || isDirective[next] {
					return nil, &errs.MalformedDirectiveError{Line: d.Line + 1, Reason: "line directive must be followed by a content line"}
				}
				b.Close = d.Line
				b.End = next
			}
			if err := t.attach(b); err != nil {
				return nil, err
			}
			if d.Kind == directive.Open {
				stack = append(stack, b.ID)
			}

		case directive.Close:
			if len(stack) == 0 {
				return nil, &errs.UnmatchedCloseError{Group: d.Name, Line: d.Line + 1}
			}
			top := &t.Blocks[stack[len(stack)-1]]
			if d.Name != "" && d.Name != top.Name {
				for _, id := range stack[:len(stack)-1] {
					if t.Blocks[id].Name == d.Name {
						return nil, &errs.UnmatchedOpenError{Group: top.Name, Line: top.Open + 1}
					}
				}
				return nil, &errs.UnmatchedCloseError{Group: d.Name, Line: d.Line + 1}
			}
			top.Close = d.Line
			top.End = d.Line - 1
			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) > 0 {
		top := t.Blocks[stack[len(stack)-1]]
		return nil, &errs.UnmatchedOpenError{Group: top.Name, Line: top.Open + 1}
	}
	return t, nil
}

// attach appends b and links it to its parent, rejecting a profile sibling
// with the same name. Flags may repeat: "+mouse" and "!mouse" are meant to
// sit side by side.
func (t *Tree) attach(b Block) error {
	siblings := t.Roots
	if b.Parent != Root {
		siblings = t.Blocks[b.Parent].Children
	}
	for _, id := range siblings {
		s := t.Blocks[id]
		if b.Mode == directive.Exclusive && s.Mode == directive.Exclusive && s.Name == b.Name {
			return &errs.DuplicateGroupError{Group: b.Name, Line: b.Open + 1, First: t.Blocks[id].Open + 1}
		}
	}
	t.Blocks = append(t.Blocks, b)
	if b.Parent == Root {
		t.Roots = append(t.Roots, b.ID)
	} else {
		p := &t.Blocks[b.Parent]
		p.Children = append(p.Children, b.ID)
	}
	return nil
}

// Siblings returns the IDs of the blocks sharing parent.
func (t *Tree) Siblings(parent int) []int {
	if parent == Root {
		return t.Roots
	}
	return t.Blocks[parent].Children
}

// GroupSets derives the selection sets of the tree, parents before
// children.
func (t *Tree) GroupSets() []GroupSet {
	var sets []GroupSet
	var walk func(parent int)
	walk = func(parent int) {
		ids := t.Siblings(parent)
		profile := GroupSet{Parent: parent, Exclusive: true}
		for _, id := range ids {
			if t.Blocks[id].Mode == directive.Exclusive {
				profile.Members = append(profile.Members, id)
			}
		}
		if len(profile.Members) > 0 {
			sets = append(sets, profile)
		}
		for _, id := range ids {
			if t.Blocks[id].Mode == directive.Flag {
				sets = append(sets, GroupSet{Parent: parent, Members: []int{id}})
			}
		}
		for _, id := range ids {
			walk(id)
		}
	}
	walk(Root)
	return sets
}

// Names returns the sorted distinct group names of the given mode. For
// flags every term of a combined block counts.
func (t *Tree) Names(mode directive.Mode) []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, b := range t.Blocks {
		switch {
		case b.Mode != mode:
		case mode == directive.Flag && len(b.Terms) > 0:
			for _, term := range b.Terms {
				add(term.Name)
			}
		default:
			add(b.Name)
		}
	}
	sort.Strings(names)
	return names
}

// Owner returns, for every line, the ID of the innermost block whose
// content contains it, or Root. Directive lines of a nested block belong
// to the nested block.
func (t *Tree) Owner(lineCount int) []int {
	owner := make([]int, lineCount)
	for i := range owner {
		owner[i] = Root
	}
	// Parents precede children, so later writes are deeper.
	for _, b := range t.Blocks {
		lo, hi := b.Open, b.Close
		if b.End > hi {
			hi = b.End
		}
		for i := lo; i <= hi && i < lineCount; i++ {
			owner[i] = b.ID
		}
	}
	return owner
}
