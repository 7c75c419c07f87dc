// Package toggle decides which lines of a document are active for a
// selection of profiles and flags.
package toggle

import (
	"sort"

	"github.com/thirteen37/chezmoi-toggle/internal/block"
	"github.com/thirteen37/chezmoi-toggle/internal/directive"
	"github.com/thirteen37/chezmoi-toggle/internal/document"
	"github.com/thirteen37/chezmoi-toggle/internal/errs"
)

// State is the desired comment state of a line.
type State int

const (
	// Unchanged lines are emitted as they are.
	Unchanged State = iota
	// Active lines are uncommented.
	Active
	// Inactive lines are commented out.
	Inactive
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Inactive:
		return "inactive"
	default:
		return "unchanged"
	}
}

// Selection is what the caller asks for.
type Selection struct {
	// Profiles are profile group names to activate. Each profile set may
	// receive at most one of them.
	Profiles []string
	// Enable and Disable switch flag groups.
	Enable  []string
	Disable []string
	// ResetFlags turns off every flag that is not enabled. A flag with a
	// block marked default stays on.
	ResetFlags bool
}

// Empty reports whether the selection asks for nothing.
func (s Selection) Empty() bool {
	return len(s.Profiles) == 0 && len(s.Enable) == 0 && len(s.Disable) == 0 && !s.ResetFlags
}

// Plan is the outcome of applying a selection to a document.
type Plan struct {
	// Lines holds the desired state of every line.
	Lines []State
	// Blocks holds the effective state of every block.
	Blocks []State
	// Owner holds the innermost block of every line, or block.Root.
	Owner []int
	// Shadowed lists requested groups that stay inactive because an
	// enclosing block is inactive.
	Shadowed []string
}

// CurrentState reports whether a block is active in the document as it
// is: Inactive if all its own toggleable lines are commented, Active if any
// is not, and Unchanged if it has none.
func CurrentState(doc *document.Document, tree *block.Tree, id int, owner []int) State {
	b := tree.Blocks[id]
	state := Unchanged
	for i := b.Start; i <= b.End; i++ {
		l := doc.Lines[i]
		if owner[i] != id || !Toggleable(doc, l) {
			continue
		}
		if !l.Commented() {
			return Active
		}
		state = Inactive
	}
	return state
}

// Toggleable reports whether a line may change state at all. Directives,
// blank lines and notes never do.
func Toggleable(doc *document.Document, l document.Line) bool {
	return !l.Directive && !l.Blank() && !doc.Syntax.IsNote(l.Body)
}

// Compute returns the plan for sel. It fails without a plan if sel names a
// group the document does not have or asks for conflicting states.
func Compute(doc *document.Document, tree *block.Tree, sel Selection) (*Plan, error) {
	profiles, err := toSet(sel.Profiles, tree.Names(directive.Exclusive))
	if err != nil {
		return nil, err
	}
	flags := tree.Names(directive.Flag)
	enable, err := toSet(sel.Enable, flags)
	if err != nil {
		return nil, err
	}
	disable, err := toSet(sel.Disable, flags)
	if err != nil {
		return nil, err
	}
	for name := range enable {
		if disable[name] {
			return nil, &errs.ConflictingSelectionError{Groups: []string{name}, Reason: "flag both enabled and disabled"}
		}
	}

	values := flagValues(tree, enable, disable, sel.ResetFlags)
	own := make([]State, len(tree.Blocks))
	for _, set := range tree.GroupSets() {
		if set.Exclusive {
			if err := decideProfiles(tree, set, profiles, own); err != nil {
				return nil, err
			}
			continue
		}
		b := tree.Blocks[set.Members[0]]
		own[b.ID] = decideFlag(b, values)
	}

	owner := tree.Owner(len(doc.Lines))
	plan := &Plan{
		Lines:  make([]State, len(doc.Lines)),
		Blocks: make([]State, len(tree.Blocks)),
		Owner:  owner,
	}
	shadowed := make(map[string]bool)

	// Blocks are ordered parents first, so a parent's effective state is
	// known before its children are visited.
	for id, b := range tree.Blocks {
		state := own[id]
		if b.Parent != block.Root && effectivelyInactive(doc, tree, b.Parent, plan.Blocks, owner) {
			if state == Active && requested(b, profiles, enable, disable) {
				shadowed[b.Label()] = true
			}
			state = Inactive
		}
		plan.Blocks[id] = state
	}

	for i, l := range doc.Lines {
		id := owner[i]
		if id == block.Root || !Toggleable(doc, l) {
			continue
		}
		plan.Lines[i] = plan.Blocks[id]
	}

	for name := range shadowed {
		plan.Shadowed = append(plan.Shadowed, name)
	}
	sort.Strings(plan.Shadowed)
	return plan, nil
}

// effectivelyInactive reports whether block id will be inactive after the
// rewrite. Unchanged blocks keep their current state.
func effectivelyInactive(doc *document.Document, tree *block.Tree, id int, states []State, owner []int) bool {
	switch states[id] {
	case Inactive:
		return true
	case Active:
		return false
	}
	if CurrentState(doc, tree, id, owner) == Inactive {
		return true
	}
	p := tree.Blocks[id].Parent
	return p != block.Root && effectivelyInactive(doc, tree, p, states, owner)
}

func decideProfiles(tree *block.Tree, set block.GroupSet, profiles map[string]bool, own []State) error {
	var chosen, defaults []string
	for _, id := range set.Members {
		b := tree.Blocks[id]
		if profiles[b.Name] {
			chosen = append(chosen, b.Name)
		}
		if b.Default {
			defaults = append(defaults, b.Name)
		}
	}
	if len(chosen) > 1 {
		return &errs.ConflictingSelectionError{Groups: chosen, Reason: "profiles share a scope and exclude each other"}
	}
	target := ""
	switch {
	case len(chosen) == 1:
		target = chosen[0]
	case len(defaults) > 1:
		return &errs.ConflictingSelectionError{Groups: defaults, Reason: "more than one default in the same scope"}
	case len(defaults) == 1:
		target = defaults[0]
	default:
		return nil
	}
	for _, id := range set.Members {
		if tree.Blocks[id].Name == target {
			own[id] = Active
		} else {
			own[id] = Inactive
		}
	}
	return nil
}

// flagValue is the setting of one flag name for a selection.
type flagValue int

const (
	flagUnset flagValue = iota
	flagOn
	flagOff
)

// flagValues settles every flag name once, so that all blocks of a name
// agree: enabled, then disabled, then on when any block of the name is
// marked default, then off under ResetFlags.
func flagValues(tree *block.Tree, enable, disable map[string]bool, reset bool) map[string]flagValue {
	defaults := make(map[string]bool)
	for _, b := range tree.Blocks {
		if b.Mode == directive.Flag && b.Default {
			defaults[b.Name] = true
		}
	}
	values := make(map[string]flagValue)
	for _, name := range tree.Names(directive.Flag) {
		switch {
		case enable[name]:
			values[name] = flagOn
		case disable[name]:
			values[name] = flagOff
		case defaults[name]:
			values[name] = flagOn
		case reset:
			values[name] = flagOff
		}
	}
	return values
}

// decideFlag is Inactive as soon as one settled term fails, Active when the
// settled terms all hold, and Unchanged when no term is settled.
func decideFlag(b block.Block, values map[string]flagValue) State {
	state := Unchanged
	for _, t := range terms(b) {
		v := values[t.Name]
		if v == flagUnset {
			continue
		}
		if (v == flagOn) == t.Negated {
			return Inactive
		}
		state = Active
	}
	return state
}

func terms(b block.Block) []directive.Term {
	if len(b.Terms) > 0 {
		return b.Terms
	}
	return []directive.Term{{Name: b.Name, Negated: b.Negated}}
}

func requested(b block.Block, profiles, enable, disable map[string]bool) bool {
	if b.Mode == directive.Exclusive {
		return profiles[b.Name]
	}
	for _, t := range terms(b) {
		if enable[t.Name] || disable[t.Name] {
			return true
		}
	}
	return false
}

// toSet validates names against the available ones.
func toSet(names, available []string) (map[string]bool, error) {
	known := make(map[string]bool, len(available))
	for _, n := range available {
		known[n] = true
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		if !known[n] {
			return nil, &errs.UnknownGroupError{Requested: n, Available: available}
		}
		set[n] = true
	}
	return set, nil
}
