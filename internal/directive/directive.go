// Package directive recognizes the toggle directives embedded in comments.
//
// A directive is a comment whose text, after the comment prefix and
// optional spaces, starts with the marker "toggle:":
//
//	# toggle:begin dark
//	color: black
//	# toggle:end dark
//
//	// toggle:line +debug
//	log.level = trace
//
// Verbs are begin, end and line. Group names are plain for profile groups
// (mutually exclusive with their siblings), "+name" for feature flags and
// "!name" for negated feature flags. Flags combine with "&&": a block tagged
// "+wayland && !nvidia" is active only while both terms hold. begin and line
// accept a trailing "default" keyword on a single group. For syntaxes with a
// closing token the directive must end with it: "/* toggle:begin dark */".
package directive

import (
	"fmt"
	"strings"

	"github.com/thirteen37/chezmoi-toggle/internal/document"
	"github.com/thirteen37/chezmoi-toggle/internal/errs"
	"github.com/thirteen37/chezmoi-toggle/internal/syntax"
)

// Marker introduces every directive.
const Marker = "toggle:"

// Kind is the type of a directive.
type Kind int

const (
	// Open starts a block that runs until the matching Close.
	Open Kind = iota
	// Close ends the innermost open block.
	Close
	// Toggle makes a block of the single line that follows it.
	Toggle
)

func (k Kind) String() string {
	switch k {
	case Open:
		return "begin"
	case Close:
		return "end"
	case Toggle:
		return "line"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Mode tells how a group is selected.
type Mode int

const (
	// Exclusive groups are profiles: one sibling is active at a time.
	Exclusive Mode = iota
	// Flag groups are switched on and off independently.
	Flag
)

func (m Mode) String() string {
	if m == Flag {
		return "flag"
	}
	return "profile"
}

// And joins the terms of a flag conjunction.
const And = "&&"

// Term is one flag of a directive.
type Term struct {
	Name    string
	Negated bool
}

// Label returns the term with its sigil.
func (t Term) Label() string {
	if t.Negated {
		return "!" + t.Name
	}
	return "+" + t.Name
}

// Directive is one recognized directive line.
type Directive struct {
	Kind Kind
	// Name is the group name without sigil, the first term for a
	// conjunction. Empty for a bare end.
	Name string
	Mode Mode
	// Negated marks a "!name" flag block, active while the flag is off.
	Negated bool
	// Terms holds every flag of a Flag directive, in written order.
	Terms []Term
	// Default marks the default member of a profile set, or a flag that
	// is on unless disabled.
	Default bool
	// Line is the 0-based index of the directive line.
	Line int
}

// Label returns the name as written, with its sigil.
func (d Directive) Label() string {
	return Label(d.Mode, d.Name, d.Terms)
}

// Label formats a group name: the profile name, or the flag terms joined
// with " && ".
func Label(mode Mode, name string, terms []Term) string {
	if mode != Flag || len(terms) == 0 {
		return name
	}
	labels := make([]string, len(terms))
	for i, t := range terms {
		labels[i] = t.Label()
	}
	return strings.Join(labels, " "+And+" ")
}

// Scan returns the directives of lines in document order.
func Scan(lines []document.Line, syn syntax.Syntax) ([]Directive, error) {
	var out []Directive
	for _, l := range lines {
		d, ok, err := Parse(l, syn)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, d)
		}
	}
	return out, nil
}

// Parse recognizes a single line. It reports ok=false for lines that are
// not directives and an error for lines that carry the marker but do not
// follow the grammar.
func Parse(l document.Line, syn syntax.Syntax) (Directive, bool, error) {
	if l.Prefix == "" {
		return Directive{}, false, nil
	}
	rest := strings.TrimLeft(l.Body[len(l.Prefix):], " \t")
	if !strings.HasPrefix(rest, Marker) {
		return Directive{}, false, nil
	}
	malformed := func(format string, args ...any) error {
		return &errs.MalformedDirectiveError{Line: l.Index + 1, Reason: fmt.Sprintf(format, args...)}
	}

	rest = strings.TrimRight(rest[len(Marker):], " \t")
	if syn.Suffix != "" {
		if !strings.HasSuffix(rest, syn.Suffix) {
			return Directive{}, false, malformed("missing closing %q", syn.Suffix)
		}
		rest = strings.TrimSuffix(rest, syn.Suffix)
	}
	if rest == "" || rest[0] == ' ' || rest[0] == '\t' {
		return Directive{}, false, malformed("missing verb after %q", Marker)
	}

	fields := strings.Fields(rest)
	d := Directive{Line: l.Index}
	switch fields[0] {
	case "begin":
		d.Kind = Open
	case "end":
		d.Kind = Close
	case "line":
		d.Kind = Toggle
	default:
		return Directive{}, false, malformed("unknown verb %q (want begin, end or line)", fields[0])
	}
	args := fields[1:]

	if d.Kind == Close {
		if len(args) > 1 {
			return Directive{}, false, malformed("end takes at most one group name")
		}
		if len(args) == 1 {
			if err := d.setName(args[0]); err != nil {
				return Directive{}, false, malformed("%v", err)
			}
		}
		return d, true, nil
	}

	if len(args) > 1 && args[len(args)-1] == "default" {
		d.Default = true
		args = args[:len(args)-1]
	}
	if len(args) == 0 {
		return Directive{}, false, malformed("%s requires a group name", d.Kind)
	}
	if err := d.setName(args[0]); err != nil {
		return Directive{}, false, malformed("%v", err)
	}
	if len(args) == 1 {
		return d, true, nil
	}
	if args[1] != And {
		return Directive{}, false, malformed("unexpected %q after group name", strings.Join(args[1:], " "))
	}
	if d.Default {
		return Directive{}, false, malformed("default cannot mark a combined group")
	}
	if err := d.addTerms(args[1:]); err != nil {
		return Directive{}, false, malformed("%v", err)
	}
	return d, true, nil
}

// addTerms parses the "&& term" pairs that follow the first flag.
func (d *Directive) addTerms(rest []string) error {
	if d.Mode != Flag {
		return fmt.Errorf("profile %q cannot be combined with %q", d.Name, And)
	}
	for i := 0; i < len(rest); i += 2 {
		if rest[i] != And {
			return fmt.Errorf("expected %q, got %q", And, rest[i])
		}
		if i+1 >= len(rest) {
			return fmt.Errorf("missing flag after %q", And)
		}
		t, err := parseTerm(rest[i+1])
		if err != nil {
			return err
		}
		d.Terms = append(d.Terms, t)
	}
	return nil
}

func (d *Directive) setName(token string) error {
	if strings.HasPrefix(token, "+") || strings.HasPrefix(token, "!") {
		t, err := parseTerm(token)
		if err != nil {
			return err
		}
		d.Mode = Flag
		d.Name = t.Name
		d.Negated = t.Negated
		d.Terms = []Term{t}
		return nil
	}
	if !ValidName(token) {
		return fmt.Errorf("invalid group name %q", token)
	}
	d.Name = token
	return nil
}

// parseTerm reads a "+name" or "!name" flag.
func parseTerm(token string) (Term, error) {
	var t Term
	switch {
	case strings.HasPrefix(token, "+"):
	case strings.HasPrefix(token, "!"):
		t.Negated = true
	default:
		return Term{}, fmt.Errorf("only flags can be combined, got %q", token)
	}
	t.Name = token[1:]
	if !ValidName(t.Name) {
		return Term{}, fmt.Errorf("invalid group name %q", token)
	}
	return t, nil
}

// ValidName reports whether name is a valid group name: a letter, digit or
// underscore followed by letters, digits, '_', '.' or '-'.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		case i > 0 && (r == '.' || r == '-'):
		default:
			return false
		}
	}
	return true
}
