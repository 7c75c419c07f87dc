package syntax

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/thirteen37/chezmoi-toggle/internal/errs"
)

// Rule maps a glob pattern to a syntax name. Patterns use doublestar
// syntax and are matched against the slash-separated path.
type Rule struct {
	Pattern string
	Syntax  string
}

// Registry resolves syntaxes from names, paths and file-pattern rules.
type Registry struct {
	syntaxes []Syntax
	rules    []Rule
}

// NewRegistry creates a registry holding the built-in syntaxes.
func NewRegistry() *Registry {
	return &Registry{syntaxes: Builtins()}
}

// Register adds a syntax, replacing any existing one with the same name.
func (r *Registry) Register(s Syntax) {
	for i, existing := range r.syntaxes {
		if existing.Name == s.Name {
			r.syntaxes[i] = s
			return
		}
	}
	r.syntaxes = append(r.syntaxes, s)
}

// AddRules appends file-pattern rules. Earlier rules win.
func (r *Registry) AddRules(rules ...Rule) {
	r.rules = append(r.rules, rules...)
}

// Syntaxes returns the registered syntaxes in registration order.
func (r *Registry) Syntaxes() []Syntax {
	out := make([]Syntax, len(r.syntaxes))
	copy(out, r.syntaxes)
	return out
}

// Get returns the registered syntax with the given name.
func (r *Registry) Get(name string) (Syntax, bool) {
	for _, s := range r.syntaxes {
		if s.Name == name {
			return s, true
		}
	}
	return Syntax{}, false
}

// Resolve turns an explicit override into a syntax. A registered name wins;
// anything else is taken as a literal comment prefix.
func (r *Registry) Resolve(override string) Syntax {
	if s, ok := r.Get(override); ok {
		return s
	}
	return Literal(override)
}

// Detect returns the syntax for path. A non-empty override always wins.
// Otherwise rules are tried in order, then the base name and finally the
// extension. The lookup never reads the file.
func (r *Registry) Detect(path, override string) (Syntax, error) {
	if override != "" {
		s := r.Resolve(override)
		if s.Primary() == "" {
			return Syntax{}, &errs.UnsupportedSyntaxError{Path: path, Name: override}
		}
		return s, nil
	}
	if path == "" || path == "-" {
		return Syntax{}, &errs.UnsupportedSyntaxError{}
	}

	slashed := filepath.ToSlash(path)
	base := filepath.Base(path)
	candidates := []string{slashed, strings.TrimPrefix(slashed, "/"), base}
	for _, rule := range r.rules {
		if !doublestar.ValidatePattern(rule.Pattern) {
			continue
		}
		matched := false
		for _, c := range candidates {
			if ok, _ := doublestar.Match(rule.Pattern, c); ok {
				matched = true
				break
			}
		}
		if matched {
			s, ok := r.Get(rule.Syntax)
			if !ok {
				return Syntax{}, &errs.UnsupportedSyntaxError{Path: path, Name: rule.Syntax}
			}
			return s, nil
		}
	}

	for _, s := range r.syntaxes {
		for _, name := range s.Filenames {
			if name == base {
				return s, nil
			}
		}
	}

	if ext := strings.ToLower(filepath.Ext(base)); ext != "" {
		for _, s := range r.syntaxes {
			for _, e := range s.Extensions {
				if strings.ToLower(e) == ext {
					return s, nil
				}
			}
		}
	}

	// chezmoi source names: dot_zshrc, private_dot_bashrc.tmpl
	if trimmed := chezmoiTargetName(base); trimmed != base {
		if s, err := r.Detect(filepath.Join(filepath.Dir(path), trimmed), ""); err == nil {
			return s, nil
		}
	}

	return Syntax{}, &errs.UnsupportedSyntaxError{Path: path}
}

var sourceAttributes = []string{"create_", "modify_", "encrypted_", "private_", "readonly_", "empty_", "executable_", "symlink_"}

// chezmoiTargetName strips chezmoi source-state attributes from a base name
// so that dot_zshrc.tmpl is detected like .zshrc.
func chezmoiTargetName(base string) string {
	name := strings.TrimSuffix(base, ".tmpl")
	for stripped := true; stripped; {
		stripped = false
		for _, attr := range sourceAttributes {
			if strings.HasPrefix(name, attr) {
				name = strings.TrimPrefix(name, attr)
				stripped = true
			}
		}
	}
	if strings.HasPrefix(name, "dot_") {
		name = "." + strings.TrimPrefix(name, "dot_")
	}
	return name
}
