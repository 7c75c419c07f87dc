// Package syntax provides the comment conventions of the file types the
// toggler understands.
package syntax

import (
	"strings"
)

// Syntax describes how single-line comments are written in a file type.
type Syntax struct {
	// Name identifies the syntax (e.g. "shell", "c").
	Name string

	// Prefixes are the accepted comment openers, in priority order.
	// The first one is used when commenting a line and no other
	// convention can be detected from the file.
	Prefixes []string

	// Suffix closes a comment for block-comment dialects such as CSS.
	// Empty for ordinary line comments.
	Suffix string

	// Extensions are the file extensions (with leading dot) that select
	// this syntax.
	Extensions []string

	// Filenames are base names that select this syntax regardless of
	// extension.
	Filenames []string
}

// Primary returns the preferred comment prefix.
func (s Syntax) Primary() string {
	if len(s.Prefixes) == 0 {
		return ""
	}
	return s.Prefixes[0]
}

// MatchPrefix returns the first prefix that text starts with.
func (s Syntax) MatchPrefix(text string) (string, bool) {
	for _, p := range s.Prefixes {
		if p != "" && strings.HasPrefix(text, p) {
			return p, true
		}
	}
	return "", false
}

// IsNote reports whether text is a comment that must never be toggled.
// A note repeats the last character of its prefix: "## keep", "/// keep",
// ";; keep".
func (s Syntax) IsNote(text string) bool {
	p, ok := s.MatchPrefix(text)
	if !ok {
		return false
	}
	rest := text[len(p):]
	return rest != "" && rest[0] == p[len(p)-1]
}

// builtins are the syntaxes known without any configuration.
var builtins = []Syntax{
	{
		Name:       "shell",
		Prefixes:   []string{"#"},
		Extensions: []string{".sh", ".bash", ".zsh", ".fish", ".py", ".rb", ".pl", ".conf", ".toml", ".yaml", ".yml", ".tmux", ".nix", ".r", ".ps1", ".env", ".desktop"},
		Filenames:  []string{"Makefile", "Dockerfile", ".bashrc", ".bash_profile", ".profile", ".zshrc", ".zshenv", ".zprofile", ".tmux.conf", ".gitconfig", ".inputrc", "config.fish", "Brewfile"},
	},
	{
		Name:       "vim",
		Prefixes:   []string{"\""},
		Extensions: []string{".vim"},
		Filenames:  []string{".vimrc", ".gvimrc", ".exrc"},
	},
	{
		Name:       "c",
		Prefixes:   []string{"//"},
		Extensions: []string{".c", ".h", ".cc", ".cpp", ".hpp", ".go", ".js", ".jsx", ".ts", ".tsx", ".rs", ".java", ".kt", ".swift", ".scss", ".jsonc", ".json5", ".kdl", ".rasi", ".zig", ".dart"},
	},
	{
		Name:       "semicolon",
		Prefixes:   []string{";"},
		Extensions: []string{".asm", ".s"},
	},
	{
		Name:       "ini",
		Prefixes:   []string{";", "#"},
		Extensions: []string{".ini", ".cfg", ".reg"},
		Filenames:  []string{".editorconfig"},
	},
	{
		Name:       "lua",
		Prefixes:   []string{"--"},
		Extensions: []string{".lua", ".hs", ".elm"},
	},
	{
		Name:       "sql",
		Prefixes:   []string{"--"},
		Extensions: []string{".sql"},
	},
	{
		Name:       "xresources",
		Prefixes:   []string{"!"},
		Extensions: []string{".xresources", ".xdefaults", ".ad"},
		Filenames:  []string{".Xresources", ".Xdefaults"},
	},
	{
		Name:       "tex",
		Prefixes:   []string{"%"},
		Extensions: []string{".tex", ".sty", ".cls", ".erl", ".m"},
	},
	{
		Name:       "css",
		Prefixes:   []string{"/*"},
		Suffix:     "*/",
		Extensions: []string{".css"},
	},
	{
		Name:       "xml",
		Prefixes:   []string{"<!--"},
		Suffix:     "-->",
		Extensions: []string{".xml", ".html", ".htm", ".svg", ".plist", ".xaml"},
	},
	{
		Name:       "php",
		Prefixes:   []string{"//", "#"},
		Extensions: []string{".php"},
	},
	{
		Name:       "lisp",
		Prefixes:   []string{";"},
		Extensions: []string{".el", ".lisp", ".scm", ".clj", ".cljs", ".rkt", ".fnl"},
	},
}

// Builtins returns a copy of the built-in syntax table.
func Builtins() []Syntax {
	out := make([]Syntax, len(builtins))
	copy(out, builtins)
	return out
}

// Lookup returns the built-in syntax with the given name.
func Lookup(name string) (Syntax, bool) {
	for _, s := range builtins {
		if s.Name == name {
			return s, true
		}
	}
	return Syntax{}, false
}

// Literal builds an ad-hoc syntax from a literal prefix. Surrounding quotes
// are stripped so that shells and config files can pass "#" unambiguously.
func Literal(value string) Syntax {
	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}
	}
	return Syntax{Name: "literal", Prefixes: []string{value}}
}
