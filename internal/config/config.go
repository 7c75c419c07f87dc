// Package config provides configuration file handling for chezmoi-toggle.
//
// A config file may be TOML, YAML, JSON (comments allowed) or INI. Example
// in TOML:
//
//	[defaults]
//	profile = "dark"
//	enable = ["mouse"]
//
//	[syntaxes.kitty]
//	prefixes = ["#"]
//	filenames = ["kitty.conf"]
//
//	[files]
//	"**/waybar/style.css" = "css"
//	"**/hypr/*.conf" = "shell"
//
// Rules under [files] are tried in the order they are written.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/iancoleman/orderedmap"
	"github.com/thirteen37/chezmoi-toggle/internal/format"
	"github.com/thirteen37/chezmoi-toggle/internal/format/ini"
	"github.com/thirteen37/chezmoi-toggle/internal/format/json"
	"github.com/thirteen37/chezmoi-toggle/internal/format/toml"
	"github.com/thirteen37/chezmoi-toggle/internal/format/yaml"
	"github.com/thirteen37/chezmoi-toggle/internal/syntax"
	"github.com/thirteen37/chezmoi-toggle/internal/toggle"
)

// Config is the user configuration.
type Config struct {
	// Path is the file the config was loaded from, empty for defaults.
	Path string

	Defaults Defaults
	Syntaxes []syntax.Syntax
	Rules    []syntax.Rule
}

// Defaults is the selection used when the command line gives none.
type Defaults struct {
	Profiles   []string
	Enable     []string
	Disable    []string
	ResetFlags bool
}

// Selection converts the defaults into a toggle selection.
func (d Defaults) Selection() toggle.Selection {
	return toggle.Selection{
		Profiles:   d.Profiles,
		Enable:     d.Enable,
		Disable:    d.Disable,
		ResetFlags: d.ResetFlags,
	}
}

// Registry returns a syntax registry with the built-in syntaxes, the
// configured ones and the file rules.
func (c *Config) Registry() *syntax.Registry {
	r := syntax.NewRegistry()
	for _, s := range c.Syntaxes {
		r.Register(s)
	}
	r.AddRules(c.Rules...)
	return r
}

// candidates are the base names searched in the config directory.
var candidates = []string{"config.toml", "config.yaml", "config.yml", "config.json", "config.ini"}

// DefaultDir returns $XDG_CONFIG_HOME/chezmoi-toggle, falling back to
// ~/.config/chezmoi-toggle.
func DefaultDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "chezmoi-toggle"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "chezmoi-toggle"), nil
}

// Find loads the first config file found in dir. A missing file is not an
// error; an empty Config is returned.
func Find(dir string) (*Config, error) {
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
	}
	return &Config{}, nil
}

// HandlerFor returns the format handler for a config path.
func HandlerFor(path string) (format.Handler, format.ParseOptions, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.New(), format.ParseOptions{}, nil
	case ".yaml", ".yml":
		return yaml.New(), format.ParseOptions{}, nil
	case ".json", ".jsonc":
		return json.New(), format.ParseOptions{StripComments: true}, nil
	case ".ini":
		return ini.New(), format.ParseOptions{}, nil
	default:
		return nil, format.ParseOptions{}, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
}

// Load reads a Config from a file.
func Load(filename string) (*Config, error) {
	handler, opts, err := HandlerFor(filename)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	tree, err := handler.Parse(data, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}
	cfg, err := FromTree(tree)
	if err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filename, err)
	}
	cfg.Path = filename
	return cfg, nil
}

// FromTree builds a Config from a decoded tree.
func FromTree(tree *orderedmap.OrderedMap) (*Config, error) {
	cfg := &Config{}
	for _, key := range tree.Keys() {
		switch key {
		case "defaults", "syntaxes", "files":
		default:
			return nil, fmt.Errorf("unknown section %q", key)
		}
	}

	if v, ok := format.Get(tree, "defaults"); ok {
		m := format.ToOrderedMapPtr(v)
		if m == nil {
			return nil, fmt.Errorf("defaults must be a table")
		}
		d, err := parseDefaults(m)
		if err != nil {
			return nil, fmt.Errorf("defaults: %w", err)
		}
		cfg.Defaults = d
	}

	if v, ok := format.Get(tree, "syntaxes"); ok {
		m := format.ToOrderedMapPtr(v)
		if m == nil {
			return nil, fmt.Errorf("syntaxes must be a table")
		}
		for _, name := range m.Keys() {
			sv, _ := m.Get(name)
			s, err := parseSyntax(name, sv)
			if err != nil {
				return nil, fmt.Errorf("syntaxes.%s: %w", name, err)
			}
			cfg.Syntaxes = append(cfg.Syntaxes, s)
		}
	}

	if v, ok := format.Get(tree, "files"); ok {
		m := format.ToOrderedMapPtr(v)
		if m == nil {
			return nil, fmt.Errorf("files must be a table")
		}
		for _, pattern := range m.Keys() {
			sv, _ := m.Get(pattern)
			name, ok := sv.(string)
			if !ok || name == "" {
				return nil, fmt.Errorf("files: syntax for %q must be a name", pattern)
			}
			if !doublestar.ValidatePattern(pattern) {
				return nil, fmt.Errorf("files: invalid pattern %q", pattern)
			}
			cfg.Rules = append(cfg.Rules, syntax.Rule{Pattern: pattern, Syntax: name})
		}
	}

	return cfg, nil
}

func parseDefaults(m *orderedmap.OrderedMap) (Defaults, error) {
	var d Defaults
	for _, key := range m.Keys() {
		v, _ := m.Get(key)
		var err error
		switch key {
		case "profile", "profiles":
			d.Profiles, err = toStrings(v)
		case "enable":
			d.Enable, err = toStrings(v)
		case "disable":
			d.Disable, err = toStrings(v)
		case "reset-flags", "reset_flags":
			d.ResetFlags, err = toBool(v)
		default:
			err = fmt.Errorf("unknown key %q", key)
		}
		if err != nil {
			return Defaults{}, fmt.Errorf("%s: %w", key, err)
		}
	}
	return d, nil
}

func parseSyntax(name string, v any) (syntax.Syntax, error) {
	m := format.ToOrderedMapPtr(v)
	if m == nil {
		return syntax.Syntax{}, fmt.Errorf("must be a table")
	}
	s := syntax.Syntax{Name: name}
	for _, key := range m.Keys() {
		val, _ := m.Get(key)
		var err error
		switch key {
		case "prefixes", "prefix":
			s.Prefixes, err = toStrings(val)
		case "suffix":
			s.Suffix, err = toString(val)
		case "extensions":
			s.Extensions, err = toStrings(val)
			for i, ext := range s.Extensions {
				if !strings.HasPrefix(ext, ".") {
					s.Extensions[i] = "." + ext
				}
			}
		case "filenames":
			s.Filenames, err = toStrings(val)
		default:
			err = fmt.Errorf("unknown key %q", key)
		}
		if err != nil {
			return syntax.Syntax{}, fmt.Errorf("%s: %w", key, err)
		}
	}
	if len(s.Prefixes) == 0 {
		return syntax.Syntax{}, fmt.Errorf("at least one prefix is required")
	}
	for _, p := range s.Prefixes {
		if strings.TrimSpace(p) == "" {
			return syntax.Syntax{}, fmt.Errorf("empty prefix")
		}
	}
	return s, nil
}

func toString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected a string, got %T", v)
	}
	return s, nil
}

// toStrings accepts a list of strings or a single comma-separated string,
// the only list form INI files have.
func toStrings(v any) ([]string, error) {
	switch val := v.(type) {
	case string:
		var out []string
		for _, part := range strings.Split(val, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected strings, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a list of strings, got %T", v)
	}
}

func toBool(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return false, fmt.Errorf("expected true or false, got %q", val)
		}
		return b, nil
	default:
		return false, fmt.Errorf("expected a boolean, got %T", v)
	}
}
