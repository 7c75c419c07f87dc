package yaml

import (
	"testing"

	"github.com/thirteen37/chezmoi-toggle/internal/format"
)

func TestHandler_Parse(t *testing.T) {
	h := New()

	tests := []struct {
		name     string
		input    string
		wantKeys []string
		wantErr  bool
	}{
		{
			name:     "simple mapping",
			input:    "key: value",
			wantKeys: []string{"key"},
		},
		{
			name:     "document order",
			input:    "zeta: 1\nalpha: 2\nmid: 3",
			wantKeys: []string{"zeta", "alpha", "mid"},
		},
		{
			name:     "empty document",
			input:    "",
			wantKeys: []string{},
		},
		{
			name:    "top level sequence",
			input:   "- a\n- b",
			wantErr: true,
		},
		{
			name:    "invalid yaml",
			input:   "key: [unclosed",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.Parse([]byte(tt.input), format.ParseOptions{})
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			gotKeys := got.Keys()
			if len(gotKeys) != len(tt.wantKeys) {
				t.Errorf("Parse() got %d keys (%v), want %d (%v)", len(gotKeys), gotKeys, len(tt.wantKeys), tt.wantKeys)
				return
			}
			for i, k := range gotKeys {
				if k != tt.wantKeys[i] {
					t.Errorf("Parse() key[%d] = %q, want %q", i, k, tt.wantKeys[i])
				}
			}
		})
	}
}

func TestHandler_ParseNested(t *testing.T) {
	input := `defaults:
  profile: dark
  enable: [mouse, bell]
  reset-flags: true
files:
  "**/waybar/style.css": css
  "*.conf": shell
anchors:
  base: &base
    prefixes: ["#"]
  copy: *base
`
	tree, err := New().Parse([]byte(input), format.ParseOptions{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if v, _ := format.Get(tree, "defaults", "profile"); v != "dark" {
		t.Errorf("profile = %v, want dark", v)
	}
	if v, _ := format.Get(tree, "defaults", "reset-flags"); v != true {
		t.Errorf("reset-flags = %v, want true", v)
	}
	v, _ := format.Get(tree, "defaults", "enable")
	if list, ok := v.([]any); !ok || len(list) != 2 || list[0] != "mouse" {
		t.Errorf("enable = %#v, want [mouse bell]", v)
	}

	files, _ := format.Get(tree, "files")
	keys := format.ToOrderedMapPtr(files).Keys()
	if len(keys) != 2 || keys[0] != "**/waybar/style.css" || keys[1] != "*.conf" {
		t.Errorf("files keys = %v", keys)
	}

	if _, ok := format.Get(tree, "anchors", "copy", "prefixes"); !ok {
		t.Error("alias was not resolved")
	}
}

func TestHandler_StripCommentsUnsupported(t *testing.T) {
	if _, err := New().Parse([]byte("a: 1"), format.ParseOptions{StripComments: true}); err == nil {
		t.Error("Parse() expected error for StripComments")
	}
}
