package toml

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
			name:     "simple toml",
			input:    `key = "value"`,
			wantKeys: []string{"key"},
		},
		{
			name:     "with section",
			input:    "[section]\nkey = \"value\"",
			wantKeys: []string{"section"},
		},
		{
			name:     "nested section",
			input:    "[outer]\n[outer.inner]\nkey = \"value\"",
			wantKeys: []string{"outer"},
		},
		{
			name:     "document order",
			input:    "zeta = 1\nalpha = 2\nmid = 3",
			wantKeys: []string{"zeta", "alpha", "mid"},
		},
		{
			name:    "invalid toml",
			input:   `[invalid`,
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

func TestHandler_ParseNestedOrder(t *testing.T) {
	input := `[files]
"**/waybar/style.css" = "css"
"**/hypr/*.conf" = "shell"
"*.zsh" = "shell"
`
	got, err := New().Parse([]byte(input), format.ParseOptions{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	v, ok := format.Get(got, "files")
	if !ok {
		t.Fatal("files section missing")
	}
	files := format.ToOrderedMapPtr(v)
	if files == nil {
		t.Fatalf("files = %T, want ordered map", v)
	}
	want := []string{"**/waybar/style.css", "**/hypr/*.conf", "*.zsh"}
	keys := files.Keys()
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("key[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestHandler_ParseArrays(t *testing.T) {
	got, err := New().Parse([]byte("[defaults]\nenable = [\"a\", \"b\"]"), format.ParseOptions{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	v, ok := format.Get(got, "defaults", "enable")
	if !ok {
		t.Fatal("defaults.enable missing")
	}
	list, ok := v.([]any)
	if !ok || len(list) != 2 || list[0] != "a" || list[1] != "b" {
		t.Errorf("enable = %#v, want [a b]", v)
	}
}

func TestHandler_StripCommentsUnsupported(t *testing.T) {
	if _, err := New().Parse([]byte(`key = 1`), format.ParseOptions{StripComments: true}); err == nil {
		t.Error("Parse() expected error for StripComments")
	}
}
