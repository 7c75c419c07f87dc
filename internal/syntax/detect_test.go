package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirteen37/chezmoi-toggle/internal/errs"
)

func TestDetect(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		path string
		want string
	}{
		{"/home/u/.zshrc", "shell"},
		{"Makefile", "shell"},
		{"/etc/app.conf", "shell"},
		{"init.VIM", "vim"},
		{".vimrc", "vim"},
		{"main.go", "c"},
		{"settings.ini", "ini"},
		{"init.lua", "lua"},
		{".Xresources", "xresources"},
		{"style.css", "css"},
		{"index.html", "xml"},
		{"dot_zshrc", "shell"},
		{"private_dot_bashrc.tmpl", "shell"},
		{"dot_config/nvim/modify_init.lua", "lua"},
		{"executable_private_dot_vimrc", "vim"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			s, err := r.Detect(tt.path, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Name)
		})
	}
}

func TestDetect_Unknown(t *testing.T) {
	r := NewRegistry()

	_, err := r.Detect("notes.weird", "")
	var unsupported *errs.UnsupportedSyntaxError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "notes.weird", unsupported.Path)

	_, err = r.Detect("-", "")
	require.ErrorAs(t, err, &unsupported)
	assert.Empty(t, unsupported.Path)
}

func TestDetect_Override(t *testing.T) {
	r := NewRegistry()

	s, err := r.Detect("style.css", "shell")
	require.NoError(t, err)
	assert.Equal(t, "shell", s.Name)

	s, err = r.Detect("-", `"%%"`)
	require.NoError(t, err)
	assert.Equal(t, "literal", s.Name)
	assert.Equal(t, "%%", s.Primary())

	_, err = r.Detect("-", `""`)
	var unsupported *errs.UnsupportedSyntaxError
	assert.ErrorAs(t, err, &unsupported)
}

func TestDetect_Rules(t *testing.T) {
	r := NewRegistry()
	r.Register(Syntax{Name: "kitty", Prefixes: []string{"#"}, Filenames: []string{"kitty.conf"}})
	r.AddRules(
		Rule{Pattern: "**/waybar/style.css", Syntax: "c"},
		Rule{Pattern: "*.css", Syntax: "css"},
		Rule{Pattern: "*.broken", Syntax: "missing"},
	)

	s, err := r.Detect("/home/u/.config/waybar/style.css", "")
	require.NoError(t, err)
	assert.Equal(t, "c", s.Name, "first matching rule wins")

	s, err = r.Detect("/srv/site/style.css", "")
	require.NoError(t, err)
	assert.Equal(t, "css", s.Name)

	s, err = r.Detect("/home/u/.config/kitty/kitty.conf", "")
	require.NoError(t, err)
	assert.Equal(t, "kitty", s.Name, "file name beats extension")

	_, err = r.Detect("x.broken", "")
	var unsupported *errs.UnsupportedSyntaxError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "missing", unsupported.Name)
}

func TestRegister_Replaces(t *testing.T) {
	r := NewRegistry()
	n := len(r.Syntaxes())
	r.Register(Syntax{Name: "shell", Prefixes: []string{";"}})

	assert.Len(t, r.Syntaxes(), n)
	s, ok := r.Get("shell")
	require.True(t, ok)
	assert.Equal(t, ";", s.Primary())
}

func TestChezmoiTargetName(t *testing.T) {
	assert.Equal(t, ".zshrc", chezmoiTargetName("dot_zshrc"))
	assert.Equal(t, ".bashrc", chezmoiTargetName("private_readonly_dot_bashrc.tmpl"))
	assert.Equal(t, "kitty.conf", chezmoiTargetName("modify_kitty.conf"))
	assert.Equal(t, "plain", chezmoiTargetName("plain"))
}
