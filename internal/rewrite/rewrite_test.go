package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirteen37/chezmoi-toggle/internal/block"
	"github.com/thirteen37/chezmoi-toggle/internal/directive"
	"github.com/thirteen37/chezmoi-toggle/internal/document"
	"github.com/thirteen37/chezmoi-toggle/internal/syntax"
	"github.com/thirteen37/chezmoi-toggle/internal/toggle"
)

func lookup(t *testing.T, name string) syntax.Syntax {
	t.Helper()
	s, ok := syntax.Lookup(name)
	require.True(t, ok)
	return s
}

func line(t *testing.T, text string, syn syntax.Syntax) document.Line {
	t.Helper()
	doc := document.Parse([]byte(text), syn)
	require.Len(t, doc.Lines, 1)
	return doc.Lines[0]
}

func TestComment(t *testing.T) {
	shell := lookup(t, "shell")
	css := lookup(t, "css")

	tests := []struct {
		name string
		text string
		conv Convention
		want string
	}{
		{"spaced", "color: red", Convention{Prefix: "#", Space: true}, "# color: red"},
		{"unspaced", "color: red", Convention{Prefix: "#"}, "#color: red"},
		{"keeps indent", "    color: red", Convention{Prefix: "#", Space: true}, "    # color: red"},
		{"tab indent", "\tcolor: red", Convention{Prefix: "#"}, "\t#color: red"},
		{"forced space before prefix char", "#!/bin/sh", Convention{Prefix: "#"}, "# #!/bin/sh"},
		{"forced space for slashes", "/path", Convention{Prefix: "//"}, "// /path"},
		{"suffix", "body { x: y; }", DefaultConvention(css), "/* body { x: y; } */"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			syn := shell
			if tt.conv.Suffix != "" {
				syn = css
			}
			assert.Equal(t, tt.want, Comment(line(t, tt.text, syn), tt.conv))
		})
	}
}

func TestUncomment(t *testing.T) {
	shell := lookup(t, "shell")
	css := lookup(t, "css")
	xml := lookup(t, "xml")
	spaced := Convention{Prefix: "#", Space: true}
	tight := Convention{Prefix: "#"}

	tests := []struct {
		name string
		text string
		syn  syntax.Syntax
		conv Convention
		want string
	}{
		{"spaced", "# color: red", shell, spaced, "color: red"},
		{"unspaced", "#color: red", shell, tight, "color: red"},
		{"only one space removed", "#   indented", shell, spaced, "  indented"},
		{"space kept without convention", "# color: red", shell, tight, " color: red"},
		{"guard space removed", "# #!/bin/sh", shell, tight, "#!/bin/sh"},
		{"keeps indent", "  # color: red", shell, spaced, "  color: red"},
		{"suffix", "/* body {} */", css, DefaultConvention(css), "body {}"},
		{"suffix without spaces", "/*body {}*/", css, Convention{Prefix: "/*", Suffix: "*/"}, "body {}"},
		{"xml", "<!-- <item/> -->", xml, DefaultConvention(xml), "<item/>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Uncomment(line(t, tt.text, tt.syn), tt.conv))
		})
	}
}

func TestCommentUncommentRoundTrip(t *testing.T) {
	shell := lookup(t, "shell")
	c := lookup(t, "c")
	tests := []struct {
		syn  syntax.Syntax
		conv Convention
	}{
		{shell, Convention{Prefix: "#", Space: true}},
		{shell, Convention{Prefix: "#"}},
		{c, Convention{Prefix: "//"}},
	}
	for _, tt := range tests {
		for _, text := range []string{"color: red", "  x = 1", "#!/bin/sh", " # already", "/usr/bin", "\t// note-like"} {
			l := line(t, text, tt.syn)
			commented := line(t, Comment(l, tt.conv), tt.syn)
			assert.Equal(t, l.Text(), Uncomment(commented, tt.conv), "text %q conv %+v", text, tt.conv)
		}
	}
}

func TestApply_Idempotent(t *testing.T) {
	shell := lookup(t, "shell")
	conv := DefaultConvention(shell)

	assert.Equal(t, "# x", Apply(line(t, "# x", shell), toggle.Inactive, conv))
	assert.Equal(t, "x", Apply(line(t, "x", shell), toggle.Active, conv))
	assert.Equal(t, "# x", Apply(line(t, "# x", shell), toggle.Unchanged, conv))
	assert.Equal(t, "x", Apply(line(t, "# x", shell), toggle.Active, conv))
	assert.Equal(t, "# x", Apply(line(t, "x", shell), toggle.Inactive, conv))
}

func TestDetectConvention(t *testing.T) {
	ini := lookup(t, "ini")

	tests := []struct {
		name string
		text string
		want Convention
	}{
		{
			name: "default",
			text: "; outside\n; toggle:begin a\nx\n; toggle:end\n",
			want: Convention{Prefix: ";", Space: true},
		},
		{
			name: "second prefix without space",
			text: "; outside\n; toggle:begin a\n#x\n; toggle:end\n",
			want: Convention{Prefix: "#"},
		},
		{
			name: "notes ignored",
			text: "; toggle:begin a\n;; note\n# x\n; toggle:end\n",
			want: Convention{Prefix: "#", Space: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := document.Parse([]byte(tt.text), ini)
			dirs, err := directive.Scan(doc.Lines, ini)
			require.NoError(t, err)
			lines := make([]int, len(dirs))
			for i, d := range dirs {
				lines[i] = d.Line
			}
			doc.MarkDirectives(lines)
			tree, err := block.Resolve(dirs, len(doc.Lines))
			require.NoError(t, err)
			plan, err := toggle.Compute(doc, tree, toggle.Selection{})
			require.NoError(t, err)

			assert.Equal(t, tt.want, DetectConvention(doc, plan))
		})
	}
}
