package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChoicesSelection(t *testing.T) {
	c := Choices{
		Profiles: []string{"dark", "light"},
		Flags:    []string{"bell", "mouse", "work"},
	}

	t.Run("profile and flags", func(t *testing.T) {
		sel := c.Selection("dark", []string{"mouse"})
		assert.Equal(t, []string{"dark"}, sel.Profiles)
		assert.Equal(t, []string{"mouse"}, sel.Enable)
		assert.Equal(t, []string{"bell", "work"}, sel.Disable)
	})

	t.Run("profile left as is", func(t *testing.T) {
		sel := c.Selection("", nil)
		assert.Empty(t, sel.Profiles)
		assert.Empty(t, sel.Enable)
		assert.Equal(t, []string{"bell", "mouse", "work"}, sel.Disable)
	})
}

func TestPickWithoutGroups(t *testing.T) {
	_, err := Pick(Choices{})
	assert.Error(t, err)
}

func TestRenderWarn(t *testing.T) {
	assert.Contains(t, RenderWarn("careful"), "careful")
	assert.Contains(t, RenderLabel("line 3"), "line 3")
}
