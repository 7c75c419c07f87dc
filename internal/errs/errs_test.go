package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unsupported path", &UnsupportedSyntaxError{Path: "x.weird"}, "unsupported syntax: cannot determine comment syntax for x.weird (use --syntax)"},
		{"unsupported stdin", &UnsupportedSyntaxError{}, "unsupported syntax: no comment syntax given for stdin (use --syntax)"},
		{"unsupported name", &UnsupportedSyntaxError{Name: "cobol"}, `unsupported syntax "cobol"`},
		{"malformed", &MalformedDirectiveError{Line: 3, Reason: "missing verb"}, "line 3: malformed directive: missing verb"},
		{"collision", &DirectiveCollisionError{Group: "dark", Line: 2}, `line 2: toggling this line of group "dark" would turn it into a toggle directive`},
		{"unmatched open", &UnmatchedOpenError{Group: "dark", Line: 1}, `line 1: group "dark" is opened but never closed`},
		{"unmatched close", &UnmatchedCloseError{Group: "dark", Line: 4}, `line 4: end of group "dark" without a matching begin`},
		{"bare unmatched close", &UnmatchedCloseError{Line: 4}, "line 4: end without an open group"},
		{"duplicate", &DuplicateGroupError{Group: "dark", Line: 9, First: 2}, `line 9: group "dark" already defined in this scope at line 2`},
		{"unknown", &UnknownGroupError{Requested: "blue", Available: []string{"dark", "light"}}, `unknown group "blue" (available: dark, light)`},
		{"unknown none", &UnknownGroupError{Requested: "blue"}, `unknown group "blue" (no groups of that kind in file)`},
		{"conflict", &ConflictingSelectionError{Groups: []string{"dark", "light"}, Reason: "profiles share a scope and exclude each other"}, "conflicting selection dark, light: profiles share a scope and exclude each other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("theme.sh: %w", &UnknownGroupError{Requested: "blue"})
	var unknown *UnknownGroupError
	assert.True(t, errors.As(wrapped, &unknown))
	assert.Equal(t, "blue", unknown.Requested)
}
