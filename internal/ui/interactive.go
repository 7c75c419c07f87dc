package ui

import (
	"os"

	"golang.org/x/term"
)

// IsInteractive reports whether prompts may be shown: stdin and stderr are
// terminals and CHEZMOI_TOGGLE_NON_INTERACTIVE is not set. chezmoi runs
// modify scripts without a terminal, so they never prompt.
func IsInteractive() bool {
	if v := os.Getenv("CHEZMOI_TOGGLE_NON_INTERACTIVE"); v == "true" || v == "1" {
		return false
	}
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
}
