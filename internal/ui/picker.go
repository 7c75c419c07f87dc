package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/thirteen37/chezmoi-toggle/internal/toggle"
)

// ErrAborted is returned when the user cancels the picker.
var ErrAborted = errors.New("selection aborted")

// Choices are the names offered by the picker.
type Choices struct {
	Profiles []string
	Flags    []string
	// Enabled flags are preselected.
	Enabled []string
}

// Selection builds a toggle selection from what was picked. Every offered
// flag that was not picked is disabled.
func (c Choices) Selection(profile string, flags []string) toggle.Selection {
	var sel toggle.Selection
	if profile != "" {
		sel.Profiles = []string{profile}
	}
	picked := make(map[string]bool, len(flags))
	for _, f := range flags {
		picked[f] = true
	}
	for _, f := range c.Flags {
		if picked[f] {
			sel.Enable = append(sel.Enable, f)
		} else {
			sel.Disable = append(sel.Disable, f)
		}
	}
	return sel
}

// Pick asks the user for a profile and a set of flags.
func Pick(c Choices) (toggle.Selection, error) {
	if len(c.Profiles) == 0 && len(c.Flags) == 0 {
		return toggle.Selection{}, fmt.Errorf("no groups to choose from")
	}

	var profile string
	flags := append([]string(nil), c.Enabled...)

	var fields []huh.Field
	if len(c.Profiles) > 0 {
		opts := make([]huh.Option[string], 0, len(c.Profiles)+1)
		opts = append(opts, huh.NewOption("(leave as is)", ""))
		for _, p := range c.Profiles {
			opts = append(opts, huh.NewOption(p, p))
		}
		fields = append(fields, huh.NewSelect[string]().
			Title("Profile").
			Description("Select the profile to activate").
			Options(opts...).
			Value(&profile))
	}
	if len(c.Flags) > 0 {
		opts := make([]huh.Option[string], 0, len(c.Flags))
		for _, f := range c.Flags {
			opts = append(opts, huh.NewOption(f, f))
		}
		fields = append(fields, huh.NewMultiSelect[string]().
			Title("Flags").
			Description("Select the flags to enable").
			Options(opts...).
			Value(&flags))
	}

	form := huh.NewForm(huh.NewGroup(fields...))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return toggle.Selection{}, ErrAborted
		}
		return toggle.Selection{}, fmt.Errorf("failed to run picker: %w", err)
	}
	return c.Selection(profile, flags), nil
}
