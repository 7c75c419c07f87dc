package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thirteen37/chezmoi-toggle/internal/commenter"
	"github.com/thirteen37/chezmoi-toggle/internal/config"
	"github.com/thirteen37/chezmoi-toggle/internal/fsutil"
	log "github.com/thirteen37/chezmoi-toggle/internal/log"
	"github.com/thirteen37/chezmoi-toggle/internal/syntax"
	"github.com/thirteen37/chezmoi-toggle/internal/toggle"
	"github.com/thirteen37/chezmoi-toggle/internal/ui"
)

var applyCmd = &cobra.Command{
	Use:   "apply [flags] <file|->...",
	Short: "Activate profiles and flags in files",
	Long: `Comment and uncomment tagged blocks so that the selected profiles and
flags are active. Each file is rewritten in place unless --stdout is given.
"-" reads from stdin and writes to stdout; it needs --syntax.

With no selection the defaults from the config file are used. On a
terminal, if there are no defaults either, an interactive picker is shown.

Example:
  chezmoi-toggle apply --profile dark ~/.config/kitty/kitty.conf
  chezmoi-toggle apply -e mouse -d bell ~/.tmux.conf
  chezmoi-toggle apply -s shell -p work - < zshrc > zshrc.new`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApply,
}

var (
	applyProfiles   []string
	applyEnable     []string
	applyDisable    []string
	applyResetFlags bool
	applySyntax     string
	applyStdout     bool
)

func init() {
	applyCmd.Flags().StringSliceVarP(&applyProfiles, "profile", "p", nil, "Profile to activate (repeatable, comma-separated)")
	applyCmd.Flags().StringSliceVarP(&applyEnable, "enable", "e", nil, "Flag to enable (repeatable, comma-separated)")
	applyCmd.Flags().StringSliceVarP(&applyDisable, "disable", "d", nil, "Flag to disable (repeatable, comma-separated)")
	applyCmd.Flags().BoolVar(&applyResetFlags, "reset-flags", false, "Disable every flag that is not enabled")
	applyCmd.Flags().StringVarP(&applySyntax, "syntax", "s", "", "Comment syntax name or literal prefix")
	applyCmd.Flags().BoolVar(&applyStdout, "stdout", false, "Write results to stdout instead of replacing files")
}

func runApply(cmd *cobra.Command, args []string) error {
	sel := toggle.Selection{
		Profiles:   applyProfiles,
		Enable:     applyEnable,
		Disable:    applyDisable,
		ResetFlags: applyResetFlags,
	}
	return applyFiles(cmd, cfg, args, sel, applySyntax, applyStdout)
}

// applyFiles processes every path independently and reports all failures.
func applyFiles(cmd *cobra.Command, c *config.Config, paths []string, sel toggle.Selection, override string, toStdout bool) error {
	if c == nil {
		c = &config.Config{}
	}
	registry := c.Registry()

	if sel.Empty() {
		sel = c.Defaults.Selection()
	}

	var failures []error
	for _, path := range paths {
		if err := applyOne(cmd, registry, path, sel, override, toStdout); err != nil {
			failures = append(failures, err)
		}
	}
	return errors.Join(failures...)
}

func applyOne(cmd *cobra.Command, registry *syntax.Registry, path string, sel toggle.Selection, override string, toStdout bool) error {
	syn, err := registry.Detect(path, override)
	if err != nil {
		return err
	}
	slog.Debug("detected syntax", slog.String(log.PathKey, path), slog.String(log.SyntaxKey, syn.Name))

	if sel.Empty() {
		sel, err = pickSelection(cmd.InOrStdin(), path, syn)
		if err != nil {
			return err
		}
	}

	opts := commenter.FileOptions{
		Syntax:    syn,
		Selection: sel,
		Stdin:     cmd.InOrStdin(),
	}
	if toStdout || path == "-" {
		opts.Stdout = cmd.OutOrStdout()
	}
	_, err = commenter.ApplyFile(path, opts)
	return err
}

// pickSelection asks the user what to activate in path.
func pickSelection(stdin io.Reader, path string, syn syntax.Syntax) (toggle.Selection, error) {
	if path == "-" || stdin != os.Stdin || !ui.IsInteractive() {
		return toggle.Selection{}, fmt.Errorf("nothing selected: use --profile, --enable, --disable or --reset-flags, or set defaults in the config file")
	}
	data, err := fsutil.ReadFile(path, nil)
	if err != nil {
		return toggle.Selection{}, err
	}
	report, err := commenter.Inspect(data, syn)
	if err != nil {
		return toggle.Selection{}, fmt.Errorf("%s: %w", path, err)
	}
	return ui.Pick(ui.Choices{
		Profiles: report.Profiles,
		Flags:    report.Flags,
		Enabled:  report.EnabledFlags(),
	})
}
