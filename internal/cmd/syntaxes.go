package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thirteen37/chezmoi-toggle/internal/ui"
)

var syntaxesCmd = &cobra.Command{
	Use:   "syntaxes",
	Short: "List known comment syntaxes",
	Long: `List the built-in and configured comment syntaxes with their prefixes,
file extensions and file names, followed by the file rules from the config.`,
	Args: cobra.NoArgs,
	RunE: runSyntaxes,
}

func runSyntaxes(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	registry := cfg.Registry()
	for _, s := range registry.Syntaxes() {
		prefixes := strings.Join(s.Prefixes, " ")
		if s.Suffix != "" {
			prefixes += " ... " + s.Suffix
		}
		fmt.Fprintf(w, "%-12s %-14s %s\n", ui.Header.Render(s.Name), prefixes,
			ui.RenderLabel(strings.Join(append(append([]string(nil), s.Extensions...), s.Filenames...), " ")))
	}
	if len(cfg.Rules) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, ui.Header.Render("rules"))
		for _, r := range cfg.Rules {
			fmt.Fprintf(w, "  %s %s %s\n", r.Pattern, ui.RenderLabel("→"), r.Syntax)
		}
	}
	return nil
}
