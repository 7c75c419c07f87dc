package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thirteen37/chezmoi-toggle/internal/commenter"
	"github.com/thirteen37/chezmoi-toggle/internal/fsutil"
	"github.com/thirteen37/chezmoi-toggle/internal/toggle"
	"github.com/thirteen37/chezmoi-toggle/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list <file>",
	Short: "List the groups of a file and their current state",
	Long: `List every tagged block of a file as a tree, with its current state:
active (●), inactive (○) or nothing to toggle (·).

Example:
  chezmoi-toggle list ~/.config/kitty/kitty.conf`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

var listSyntax string

func init() {
	listCmd.Flags().StringVarP(&listSyntax, "syntax", "s", "", "Comment syntax name or literal prefix")
}

func runList(cmd *cobra.Command, args []string) error {
	path := args[0]
	registry := cfg.Registry()
	syn, err := registry.Detect(path, listSyntax)
	if err != nil {
		return err
	}
	data, err := fsutil.ReadFile(path, cmd.InOrStdin())
	if err != nil {
		return err
	}
	report, err := commenter.Inspect(data, syn)
	if err != nil {
		if path == "-" {
			return err
		}
		return fmt.Errorf("%s: %w", path, err)
	}
	printReport(cmd.OutOrStdout(), path, report)
	return nil
}

func printReport(w io.Writer, path string, report *commenter.Report) {
	fmt.Fprintf(w, "%s %s\n", ui.Header.Render(path), ui.RenderLabel("("+report.Syntax.Name+")"))
	if len(report.Groups) == 0 {
		fmt.Fprintln(w, "No toggle groups found")
		return
	}
	report.Walk(func(g commenter.Group) {
		label := g.Label
		if g.Default {
			label += " (default)"
		}
		fmt.Fprintf(w, "%s%s %s %s\n",
			strings.Repeat("  ", g.Depth+1),
			stateSymbol(g.State),
			label,
			ui.RenderLabel(fmt.Sprintf("line %d", g.Line)))
	})
	if len(report.Profiles) > 0 {
		fmt.Fprintf(w, "%s %s\n", ui.RenderLabel("profiles:"), strings.Join(report.Profiles, ", "))
	}
	if len(report.Flags) > 0 {
		fmt.Fprintf(w, "%s %s\n", ui.RenderLabel("flags:"), strings.Join(report.Flags, ", "))
	}
}

func stateSymbol(s toggle.State) string {
	switch s {
	case toggle.Active:
		return ui.Active.Render(ui.SymbolActive)
	case toggle.Inactive:
		return ui.Inactive.Render(ui.SymbolInactive)
	default:
		return ui.Muted.Render(ui.SymbolUnchanged)
	}
}
