package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thirteen37/chezmoi-toggle/internal/script"
	"github.com/thirteen37/chezmoi-toggle/internal/toggle"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a chezmoi modify script for a target file",
	Long: `Create a chezmoi modify script that runs chezmoi-toggle as its
interpreter. On every "chezmoi apply" the current target contents are piped
through chezmoi-toggle with the selection written in the script header.

With --template the script is a chezmoi template, so the selection can
come from chezmoi data, e.g. "# profile {{ .theme }}".

Example:
  chezmoi-toggle init --target .config/kitty/kitty.conf --profile dark
  chezmoi-toggle init --target .tmux.conf --enable mouse --template`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var (
	initTarget     string
	initSourceDir  string
	initProfiles   []string
	initEnable     []string
	initDisable    []string
	initResetFlags bool
	initSyntax     string
	initTemplate   bool
	initForce      bool
)

func init() {
	initCmd.Flags().StringVar(&initTarget, "target", "", "Target file path relative to home (required)")
	initCmd.Flags().StringVar(&initSourceDir, "source", "", "chezmoi source directory (default from chezmoi source-path)")
	initCmd.Flags().StringSliceVarP(&initProfiles, "profile", "p", nil, "Profile to activate")
	initCmd.Flags().StringSliceVarP(&initEnable, "enable", "e", nil, "Flag to enable")
	initCmd.Flags().StringSliceVarP(&initDisable, "disable", "d", nil, "Flag to disable")
	initCmd.Flags().BoolVar(&initResetFlags, "reset-flags", false, "Disable every flag that is not enabled")
	initCmd.Flags().StringVarP(&initSyntax, "syntax", "s", "", "Comment syntax name or literal prefix")
	initCmd.Flags().BoolVar(&initTemplate, "template", false, "Create a chezmoi template (.tmpl)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing script")

	initCmd.MarkFlagRequired("target")
}

func runInit(cmd *cobra.Command, args []string) error {
	sel := toggle.Selection{
		Profiles:   initProfiles,
		Enable:     initEnable,
		Disable:    initDisable,
		ResetFlags: initResetFlags,
	}

	// The syntax is resolved now and pinned in the header: chezmoi runs the
	// script from a temporary file whose name says nothing about the target.
	syn, err := cfg.Registry().Detect(initTarget, initSyntax)
	if err != nil {
		return err
	}
	syntaxName := initSyntax
	if syntaxName == "" {
		syntaxName = syn.Name
	}

	sourceDir := initSourceDir
	if sourceDir == "" {
		sourceDir, err = getChezmoiSourceDir()
		if err != nil {
			return fmt.Errorf("failed to get chezmoi source dir: %w", err)
		}
	} else {
		sourceDir = expandPath(sourceDir)
	}

	scriptPath := filepath.Join(sourceDir, ModifyScriptName(initTarget, initTemplate))
	if _, err := os.Stat(scriptPath); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", scriptPath)
	}
	if err := os.MkdirAll(filepath.Dir(scriptPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(scriptPath, []byte(ScriptHeader(syntaxName, sel)), 0644); err != nil {
		return fmt.Errorf("failed to write modify script: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", scriptPath)
	return nil
}

// ScriptHeader renders the interpreter header for a selection.
func ScriptHeader(syntaxName string, sel toggle.Selection) string {
	var sb strings.Builder
	sb.WriteString("#!/usr/bin/env chezmoi-toggle\n")
	sb.WriteString(fmt.Sprintf("# version %d\n", script.CurrentVersion))
	if syntaxName != "" {
		sb.WriteString(fmt.Sprintf("# syntax %s\n", syntaxName))
	}
	if len(sel.Profiles) > 0 {
		sb.WriteString(fmt.Sprintf("# profile %s\n", strings.Join(sel.Profiles, ", ")))
	}
	if len(sel.Enable) > 0 {
		sb.WriteString(fmt.Sprintf("# enable %s\n", strings.Join(sel.Enable, ", ")))
	}
	if len(sel.Disable) > 0 {
		sb.WriteString(fmt.Sprintf("# disable %s\n", strings.Join(sel.Disable, ", ")))
	}
	if sel.ResetFlags {
		sb.WriteString("# reset-flags true\n")
	}
	return sb.String()
}

// ModifyScriptName returns the source-relative path of the modify script
// for a target path relative to home.
// Example: .config/kitty/kitty.conf -> dot_config/kitty/modify_kitty.conf
func ModifyScriptName(target string, template bool) string {
	target = filepath.Clean(strings.TrimPrefix(target, "~/"))
	dir := convertToChezmoiPath(filepath.Dir(target))
	name := "modify_" + convertToChezmoiPath(filepath.Base(target))
	if template {
		name += ".tmpl"
	}
	if dir == "." {
		return name
	}
	return filepath.Join(dir, name)
}

// getChezmoiSourceDir returns the chezmoi source directory.
func getChezmoiSourceDir() (string, error) {
	cmd := exec.Command("chezmoi", "source-path")
	output, err := cmd.Output()
	if err != nil {
		// Fallback to default
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share", "chezmoi"), nil
	}
	return strings.TrimSpace(string(output)), nil
}

// convertToChezmoiPath converts a target path to chezmoi source path.
// Example: .config/zed -> dot_config/zed
func convertToChezmoiPath(p string) string {
	parts := strings.Split(p, string(filepath.Separator))
	for i, part := range parts {
		if strings.HasPrefix(part, ".") && part != "." && part != ".." {
			parts[i] = "dot_" + strings.TrimPrefix(part, ".")
		}
	}
	return filepath.Join(parts...)
}

// expandPath expands ~ to home directory.
func expandPath(p string) string {
	if strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, p[2:])
	}
	return p
}
