// Package cmd provides the CLI commands for chezmoi-toggle.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thirteen37/chezmoi-toggle/internal/config"
	log "github.com/thirteen37/chezmoi-toggle/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "chezmoi-toggle",
	Short: "Switch commented-out blocks in dotfiles",
	Long: `chezmoi-toggle comments and uncomments tagged blocks of lines in
configuration files, so one file can carry several variants (profiles) and
optional parts (flags) and be switched between them without templates.

Blocks are tagged with comment directives:

  # toggle:begin dark
  color = black
  # toggle:end dark
  # toggle:begin light
  # color = white
  # toggle:end light

It can also run as the interpreter of a chezmoi modify script.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

var (
	configFile string
	logLevel   string
	logFormat  string

	// cfg is the loaded configuration, set before any command runs.
	cfg *config.Config
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default $XDG_CONFIG_HOME/chezmoi-toggle/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (text, json)")

	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(syntaxesCmd)
	rootCmd.AddCommand(initCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	logCfg := log.FromEnv()
	logCfg.Output = cmd.ErrOrStderr()
	if logLevel != "" {
		logCfg.Level = logLevel
	}
	if logFormat != "" {
		logCfg.Format = log.Format(logFormat)
	}
	if err := logCfg.Validate(); err != nil {
		return err
	}
	log.Setup(logCfg)

	loaded, err := LoadConfig(configFile)
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}

// LoadConfig loads path, or the default config file when path is empty.
func LoadConfig(path string) (*config.Config, error) {
	if path != "" {
		c, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return c, nil
	}
	dir, err := config.DefaultDir()
	if err != nil {
		// No home directory: run with built-in defaults.
		return &config.Config{}, nil
	}
	c, err := config.Find(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return c, nil
}
