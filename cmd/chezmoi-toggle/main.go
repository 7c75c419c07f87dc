// chezmoi-toggle switches tagged, commented-out blocks in configuration files.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/thirteen37/chezmoi-toggle/internal/cmd"
	"github.com/thirteen37/chezmoi-toggle/internal/commenter"
	log "github.com/thirteen37/chezmoi-toggle/internal/log"
	"github.com/thirteen37/chezmoi-toggle/internal/script"
)

func main() {
	// Interpreter mode: argv[0] = interpreter, argv[1] = script path
	if len(os.Args) == 2 && isScript(os.Args[1]) {
		if err := runAsInterpreter(os.Args[1]); err != nil {
			fail(err)
		}
		return
	}

	if err := cmd.Execute(); err != nil {
		fail(err)
	}
}

// fail prints one diagnostic per line and exits with status 1.
func fail(err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(os.Stderr, "chezmoi-toggle: %s\n", line)
	}
	os.Exit(1)
}

// isScript reports whether path is a readable file starting with a shebang.
func isScript(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}
	head := make([]byte, 2)
	if _, err := io.ReadFull(f, head); err != nil {
		return false
	}
	return string(head) == "#!"
}

// runAsInterpreter rewrites stdin to stdout using the selection in the
// script header. chezmoi runs modify scripts with the current target
// contents on stdin and installs whatever they print.
func runAsInterpreter(scriptPath string) error {
	logCfg := log.FromEnv()
	if err := logCfg.Validate(); err != nil {
		return err
	}
	log.Setup(logCfg)

	scriptContent, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	scr, err := script.Parse(string(scriptContent))
	if err != nil {
		return fmt.Errorf("failed to parse script: %w", err)
	}

	cfg, err := cmd.LoadConfig(os.Getenv("CHEZMOI_TOGGLE_CONFIG"))
	if err != nil {
		return err
	}

	syn, err := cfg.Registry().Detect(scriptPath, scr.Syntax)
	if err != nil {
		return err
	}

	sel := scr.Selection
	if sel.Empty() {
		sel = cfg.Defaults.Selection()
	}

	_, err = commenter.ApplyFile("-", commenter.FileOptions{
		Syntax:    syn,
		Selection: sel,
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
	})
	return err
}
