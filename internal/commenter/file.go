package commenter

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/thirteen37/chezmoi-toggle/internal/fsutil"
	log "github.com/thirteen37/chezmoi-toggle/internal/log"
	"github.com/thirteen37/chezmoi-toggle/internal/syntax"
	"github.com/thirteen37/chezmoi-toggle/internal/toggle"
)

// FileOptions configures ApplyFile.
type FileOptions struct {
	Syntax    syntax.Syntax
	Selection toggle.Selection

	// Stdout receives the result instead of replacing the file. It is
	// required when the path is "-".
	Stdout io.Writer
	// Stdin is read when the path is "-".
	Stdin io.Reader
}

// ApplyFile applies the selection to one file. The whole result is computed
// in memory before anything is written; the file is replaced atomically and
// left untouched when nothing changes or any step fails.
func ApplyFile(path string, opts FileOptions) (*Result, error) {
	data, err := fsutil.ReadFile(path, opts.Stdin)
	if err != nil {
		return nil, err
	}

	res, err := Apply(data, opts.Syntax, opts.Selection)
	if err != nil {
		if path == "-" {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if opts.Stdout != nil || path == "-" {
		if opts.Stdout == nil {
			return nil, fmt.Errorf("no output for stdin")
		}
		if _, err := opts.Stdout.Write(res.Output); err != nil {
			return nil, fmt.Errorf("failed to write output: %w", err)
		}
		return res, nil
	}

	if bytes.Equal(res.Output, data) {
		slog.Info("file already up to date", slog.String(log.PathKey, path))
		return res, nil
	}
	if err := fsutil.WriteFileAtomic(path, res.Output); err != nil {
		return nil, err
	}
	slog.Info("rewrote file", slog.String(log.PathKey, path), slog.Int("changed", res.Changed))
	return res, nil
}
