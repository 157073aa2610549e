// Package logger builds the colored console logger used for all
// diagnostics printed by shopify-heroku.
//
// It wraps log/slog with github.com/lmittmann/tint so that level labels
// are colored (INF, WRN, ERR, DBG) the way the terminal user expects from
// a CLI. Timestamps are omitted: the output is a progress log for a human,
// not a service log.
package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Options controls logger construction.
type Options struct {
	// Verbose enables debug records (e.g., every command line run).
	Verbose bool

	// NoColor disables ANSI colors even on a terminal.
	NoColor bool
}

// New returns a logger writing to w. Colors are used only when w is a
// terminal and opts.NoColor is false.
func New(w io.Writer, opts Options) *slog.Logger {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}

	handler := tint.NewHandler(w, &tint.Options{
		Level:       level,
		NoColor:     opts.NoColor || !IsTerminal(w),
		ReplaceAttr: dropTime,
	})
	return slog.New(handler)
}

// IsTerminal reports whether w is a terminal (including Cygwin/MSYS ptys).
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func dropTime(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && len(groups) == 0 {
		return slog.Attr{}
	}
	return a
}
