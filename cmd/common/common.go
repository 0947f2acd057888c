package common

import (
	"io"
	"log/slog"
	"os"
)

// ExitIfError logs err with the given prefix and exits when err is not nil.
func ExitIfError(prefix string, err error) {
	if err != nil {
		slog.Error(prefix + err.Error())
		os.Exit(1)
	}
}

// NewLogger returns a text logger on w. When verbose is false, only
// warnings and errors are logged.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
