package embeval

import (
	"io"
	"log/slog"
	"math"
)

// discardHandler stands in for slog.DiscardHandler (Go 1.24+): it writes
// nowhere and reports every level as disabled.
var discardHandler slog.Handler = slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)})
