//go:build !windows

package diag

import (
	"log/slog"
	"time"
)

// StartMemLogger is a no-op off Windows; the runtime logger already covers
// the Go heap.
func StartMemLogger(interval time.Duration, logger *slog.Logger) {}
