// Package diag captures intermediate pipeline artifacts for offline tuning.
// Enabled only when config.Debug is true.
package diag

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sink receives intermediate images and trace lines from the scan pipeline.
type Sink interface {
	Enabled() bool
	Image(stage string, img image.Image)
	Trace(stage, msg string)
}

// Nop returns a sink that drops everything.
func Nop() Sink { return nopSink{} }

type nopSink struct{}

func (nopSink) Enabled() bool                     { return false }
func (nopSink) Image(stage string, _ image.Image) {}
func (nopSink) Trace(stage, msg string)           {}

// FileSink writes each run's artifacts under its own directory: sequenced
// PNGs per stage and an append-only trace log.
type FileSink struct {
	mu     sync.Mutex
	dir    string
	seq    int
	trace  *os.File
	logger *slog.Logger
}

// NewFileSink creates a run directory under root, named by timestamp and a
// short run id so concurrent sessions never collide.
func NewFileSink(root string, logger *slog.Logger) (*FileSink, error) {
	runID := uuid.NewString()[:8]
	dir := filepath.Join(root, fmt.Sprintf("%s-%s", time.Now().Format("20060102-150405"), runID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create diag dir: %w", err)
	}
	trace, err := os.Create(filepath.Join(dir, "trace.log"))
	if err != nil {
		return nil, fmt.Errorf("create trace log: %w", err)
	}
	if logger != nil {
		logger.Info("diagnostics enabled", slog.String("dir", dir))
	}
	return &FileSink{dir: dir, trace: trace, logger: logger}, nil
}

// Enabled always reports true for a file sink.
func (s *FileSink) Enabled() bool { return true }

// Image writes the capture as <seq>-<stage>.png. Failures are logged and
// swallowed so diagnostics never break the scan loop.
func (s *FileSink) Image(stage string, img image.Image) {
	s.mu.Lock()
	s.seq++
	name := filepath.Join(s.dir, fmt.Sprintf("%04d-%s.png", s.seq, stage))
	s.mu.Unlock()

	f, err := os.Create(name)
	if err != nil {
		s.warn("diag image create failed", err)
		return
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		s.warn("diag image encode failed", err)
	}
}

// Trace appends one timestamped line to the run's trace log.
func (s *FileSink) Trace(stage, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.trace, "%s %s: %s\n", time.Now().Format(time.RFC3339Nano), stage, msg)
}

// Close flushes and closes the trace log.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trace.Close()
}

func (s *FileSink) warn(msg string, err error) {
	if s.logger != nil {
		s.logger.Warn(msg, slog.String("error", err.Error()))
	}
}
