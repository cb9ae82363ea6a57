package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Sink receives transcript lines in order. Lines carry no trailing newline.
type Sink interface {
	Emit(ctx context.Context, lines ...string) error
}

// WriterSink writes lines separated by "\n" to an io.Writer. The last line
// written has no terminator.
type WriterSink struct {
	w       io.Writer
	started bool
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Emit(_ context.Context, lines ...string) error {
	for _, line := range lines {
		if s.started {
			line = "\n" + line
		}
		if _, err := io.WriteString(s.w, line); err != nil {
			return fmt.Errorf("write transcript: %w", err)
		}
		s.started = true
	}
	return nil
}

// MemorySink keeps the transcript in memory.
type MemorySink struct {
	mu    sync.Mutex
	lines []string
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Emit(_ context.Context, lines ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, lines...)
	return nil
}

// Lines returns a copy of everything emitted so far.
func (s *MemorySink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// String joins the transcript with "\n" after every line.
func (s *MemorySink) String() string {
	lines := s.Lines()
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// TeeSink writes to a primary sink and copies every line to best-effort mirrors.
// Only primary failures are returned; mirror failures are logged.
type TeeSink struct {
	primary Sink
	mirrors []Sink
}

func NewTeeSink(primary Sink, mirrors ...Sink) *TeeSink {
	return &TeeSink{primary: primary, mirrors: mirrors}
}

func (s *TeeSink) Emit(ctx context.Context, lines ...string) error {
	if err := s.primary.Emit(ctx, lines...); err != nil {
		return err
	}
	for _, m := range s.mirrors {
		if err := m.Emit(ctx, lines...); err != nil {
			slog.Warn("Transcript mirror failed", "error", err, "lines", len(lines))
		}
	}
	return nil
}
