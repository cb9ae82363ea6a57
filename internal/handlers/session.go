package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"voyage-booking/internal/services"
)

// Session feeds input lines to a CommandHandler in order and makes sure the
// transcript ends with an end-of-day report.
type Session struct {
	ID      string
	handler *CommandHandler

	lastWasZReport bool
}

func NewSession(id string, handler *CommandHandler) *Session {
	return &Session{ID: id, handler: handler}
}

// Run processes every line. If the last processed command was not Z_REPORT,
// one implicit Z_REPORT is executed without an echo line. Run stops before the
// next line once ctx is done.
func (s *Session) Run(ctx context.Context, lines []string) error {
	start := time.Now()
	slog.Info("Session started", "session_id", s.ID, "lines", len(lines))

	processed := 0
	for i, raw := range lines {
		if err := ctx.Err(); err != nil {
			slog.Warn("Session interrupted", "session_id", s.ID, "line", i+1)
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		keyword, err := s.handler.Handle(ctx, raw)
		if err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		if keyword == "" {
			continue
		}
		processed++
		s.lastWasZReport = keyword == services.CmdZReport
	}

	if !s.lastWasZReport {
		slog.Debug("Appending implicit Z report", "session_id", s.ID)
		if err := s.handler.Execute(ctx, []string{services.CmdZReport}); err != nil {
			return fmt.Errorf("implicit z report: %w", err)
		}
		s.lastWasZReport = true
	}

	slog.Info("Session finished",
		"session_id", s.ID,
		"commands", processed,
		"voyages", len(s.handler.voyageService.Voyages()),
		"duration", time.Since(start),
	)
	return nil
}
