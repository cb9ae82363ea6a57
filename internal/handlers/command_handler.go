package handlers

import (
	"context"
	"strings"
	"time"

	"voyage-booking/internal/report"
	"voyage-booking/internal/services"
	"voyage-booking/internal/status"
	"voyage-booking/models"
	"voyage-booking/monitoring"

	"go.uber.org/multierr"
)

// unknownLabel is the metrics label for unrecognized keywords.
const unknownLabel = "UNKNOWN"

type CommandHandler struct {
	voyageService *services.VoyageService
	sink          report.Sink
	monitor       *monitoring.Monitor
	notifier      *services.EventNotifier
}

func NewCommandHandler(voyageService *services.VoyageService, sink report.Sink, monitor *monitoring.Monitor, notifier *services.EventNotifier) *CommandHandler {
	return &CommandHandler{
		voyageService: voyageService,
		sink:          sink,
		monitor:       monitor,
		notifier:      notifier,
	}
}

// Handle echoes and executes one raw input line and returns its keyword.
// Blank lines are skipped and yield an empty keyword. The returned error is a sink failure;
// command errors are written to the transcript.
func (h *CommandHandler) Handle(ctx context.Context, raw string) (string, error) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return "", nil
	}
	if err := h.sink.Emit(ctx, report.Command(line)); err != nil {
		return "", err
	}

	tokens := strings.Split(line, "\t")
	return tokens[0], h.Execute(ctx, tokens)
}

// Execute runs an already tokenized command without echoing it.
func (h *CommandHandler) Execute(ctx context.Context, tokens []string) error {
	start := time.Now()

	keyword := tokens[0]
	lines, err := h.dispatch(ctx, tokens)

	outcome := monitoring.OutcomeOK
	if err != nil {
		outcome = monitoring.OutcomeError
		for _, e := range multierr.Errors(err) {
			lines = append(lines, report.Error(e))
			h.monitor.TrackError(string(status.CategoryOf(e)))
		}
	}
	if !isKeyword(keyword) {
		keyword = unknownLabel
	}
	h.monitor.TrackCommand(keyword, outcome, time.Since(start))

	return h.sink.Emit(ctx, lines...)
}

func (h *CommandHandler) dispatch(ctx context.Context, tokens []string) ([]string, error) {
	switch tokens[0] {
	case services.CmdInitVoyage:
		return h.initVoyage(ctx, tokens)
	case services.CmdSellTicket:
		return h.sellTicket(ctx, tokens)
	case services.CmdRefundTicket:
		return h.refundTicket(ctx, tokens)
	case services.CmdCancelVoyage:
		return h.cancelVoyage(ctx, tokens)
	case services.CmdPrintVoyage:
		return h.printVoyage(tokens)
	case services.CmdZReport:
		return h.zReport(tokens)
	}
	return nil, status.UnknownCommand(tokens[0])
}

func (h *CommandHandler) initVoyage(ctx context.Context, tokens []string) ([]string, error) {
	v, err := h.voyageService.InitVoyage(tokens)
	if err != nil {
		return nil, err
	}
	h.monitor.TrackActiveVoyages(len(h.voyageService.Voyages()))
	h.trackRevenue(v)
	h.notifier.VoyageInitialized(ctx, v)

	return []string{report.Initialized(v, refundCutToken(tokens))}, nil
}

func (h *CommandHandler) sellTicket(ctx context.Context, tokens []string) ([]string, error) {
	t, err := h.voyageService.SellTicket(tokens)
	if err != nil {
		return nil, err
	}
	h.monitor.TrackSeatsSold(string(t.Voyage.Kind), len(t.Seats))
	h.trackRevenue(t.Voyage)
	h.notifier.TicketsSold(ctx, t)

	return []string{report.Sold(t)}, nil
}

func (h *CommandHandler) refundTicket(ctx context.Context, tokens []string) ([]string, error) {
	t, err := h.voyageService.RefundTicket(tokens)
	if err != nil {
		return nil, err
	}
	h.monitor.TrackSeatsRefunded(string(t.Voyage.Kind), len(t.Seats))
	h.trackRevenue(t.Voyage)
	h.notifier.TicketsRefunded(ctx, t)

	return []string{report.Refunded(t)}, nil
}

func (h *CommandHandler) cancelVoyage(ctx context.Context, tokens []string) ([]string, error) {
	c, err := h.voyageService.CancelVoyage(tokens)
	if err != nil {
		return nil, err
	}
	h.monitor.ForgetVoyage(c.Voyage.ID)
	h.monitor.TrackActiveVoyages(len(h.voyageService.Voyages()))
	h.notifier.VoyageCancelled(ctx, c)

	return report.Cancelled(c), nil
}

func (h *CommandHandler) printVoyage(tokens []string) ([]string, error) {
	v, err := h.voyageService.PrintVoyage(tokens)
	if err != nil {
		return nil, err
	}
	return report.VoyageBlock(v), nil
}

func (h *CommandHandler) zReport(tokens []string) ([]string, error) {
	voyages, err := h.voyageService.ZReport(tokens)
	if err != nil {
		return nil, err
	}
	return report.ZReport(voyages), nil
}

func (h *CommandHandler) trackRevenue(v *models.Voyage) {
	h.monitor.TrackRevenue(v.ID, v.Revenue)
}

// refundCutToken returns the refund cut field of an INIT_VOYAGE line, if it has one.
func refundCutToken(tokens []string) string {
	if len(tokens) > 7 {
		return tokens[7]
	}
	return ""
}

func isKeyword(keyword string) bool {
	switch keyword {
	case services.CmdInitVoyage, services.CmdSellTicket, services.CmdRefundTicket,
		services.CmdCancelVoyage, services.CmdPrintVoyage, services.CmdZReport:
		return true
	}
	return false
}
