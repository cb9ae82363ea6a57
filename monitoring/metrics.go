package monitoring

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	commandsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voyage_commands_total",
			Help: "Total processed commands by keyword and outcome",
		},
		[]string{"command", "outcome"},
	)

	commandErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voyage_command_errors_total",
			Help: "Total error lines written to the transcript by category",
		},
		[]string{"category"},
	)

	seatsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voyage_seats_sold_total",
			Help: "Total seats sold per voyage kind",
		},
		[]string{"kind"},
	)

	seatsRefunded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voyage_seats_refunded_total",
			Help: "Total seats refunded per voyage kind",
		},
		[]string{"kind"},
	)

	voyageRevenue = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "voyage_revenue",
			Help: "Current revenue per active voyage",
		},
		[]string{"voyage_id"},
	)

	activeVoyages = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "voyage_active_total",
			Help: "Current number of active voyages",
		},
	)

	commandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "voyage_command_duration_seconds",
			Help:    "Duration of command processing",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
		[]string{"command"},
	)
)

// Outcome labels of voyage_commands_total.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Monitor records command metrics. A nil or disabled Monitor records nothing.
type Monitor struct {
	enabled bool
}

func NewMonitor(enabled bool) *Monitor {
	return &Monitor{enabled: enabled}
}

func (m *Monitor) active() bool {
	return m != nil && m.enabled
}

// Track processed commands
func (m *Monitor) TrackCommand(command, outcome string, duration time.Duration) {
	if !m.active() {
		return
	}
	commandsProcessed.WithLabelValues(command, outcome).Inc()
	commandDuration.WithLabelValues(command).Observe(duration.Seconds())
}

func (m *Monitor) TrackError(category string) {
	if !m.active() {
		return
	}
	commandErrors.WithLabelValues(category).Inc()
}

func (m *Monitor) TrackSeatsSold(kind string, seats int) {
	if !m.active() {
		return
	}
	seatsSold.WithLabelValues(kind).Add(float64(seats))
}

func (m *Monitor) TrackSeatsRefunded(kind string, seats int) {
	if !m.active() {
		return
	}
	seatsRefunded.WithLabelValues(kind).Add(float64(seats))
}

// TrackRevenue sets the revenue gauge of a voyage.
func (m *Monitor) TrackRevenue(voyageID int, revenue float64) {
	if !m.active() {
		return
	}
	voyageRevenue.WithLabelValues(strconv.Itoa(voyageID)).Set(revenue)
}

// ForgetVoyage drops the revenue series of a cancelled voyage.
func (m *Monitor) ForgetVoyage(voyageID int) {
	if !m.active() {
		return
	}
	voyageRevenue.DeleteLabelValues(strconv.Itoa(voyageID))
}

func (m *Monitor) TrackActiveVoyages(count int) {
	if !m.active() {
		return
	}
	activeVoyages.Set(float64(count))
}

// WriteTextfile exports every registered metric in the Prometheus text format,
// for collection by the node exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
