package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventType string

const (
	EventVoyageInitialized EventType = "voyage_initialized"
	EventTicketsSold       EventType = "tickets_sold"
	EventTicketsRefunded   EventType = "tickets_refunded"
	EventVoyageCancelled   EventType = "voyage_cancelled"
)

// VoyageEvent is published after a command changes a voyage.
type VoyageEvent struct {
	Type      EventType       `json:"type"`
	SessionID string          `json:"session_id"`
	VoyageID  int             `json:"voyage_id"`
	Kind      Kind            `json:"kind"`
	Route     string          `json:"route"`
	Seats     []int           `json:"seats,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Revenue   decimal.Decimal `json:"revenue"`
	At        time.Time       `json:"at"`
}
