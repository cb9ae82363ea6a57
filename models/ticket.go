package models

// Ticket is the outcome of a successful sale or refund on one voyage.
type Ticket struct {
	Voyage *Voyage
	Seats  []int
	// SeatLabel is the seat list as requested, joined with "-".
	SeatLabel string
	Amount    float64
}

// Cancellation is the outcome of a successful CANCEL_VOYAGE.
type Cancellation struct {
	Voyage *Voyage
	// Clawback is the full fare of every seat that was sold when the voyage was cancelled.
	Clawback float64
}
