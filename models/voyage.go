package models

// Kind is the voyage variant. It decides seat geometry, pricing and refund rules.
type Kind string

const (
	KindStandard Kind = "Standard"
	KindPremium  Kind = "Premium"
	KindMinibus  Kind = "Minibus"
)

// ParseKind maps the INIT_VOYAGE kind keyword to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindStandard, KindPremium, KindMinibus:
		return Kind(s), true
	}
	return "", false
}

// SeatsPerRow returns the number of seats in one row of the given kind.
func SeatsPerRow(k Kind) int {
	switch k {
	case KindStandard:
		return 4
	case KindPremium:
		return 3
	case KindMinibus:
		return 2
	}
	return 0
}

// AisleAfter returns the 1-based column after which the aisle is drawn, or 0 when there is none.
func AisleAfter(k Kind) int {
	switch k {
	case KindStandard:
		return 2
	case KindPremium:
		return 1
	}
	return 0
}

// RowOf returns the 1-based row of a seat number: ceil(seatNo / seatsPerRow).
func RowOf(k Kind, seatNo int) int {
	perRow := SeatsPerRow(k)
	if seatNo <= 0 {
		return seatNo / perRow
	}
	return (seatNo + perRow - 1) / perRow
}

// ColumnOf returns the 1-based column of a seat number, mapping a zero remainder to the last column.
func ColumnOf(k Kind, seatNo int) int {
	perRow := SeatsPerRow(k)
	if col := seatNo % perRow; col != 0 {
		return col
	}
	return perRow
}

// rowLayout is the empty seat layout of one row, left to right.
func rowLayout(k Kind) []Seat {
	switch k {
	case KindStandard:
		return []Seat{SeatRegular, SeatRegular, SeatRegular, SeatRegular}
	case KindPremium:
		return []Seat{SeatPremium, SeatRegular, SeatRegular}
	case KindMinibus:
		return []Seat{SeatRegular, SeatRegular}
	}
	return nil
}

// Seat is the state of one seat slot.
type Seat uint8

const (
	SeatRegular Seat = iota
	SeatRegularSold
	SeatPremium
	SeatPremiumSold
)

func (s Seat) String() string {
	switch s {
	case SeatRegular:
		return "R"
	case SeatRegularSold:
		return "RX"
	case SeatPremium:
		return "P"
	case SeatPremiumSold:
		return "PX"
	}
	return "?"
}

// Sold reports whether the seat is occupied.
func (s Seat) Sold() bool {
	return s == SeatRegularSold || s == SeatPremiumSold
}

// Premium reports whether the seat is a premium slot, sold or not.
func (s Seat) Premium() bool {
	return s == SeatPremium || s == SeatPremiumSold
}

// Sell returns the sold counterpart of an empty seat.
func (s Seat) Sell() Seat {
	if s.Premium() {
		return SeatPremiumSold
	}
	return SeatRegularSold
}

// Release returns the empty counterpart of a sold seat.
func (s Seat) Release() Seat {
	if s.Premium() {
		return SeatPremium
	}
	return SeatRegular
}

// Voyage is one scheduled bus run.
type Voyage struct {
	ID          int     `json:"id"`
	Kind        Kind    `json:"kind"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Rows        int     `json:"rows"`
	BaseFare    float64 `json:"base_fare"`
	// RefundCut is the percentage withheld on refunds (Standard, Premium).
	RefundCut int `json:"refund_cut"`
	// PremiumFee is the markup percentage for premium seats (Premium only).
	PremiumFee int      `json:"premium_fee"`
	Revenue    float64  `json:"revenue"`
	Seats      [][]Seat `json:"-"`
}

// NewVoyage builds a voyage with an initialized, empty seat grid.
func NewVoyage(id int, kind Kind, origin, destination string, rows int, fare float64) *Voyage {
	v := &Voyage{
		ID:          id,
		Kind:        kind,
		Origin:      origin,
		Destination: destination,
		Rows:        rows,
		BaseFare:    fare,
	}
	v.InitSeatPlan()
	return v
}

// InitSeatPlan resets every row to the empty layout of the voyage kind.
func (v *Voyage) InitSeatPlan() {
	v.Seats = make([][]Seat, v.Rows)
	for i := range v.Seats {
		v.Seats[i] = rowLayout(v.Kind)
	}
}

// Route returns "origin-destination".
func (v *Voyage) Route() string {
	return v.Origin + "-" + v.Destination
}

// SeatCount is rows × seats per row.
func (v *Voyage) SeatCount() int {
	return v.Rows * SeatsPerRow(v.Kind)
}

// Seat returns the state of a 1-based seat number. The number must be in range.
func (v *Voyage) Seat(seatNo int) Seat {
	return v.Seats[RowOf(v.Kind, seatNo)-1][ColumnOf(v.Kind, seatNo)-1]
}

func (v *Voyage) setSeat(seatNo int, s Seat) {
	v.Seats[RowOf(v.Kind, seatNo)-1][ColumnOf(v.Kind, seatNo)-1] = s
}

// Refundable reports whether tickets of this voyage can be refunded.
func (v *Voyage) Refundable() bool {
	return v.Kind != KindMinibus
}

// PremiumFare is base × ((100 + premium fee) / 100).
func (v *Voyage) PremiumFare() float64 {
	return v.BaseFare * (float64(100+v.PremiumFee) / 100)
}

// FareFor returns the full price of a seat of the given symbol.
func (v *Voyage) FareFor(s Seat) float64 {
	if s.Premium() && v.Kind == KindPremium {
		return v.PremiumFare()
	}
	return v.BaseFare
}

// RefundFor returns what a refund of a seat of the given symbol pays back:
// fare × (100 - refund cut) / 100.
func (v *Voyage) RefundFor(s Seat) float64 {
	return v.FareFor(s) * float64(100-v.RefundCut) / 100
}

// SellSeats marks every seat as sold and adds the summed fares to the revenue
// in one step. Callers validate first.
func (v *Voyage) SellSeats(seats []int) float64 {
	earned := 0.0
	for _, n := range seats {
		current := v.Seat(n)
		earned += v.FareFor(current)
		v.setSeat(n, current.Sell())
	}
	v.Revenue += earned
	return earned
}

// RefundSeats empties every seat and subtracts the summed refunds from the
// revenue in one step. Callers validate first.
func (v *Voyage) RefundSeats(seats []int) float64 {
	refunded := 0.0
	for _, n := range seats {
		current := v.Seat(n)
		refunded += v.RefundFor(current)
		v.setSeat(n, current.Release())
	}
	v.Revenue -= refunded
	return refunded
}

// OccupiedFare sums the full fare of every sold seat in row order.
func (v *Voyage) OccupiedFare() float64 {
	total := 0.0
	for _, row := range v.Seats {
		for _, s := range row {
			if s.Sold() {
				total += v.FareFor(s)
			}
		}
	}
	return total
}

// SoldCount returns the number of occupied seats.
func (v *Voyage) SoldCount() int {
	n := 0
	for _, row := range v.Seats {
		for _, s := range row {
			if s.Sold() {
				n++
			}
		}
	}
	return n
}
