package models

import (
	"encoding/json"
	"math"
	"testing"

	"voyage-booking/internal/status"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatGeometry(t *testing.T) {
	tests := []struct {
		kind   Kind
		seatNo int
		row    int
		column int
	}{
		{KindStandard, 1, 1, 1},
		{KindStandard, 4, 1, 4},
		{KindStandard, 5, 2, 1},
		{KindStandard, 8, 2, 4},
		{KindPremium, 1, 1, 1},
		{KindPremium, 3, 1, 3},
		{KindPremium, 4, 2, 1},
		{KindPremium, 9, 3, 3},
		{KindMinibus, 1, 1, 1},
		{KindMinibus, 2, 1, 2},
		{KindMinibus, 3, 2, 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.row, RowOf(tt.kind, tt.seatNo), "row of seat %d", tt.seatNo)
			assert.Equal(t, tt.column, ColumnOf(tt.kind, tt.seatNo), "column of seat %d", tt.seatNo)
		})
	}
}

func TestNewVoyage_SeatPlan(t *testing.T) {
	tests := []struct {
		kind    Kind
		rows    int
		count   int
		layout  []Seat
		aisleAt int
	}{
		{KindStandard, 2, 8, []Seat{SeatRegular, SeatRegular, SeatRegular, SeatRegular}, 2},
		{KindPremium, 3, 9, []Seat{SeatPremium, SeatRegular, SeatRegular}, 1},
		{KindMinibus, 4, 8, []Seat{SeatRegular, SeatRegular}, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			v := NewVoyage(1, tt.kind, "A", "B", tt.rows, 100)

			assert.Equal(t, tt.count, v.SeatCount())
			assert.Equal(t, tt.rows*SeatsPerRow(tt.kind), v.SeatCount())
			assert.Equal(t, tt.aisleAt, AisleAfter(tt.kind))
			require.Len(t, v.Seats, tt.rows)
			for _, row := range v.Seats {
				assert.Equal(t, tt.layout, row)
			}
			assert.Zero(t, v.Revenue)
			assert.Zero(t, v.SoldCount())
		})
	}
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"Standard", "Premium", "Minibus"} {
		k, ok := ParseKind(s)
		assert.True(t, ok)
		assert.Equal(t, Kind(s), k)
	}

	for _, s := range []string{"standard", "Standart", "", "Bus"} {
		_, ok := ParseKind(s)
		assert.False(t, ok, s)
	}
}

func TestSeat_Transitions(t *testing.T) {
	assert.Equal(t, SeatRegularSold, SeatRegular.Sell())
	assert.Equal(t, SeatPremiumSold, SeatPremium.Sell())
	assert.Equal(t, SeatRegular, SeatRegularSold.Release())
	assert.Equal(t, SeatPremium, SeatPremiumSold.Release())

	assert.Equal(t, "R", SeatRegular.String())
	assert.Equal(t, "RX", SeatRegularSold.String())
	assert.Equal(t, "P", SeatPremium.String())
	assert.Equal(t, "PX", SeatPremiumSold.String())
}

func TestVoyage_Fares(t *testing.T) {
	v := NewVoyage(7, KindPremium, "Ankara", "Izmir", 2, 200)
	v.RefundCut = 25
	v.PremiumFee = 50

	assert.Equal(t, "300.00", FormatMoney(v.PremiumFare()))
	assert.Equal(t, "200.00", FormatMoney(v.FareFor(SeatRegular)))
	assert.Equal(t, "300.00", FormatMoney(v.FareFor(SeatPremiumSold)))
	assert.Equal(t, "150.00", FormatMoney(v.RefundFor(SeatRegularSold)))
	assert.Equal(t, "225.00", FormatMoney(v.RefundFor(SeatPremiumSold)))
	assert.Equal(t, "Ankara-Izmir", v.Route())
}

func TestVoyage_PremiumFareRoundsBinaryValue(t *testing.T) {
	v := NewVoyage(1, KindPremium, "A", "B", 1, 10.07)
	v.PremiumFee = 50

	// 10.07 * 1.5 is stored slightly above 15.105
	assert.Equal(t, "15.11", FormatMoney(v.PremiumFare()))
	assert.Equal(t, "15.11", FormatMoney(v.SellSeats([]int{1})))
}

func TestVoyage_SellRefundRoundTrip(t *testing.T) {
	v := NewVoyage(1, KindPremium, "A", "B", 2, 100)
	v.RefundCut = 20
	v.PremiumFee = 50

	// seat 1 premium, seat 2 regular
	assert.Equal(t, "250.00", FormatMoney(v.SellSeats([]int{1, 2})))
	assert.Equal(t, SeatPremiumSold, v.Seat(1))
	assert.Equal(t, SeatRegularSold, v.Seat(2))
	assert.Equal(t, "250.00", FormatMoney(v.Revenue))
	assert.Equal(t, 2, v.SoldCount())

	assert.Equal(t, "120.00", FormatMoney(v.RefundSeats([]int{1})))
	assert.Equal(t, "80.00", FormatMoney(v.RefundSeats([]int{2})))
	assert.Equal(t, SeatPremium, v.Seat(1))
	assert.Equal(t, SeatRegular, v.Seat(2))
	// 250 - 200 = 20% of the total fare
	assert.Equal(t, "50.00", FormatMoney(v.Revenue))
}

func TestVoyage_OccupiedFareIgnoresRefundCut(t *testing.T) {
	v := NewVoyage(1, KindStandard, "A", "B", 2, 100)
	v.RefundCut = 90
	v.SellSeats([]int{3, 8})

	assert.Equal(t, "200.00", FormatMoney(v.OccupiedFare()))
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{100, "100.00"},
		{50.5, "50.50"},
		{0.125, "0.12"},
		{0.375, "0.38"},
		{1.005, "1.00"},
		{-20, "-20.00"},
		{-0.001, "-0.00"},
		{1234567.891, "1234567.89"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMoney(tt.in), "%v", tt.in)
	}
}

func TestCents(t *testing.T) {
	fare := 10.07
	assert.Equal(t, "15.11", Cents(fare*1.5).String())
	assert.True(t, Cents(math.Inf(1)).IsZero())
	assert.True(t, Cents(math.NaN()).IsZero())
}

func TestTruncInt32(t *testing.T) {
	assert.Equal(t, -5, TruncInt32(-5.9))
	assert.Equal(t, 0, TruncInt32(-0.5))
	assert.Equal(t, math.MinInt32, TruncInt32(-1e20))
	assert.Equal(t, math.MaxInt32, TruncInt32(1e20))
}

func TestRegistry_KeepsAscendingOrder(t *testing.T) {
	r := NewRegistry()
	for _, id := range []int{5, 1, 9, 3, 7} {
		require.NoError(t, r.Insert(NewVoyage(id, KindMinibus, "A", "B", 1, 1)))
	}

	all := r.All()
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}

	err := r.Insert(NewVoyage(3, KindStandard, "C", "D", 1, 1))
	assert.ErrorIs(t, err, status.ErrVoyageExists)
	assert.Equal(t, 5, r.Len())

	require.NoError(t, r.Remove(3))
	assert.False(t, r.Exists(3))
	assert.ErrorIs(t, r.Remove(3), status.ErrVoyageNotFound)

	_, err = r.Find(42)
	assert.ErrorIs(t, err, status.ErrVoyageNotFound)

	v, err := r.Find(9)
	require.NoError(t, err)
	assert.Equal(t, 9, v.ID)
}

func TestVoyageEvent_JSON(t *testing.T) {
	ev := VoyageEvent{
		Type:     EventTicketsSold,
		VoyageID: 3,
		Kind:     KindStandard,
		Route:    "A-B",
		Seats:    []int{1, 2},
		Amount:   decimal.RequireFromString("200"),
		Revenue:  decimal.RequireFromString("200"),
	}

	data, err := json.Marshal(ev)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "tickets_sold", fields["type"])
	assert.Equal(t, "A-B", fields["route"])
	assert.Equal(t, "200", fields["amount"])
	assert.Equal(t, []any{float64(1), float64(2)}, fields["seats"])
}
