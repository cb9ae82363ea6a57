package report

import (
	"fmt"
	"strings"

	"voyage-booking/models"
)

const (
	Separator   = "----------------"
	noVoyages   = "No Voyages Available!"
	zReportHead = "Z Report:"
)

// SeatRow renders one grid row: "*" for empty, "X" for sold, with the aisle marker of the kind.
func SeatRow(kind models.Kind, row []models.Seat) string {
	aisle := models.AisleAfter(kind)

	var b strings.Builder
	for i, seat := range row {
		if seat.Sold() {
			b.WriteString("X")
		} else {
			b.WriteString("*")
		}
		if i < len(row)-1 {
			b.WriteString(" ")
		}
		if i+1 == aisle {
			b.WriteString("| ")
		}
	}
	return b.String()
}

// SeatMap renders every row of the voyage.
func SeatMap(v *models.Voyage) []string {
	lines := make([]string, 0, len(v.Seats))
	for _, row := range v.Seats {
		lines = append(lines, SeatRow(v.Kind, row))
	}
	return lines
}

// VoyageBlock is the PRINT_VOYAGE rendering: id, route, seat map and revenue.
func VoyageBlock(v *models.Voyage) []string {
	lines := []string{
		fmt.Sprintf("Voyage %d", v.ID),
		v.Route(),
	}
	lines = append(lines, SeatMap(v)...)
	return append(lines, "Revenue: "+models.FormatMoney(v.Revenue))
}

// ZReport renders the end-of-day report for the given voyages.
func ZReport(voyages []*models.Voyage) []string {
	lines := []string{zReportHead, Separator}
	if len(voyages) == 0 {
		return append(lines, noVoyages, Separator)
	}
	for _, v := range voyages {
		lines = append(lines, VoyageBlock(v)...)
		lines = append(lines, Separator)
	}
	return lines
}

// Initialized is the confirmation line of a successful INIT_VOYAGE.
// refundCut is the refund cut token as written in the command; Minibus ignores it.
func Initialized(v *models.Voyage, refundCut string) string {
	switch v.Kind {
	case models.KindStandard:
		return fmt.Sprintf("Voyage %d was initialized as a standard (2+2) voyage from %s to %s with %s TL priced %d regular seats. Note that refunds will be %s%% less than the paid amount.",
			v.ID, v.Origin, v.Destination, models.FormatMoney(v.BaseFare), v.SeatCount(), refundCut)
	case models.KindPremium:
		return fmt.Sprintf("Voyage %d was initialized as a premium (1+2) voyage from %s to %s with %s TL priced %d regular seats and %s TL priced %d premium seats. Note that refunds will be %s%% less than the paid amount.",
			v.ID, v.Origin, v.Destination, models.FormatMoney(v.BaseFare), v.Rows*2, models.FormatMoney(v.PremiumFare()), v.Rows, refundCut)
	default:
		return fmt.Sprintf("Voyage %d was initialized as a minibus (2) voyage from %s to %s with %s TL priced %d regular seats. Note that minibus tickets are not refundable.",
			v.ID, v.Origin, v.Destination, models.FormatMoney(v.BaseFare), v.SeatCount())
	}
}

// Sold is the confirmation line of a successful SELL_TICKET.
func Sold(t *models.Ticket) string {
	return fmt.Sprintf("Seat %s of the Voyage %d from %s to %s was successfully sold for %s TL.",
		t.SeatLabel, t.Voyage.ID, t.Voyage.Origin, t.Voyage.Destination, models.FormatMoney(t.Amount))
}

// Refunded is the confirmation line of a successful REFUND_TICKET.
func Refunded(t *models.Ticket) string {
	return fmt.Sprintf("Seat %s of the Voyage %d from %s to %s was successfully refunded for %s TL.",
		t.SeatLabel, t.Voyage.ID, t.Voyage.Origin, t.Voyage.Destination, models.FormatMoney(t.Amount))
}

// Cancelled renders the CANCEL_VOYAGE narrative followed by the voyage block.
func Cancelled(c *models.Cancellation) []string {
	lines := []string{
		fmt.Sprintf("Voyage %d was successfully cancelled!", c.Voyage.ID),
		"Voyage details can be found below:",
	}
	return append(lines, VoyageBlock(c.Voyage)...)
}

// Command is the echo line written before each processed command.
func Command(line string) string {
	return "COMMAND: " + line
}

// Error is the transcript rendering of a command error.
func Error(err error) string {
	return "ERROR: " + err.Error()
}
