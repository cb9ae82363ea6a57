package services

import (
	"math"
	"strconv"
	"strings"

	"voyage-booking/internal/status"
	"voyage-booking/models"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

// Command keywords.
const (
	CmdInitVoyage   = "INIT_VOYAGE"
	CmdSellTicket   = "SELL_TICKET"
	CmdRefundTicket = "REFUND_TICKET"
	CmdCancelVoyage = "CANCEL_VOYAGE"
	CmdPrintVoyage  = "PRINT_VOYAGE"
	CmdZReport      = "Z_REPORT"
)

// initArity is the INIT_VOYAGE token count per kind, keyword included.
var initArity = map[models.Kind]int{
	models.KindStandard: 8,
	models.KindPremium:  9,
	models.KindMinibus:  7,
}

// VoyageService validates commands against the registry and applies them.
// Every method either mutates nothing and returns an error, or applies the whole command.
type VoyageService struct {
	registry *models.Registry
}

func NewVoyageService(registry *models.Registry) *VoyageService {
	return &VoyageService{registry: registry}
}

// Voyages returns the active voyages in ascending id order.
func (s *VoyageService) Voyages() []*models.Voyage {
	return s.registry.All()
}

// voyageDraft carries the INIT_VOYAGE fields through the validation steps.
type voyageDraft struct {
	tokens []string
	kind   models.Kind

	id, rows              int
	fare                  float64
	refundCut, premiumFee int

	idParsed     bool
	fieldsParsed bool
	// kindFailed is set once a positivity, refund cut or premium fee check fails.
	kindFailed bool

	errs error
}

func (d *voyageDraft) fail(err error) {
	d.errs = multierr.Append(d.errs, err)
}

// parseFields reads id, row count and fare. Each field is only read when the previous one parsed.
func (d *voyageDraft) parseFields() {
	var ok bool
	if d.id, ok = parseInt(d.tokens[2]); !ok {
		d.fail(status.VoyageIDFormat(d.tokens[2]))
		return
	}
	d.idParsed = true
	if d.rows, ok = parseInt(d.tokens[5]); !ok {
		d.fail(status.RowsFormat(d.tokens[5]))
		return
	}
	fare, err := decimal.NewFromString(d.tokens[6])
	if err != nil || math.IsInf(fare.InexactFloat64(), 0) {
		d.fail(status.PriceFormat(d.tokens[6]))
		return
	}
	d.fare = fare.InexactFloat64()
	d.fieldsParsed = true
}

func (d *voyageDraft) checkPositive() {
	if !d.fieldsParsed {
		return
	}
	switch {
	case d.id <= 0:
		d.fail(status.VoyageIDRange(d.id))
	case d.rows <= 0:
		d.fail(status.RowsRange(d.rows))
	case d.fare <= 0:
		d.fail(status.PriceRange(models.TruncInt32(d.fare)))
	default:
		return
	}
	d.kindFailed = true
}

func (d *voyageDraft) parseRefundCut() {
	if !d.fieldsParsed {
		return
	}
	cut, ok := parseInt(d.tokens[7])
	if !ok {
		d.fail(status.RefundCutFormat(d.tokens[7]))
		d.kindFailed = true
		return
	}
	d.refundCut = cut
	if !d.kindFailed && (cut < 0 || cut > 100) {
		// Standard voyages echo the token as written, Premium the parsed value.
		shown := strconv.Itoa(cut)
		if d.kind == models.KindStandard {
			shown = d.tokens[7]
		}
		d.fail(status.RefundCutRange(shown))
		d.kindFailed = true
	}
}

func (d *voyageDraft) parsePremiumFee() {
	if !d.fieldsParsed {
		return
	}
	fee, ok := parseInt(d.tokens[8])
	if !ok {
		d.fail(status.PremiumFeeFormat(d.tokens[8]))
		d.kindFailed = true
		return
	}
	d.premiumFee = fee
	if !d.kindFailed && fee < 0 {
		d.fail(status.PremiumFeeRange(fee))
		d.kindFailed = true
	}
}

func (d *voyageDraft) steps() []func() {
	steps := []func(){d.parseFields, d.checkPositive}
	if d.kind != models.KindMinibus {
		steps = append(steps, d.parseRefundCut)
	}
	if d.kind == models.KindPremium {
		steps = append(steps, d.parsePremiumFee)
	}
	return steps
}

// InitVoyage validates an INIT_VOYAGE line and registers the new voyage.
// The returned error may combine several command errors; use multierr.Errors to list them.
func (s *VoyageService) InitVoyage(tokens []string) (*models.Voyage, error) {
	if len(tokens) < 2 {
		return nil, status.Usage(CmdInitVoyage)
	}
	kind, ok := models.ParseKind(tokens[1])
	if !ok || len(tokens) != initArity[kind] {
		return nil, status.Usage(CmdInitVoyage)
	}

	d := &voyageDraft{tokens: tokens, kind: kind}
	for _, step := range d.steps() {
		step()
	}
	if d.idParsed && s.registry.Exists(d.id) {
		d.fail(status.VoyageExists(d.id))
	}
	if d.errs != nil {
		return nil, d.errs
	}

	v := models.NewVoyage(d.id, kind, tokens[3], tokens[4], d.rows, d.fare)
	v.RefundCut = d.refundCut
	v.PremiumFee = d.premiumFee
	if err := s.registry.Insert(v); err != nil {
		return nil, status.VoyageExists(d.id)
	}
	return v, nil
}

// SellTicket sells every requested seat or none of them.
func (s *VoyageService) SellTicket(tokens []string) (*models.Ticket, error) {
	if len(tokens) != 3 {
		return nil, status.Usage(CmdSellTicket)
	}
	v, err := s.lookup(tokens[1])
	if err != nil {
		return nil, err
	}
	seats, err := parseSeats(tokens[2])
	if err != nil {
		return nil, err
	}
	if n, ok := firstDuplicate(seats); ok {
		return nil, status.DuplicateSeat(n, "sold")
	}
	for _, n := range seats {
		if err := checkSeatNumber(v, n); err != nil {
			return nil, err
		}
		if v.Seat(n).Sold() {
			return nil, status.SeatsAlreadySold()
		}
	}

	return &models.Ticket{
		Voyage:    v,
		Seats:     seats,
		SeatLabel: strings.ReplaceAll(tokens[2], "_", "-"),
		Amount:    v.SellSeats(seats),
	}, nil
}

// RefundTicket refunds every requested seat or none of them.
func (s *VoyageService) RefundTicket(tokens []string) (*models.Ticket, error) {
	if len(tokens) != 3 {
		return nil, status.Usage(CmdRefundTicket)
	}
	v, err := s.lookup(tokens[1])
	if err != nil {
		return nil, err
	}
	seats, err := parseSeats(tokens[2])
	if err != nil {
		return nil, err
	}
	if n, ok := firstDuplicate(seats); ok {
		return nil, status.DuplicateSeat(n, "refund")
	}
	if !v.Refundable() {
		return nil, status.NotRefundable()
	}
	for _, n := range seats {
		if err := checkSeatNumber(v, n); err != nil {
			return nil, err
		}
		if !v.Seat(n).Sold() {
			return nil, status.SeatsAlreadyEmpty()
		}
	}

	return &models.Ticket{
		Voyage:    v,
		Seats:     seats,
		SeatLabel: strings.ReplaceAll(tokens[2], "_", "-"),
		Amount:    v.RefundSeats(seats),
	}, nil
}

// CancelVoyage claws back the full fare of every sold seat and removes the voyage.
func (s *VoyageService) CancelVoyage(tokens []string) (*models.Cancellation, error) {
	if len(tokens) != 2 {
		return nil, status.Usage(CmdCancelVoyage)
	}
	id, ok := parseInt(tokens[1])
	if !ok {
		return nil, status.VoyageIDFormat(tokens[1])
	}
	if id < 0 {
		return nil, status.VoyageIDRange(id)
	}
	v, err := s.registry.Find(id)
	if err != nil {
		return nil, status.NoVoyage(strconv.Itoa(id))
	}

	clawback := v.OccupiedFare()
	v.Revenue -= clawback
	if err := s.registry.Remove(id); err != nil {
		return nil, status.NoVoyage(strconv.Itoa(id))
	}
	return &models.Cancellation{Voyage: v, Clawback: clawback}, nil
}

// PrintVoyage resolves the voyage a PRINT_VOYAGE line refers to.
func (s *VoyageService) PrintVoyage(tokens []string) (*models.Voyage, error) {
	if len(tokens) != 2 {
		return nil, status.Usage(CmdPrintVoyage)
	}
	id, ok := parseInt(tokens[1])
	if !ok {
		return nil, status.VoyageIDFormat(tokens[1])
	}
	if id <= 0 {
		return nil, status.VoyageIDRange(id)
	}
	v, err := s.registry.Find(id)
	if err != nil {
		return nil, status.NoVoyage(strconv.Itoa(id))
	}
	return v, nil
}

// ZReport returns every active voyage for the end-of-day report.
func (s *VoyageService) ZReport(tokens []string) ([]*models.Voyage, error) {
	if len(tokens) != 1 {
		return nil, status.Usage(CmdZReport)
	}
	return s.registry.All(), nil
}

func (s *VoyageService) lookup(token string) (*models.Voyage, error) {
	id, ok := parseInt(token)
	if !ok {
		return nil, status.NoVoyage(token)
	}
	v, err := s.registry.Find(id)
	if err != nil {
		return nil, status.NoVoyage(strconv.Itoa(id))
	}
	return v, nil
}

func checkSeatNumber(v *models.Voyage, n int) error {
	if n < 1 {
		return status.SeatRange(n)
	}
	if n > v.SeatCount() {
		return status.NoSuchSeat()
	}
	return nil
}

// parseSeats reads a "_"-joined seat list. Every malformed token is reported;
// once one is found the remaining well-formed tokens are no longer collected.
func parseSeats(token string) ([]int, error) {
	var (
		seats []int
		errs  error
	)
	for _, part := range splitSeats(token) {
		n, ok := parseInt(part)
		if !ok {
			errs = multierr.Append(errs, status.SeatFormat(part))
			continue
		}
		if errs == nil {
			seats = append(seats, n)
		}
	}
	return seats, errs
}

// splitSeats splits on "_" and drops trailing empty segments.
func splitSeats(token string) []string {
	parts := strings.Split(token, "_")
	for len(parts) > 0 && parts[len(parts)-1] == "" && token != "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

func firstDuplicate(seats []int) (int, bool) {
	for i, a := range seats {
		for j, b := range seats {
			if i != j && a == b {
				return a, true
			}
		}
	}
	return 0, false
}

// parseInt accepts optionally signed 32-bit decimal integers.
func parseInt(s string) (int, bool) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return int(n), true
}
