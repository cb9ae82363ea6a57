package status

import (
	"errors"
	"fmt"
)

var (
	ErrVoyageExists   = errors.New("voyage: voyage already exists")
	ErrVoyageNotFound = errors.New("voyage: voyage not found")
)

// Category groups command errors for metrics and tests.
type Category string

const (
	CategoryUsage     Category = "usage"
	CategoryFormat    Category = "format"
	CategoryRange     Category = "range"
	CategoryReference Category = "reference"
	CategoryBusiness  Category = "business"
	CategoryCommand   Category = "unknown_command"
)

// Error is a recoverable command error. Message is the transcript text after "ERROR: ".
type Error struct {
	Category Category
	Message  string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(c Category, format string, args ...any) *Error {
	return &Error{Category: c, Message: fmt.Sprintf(format, args...)}
}

// CategoryOf returns the category of a command error, or "" for anything else.
func CategoryOf(err error) Category {
	var e *Error
	if errors.As(err, &e) {
		return e.Category
	}
	return ""
}

func Usage(command string) error {
	return newError(CategoryUsage, "Erroneous usage of %q command!", command)
}

func UnknownCommand(keyword string) error {
	return newError(CategoryCommand, "There is no command namely %s!", keyword)
}

const (
	idRule         = "ID of a voyage must be a positive integer!"
	rowsRule       = "number of seat rows of a voyage must be a positive integer!"
	priceRule      = "price must be a positive number!"
	refundCutRule  = "refund cut must be an integer that is in range of [0, 100]!"
	premiumFeeRule = "premium fee must be a non-negative integer!"
	seatRule       = "seat number must be a positive integer!"
)

// VoyageIDFormat reports an id token that is not an integer.
func VoyageIDFormat(token string) error {
	return newError(CategoryFormat, "%s is not a positive integer, %s", token, idRule)
}

// VoyageIDRange reports an id that parsed but is not positive.
func VoyageIDRange(id int) error {
	return newError(CategoryRange, "%d is not a positive integer, %s", id, idRule)
}

func RowsFormat(token string) error {
	return newError(CategoryFormat, "%s is not a positive integer, %s", token, rowsRule)
}

func RowsRange(rows int) error {
	return newError(CategoryRange, "%d is not a positive integer, %s", rows, rowsRule)
}

func PriceFormat(token string) error {
	return newError(CategoryFormat, "%s is not a positive number, %s", token, priceRule)
}

// PriceRange prints the integer part of the rejected price.
func PriceRange(whole int) error {
	return newError(CategoryRange, "%d is not a positive number, %s", whole, priceRule)
}

func RefundCutFormat(token string) error {
	return newError(CategoryFormat, "%s is not an integer that is in range of [0, 100], %s", token, refundCutRule)
}

// RefundCutRange reports a refund cut outside [0, 100] as shown to the user.
func RefundCutRange(cut string) error {
	return newError(CategoryRange, "%s is not an integer that is in range of [0, 100], %s", cut, refundCutRule)
}

func PremiumFeeFormat(token string) error {
	return newError(CategoryFormat, "%s is not a non-negative integer, %s", token, premiumFeeRule)
}

func PremiumFeeRange(fee int) error {
	return newError(CategoryRange, "%d is not a non-negative integer, %s", fee, premiumFeeRule)
}

func VoyageExists(id int) error {
	return newError(CategoryBusiness, "There is already a voyage with ID of %d!", id)
}

// NoVoyage reports an unknown voyage; ref is the id as the user wrote it or as parsed.
func NoVoyage(ref string) error {
	return newError(CategoryReference, "There is no voyage with ID of %s!", ref)
}

func SeatFormat(token string) error {
	return newError(CategoryFormat, "%s is not a positive integer, %s", token, seatRule)
}

func SeatRange(seatNo int) error {
	return newError(CategoryRange, "%d is not a positive integer, %s", seatNo, seatRule)
}

func NoSuchSeat() error {
	return newError(CategoryRange, "There is no such a seat!")
}

// DuplicateSeat reports a seat requested twice; verb is "sold" or "refund".
func DuplicateSeat(seatNo int, verb string) error {
	return newError(CategoryReference, "Seat %d cannot be %s more than once.", seatNo, verb)
}

func SeatsAlreadySold() error {
	return newError(CategoryReference, "One or more seats already sold!")
}

func SeatsAlreadyEmpty() error {
	return newError(CategoryReference, "One or more seats are already empty!")
}

func NotRefundable() error {
	return newError(CategoryBusiness, "Minibus tickets are not refundable!")
}
