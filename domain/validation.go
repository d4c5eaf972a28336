package domain

type ValidationErrorKind string

const (
	NonNumericInput                 ValidationErrorKind = "NON_NUMERIC_INPUT"
	NonPositivePrice                ValidationErrorKind = "NON_POSITIVE_PRICE"
	NegativeDownPayment             ValidationErrorKind = "NEGATIVE_DOWN_PAYMENT"
	NonPositiveTerm                 ValidationErrorKind = "NON_POSITIVE_TERM"
	DownPaymentExceedsOrEqualsPrice ValidationErrorKind = "DOWN_PAYMENT_EXCEEDS_OR_EQUALS_PRICE"
	NegativeRate                    ValidationErrorKind = "NEGATIVE_RATE"
)

var validationMessages = map[ValidationErrorKind]string{
	NonNumericInput:                 "Please ensure all fields are entered with valid numbers.",
	NonPositivePrice:                "Purchase price must be a positive number.",
	NegativeDownPayment:             "Down payment cannot be negative.",
	NonPositiveTerm:                 "Loan term must be a positive number of years.",
	DownPaymentExceedsOrEqualsPrice: "Down payment must be less than the purchase price to calculate a loan.",
	NegativeRate:                    "Interest rate cannot be negative.",
}

// Message returns the user-facing text for the kind.
func (k ValidationErrorKind) Message() string {
	if msg, ok := validationMessages[k]; ok {
		return msg
	}
	return "Invalid loan details."
}

// ValidationError blocks a quote from being produced. It carries nothing
// beyond its kind, so values compare equal and work with errors.Is.
type ValidationError struct {
	Kind ValidationErrorKind
}

func (e ValidationError) Error() string {
	return e.Kind.Message()
}

var (
	ErrNonNumericInput     = ValidationError{Kind: NonNumericInput}
	ErrNonPositivePrice    = ValidationError{Kind: NonPositivePrice}
	ErrNegativeDownPayment = ValidationError{Kind: NegativeDownPayment}
	ErrNonPositiveTerm     = ValidationError{Kind: NonPositiveTerm}
	ErrDownPaymentTooLarge = ValidationError{Kind: DownPaymentExceedsOrEqualsPrice}
	ErrNegativeRate        = ValidationError{Kind: NegativeRate}
)
