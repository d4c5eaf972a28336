package service

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"mortgage-calculator/domain"
	"mortgage-calculator/metrics"
)

// parseField reads one raw input. Anything that is not a finite number is
// rejected.
func parseField(v domain.FieldValue) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Compute validates the inputs and returns the monthly P&I quote. The
// first failing rule wins; the returned error is always a
// domain.ValidationError.
func Compute(inputs domain.LoanInputs) (domain.LoanQuote, error) {
	price, ok1 := parseField(inputs.PurchasePrice)
	down, ok2 := parseField(inputs.DownPayment)
	rate, ok3 := parseField(inputs.AnnualRatePercent)
	years, ok4 := parseField(inputs.TermYears)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return domain.LoanQuote{}, domain.ErrNonNumericInput
	}

	if price <= 0 {
		return domain.LoanQuote{}, domain.ErrNonPositivePrice
	}
	if down < 0 {
		return domain.LoanQuote{}, domain.ErrNegativeDownPayment
	}
	if years <= 0 {
		return domain.LoanQuote{}, domain.ErrNonPositiveTerm
	}
	if down >= price {
		return domain.LoanQuote{}, domain.ErrDownPaymentTooLarge
	}
	if rate < 0 {
		return domain.LoanQuote{}, domain.ErrNegativeRate
	}

	months := math.Round(years * MonthsPerYear)
	if months < 1 {
		return domain.LoanQuote{}, domain.ErrNonPositiveTerm
	}
	// the payment count has to fit in an int
	if months >= math.MaxInt {
		return domain.LoanQuote{}, domain.ErrNonNumericInput
	}

	principal := price - down
	monthlyRate := (rate / 100) / MonthsPerYear
	n := int(months)

	var payment float64
	if monthlyRate == 0 {
		payment = principal / float64(n)
	} else {
		// (1+i)^n - 1 without the cancellation that 1+i suffers for tiny i
		denom := math.Expm1(float64(n) * math.Log1p(monthlyRate))
		compoundFactor := denom + 1
		switch {
		case denom == 0:
			payment = principal / float64(n)
		case math.IsInf(denom, 1):
			payment = principal * monthlyRate
		default:
			payment = principal * (monthlyRate * compoundFactor) / denom
		}
	}

	return domain.LoanQuote{
		Principal:         principal,
		MonthlyRate:       monthlyRate,
		TotalPayments:     n,
		MonthlyPayment:    payment,
		AnnualRatePercent: rate,
		TermYears:         years,
	}, nil
}

type MortgageService struct {
	log *zap.Logger
}

// NewMortgageService creates a new MortgageService.
func NewMortgageService(log *zap.Logger) *MortgageService {
	if log == nil {
		log = zap.NewNop()
	}
	return &MortgageService{log: log}
}

// Calculate runs Compute and records the outcome.
func (s *MortgageService) Calculate(
	ctx context.Context,
	inputs domain.LoanInputs,
) (domain.LoanQuote, error) {

	quote, err := Compute(inputs)
	if err != nil {
		var ve domain.ValidationError
		kind := "unknown"
		if errors.As(err, &ve) {
			kind = string(ve.Kind)
		}
		metrics.QuotesComputed.WithLabelValues(strings.ToLower(kind)).Inc()
		s.log.Debug("mortgage quote rejected", zap.String("kind", kind))
		return domain.LoanQuote{}, err
	}

	metrics.QuotesComputed.WithLabelValues("success").Inc()
	s.log.Debug("mortgage quote computed",
		zap.Float64("principal", quote.Principal),
		zap.Int("total_payments", quote.TotalPayments),
		zap.Float64("monthly_payment", quote.MonthlyPayment),
	)
	return quote, nil
}
