package presenter

import "mortgage-calculator/domain"

const Disclaimer = "(This is an estimate for Principal & Interest only and does not include taxes, insurance, or other fees.)"

// Summary holds the display strings for a successful quote.
type Summary struct {
	MonthlyPayment string `json:"monthly_payment"`
	LoanAmount     string `json:"loan_amount"`
	Term           string `json:"term"`
	Rate           string `json:"rate"`
	Disclaimer     string `json:"disclaimer"`
}

func NewSummary(q domain.LoanQuote) Summary {
	return Summary{
		MonthlyPayment: Currency(q.MonthlyPayment),
		LoanAmount:     Currency(q.Principal),
		Term:           Raw(q.TermYears) + " Years",
		Rate:           Raw(q.AnnualRatePercent) + "%",
		Disclaimer:     Disclaimer,
	}
}

func (s Summary) bindings() map[string]any {
	return map[string]any{
		"monthly_payment": s.MonthlyPayment,
		"loan_amount":     s.LoanAmount,
		"term":            s.Term,
		"rate":            s.Rate,
		"disclaimer":      s.Disclaimer,
	}
}
