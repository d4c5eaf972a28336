package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FieldValue is the raw text of one calculator input, exactly as it was
// entered. JSON accepts either a number or a string.
type FieldValue string

func (v *FieldValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FieldValue(s)
		return nil
	}
	*v = FieldValue(strings.TrimSpace(string(data)))
	return nil
}

type LoanInputs struct {
	PurchasePrice     FieldValue `json:"purchase_price"`
	DownPayment       FieldValue `json:"down_payment"`
	AnnualRatePercent FieldValue `json:"rate"`
	TermYears         FieldValue `json:"term"`
}

type LoanQuote struct {
	Principal      float64 `json:"principal"`
	MonthlyRate    float64 `json:"monthly_rate"`
	TotalPayments  int     `json:"total_payments"`
	MonthlyPayment float64 `json:"monthly_payment"`

	AnnualRatePercent float64 `json:"annual_rate_percent"`
	TermYears         float64 `json:"term_years"`
}
