package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"mortgage-calculator/config"
	"mortgage-calculator/domain"
	"mortgage-calculator/presenter"
	"mortgage-calculator/service"
)

const maxBodyBytes = 1 << 20

type quoteResponse struct {
	Quote   domain.LoanQuote  `json:"quote"`
	Summary presenter.Summary `json:"summary"`
}

type MortgageHandler struct {
	service *service.MortgageService
	html    *presenter.HTMLRenderer
	pdf     presenter.Renderer
	schema  *requestSchema
	page    config.CalculatorConfig
	log     *zap.Logger
}

func NewMortgageHandler(
	svc *service.MortgageService,
	html *presenter.HTMLRenderer,
	pdf presenter.Renderer,
	page config.CalculatorConfig,
	log *zap.Logger,
) (*MortgageHandler, error) {
	schema, err := compileSchema(quoteRequestSchema)
	if err != nil {
		return nil, err
	}
	return &MortgageHandler{
		service: svc,
		html:    html,
		pdf:     pdf,
		schema:  schema,
		page:    page,
		log:     log,
	}, nil
}

func inputsFromValues(get func(string) string) domain.LoanInputs {
	return domain.LoanInputs{
		PurchasePrice:     domain.FieldValue(get("purchase_price")),
		DownPayment:       domain.FieldValue(get("down_payment")),
		AnnualRatePercent: domain.FieldValue(get("rate")),
		TermYears:         domain.FieldValue(get("term")),
	}
}

func validationKind(err error) (domain.ValidationErrorKind, bool) {
	var ve domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Kind, true
	}
	return "", false
}

// Index renders the calculator page with one eager calculation on the
// configured defaults.
func (h *MortgageHandler) Index(w http.ResponseWriter, r *http.Request) {
	d := h.page.Defaults
	inputs := domain.LoanInputs{
		PurchasePrice:     domain.FieldValue(d.PurchasePrice),
		DownPayment:       domain.FieldValue(d.DownPayment),
		AnnualRatePercent: domain.FieldValue(d.Rate),
		TermYears:         domain.FieldValue(d.Term),
	}

	quote, err := h.service.Calculate(r.Context(), inputs)
	result, rerr := presenter.Fragment(h.html, quote, err)
	if rerr != nil {
		h.renderFailed(w, rerr)
		return
	}

	var buf bytes.Buffer
	if err := h.html.RenderPage(&buf, presenter.PageData{
		Title:       h.page.Title,
		Inputs:      inputs,
		TermOptions: h.page.TermOptions,
		Result:      result,
	}); err != nil {
		h.renderFailed(w, err)
		return
	}
	writeBody(w, http.StatusOK, h.html.ContentType(), &buf)
}

// CalculateFragment handles the page's form post and answers with the
// result panel only.
func (h *MortgageHandler) CalculateFragment(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	status := http.StatusOK

	quote, err := h.service.Calculate(r.Context(), inputsFromValues(r.PostForm.Get))
	if err != nil {
		status = http.StatusUnprocessableEntity
		err = h.html.RenderError(&buf, err.Error())
	} else {
		err = h.html.RenderQuote(&buf, presenter.NewSummary(quote))
	}
	if err != nil {
		h.renderFailed(w, err)
		return
	}
	writeBody(w, status, h.html.ContentType(), &buf)
}

// CalculateJSON is the API form of the calculator.
func (h *MortgageHandler) CalculateJSON(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "INVALID_BODY")
		return
	}

	violations, err := h.schema.validate(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "INVALID_BODY")
		return
	}
	if len(violations) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "request does not match schema",
			Code:    "SCHEMA_VIOLATION",
			Details: violations,
		})
		return
	}

	var inputs domain.LoanInputs
	if err := json.Unmarshal(body, &inputs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "INVALID_BODY")
		return
	}

	quote, err := h.service.Calculate(r.Context(), inputs)
	if err != nil {
		h.writeValidationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, quoteResponse{
		Quote:   quote,
		Summary: presenter.NewSummary(quote),
	})
}

// QuotePDF renders the summary for the query parameters as a PDF download.
func (h *MortgageHandler) QuotePDF(w http.ResponseWriter, r *http.Request) {
	quote, err := h.service.Calculate(r.Context(), inputsFromValues(r.URL.Query().Get))
	if err != nil {
		h.writeValidationError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := h.pdf.RenderQuote(&buf, presenter.NewSummary(quote)); err != nil {
		h.renderFailed(w, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="loan-summary.pdf"`)
	writeBody(w, http.StatusOK, h.pdf.ContentType(), &buf)
}

func (h *MortgageHandler) writeValidationError(w http.ResponseWriter, err error) {
	kind, ok := validationKind(err)
	if !ok {
		h.renderFailed(w, err)
		return
	}
	writeError(w, http.StatusUnprocessableEntity, kind.Message(), string(kind))
}

func (h *MortgageHandler) renderFailed(w http.ResponseWriter, err error) {
	h.log.Error("render failed", zap.Error(err))
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
