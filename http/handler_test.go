package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"mortgage-calculator/config"
	"mortgage-calculator/domain"
	"mortgage-calculator/presenter"
	"mortgage-calculator/repository"
	"mortgage-calculator/service"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Addr: ":0"},
		RateLimit: config.RateLimitConfig{Capacity: 100, Window: time.Minute},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"*"}},
		Calculator: config.CalculatorConfig{
			Title: "Mortgage Calculator",
			Defaults: config.CalculatorDefault{
				PurchasePrice: "300000",
				DownPayment:   "60000",
				Rate:          "6",
				Term:          "30",
			},
			TermOptions: []string{"15", "20", "30"},
		},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config, limiter Limiter) http.Handler {
	t.Helper()
	log := zaptest.NewLogger(t)
	html, err := presenter.NewHTMLRenderer()
	require.NoError(t, err)

	router, err := NewRouter(Deps{
		Config:   cfg,
		Log:      log,
		Mortgage: service.NewMortgageService(log),
		Contact:  service.NewContactService(log),
		HTML:     html,
		PDF:      presenter.NewPDFRenderer(),
		Limiter:  limiter,
	})
	require.NoError(t, err)
	return router
}

func postForm(t *testing.T, h http.Handler, path string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestIndex_RendersDefaultsWithInitialResult(t *testing.T) {
	h := newTestRouter(t, testConfig(), nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, body, `value="300000"`)
	assert.Contains(t, body, "$1,438.92")
	assert.Contains(t, body, "$240,000.00")
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestIndex_InvalidDefaultsShowErrorPanel(t *testing.T) {
	cfg := testConfig()
	cfg.Calculator.Defaults.DownPayment = "300000"
	h := newTestRouter(t, cfg, nil)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), domain.DownPaymentExceedsOrEqualsPrice.Message())
}

func TestCalculateFragment_OK(t *testing.T) {
	h := newTestRouter(t, testConfig(), nil)

	w := postForm(t, h, "/calculate", url.Values{
		"purchase_price": {"200000"},
		"down_payment":   {"20000"},
		"rate":           {"0"},
		"term":           {"15"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "$1,000.00")
	assert.Contains(t, w.Body.String(), "$180,000.00")
	assert.Contains(t, w.Body.String(), "15 Years")
	assert.Contains(t, w.Body.String(), "0%")
	assert.NotContains(t, w.Body.String(), "<html")
}

func TestCalculateFragment_ValidationError(t *testing.T) {
	h := newTestRouter(t, testConfig(), nil)

	w := postForm(t, h, "/calculate", url.Values{
		"purchase_price": {"abc"},
		"down_payment":   {"20000"},
		"rate":           {"5"},
		"term":           {"15"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), domain.NonNumericInput.Message())
	assert.NotContains(t, w.Body.String(), "Loan Summary")
}

func TestCalculateJSON_OK(t *testing.T) {
	h := newTestRouter(t, testConfig(), nil)

	w := postJSON(t, h, "/api/v1/mortgage/quote",
		`{"purchase_price": 300000, "down_payment": "60000", "rate": 6, "term": "30"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp quoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 240000.0, resp.Quote.Principal)
	assert.Equal(t, 360, resp.Quote.TotalPayments)
	assert.Equal(t, 0.005, resp.Quote.MonthlyRate)
	assert.InDelta(t, 1438.92, resp.Quote.MonthlyPayment, 0.005)
	assert.Equal(t, "$1,438.92", resp.Summary.MonthlyPayment)
	assert.Equal(t, "$240,000.00", resp.Summary.LoanAmount)
	assert.Equal(t, "30 Years", resp.Summary.Term)
	assert.Equal(t, "6%", resp.Summary.Rate)
}

func TestCalculateJSON_ValidationError(t *testing.T) {
	h := newTestRouter(t, testConfig(), nil)

	w := postJSON(t, h, "/api/v1/mortgage/quote",
		`{"purchase_price": 100000, "down_payment": 100000, "rate": 5, "term": 30}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(domain.DownPaymentExceedsOrEqualsPrice), resp.Code)
	assert.Equal(t, domain.DownPaymentExceedsOrEqualsPrice.Message(), resp.Error)
}

func TestCalculateJSON_EmptyStringIsNonNumeric(t *testing.T) {
	h := newTestRouter(t, testConfig(), nil)

	w := postJSON(t, h, "/api/v1/mortgage/quote",
		`{"purchase_price": "", "down_payment": 1, "rate": 5, "term": null}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), string(domain.NonNumericInput))
}

func TestCalculateJSON_MissingFieldIsNonNumeric(t *testing.T) {
	h := newTestRouter(t, testConfig(), nil)

	w := postJSON(t, h, "/api/v1/mortgage/quote",
		`{"purchase_price": 1, "down_payment": 0, "rate": 5}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(domain.NonNumericInput), resp.Code)
}

func TestCalculateJSON_BadRequest(t *testing.T) {
	h := newTestRouter(t, testConfig(), nil)

	cases := map[string]string{
		"invalid json": `{invalid-json}`,
		"wrong type":   `{"purchase_price": [1], "down_payment": 0, "rate": 5, "term": 30}`,
		"extra field":  `{"purchase_price": 1, "down_payment": 0, "rate": 5, "term": 30, "pmi": 1}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := postJSON(t, h, "/api/v1/mortgage/quote", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCalculateJSON_MethodNotAllowed(t *testing.T) {
	h := newTestRouter(t, testConfig(), nil)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/mortgage/quote", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestQuotePDF(t *testing.T) {
	h := newTestRouter(t, testConfig(), nil)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/v1/mortgage/quote.pdf?purchase_price=300000&down_payment=60000&rate=6&term=30", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "loan-summary.pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

func TestQuotePDF_ValidationError(t *testing.T) {
	h := newTestRouter(t, testConfig(), nil)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/v1/mortgage/quote.pdf?purchase_price=300000&down_payment=60000&rate=6&term=0", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), string(domain.NonPositiveTerm))
}

func TestContactForm(t *testing.T) {
	h := newTestRouter(t, testConfig(), nil)

	w := postForm(t, h, "/contact", url.Values{
		"name":    {"Jane"},
		"email":   {"jane@example.com"},
		"message": {"Call me"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), service.ContactSuccessMessage)
}

func TestContactJSON(t *testing.T) {
	h := newTestRouter(t, testConfig(), nil)

	w := postJSON(t, h, "/api/v1/contact", `{"name": "Jane", "email": "jane@example.com", "message": "hi"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var status domain.SubmissionStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, domain.SubmissionSuccess, status.Kind)
	assert.Equal(t, service.ContactSuccessMessage, status.Message)

	w = postJSON(t, h, "/api/v1/contact", `{"name": 7}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, h, "/api/v1/contact", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestRouter(t, testConfig(), nil)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())

	postForm(t, h, "/calculate", url.Values{
		"purchase_price": {"1"}, "down_payment": {"0"}, "rate": {"1"}, "term": {"1"},
	})

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mortgage_quotes_total")
}

func TestRequestIDIsPreserved(t *testing.T) {
	h := newTestRouter(t, testConfig(), nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestRateLimitedRoutes(t *testing.T) {
	limiter := NewWindowLimiter(repository.NewMemoryCounter(), 2, time.Minute, nil)
	h := newTestRouter(t, testConfig(), limiter)

	values := url.Values{"purchase_price": {"1"}, "down_payment": {"0"}, "rate": {"1"}, "term": {"1"}}
	assert.Equal(t, http.StatusOK, postForm(t, h, "/calculate", values).Code)
	assert.Equal(t, http.StatusOK, postForm(t, h, "/calculate", values).Code)

	w := postForm(t, h, "/calculate", values)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// the page and health checks are not limited
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

type denyAll struct{}

func (denyAll) Allow(context.Context, string) bool { return false }

func TestRateLimitMiddleware_Denied(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	w := httptest.NewRecorder()
	RateLimitMiddleware(denyAll{})(next).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/calculate", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.False(t, called)
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")
}
