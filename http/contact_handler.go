package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"mortgage-calculator/domain"
	"mortgage-calculator/presenter"
	"mortgage-calculator/service"
)

type ContactHandler struct {
	service *service.ContactService
	html    *presenter.HTMLRenderer
	schema  *requestSchema
	log     *zap.Logger
}

func NewContactHandler(
	svc *service.ContactService,
	html *presenter.HTMLRenderer,
	log *zap.Logger,
) (*ContactHandler, error) {
	schema, err := compileSchema(contactRequestSchema)
	if err != nil {
		return nil, err
	}
	return &ContactHandler{service: svc, html: html, schema: schema, log: log}, nil
}

// SubmitForm answers the page's contact form with the status message
// fragment. The page script clears the form once it arrives.
func (h *ContactHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	form := domain.ContactForm{
		Name:    r.PostForm.Get("name"),
		Email:   r.PostForm.Get("email"),
		Phone:   r.PostForm.Get("phone"),
		Message: r.PostForm.Get("message"),
	}
	status := h.service.HandleSubmit(r.Context(), &form)

	var buf bytes.Buffer
	if err := h.html.RenderContactStatus(&buf, status); err != nil {
		h.log.Error("render failed", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	writeBody(w, http.StatusOK, h.html.ContentType(), &buf)
}

func (h *ContactHandler) SubmitJSON(w http.ResponseWriter, r *http.Request) {
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

	var form domain.ContactForm
	if err := json.Unmarshal(body, &form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "INVALID_BODY")
		return
	}

	writeJSON(w, http.StatusOK, h.service.HandleSubmit(r.Context(), &form))
}
