package service

import (
	"context"

	"go.uber.org/zap"

	"mortgage-calculator/domain"
	"mortgage-calculator/logger"
	"mortgage-calculator/metrics"
)

// ContactService simulates a contact form submission. Nothing is sent
// anywhere; every submission succeeds.
type ContactService struct {
	log *zap.Logger
}

func NewContactService(log *zap.Logger) *ContactService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ContactService{log: log}
}

// HandleSubmit acknowledges the submission and clears the form.
func (s *ContactService) HandleSubmit(
	ctx context.Context,
	form *domain.ContactForm,
) domain.SubmissionStatus {

	if form != nil {
		s.log.Info("contact form submitted",
			zap.String("email", logger.RedactEmail(form.Email)),
			zap.Int("message_length", len(form.Message)),
		)
		form.Reset()
	}
	metrics.ContactSubmissions.Inc()

	return domain.SubmissionStatus{
		Kind:    domain.SubmissionSuccess,
		Message: ContactSuccessMessage,
	}
}
