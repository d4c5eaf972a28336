package domain

type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Reset clears every field, the way a browser form reset does.
func (f *ContactForm) Reset() {
	*f = ContactForm{}
}

type SubmissionKind string

const SubmissionSuccess SubmissionKind = "Success"

type SubmissionStatus struct {
	Kind    SubmissionKind `json:"kind"`
	Message string         `json:"message"`
}
