package service

const (
	MonthsPerYear = 12

	ContactSuccessMessage = "Thank you for your message! We will be in touch shortly."
)
