package domain

import (
	"context"
	"strings"
	"time"
)

// ContactSubmission represents an untrusted contact form payload.
// The validate tags are the single rule set shared by the API and the form client.
type ContactSubmission struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Company string `json:"company" validate:"required,min=2,max=200"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,contact_phone"`
	Service string `json:"service" validate:"required,oneof=red-team perimeter web-pentesting mobile-pentesting code-review consultation other"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field,
// so whitespace-only values count as absent.
func (s ContactSubmission) Trimmed() ContactSubmission {
	return ContactSubmission{
		Name:    strings.TrimSpace(s.Name),
		Email:   strings.TrimSpace(s.Email),
		Company: strings.TrimSpace(s.Company),
		Phone:   strings.TrimSpace(s.Phone),
		Service: strings.TrimSpace(s.Service),
		Message: strings.TrimSpace(s.Message),
	}
}

// SanitizedSubmission mirrors ContactSubmission with every text field HTML-escaped.
// Only produced for accepted submissions.
type SanitizedSubmission struct {
	Name    string
	Email   string
	Company string
	Phone   string
	Service string
	Message string
}

// ClientContext is request metadata attached to the internal notification only.
type ClientContext struct {
	IP        string
	UserAgent string
	Timestamp time.Time
}

// EmailDocument is a rendered email ready for dispatch.
type EmailDocument struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	HTML    string
}

// ServiceOption describes one entry of the service catalogue.
type ServiceOption struct {
	Key   string
	Label string
}

// Services lists the services a visitor can ask about, in display order.
var Services = []ServiceOption{
	{Key: "red-team", Label: "Red Team"},
	{Key: "perimeter", Label: "Auditoría de Perímetro"},
	{Key: "web-pentesting", Label: "Pentesting Web"},
	{Key: "mobile-pentesting", Label: "Pentesting Móvil"},
	{Key: "code-review", Label: "Revisión de Código"},
	{Key: "consultation", Label: "Consultoría"},
	{Key: "other", Label: "Otro"},
}

// ServiceLabel resolves a service key to its display label; unknown keys are echoed back.
func ServiceLabel(key string) string {
	for _, s := range Services {
		if s.Key == key {
			return s.Label
		}
	}
	return key
}

// Mailer delivers rendered documents.
type Mailer interface {
	Send(ctx context.Context, doc EmailDocument) error
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// Submit validates, sanitizes, renders and dispatches a submission.
	// Both emails are sent in order; a failed notification aborts the auto-reply.
	Submit(ctx context.Context, sub ContactSubmission, cc ClientContext) error
}
