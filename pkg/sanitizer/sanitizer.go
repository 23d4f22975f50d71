// Package sanitizer normalizes accepted contact submissions before they are
// interpolated into HTML email bodies or written to logs.
//
// Escaping is a projection: input is unescaped first, so running a value
// through the sanitizer twice yields the same result as running it once.
package sanitizer

import (
	"html"
	"strings"

	"cyber-contact-backend/internal/domain"

	"golang.org/x/text/unicode/norm"
)

// Text trims, NFC-normalizes and HTML-escapes free text.
func Text(s string) string {
	plain := strings.TrimSpace(html.UnescapeString(s))
	return html.EscapeString(norm.NFC.String(plain))
}

// Email returns the canonical, escaped form of an address.
func Email(s string) string {
	return Text(strings.ToLower(s))
}

// HeaderValue turns a sanitized value back into plain text safe for a mail header.
// Line breaks are collapsed so user input cannot inject headers.
func HeaderValue(s string) string {
	plain := html.UnescapeString(s)
	plain = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(plain)
	return strings.Join(strings.Fields(plain), " ")
}

// Submission derives the sanitized form of a validated submission.
// Callers must validate first; nothing is re-checked here.
func Submission(sub domain.ContactSubmission) domain.SanitizedSubmission {
	return domain.SanitizedSubmission{
		Name:    Text(sub.Name),
		Email:   Email(sub.Email),
		Company: Text(sub.Company),
		Phone:   Text(sub.Phone),
		Service: strings.TrimSpace(sub.Service),
		Message: Text(sub.Message),
	}
}
