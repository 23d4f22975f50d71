package email

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"time"

	"cyber-contact-backend/internal/domain"
)

// RendererConfig holds the business details printed in both emails.
type RendererConfig struct {
	BrandName    string
	SiteURL      string
	ContactPhone string
	Location     *time.Location
}

// Renderer produces the notification and auto-reply HTML bodies.
//
// Submission fields must already be escaped by the sanitizer; they are injected
// as template.HTML so they are not escaped a second time. Everything else,
// including client metadata, goes through html/template's contextual escaping.
type Renderer struct {
	cfg          RendererConfig
	notification *template.Template
	autoReply    *template.Template
}

type notificationData struct {
	Name          template.HTML
	Email         template.HTML
	MailtoAddress string
	Company       template.HTML
	Phone         template.HTML
	ServiceLabel  string
	Message       template.HTML
	Timestamp     string
	IP            string
	UserAgent     string
	BrandName     string
}

type autoReplyData struct {
	Name         template.HTML
	Company      template.HTML
	ServiceLabel string
	Message      template.HTML
	BrandName    string
	ContactPhone string
	SiteURL      string
}

// NewRenderer parses the templates once.
func NewRenderer(cfg RendererConfig) (*Renderer, error) {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	notification, err := template.New("notification").Parse(notificationTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse notification template: %w", err)
	}
	autoReply, err := template.New("auto_reply").Parse(autoReplyTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse auto-reply template: %w", err)
	}

	return &Renderer{cfg: cfg, notification: notification, autoReply: autoReply}, nil
}

// RenderNotification renders the internal email, including client metadata for triage.
func (r *Renderer) RenderNotification(sub domain.SanitizedSubmission, cc domain.ClientContext) (string, error) {
	data := notificationData{
		Name:          template.HTML(sub.Name),
		Email:         template.HTML(sub.Email),
		MailtoAddress: html.UnescapeString(sub.Email),
		Company:       template.HTML(sub.Company),
		Phone:         template.HTML(sub.Phone),
		ServiceLabel:  domain.ServiceLabel(sub.Service),
		Message:       template.HTML(sub.Message),
		Timestamp:     FormatTimestamp(cc.Timestamp, r.cfg.Location),
		IP:            cc.IP,
		UserAgent:     cc.UserAgent,
		BrandName:     r.cfg.BrandName,
	}
	return execute(r.notification, data)
}

// RenderAutoReply renders the confirmation sent to the submitter.
func (r *Renderer) RenderAutoReply(sub domain.SanitizedSubmission) (string, error) {
	data := autoReplyData{
		Name:         template.HTML(sub.Name),
		Company:      template.HTML(sub.Company),
		ServiceLabel: domain.ServiceLabel(sub.Service),
		Message:      template.HTML(sub.Message),
		BrandName:    r.cfg.BrandName,
		ContactPhone: r.cfg.ContactPhone,
		SiteURL:      r.cfg.SiteURL,
	}
	return execute(r.autoReply, data)
}

func execute(tmpl *template.Template, data any) (string, error) {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute %s template: %w", tmpl.Name(), err)
	}
	return body.String(), nil
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatTimestamp renders t in loc as "15 de octubre de 2026, 14:03:05".
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		t = time.Now()
	}
	if loc != nil {
		t = t.In(loc)
	}
	return fmt.Sprintf("%d de %s de %d, %s", t.Day(), spanishMonths[t.Month()-1], t.Year(), t.Format("15:04:05"))
}
