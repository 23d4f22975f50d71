package usecase

import (
	"context"
	"fmt"
	"html"
	"net/mail"

	"cyber-contact-backend/internal/domain"
	"cyber-contact-backend/pkg/apperror"
	"cyber-contact-backend/pkg/email"
	"cyber-contact-backend/pkg/sanitizer"
	"cyber-contact-backend/pkg/validation"
)

// ContactConfig holds the addresses used for both emails.
type ContactConfig struct {
	FromName    string
	FromAddress string
	// Inbox receives the internal notification
	Inbox     string
	BrandName string
}

type contactUsecase struct {
	validator *validation.ContactValidator
	renderer  *email.Renderer
	mailer    domain.Mailer
	cfg       ContactConfig
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(v *validation.ContactValidator, r *email.Renderer, m domain.Mailer, cfg ContactConfig) domain.ContactUsecase {
	return &contactUsecase{
		validator: v,
		renderer:  r,
		mailer:    m,
		cfg:       cfg,
	}
}

func (uc *contactUsecase) Submit(ctx context.Context, sub domain.ContactSubmission, cc domain.ClientContext) error {
	if errs := uc.validator.Validate(sub); len(errs) > 0 {
		return apperror.Validation(errs)
	}

	clean := sanitizer.Submission(sub)

	notification, err := uc.notification(clean, cc)
	if err != nil {
		return apperror.Internal(err)
	}
	autoReply, err := uc.autoReply(clean)
	if err != nil {
		return apperror.Internal(err)
	}

	// Once dispatch starts it runs to completion or failure, even if the visitor disconnects
	ctx = context.WithoutCancel(ctx)

	if err := uc.mailer.Send(ctx, notification); err != nil {
		return apperror.Internal(fmt.Errorf("send notification: %w", err))
	}
	if err := uc.mailer.Send(ctx, autoReply); err != nil {
		return apperror.Internal(fmt.Errorf("send auto-reply: %w", err))
	}
	return nil
}

func (uc *contactUsecase) from() string {
	return (&mail.Address{Name: uc.cfg.FromName, Address: uc.cfg.FromAddress}).String()
}

func (uc *contactUsecase) notification(sub domain.SanitizedSubmission, cc domain.ClientContext) (domain.EmailDocument, error) {
	body, err := uc.renderer.RenderNotification(sub, cc)
	if err != nil {
		return domain.EmailDocument{}, fmt.Errorf("render notification: %w", err)
	}

	subject := fmt.Sprintf("Nueva solicitud de contacto: %s - %s",
		domain.ServiceLabel(sub.Service), sanitizer.HeaderValue(sub.Company))

	return domain.EmailDocument{
		From: uc.from(),
		To:   uc.cfg.Inbox,
		// Replies from the inbox go straight to the visitor
		ReplyTo: html.UnescapeString(sub.Email),
		Subject: subject,
		HTML:    body,
	}, nil
}

func (uc *contactUsecase) autoReply(sub domain.SanitizedSubmission) (domain.EmailDocument, error) {
	body, err := uc.renderer.RenderAutoReply(sub)
	if err != nil {
		return domain.EmailDocument{}, fmt.Errorf("render auto-reply: %w", err)
	}

	return domain.EmailDocument{
		From:    uc.from(),
		To:      html.UnescapeString(sub.Email),
		Subject: fmt.Sprintf("Hemos recibido tu solicitud - %s", uc.cfg.BrandName),
		HTML:    body,
	}, nil
}
