package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"cyber-contact-backend/internal/domain"
	"cyber-contact-backend/internal/usecase"
	"cyber-contact-backend/pkg/apperror"
	"cyber-contact-backend/pkg/email"
	"cyber-contact-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, doc domain.EmailDocument) error {
	return m.Called(ctx, doc).Error(0)
}

func newContactUsecase(t *testing.T, mailer domain.Mailer) domain.ContactUsecase {
	t.Helper()
	renderer, err := email.NewRenderer(email.RendererConfig{
		BrandName:    "Ciberseguridad Consultores",
		SiteURL:      "https://example.com",
		ContactPhone: "+34 682 790 545",
		Location:     time.UTC,
	})
	require.NoError(t, err)

	return usecase.NewContactUsecase(
		validation.NewContactValidator(validator.New()),
		renderer,
		mailer,
		usecase.ContactConfig{
			FromName:    "Ciberseguridad Consultores",
			FromAddress: "contacto@example.com",
			Inbox:       "equipo@example.com",
			BrandName:   "Ciberseguridad Consultores",
		},
	)
}

func validSubmission() domain.ContactSubmission {
	return domain.ContactSubmission{
		Name:    "Ana Gómez",
		Email:   "  Ana@Example.com ",
		Company: "Acme & Hijos",
		Service: "consultation",
		Message: "Quisiera información sobre sus servicios de auditoría.",
	}
}

func clientContext() domain.ClientContext {
	return domain.ClientContext{IP: "203.0.113.7", UserAgent: "Mozilla/5.0", Timestamp: time.Now()}
}

func TestSubmitSendsNotificationThenAutoReply(t *testing.T) {
	mailer := new(MockMailer)
	var sent []domain.EmailDocument
	mailer.On("Send", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = append(sent, args.Get(1).(domain.EmailDocument)) }).
		Return(nil).Twice()

	err := newContactUsecase(t, mailer).Submit(context.Background(), validSubmission(), clientContext())
	require.NoError(t, err)
	mailer.AssertExpectations(t)

	require.Len(t, sent, 2)

	notification := sent[0]
	assert.Equal(t, "equipo@example.com", notification.To)
	assert.Equal(t, "ana@example.com", notification.ReplyTo)
	assert.Equal(t, `"Ciberseguridad Consultores" <contacto@example.com>`, notification.From)
	assert.Equal(t, "Nueva solicitud de contacto: Consultoría - Acme & Hijos", notification.Subject)
	assert.Contains(t, notification.HTML, "Acme &amp; Hijos")
	assert.Contains(t, notification.HTML, "203.0.113.7")

	autoReply := sent[1]
	assert.Equal(t, "ana@example.com", autoReply.To)
	assert.Empty(t, autoReply.ReplyTo)
	assert.Contains(t, autoReply.Subject, "Hemos recibido tu solicitud")
	assert.NotContains(t, autoReply.HTML, "203.0.113.7")
}

func TestSubmitDispatchIgnoresRequestCancellation(t *testing.T) {
	mailer := new(MockMailer)
	mailer.On("Send", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	}), mock.Anything).Return(nil).Twice()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newContactUsecase(t, mailer).Submit(ctx, validSubmission(), clientContext())
	require.NoError(t, err)
	mailer.AssertExpectations(t)
}

func TestSubmitValidationFailureSendsNothing(t *testing.T) {
	mailer := new(MockMailer)
	sub := validSubmission()
	sub.Message = "Hola!"
	sub.Service = "quantum"

	err := newContactUsecase(t, mailer).Submit(context.Background(), sub, clientContext())

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Equal(t, []string{
		"Selecciona un servicio válido",
		"El mensaje debe tener entre 10 y 5000 caracteres",
	}, appErr.Details)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSubmitNotificationFailureSkipsAutoReply(t *testing.T) {
	mailer := new(MockMailer)
	smtpErr := errors.New("535 5.7.8 authentication failed")
	mailer.On("Send", mock.Anything, mock.MatchedBy(func(d domain.EmailDocument) bool {
		return d.To == "equipo@example.com"
	})).Return(smtpErr).Once()

	err := newContactUsecase(t, mailer).Submit(context.Background(), validSubmission(), clientContext())

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, apperror.MsgInternal, appErr.Message)
	assert.ErrorIs(t, err, smtpErr)
	mailer.AssertNumberOfCalls(t, "Send", 1)
}

func TestSubmitAutoReplyFailureFailsSubmission(t *testing.T) {
	mailer := new(MockMailer)
	mailer.On("Send", mock.Anything, mock.Anything).Return(nil).Once()
	mailer.On("Send", mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()

	err := newContactUsecase(t, mailer).Submit(context.Background(), validSubmission(), clientContext())

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	mailer.AssertNumberOfCalls(t, "Send", 2)
}

func TestHealthCheck(t *testing.T) {
	status := usecase.NewHealthUsecase("cyber-contact-backend", "1.0.0").Check(context.Background())

	assert.Equal(t, "OK", status.Status)
	assert.Equal(t, "cyber-contact-backend", status.Service)
	assert.Equal(t, "1.0.0", status.Version)
	assert.WithinDuration(t, time.Now(), status.Timestamp, time.Minute)
}
