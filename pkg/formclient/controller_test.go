package formclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cyber-contact-backend/pkg/formclient"
	"cyber-contact-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAPI struct {
	calls   atomic.Int32
	status  int
	body    string
	release chan struct{}
}

func newStubAPI(t *testing.T, status int, body string) (*stubAPI, *httptest.Server) {
	t.Helper()
	api := &stubAPI{status: status, body: body}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.calls.Add(1)
		if api.release != nil {
			<-api.release
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(api.status)
		_, _ = w.Write([]byte(api.body))
	}))
	t.Cleanup(srv.Close)
	return api, srv
}

func newController(t *testing.T, baseURL string, successFor time.Duration) *formclient.Controller {
	t.Helper()
	c := formclient.New(formclient.Config{
		BaseURL:         baseURL,
		Timeout:         2 * time.Second,
		SuccessDuration: successFor,
		ContactPhone:    "+34 682 790 545",
	}, validation.NewContactValidator(validator.New()))
	t.Cleanup(c.Close)
	return c
}

func fillValid(t *testing.T, c *formclient.Controller) {
	t.Helper()
	fields := map[string]string{
		"name":    "Ana Gómez",
		"email":   "ana@example.com",
		"company": "Acme SL",
		"service": "consultation",
		"message": "Quisiera información sobre sus servicios de auditoría.",
	}
	for k, v := range fields {
		require.NoError(t, c.SetField(k, v))
	}
}

func TestSubmitSuccessThenAutoReset(t *testing.T) {
	api, srv := newStubAPI(t, http.StatusOK, `{"success":true,"message":"ok","timestamp":"2026-10-15T10:00:00Z"}`)
	c := newController(t, srv.URL, 50*time.Millisecond)
	fillValid(t, c)

	var (
		mu     sync.Mutex
		states []formclient.State
	)
	c.OnChange(func(s formclient.Snapshot) {
		mu.Lock()
		states = append(states, s.State)
		mu.Unlock()
	})

	require.NoError(t, c.Submit(context.Background()))

	snap := c.Snapshot()
	assert.Equal(t, formclient.StateSuccess, snap.State)
	assert.True(t, snap.CanSubmit)
	assert.NotEmpty(t, snap.Message)
	assert.Empty(t, c.Form().Name, "form is cleared on success")
	assert.EqualValues(t, 1, api.calls.Load())

	assert.Eventually(t, func() bool {
		return c.Snapshot().State == formclient.StateIdle
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []formclient.State{formclient.StateSubmitting, formclient.StateSuccess, formclient.StateIdle}, states)
}

func TestSubmitInvalidFormStaysIdle(t *testing.T) {
	api, srv := newStubAPI(t, http.StatusOK, `{"success":true}`)
	c := newController(t, srv.URL, time.Second)
	fillValid(t, c)
	require.NoError(t, c.SetField("phone", "123"))
	require.NoError(t, c.SetField("message", "corto"))

	err := c.Submit(context.Background())

	assert.ErrorIs(t, err, formclient.ErrInvalidForm)
	snap := c.Snapshot()
	assert.Equal(t, formclient.StateIdle, snap.State)
	assert.Contains(t, snap.FieldErrors, "phone")
	assert.Contains(t, snap.FieldErrors, "message")
	assert.Zero(t, api.calls.Load())

	// Editing a field clears its error
	require.NoError(t, c.SetField("phone", ""))
	assert.NotContains(t, c.Snapshot().FieldErrors, "phone")
}

func TestSubmitFailures(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantMessage  string
		serverErrors []string
	}{
		{
			name:        "rate limited",
			status:      http.StatusTooManyRequests,
			body:        `{"error":"Demasiadas solicitudes","status":429}`,
			wantMessage: "demasiadas solicitudes",
		},
		{
			name:         "server validation with errors",
			status:       http.StatusBadRequest,
			body:         `{"success":false,"message":"x","errors":["El email no tiene un formato válido"]}`,
			wantMessage:  "Revisa los datos",
			serverErrors: []string{"El email no tiene un formato válido"},
		},
		{
			name:        "server validation without errors",
			status:      http.StatusBadRequest,
			body:        `not json`,
			wantMessage: "Revisa los datos",
		},
		{
			name:        "server error",
			status:      http.StatusInternalServerError,
			body:        `{"success":false,"message":"Error","timestamp":"2026-10-15T10:00:00Z"}`,
			wantMessage: "No hemos podido enviar tu mensaje",
		},
		{
			name:        "malformed success body",
			status:      http.StatusOK,
			body:        `<html>proxy</html>`,
			wantMessage: "respuesta inesperada",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, srv := newStubAPI(t, tt.status, tt.body)
			c := newController(t, srv.URL, time.Second)
			fillValid(t, c)

			err := c.Submit(context.Background())

			assert.ErrorIs(t, err, formclient.ErrSubmitFailed)
			snap := c.Snapshot()
			assert.Equal(t, formclient.StateError, snap.State)
			assert.Contains(t, snap.Message, tt.wantMessage)
			assert.Equal(t, tt.serverErrors, nilIfEmpty(snap.ServerErrors))
			assert.Equal(t, "Ana Gómez", c.Form().Name, "form is kept on failure")

			require.NoError(t, c.Dismiss())
			assert.Equal(t, formclient.StateIdle, c.Snapshot().State)
			assert.Empty(t, c.Snapshot().Message)
		})
	}
}

func TestResubmitAfterServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"success":false,"message":"Error"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"message":"ok"}`))
	}))
	t.Cleanup(srv.Close)

	c := newController(t, srv.URL, time.Second)
	fillValid(t, c)

	require.ErrorIs(t, c.Submit(context.Background()), formclient.ErrSubmitFailed)
	snap := c.Snapshot()
	assert.Equal(t, formclient.StateError, snap.State)
	assert.True(t, snap.CanSubmit)

	// No Dismiss needed: submitting again clears the error
	require.NoError(t, c.Submit(context.Background()))
	assert.Equal(t, formclient.StateSuccess, c.Snapshot().State)
	assert.EqualValues(t, 2, calls.Load())
}

func TestSubmitConnectivityFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := newController(t, url, time.Second)
	fillValid(t, c)

	err := c.Submit(context.Background())

	assert.ErrorIs(t, err, formclient.ErrSubmitFailed)
	snap := c.Snapshot()
	assert.Equal(t, formclient.StateError, snap.State)
	assert.Contains(t, snap.Message, "No se ha podido conectar")
	assert.Contains(t, snap.Message, "+34 682 790 545")
}

func TestSubmitWhileBusy(t *testing.T) {
	api, srv := newStubAPI(t, http.StatusOK, `{"success":true}`)
	api.release = make(chan struct{})
	c := newController(t, srv.URL, time.Second)
	fillValid(t, c)

	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background()) }()

	require.Eventually(t, func() bool {
		return c.Snapshot().State == formclient.StateSubmitting
	}, time.Second, 5*time.Millisecond)

	assert.ErrorIs(t, c.Submit(context.Background()), formclient.ErrBusy)
	assert.False(t, c.Snapshot().CanSubmit)

	close(api.release)
	require.NoError(t, <-done)
	assert.EqualValues(t, 1, api.calls.Load())
}

func TestDismissFromIdleIsInvalid(t *testing.T) {
	c := newController(t, "http://127.0.0.1:1", time.Second)
	assert.ErrorIs(t, c.Dismiss(), formclient.ErrInvalidTransition)
}

func TestSetFieldUnknown(t *testing.T) {
	c := newController(t, "http://127.0.0.1:1", time.Second)
	assert.ErrorIs(t, c.SetField("website", "x"), formclient.ErrUnknownField)
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}
