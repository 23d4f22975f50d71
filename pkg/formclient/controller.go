// Package formclient drives a contact form against the submission API: local
// validation with the server's rule set, one request at a time, and the
// idle/submitting/success/error lifecycle the UI renders.
package formclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"cyber-contact-backend/internal/domain"
	"cyber-contact-backend/pkg/validation"

	"github.com/go-resty/resty/v2"
)

// Config configures a Controller.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// SuccessDuration is how long the success state is shown before returning to idle
	SuccessDuration time.Duration
	// ContactPhone is offered as a fallback in failure messages
	ContactPhone string
}

// Snapshot is a consistent copy of what the UI needs to render.
type Snapshot struct {
	State        State
	FieldErrors  map[string]string
	ServerErrors []string
	Message      string
	CanSubmit    bool
}

// Controller is safe for concurrent use.
type Controller struct {
	client    *resty.Client
	validator *validation.ContactValidator
	cfg       Config

	mu           sync.Mutex
	state        State
	form         domain.ContactSubmission
	fieldErrors  map[string]string
	serverErrors []string
	message      string
	listeners    []func(Snapshot)
	successTimer *time.Timer
}

// New builds a controller. Retries are disabled: a failed submission is shown, never replayed.
func New(cfg Config, v *validation.ContactValidator) *Controller {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.SuccessDuration <= 0 {
		cfg.SuccessDuration = 5 * time.Second
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Controller{
		client:      client,
		validator:   v,
		cfg:         cfg,
		state:       StateIdle,
		fieldErrors: map[string]string{},
	}
}

// SetField updates one form field by its JSON name and clears that field's error.
func (c *Controller) SetField(name, value string) error {
	c.mu.Lock()
	switch name {
	case "name":
		c.form.Name = value
	case "email":
		c.form.Email = value
	case "company":
		c.form.Company = value
	case "phone":
		c.form.Phone = value
	case "service":
		c.form.Service = value
	case "message":
		c.form.Message = value
	default:
		c.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	delete(c.fieldErrors, name)
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
	return nil
}

// Form returns the current field values.
func (c *Controller) Form() domain.ContactSubmission {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// OnChange registers fn to receive a snapshot after every change.
func (c *Controller) OnChange(fn func(Snapshot)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// Dismiss returns to idle from error or success.
func (c *Controller) Dismiss() error {
	c.mu.Lock()
	if err := c.fireLocked(EventReset); err != nil {
		c.mu.Unlock()
		return err
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
	return nil
}

// Submit validates locally and, if the form is valid, posts it. A shown
// success or error is reset first. It returns ErrBusy while submitting,
// ErrInvalidForm without touching the network, and ErrSubmitFailed (wrapping
// the cause) when the controller ends in the error state.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StateSubmitting:
		c.mu.Unlock()
		return ErrBusy
	case StateSuccess, StateError:
		if err := c.fireLocked(EventReset); err != nil {
			c.mu.Unlock()
			return err
		}
	}

	if fieldErrs := c.validator.FieldErrors(c.form); len(fieldErrs) > 0 {
		c.fieldErrors = make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			if _, seen := c.fieldErrors[fe.Field]; !seen {
				c.fieldErrors[fe.Field] = fe.Message
			}
		}
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.notify(snap)
		return ErrInvalidForm
	}

	if err := c.fireLocked(EventSubmit); err != nil {
		c.mu.Unlock()
		return err
	}
	c.fieldErrors = map[string]string{}
	c.serverErrors = nil
	c.message = ""
	payload := c.form.Trimmed()
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)

	out := c.post(ctx, payload)

	c.mu.Lock()
	if out.err == nil {
		_ = c.fireLocked(EventSucceeded)
		c.form = domain.ContactSubmission{}
		c.successTimer = time.AfterFunc(c.cfg.SuccessDuration, c.expireSuccess)
	} else {
		_ = c.fireLocked(EventFailed)
	}
	c.message = out.message
	c.serverErrors = out.serverErrors
	snap = c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)

	if out.err != nil {
		return fmt.Errorf("%w: %w", ErrSubmitFailed, out.err)
	}
	return nil
}

// Close stops a pending success timer.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.successTimer != nil {
		c.successTimer.Stop()
	}
}

type serverReply struct {
	Success *bool    `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
	Error   string   `json:"error"`
}

type outcome struct {
	message      string
	serverErrors []string
	err          error
}

func (c *Controller) post(ctx context.Context, payload domain.ContactSubmission) outcome {
	phone := c.cfg.ContactPhone

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/api/contact")
	if err != nil {
		return outcome{message: connectivityMessage(phone), err: err}
	}

	status := resp.StatusCode()
	var reply serverReply
	parseErr := json.Unmarshal(resp.Body(), &reply)

	switch {
	case status == http.StatusTooManyRequests:
		return outcome{message: msgRateLimited, err: fmt.Errorf("status %d", status)}

	case status == http.StatusBadRequest:
		if parseErr == nil && len(reply.Errors) > 0 {
			return outcome{message: msgInvalid, serverErrors: reply.Errors, err: fmt.Errorf("status %d", status)}
		}
		return outcome{message: msgInvalid, err: fmt.Errorf("status %d", status)}

	case status >= http.StatusInternalServerError:
		return outcome{message: serverFailureMessage(phone), err: fmt.Errorf("status %d", status)}

	case status == http.StatusOK:
		if parseErr != nil {
			return outcome{message: malformedMessage(phone), err: fmt.Errorf("decode response: %w", parseErr)}
		}
		if reply.Success == nil {
			return outcome{message: malformedMessage(phone), err: errors.New("response without success flag")}
		}
		if !*reply.Success {
			return outcome{message: serverFailureMessage(phone), err: fmt.Errorf("server reported failure: %s", reply.Message)}
		}
		return outcome{message: msgSuccess}

	default:
		return outcome{message: serverFailureMessage(phone), err: fmt.Errorf("unexpected status %d", status)}
	}
}

func (c *Controller) expireSuccess() {
	c.mu.Lock()
	if c.state != StateSuccess {
		c.mu.Unlock()
		return
	}
	_ = c.fireLocked(EventReset)
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
}

func (c *Controller) fireLocked(e Event) error {
	to, err := next(c.state, e)
	if err != nil {
		return err
	}
	if to == StateIdle {
		c.message = ""
		c.serverErrors = nil
		if c.successTimer != nil {
			c.successTimer.Stop()
			c.successTimer = nil
		}
	}
	c.state = to
	return nil
}

func (c *Controller) snapshotLocked() Snapshot {
	fe := make(map[string]string, len(c.fieldErrors))
	for k, v := range c.fieldErrors {
		fe[k] = v
	}
	return Snapshot{
		State:        c.state,
		FieldErrors:  fe,
		ServerErrors: append([]string(nil), c.serverErrors...),
		Message:      c.message,
		CanSubmit:    c.state != StateSubmitting,
	}
}

func (c *Controller) notify(s Snapshot) {
	c.mu.Lock()
	listeners := slices.Clone(c.listeners)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(s)
	}
}
