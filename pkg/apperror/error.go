package apperror

import "net/http"

type AppError struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
	Err     error    `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

// Validation carries the full list of field violations.
func Validation(details []string) *AppError {
	e := New(http.StatusBadRequest, MsgValidation, nil)
	e.Details = details
	return e
}

func TooManyRequests(message string) *AppError {
	return New(http.StatusTooManyRequests, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

func ServiceUnavailable(err error) *AppError {
	return New(http.StatusServiceUnavailable, MsgUnavailable, err)
}

// Internal hides err behind the generic message; err is only logged.
func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, MsgInternal, err)
}
