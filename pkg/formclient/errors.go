package formclient

import "errors"

var (
	// ErrBusy is returned by Submit while a submission is in flight.
	ErrBusy              = errors.New("formclient: a submission is already in progress")
	ErrInvalidForm       = errors.New("formclient: the form has invalid fields")
	ErrSubmitFailed      = errors.New("formclient: submission failed")
	ErrInvalidTransition = errors.New("formclient: invalid state transition")
	ErrUnknownField      = errors.New("formclient: unknown field")
)
