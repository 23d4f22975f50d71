package email

import "errors"

var (
	ErrMissingCredentials = errors.New("email: SMTP credentials are not configured")
	ErrPoolClosed         = errors.New("email: SMTP pool is closed")
	ErrInvalidAddress     = errors.New("email: invalid address")
)
