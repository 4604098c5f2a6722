package mailer

import "errors"

var (
	// ErrInvalidConfig indicates missing or malformed mailer configuration.
	ErrInvalidConfig = errors.New("mailer: invalid config")
	// ErrInvalidMessage indicates a message that cannot be delivered as-is.
	ErrInvalidMessage = errors.New("mailer: invalid message")
	// ErrSendFailed indicates the provider rejected or failed the send.
	ErrSendFailed = errors.New("mailer: failed to send email")
)
