package mailer

import (
	"context"
	"fmt"
	"regexp"
)

// Sender delivers a single transactional email.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Message is a write-once description of one outbound email. ReplyTo is
// optional; when set it carries the form submitter's address so staff can
// answer directly from their inbox.
type Message struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	ReplyTo  string `json:"reply_to,omitempty"`
	HTMLBody string `json:"html_body"`
	Tag      string `json:"tag,omitempty"`
}

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validate reports whether the message is deliverable as-is.
func (m Message) Validate() error {
	if m.To == "" || !emailRegex.MatchString(m.To) {
		return fmt.Errorf("%w: To must be a valid email address", ErrInvalidMessage)
	}
	if m.Subject == "" {
		return fmt.Errorf("%w: Subject is required", ErrInvalidMessage)
	}
	if m.HTMLBody == "" {
		return fmt.Errorf("%w: HTMLBody is required", ErrInvalidMessage)
	}
	if m.ReplyTo != "" && !emailRegex.MatchString(m.ReplyTo) {
		return fmt.Errorf("%w: ReplyTo must be a valid email address", ErrInvalidMessage)
	}
	return nil
}
