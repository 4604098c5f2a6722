package forms

import "time"

// Config holds the form-intake settings: the staff inbox per form type,
// the shared per-identity request quota and the notification send timeout.
type Config struct {
	RateRequestInbox string `env:"RATE_REQUEST_INBOX,required"`
	ContactInbox     string `env:"CONTACT_INBOX,required"`
	NewsletterInbox  string `env:"NEWSLETTER_INBOX,required"`

	RateLimit    int           `env:"FORM_RATE_LIMIT" envDefault:"5"`
	RateWindow   time.Duration `env:"FORM_RATE_WINDOW" envDefault:"60s"`
	RateCapacity int           `env:"FORM_RATE_CAPACITY" envDefault:"500"`

	// NotifyTimeout bounds the outbound mail call so a slow provider cannot
	// hold a request handler indefinitely.
	NotifyTimeout time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"10s"`
}
