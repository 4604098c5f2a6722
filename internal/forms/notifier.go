package forms

import (
	"context"
	"log/slog"
	"time"

	"github.com/harborline/siteforms/pkg/logger"
	"github.com/harborline/siteforms/pkg/mailer"
)

// Notification tags, also used to select templates and inboxes.
const (
	tagRateRequest = "rate-request"
	tagContact     = "contact"
	tagSubscribe   = "newsletter-subscribe"
	tagUnsubscribe = "newsletter-unsubscribe"
)

// Notifier renders and sends the staff-facing notification email for a
// submission. Delivery is strictly best-effort: the visitor was already
// told their submission went through, so every failure here is logged and
// swallowed, never surfaced to the response path.
type Notifier struct {
	sender    mailer.Sender
	log       *slog.Logger
	templates map[string]templateSet

	rateRequestInbox string
	contactInbox     string
	newsletterInbox  string
	timeout          time.Duration
}

// NewNotifier builds a Notifier, parsing all notification templates up
// front so a broken template fails at startup.
func NewNotifier(sender mailer.Sender, cfg Config, log *slog.Logger) (*Notifier, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	timeout := cfg.NotifyTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Notifier{
		sender:           sender,
		log:              log,
		templates:        templates,
		rateRequestInbox: cfg.RateRequestInbox,
		contactInbox:     cfg.ContactInbox,
		newsletterInbox:  cfg.NewsletterInbox,
		timeout:          timeout,
	}, nil
}

// RateRequest notifies the rate desk about a new quote request. Replies go
// straight to the submitter.
func (n *Notifier) RateRequest(ctx context.Context, sub *RateRequest) {
	n.deliver(ctx, tagRateRequest, n.rateRequestInbox, sub.Email, map[string]any{
		"name":        sub.Name,
		"email":       sub.Email,
		"message":     sub.Message,
		"phone":       sub.Phone,
		"company":     sub.Company,
		"serviceType": sub.ServiceType,
	})
}

// Contact notifies the general inbox about a contact-form message.
func (n *Notifier) Contact(ctx context.Context, sub *Contact) {
	n.deliver(ctx, tagContact, n.contactInbox, sub.Email, map[string]any{
		"name":    sub.Name,
		"email":   sub.Email,
		"subject": sub.Subject,
		"message": sub.Message,
		"phone":   sub.Phone,
		"company": sub.Company,
	})
}

// Subscribed notifies the newsletter inbox about a new subscriber.
func (n *Notifier) Subscribed(ctx context.Context, sub *NewsletterSubscribe) {
	n.deliver(ctx, tagSubscribe, n.newsletterInbox, "", map[string]any{
		"email": sub.Email,
		"name":  sub.Name,
	})
}

// Unsubscribed notifies the newsletter inbox about a removal request.
func (n *Notifier) Unsubscribed(ctx context.Context, sub *NewsletterUnsubscribe) {
	n.deliver(ctx, tagUnsubscribe, n.newsletterInbox, "", map[string]any{
		"email": sub.Email,
	})
}

// deliver renders and sends one notification. The send runs under its own
// bounded timeout, detached from request cancellation, so a slow provider
// neither holds the handler hostage nor gets cut off by the response
// completing first.
func (n *Notifier) deliver(ctx context.Context, tag, inbox, replyTo string, bindings map[string]any) {
	subject, body, err := n.templates[tag].render(bindings)
	if err != nil {
		n.log.ErrorContext(ctx, "failed to render notification",
			slog.String("form", tag), logger.Error(err))
		return
	}

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	msg := mailer.Message{
		To:       inbox,
		Subject:  subject,
		ReplyTo:  replyTo,
		HTMLBody: body,
		Tag:      tag,
	}
	if err := n.sender.Send(sendCtx, msg); err != nil {
		n.log.ErrorContext(ctx, "failed to send notification",
			slog.String("form", tag), logger.Error(err))
	}
}
