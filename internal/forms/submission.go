package forms

import (
	"strings"

	"github.com/harborline/siteforms/pkg/sanitize"
	"github.com/harborline/siteforms/pkg/validate"
)

// RateRequest is a validated rate-request submission.
type RateRequest struct {
	Name        string
	Email       string
	Message     string
	Phone       string
	Company     string
	ServiceType string
}

// Contact is a validated contact-form submission.
type Contact struct {
	Name    string
	Email   string
	Subject string
	Message string
	Phone   string
	Company string
}

// NewsletterSubscribe is a validated newsletter signup.
type NewsletterSubscribe struct {
	Email string
	Name  string
}

// NewsletterUnsubscribe is a validated newsletter removal request.
type NewsletterUnsubscribe struct {
	Email string
}

// ruleFn binds a validation rule to a field name and extracted value.
// Schemas are composed from these shared pieces instead of extending each
// other, so each endpoint declares its own full rule set.
type ruleFn func(field, value string) validate.Rule

func required(field, value string) validate.Rule {
	return validate.Required(field, value)
}

func email(field, value string) validate.Rule {
	return validate.Email(field, value)
}

func phoneChars(field, value string) validate.Rule {
	return validate.PhoneChars(field, value)
}

func minLen(n int) ruleFn {
	return func(field, value string) validate.Rule {
		return validate.MinLen(field, value, n)
	}
}

func maxLen(n int) ruleFn {
	return func(field, value string) validate.Rule {
		return validate.MaxLen(field, value, n)
	}
}

// fields walks a payload, extracting values and collecting issues in field
// declaration order. A field with a type issue skips its rules: reporting
// "must be a string" and "field is required" for the same value would be
// noise.
type fields struct {
	p      payload
	issues validate.Issues
}

func newFields(p payload) *fields {
	return &fields{p: p}
}

func (f *fields) text(name string, ruleFns ...ruleFn) string {
	value, issue := f.p.text(name)
	if issue != nil {
		f.issues = append(f.issues, *issue)
		return ""
	}

	rules := make([]validate.Rule, 0, len(ruleFns))
	for _, fn := range ruleFns {
		rules = append(rules, fn(name, value))
	}
	f.issues = append(f.issues, validate.Apply(rules...)...)
	return value
}

// emailField extracts a required email field, normalized to lower case.
func (f *fields) emailField(name string) string {
	return strings.ToLower(f.text(name, required, email))
}

// ParseRateRequest validates a rate-request payload. It returns either a
// fully valid submission or every rule violation at once; there is no
// partial acceptance.
func ParseRateRequest(p payload) (*RateRequest, validate.Issues) {
	f := newFields(p)

	var sub RateRequest
	sub.Name = f.text("name", required, minLen(2), maxLen(100))
	sub.Email = f.emailField("email")
	sub.Message = f.text("message", required, minLen(10), maxLen(2000))
	sub.Phone = f.text("phone", phoneChars)
	sub.Company = f.text("company", maxLen(200))
	sub.ServiceType = f.text("serviceType")

	if len(f.issues) > 0 {
		return nil, f.issues
	}
	return &sub, nil
}

// ParseContact validates a contact payload. It shares the rate-request
// field rules by composition and adds the subject field.
func ParseContact(p payload) (*Contact, validate.Issues) {
	f := newFields(p)

	var sub Contact
	sub.Name = f.text("name", required, minLen(2), maxLen(100))
	sub.Email = f.emailField("email")
	sub.Subject = f.text("subject", required, minLen(3))
	sub.Message = f.text("message", required, minLen(10), maxLen(2000))
	sub.Phone = f.text("phone", phoneChars)
	sub.Company = f.text("company", maxLen(200))

	if len(f.issues) > 0 {
		return nil, f.issues
	}
	return &sub, nil
}

// ParseNewsletterSubscribe validates a newsletter signup payload.
func ParseNewsletterSubscribe(p payload) (*NewsletterSubscribe, validate.Issues) {
	f := newFields(p)

	var sub NewsletterSubscribe
	sub.Email = f.emailField("email")
	sub.Name = f.text("name")

	if len(f.issues) > 0 {
		return nil, f.issues
	}
	return &sub, nil
}

// ParseNewsletterUnsubscribe validates a newsletter removal payload.
func ParseNewsletterUnsubscribe(p payload) (*NewsletterUnsubscribe, validate.Issues) {
	f := newFields(p)

	var sub NewsletterUnsubscribe
	sub.Email = f.emailField("email")

	if len(f.issues) > 0 {
		return nil, f.issues
	}
	return &sub, nil
}

// Sanitize neutralizes HTML in every free-text field. The email address is
// left alone: validation already constrains it to an email-shaped charset.
func (s *RateRequest) Sanitize() {
	s.Name = sanitize.Text(s.Name)
	s.Message = sanitize.Text(s.Message)
	s.Phone = sanitize.Text(s.Phone)
	s.Company = sanitize.Text(s.Company)
	s.ServiceType = sanitize.Text(s.ServiceType)
}

func (s *Contact) Sanitize() {
	s.Name = sanitize.Text(s.Name)
	s.Subject = sanitize.Text(s.Subject)
	s.Message = sanitize.Text(s.Message)
	s.Phone = sanitize.Text(s.Phone)
	s.Company = sanitize.Text(s.Company)
}

func (s *NewsletterSubscribe) Sanitize() {
	s.Name = sanitize.Text(s.Name)
}
