package forms

import (
	"fmt"

	"github.com/osteele/liquid"
)

// Notification templates, Liquid syntax. Submission values are already
// sanitized before they reach rendering, so plain interpolation is safe.

const rateRequestSubject = `New rate request from {{ name }}`

const rateRequestBody = `<h2>New rate request</h2>
<table cellpadding="6">
  <tr><td><strong>Name</strong></td><td>{{ name }}</td></tr>
  <tr><td><strong>Email</strong></td><td>{{ email }}</td></tr>
  {% if phone != "" %}<tr><td><strong>Phone</strong></td><td>{{ phone }}</td></tr>{% endif %}
  {% if company != "" %}<tr><td><strong>Company</strong></td><td>{{ company }}</td></tr>{% endif %}
  {% if serviceType != "" %}<tr><td><strong>Service</strong></td><td>{{ serviceType }}</td></tr>{% endif %}
</table>
<h3>Message</h3>
<p>{{ message }}</p>`

const contactSubject = `Contact form: {{ subject }}`

const contactBody = `<h2>New contact message</h2>
<table cellpadding="6">
  <tr><td><strong>Name</strong></td><td>{{ name }}</td></tr>
  <tr><td><strong>Email</strong></td><td>{{ email }}</td></tr>
  {% if phone != "" %}<tr><td><strong>Phone</strong></td><td>{{ phone }}</td></tr>{% endif %}
  {% if company != "" %}<tr><td><strong>Company</strong></td><td>{{ company }}</td></tr>{% endif %}
  <tr><td><strong>Subject</strong></td><td>{{ subject }}</td></tr>
</table>
<h3>Message</h3>
<p>{{ message }}</p>`

const subscribeSubject = `Newsletter subscription: {{ email }}`

const subscribeBody = `<h2>New newsletter subscriber</h2>
<p><strong>Email:</strong> {{ email }}</p>
{% if name != "" %}<p><strong>Name:</strong> {{ name }}</p>{% endif %}`

const unsubscribeSubject = `Newsletter unsubscribe: {{ email }}`

const unsubscribeBody = `<h2>Newsletter unsubscribe request</h2>
<p><strong>Email:</strong> {{ email }}</p>`

// templateSet holds pre-parsed subject and body templates per form type.
// Parsing happens once at startup so a template syntax error fails fast
// rather than surfacing on the first submission.
type templateSet struct {
	subject *liquid.Template
	body    *liquid.Template
}

func parseTemplates() (map[string]templateSet, error) {
	engine := liquid.NewEngine()

	sources := map[string][2]string{
		tagRateRequest: {rateRequestSubject, rateRequestBody},
		tagContact:     {contactSubject, contactBody},
		tagSubscribe:   {subscribeSubject, subscribeBody},
		tagUnsubscribe: {unsubscribeSubject, unsubscribeBody},
	}

	sets := make(map[string]templateSet, len(sources))
	for tag, src := range sources {
		subject, err := engine.ParseString(src[0])
		if err != nil {
			return nil, fmt.Errorf("forms: parse %s subject template: %w", tag, err)
		}
		body, err := engine.ParseString(src[1])
		if err != nil {
			return nil, fmt.Errorf("forms: parse %s body template: %w", tag, err)
		}
		sets[tag] = templateSet{subject: subject, body: body}
	}
	return sets, nil
}

func (t templateSet) render(bindings map[string]any) (subject, body string, err error) {
	subject, err = t.subject.RenderString(bindings)
	if err != nil {
		return "", "", err
	}
	body, err = t.body.RenderString(bindings)
	if err != nil {
		return "", "", err
	}
	return subject, body, nil
}
