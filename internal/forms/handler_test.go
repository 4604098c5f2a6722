package forms_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborline/siteforms/internal/forms"
	"github.com/harborline/siteforms/pkg/mailer"
	"github.com/harborline/siteforms/pkg/ratelimit"
)

// captureSender records outbound messages and can be told to fail.
type captureSender struct {
	mu       sync.Mutex
	messages []mailer.Message
	err      error
}

func (s *captureSender) Send(ctx context.Context, msg mailer.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.messages = append(s.messages, msg)
	return nil
}

func (s *captureSender) sent() []mailer.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]mailer.Message(nil), s.messages...)
}

var testConfig = forms.Config{
	RateRequestInbox: "rates@harborline.test",
	ContactInbox:     "hello@harborline.test",
	NewsletterInbox:  "news@harborline.test",
	RateLimit:        5,
	RateWindow:       time.Minute,
	NotifyTimeout:    time.Second,
}

func newTestRouter(t *testing.T, sender mailer.Sender) http.Handler {
	t.Helper()

	limiter, err := ratelimit.NewWindow(testConfig.RateLimit, testConfig.RateWindow)
	require.NoError(t, err)
	t.Cleanup(func() { _ = limiter.Close() })

	notifier, err := forms.NewNotifier(sender, testConfig, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	return forms.NewHandler(limiter, notifier, slog.New(slog.DiscardHandler)).Router()
}

func post(t *testing.T, h http.Handler, path, body, ip string) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest("POST", path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	if ip != "" {
		r.Header.Set("X-Forwarded-For", ip)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRateRequestEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("valid submission succeeds and notifies the rate desk", func(t *testing.T) {
		sender := &captureSender{}
		router := newTestRouter(t, sender)

		rec := post(t, router, "/rate-request",
			`{"name":"John Doe","email":"JOHN@EXAMPLE.COM","message":"Need quote for shipping"}`,
			"203.0.113.7")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
		assert.NotEmpty(t, body["message"])

		messages := sender.sent()
		require.Len(t, messages, 1)
		assert.Equal(t, "rates@harborline.test", messages[0].To)
		assert.Equal(t, "john@example.com", messages[0].ReplyTo)
		assert.Contains(t, messages[0].Subject, "John Doe")
		assert.Contains(t, messages[0].HTMLBody, "Need quote for shipping")
	})

	t.Run("missing fields reported itemized", func(t *testing.T) {
		sender := &captureSender{}
		router := newTestRouter(t, sender)

		rec := post(t, router, "/rate-request", `{"name":"John Doe"}`, "203.0.113.7")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Validation failed", body["error"])

		details := body["details"].([]any)
		require.Len(t, details, 2)
		assert.Equal(t, "email", details[0].(map[string]any)["field"])
		assert.Equal(t, "message", details[1].(map[string]any)["field"])
		assert.Empty(t, sender.sent())
	})

	t.Run("script tags never reach the notification email", func(t *testing.T) {
		sender := &captureSender{}
		router := newTestRouter(t, sender)

		rec := post(t, router, "/rate-request",
			`{"name":"<script>alert(1)</script>John","email":"john@example.com","message":"Need quote for shipping <img src=x onerror=alert(1)>"}`,
			"203.0.113.7")

		require.Equal(t, http.StatusOK, rec.Code)

		messages := sender.sent()
		require.Len(t, messages, 1)
		assert.NotContains(t, messages[0].HTMLBody, "<script>")
		assert.NotContains(t, messages[0].HTMLBody, "onerror")
		assert.NotContains(t, messages[0].Subject, "<script>")
		assert.Contains(t, messages[0].HTMLBody, "John")
	})

	t.Run("mail failure is invisible to the caller", func(t *testing.T) {
		sender := &captureSender{err: mailer.ErrSendFailed}
		router := newTestRouter(t, sender)

		rec := post(t, router, "/rate-request",
			`{"name":"John Doe","email":"john@example.com","message":"Need quote for shipping"}`,
			"203.0.113.7")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
	})
}

func TestContactEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("short subject rejected with itemized detail", func(t *testing.T) {
		router := newTestRouter(t, &captureSender{})

		rec := post(t, router, "/contact",
			`{"name":"Jane Smith","email":"jane@example.com","subject":"Hi","message":"I would like to know more about your services"}`,
			"203.0.113.8")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Validation failed", body["error"])

		details := body["details"].([]any)
		require.Len(t, details, 1)
		detail := details[0].(map[string]any)
		assert.Equal(t, "subject", detail["field"])
		assert.Contains(t, detail["message"], "3 characters")
	})

	t.Run("valid message notifies the contact inbox", func(t *testing.T) {
		sender := &captureSender{}
		router := newTestRouter(t, sender)

		rec := post(t, router, "/contact",
			`{"name":"Jane Smith","email":"jane@example.com","subject":"Sailing schedules","message":"I would like to know more about your services"}`,
			"203.0.113.8")

		require.Equal(t, http.StatusOK, rec.Code)

		messages := sender.sent()
		require.Len(t, messages, 1)
		assert.Equal(t, "hello@harborline.test", messages[0].To)
		assert.Equal(t, "jane@example.com", messages[0].ReplyTo)
		assert.Contains(t, messages[0].Subject, "Sailing schedules")
	})
}

func TestNewsletterEndpoints(t *testing.T) {
	t.Parallel()

	t.Run("subscribe succeeds with email only", func(t *testing.T) {
		sender := &captureSender{}
		router := newTestRouter(t, sender)

		rec := post(t, router, "/newsletter/subscribe",
			`{"email":"reader@example.com"}`, "203.0.113.9")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])

		messages := sender.sent()
		require.Len(t, messages, 1)
		assert.Equal(t, "news@harborline.test", messages[0].To)
		assert.Empty(t, messages[0].ReplyTo)
		assert.Contains(t, messages[0].Subject, "reader@example.com")
	})

	t.Run("unsubscribe succeeds", func(t *testing.T) {
		sender := &captureSender{}
		router := newTestRouter(t, sender)

		rec := post(t, router, "/newsletter/unsubscribe",
			`{"email":"reader@example.com"}`, "203.0.113.9")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
		assert.Contains(t, body["message"], "unsubscribed")
	})

	t.Run("unsubscribe with malformed body yields 500", func(t *testing.T) {
		router := newTestRouter(t, &captureSender{})

		rec := post(t, router, "/newsletter/unsubscribe", `invalid json{`, "203.0.113.9")

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeBody(t, rec)
		assert.NotEmpty(t, body["error"])
	})
}

func TestRateLimiting(t *testing.T) {
	t.Parallel()

	t.Run("sixth request within the window is rejected", func(t *testing.T) {
		router := newTestRouter(t, &captureSender{})

		var rejected int
		for range 6 {
			rec := post(t, router, "/newsletter/subscribe",
				`{"email":"reader@example.com"}`, "192.168.3.100")
			if rec.Code == http.StatusTooManyRequests {
				rejected++
				body := decodeBody(t, rec)
				assert.Contains(t, body["error"], "Rate limit")
				assert.NotEmpty(t, rec.Header().Get("Retry-After"))
			}
		}
		assert.Equal(t, 1, rejected)
	})

	t.Run("five requests all pass", func(t *testing.T) {
		router := newTestRouter(t, &captureSender{})

		for i := range 5 {
			rec := post(t, router, "/newsletter/subscribe",
				`{"email":"reader@example.com"}`, "192.168.3.101")
			assert.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
		}
	})

	t.Run("quota is shared across endpoints per identity", func(t *testing.T) {
		router := newTestRouter(t, &captureSender{})

		for range 5 {
			post(t, router, "/contact",
				`{"name":"Jane Smith","email":"jane@example.com","subject":"Schedules","message":"I would like to know more"}`,
				"192.168.3.102")
		}

		rec := post(t, router, "/rate-request",
			`{"name":"John Doe","email":"john@example.com","message":"Need quote for shipping"}`,
			"192.168.3.102")
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})

	t.Run("headerless clients share the anonymous bucket", func(t *testing.T) {
		router := newTestRouter(t, &captureSender{})

		var rejected int
		for range 6 {
			rec := post(t, router, "/newsletter/subscribe", `{"email":"reader@example.com"}`, "")
			if rec.Code == http.StatusTooManyRequests {
				rejected++
			}
		}
		assert.Equal(t, 1, rejected)
	})

	t.Run("malformed bodies still consume quota", func(t *testing.T) {
		router := newTestRouter(t, &captureSender{})

		for range 5 {
			rec := post(t, router, "/contact", `not json`, "192.168.3.103")
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
		}

		rec := post(t, router, "/contact", `not json`, "192.168.3.103")
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})
}
