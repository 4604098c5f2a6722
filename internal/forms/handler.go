package forms

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/harborline/siteforms/pkg/clientip"
	"github.com/harborline/siteforms/pkg/logger"
	"github.com/harborline/siteforms/pkg/ratelimit"
	"github.com/harborline/siteforms/pkg/validate"
)

// Handler serves the form-submission endpoints. Every endpoint runs the
// same pipeline in a fixed order: rate-limit check, JSON parse, field
// validation, sanitization, best-effort notification, response.
type Handler struct {
	limiter  ratelimit.Limiter
	notifier *Notifier
	log      *slog.Logger
}

func NewHandler(limiter ratelimit.Limiter, notifier *Notifier, log *slog.Logger) *Handler {
	return &Handler{
		limiter:  limiter,
		notifier: notifier,
		log:      log,
	}
}

// Router mounts the form endpoints.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Post("/rate-request", h.rateRequest)
	r.Post("/contact", h.contact)
	r.Route("/newsletter", func(r chi.Router) {
		r.Post("/subscribe", h.subscribe)
		r.Post("/unsubscribe", h.unsubscribe)
	})
	return r
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error   string           `json:"error"`
	Details []validate.Issue `json:"details,omitempty"`
}

func (h *Handler) rateRequest(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r) {
		return
	}

	p, err := decodePayload(r)
	if err != nil {
		h.malformed(w, r, err)
		return
	}

	sub, issues := ParseRateRequest(p)
	if len(issues) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Validation failed", Details: issues})
		return
	}

	sub.Sanitize()
	h.notifier.RateRequest(r.Context(), sub)

	writeJSON(w, http.StatusOK, successResponse{
		Success: true,
		Message: "Thank you for your rate request. Our team will get back to you shortly.",
	})
}

func (h *Handler) contact(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r) {
		return
	}

	p, err := decodePayload(r)
	if err != nil {
		h.malformed(w, r, err)
		return
	}

	sub, issues := ParseContact(p)
	if len(issues) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Validation failed", Details: issues})
		return
	}

	sub.Sanitize()
	h.notifier.Contact(r.Context(), sub)

	writeJSON(w, http.StatusOK, successResponse{
		Success: true,
		Message: "Thank you for contacting us. We will respond as soon as possible.",
	})
}

func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r) {
		return
	}

	p, err := decodePayload(r)
	if err != nil {
		h.malformed(w, r, err)
		return
	}

	sub, issues := ParseNewsletterSubscribe(p)
	if len(issues) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Validation failed", Details: issues})
		return
	}

	sub.Sanitize()
	h.notifier.Subscribed(r.Context(), sub)

	writeJSON(w, http.StatusOK, successResponse{
		Success: true,
		Message: "You have been subscribed to our newsletter.",
	})
}

func (h *Handler) unsubscribe(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r) {
		return
	}

	p, err := decodePayload(r)
	if err != nil {
		h.malformed(w, r, err)
		return
	}

	sub, issues := ParseNewsletterUnsubscribe(p)
	if len(issues) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Validation failed", Details: issues})
		return
	}

	h.notifier.Unsubscribed(r.Context(), sub)

	writeJSON(w, http.StatusOK, successResponse{
		Success: true,
		Message: "You have been unsubscribed from our newsletter.",
	})
}

// allow runs the rate-limit check. It happens before the body is even
// parsed, so invalid payloads still consume quota and cannot be used to
// probe endpoints for free. Limiter errors fail open: dropping legitimate
// submissions over a limiter fault is worse than letting a burst through.
func (h *Handler) allow(w http.ResponseWriter, r *http.Request) bool {
	identity := clientip.FromRequest(r)

	result, err := h.limiter.Allow(r.Context(), identity)
	if err != nil {
		h.log.ErrorContext(r.Context(), "rate limiter check failed", logger.Error(err))
		return true
	}

	if !result.Allowed {
		retryAfter := int(result.RetryAfter().Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		writeJSON(w, http.StatusTooManyRequests, errorResponse{
			Error: "Rate limit exceeded. Please try again later.",
		})
		return false
	}
	return true
}

// malformed answers an unparseable body. The generic message is deliberate;
// parse detail goes to the log, not the caller.
func (h *Handler) malformed(w http.ResponseWriter, r *http.Request, err error) {
	h.log.ErrorContext(r.Context(), "failed to parse request body",
		slog.String("path", r.URL.Path), logger.Error(err))
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Unable to process request"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
