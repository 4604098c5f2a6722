// Package requestid assigns a unique identifier to every inbound request
// and makes it available through the context for log correlation.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type ctxKey struct{}

// Header is the response header carrying the request identifier.
const Header = "X-Request-ID"

// Middleware generates a request ID for each request, echoes it in the
// response headers and stores it in the request context. An inbound
// X-Request-ID is trusted if present so IDs survive proxy hops.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// FromContext returns the request ID stored in ctx, or "" when absent.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}
	return ""
}
