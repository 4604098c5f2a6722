package httpserver

import "net/http"

// HealthHandler returns a liveness probe handler that always reports OK.
// The forms service has no backing dependencies to check: notification
// delivery is best-effort by design, so mail provider health never gates
// readiness.
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}
