package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestID tags each request with a UUID unless the caller already
// supplied one. The ID is echoed on the response and carried on the request
// header so error bodies can reference it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
			r.Header.Set("X-Request-ID", id)
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}
