package middleware

import "net/http"

// CORS answers cross-origin requests for the configured origin. Credentials
// are only allowed for a concrete origin, never for the wildcard.
type CORS struct {
	origin string
}

// NewCORS creates a new CORS middleware for one allowed origin.
func NewCORS(origin string) *CORS {
	return &CORS{origin: origin}
}

// Handler sets CORS headers and short-circuits preflight requests.
func (c *CORS) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c.origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", c.origin)
			if c.origin != "*" {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
		}

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
