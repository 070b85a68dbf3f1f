package middleware

import (
	"net/http"
	"net/url"
	"strings"
)

// CORS applies Cross-Origin Resource Sharing headers and answers
// preflight requests.
//
// With no allowed hosts every origin is accepted with a wildcard. Otherwise
// only origins whose host matches an allowed host are echoed back, and
// other cross-origin requests are refused with 403.
func CORS(allowedHosts []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
			h.Set("Access-Control-Expose-Headers", "X-Request-ID")
			h.Set("Access-Control-Max-Age", "3600")

			origin := r.Header.Get("Origin")
			switch {
			case len(allowedHosts) == 0:
				h.Set("Access-Control-Allow-Origin", "*")
			case origin == "":
				// Same-origin or non-browser client
			case isOriginAllowed(origin, allowedHosts):
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Add("Vary", "Origin")
			default:
				writeError(w, http.StatusForbidden, "Origin not allowed")
				return
			}

			// Handle preflight requests
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// isOriginAllowed reports whether the host of origin is one of
// allowedHosts. Ports are ignored unless the allowed host names one.
func isOriginAllowed(origin string, allowedHosts []string) bool {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.ToLower(u.Host)
	hostname := strings.ToLower(u.Hostname())

	for _, allowed := range allowedHosts {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		if allowed == host || allowed == hostname {
			return true
		}
	}
	return false
}
