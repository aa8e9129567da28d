package middleware

import (
	"net/http"
	"os"
	"strings"
)

// The API is consumed by a browser frontend on a separate origin, so every
// response needs CORS headers and preflights must short-circuit before auth.
// The surface is JSON-only GET/POST with bearer tokens; nothing else is
// advertised.
const (
	corsMethods = "GET, POST, OPTIONS"
	corsHeaders = "Content-Type, Authorization"
	corsMaxAge  = "600"
)

// originSet holds the configured allowed origins. An empty set means any
// origin is allowed (development default).
type originSet map[string]struct{}

func parseAllowedOrigins() originSet {
	raw := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS"))
	if raw == "" || raw == "*" {
		return nil
	}

	set := originSet{}
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			set[origin] = struct{}{}
		}
	}
	return set
}

func (s originSet) allows(origin string) bool {
	if s == nil {
		return true
	}
	_, ok := s[origin]
	return ok
}

// CORSMiddleware adds CORS headers and answers preflight requests. Origins
// are configured once via ALLOWED_ORIGINS (comma-separated); unset means
// wildcard.
func CORSMiddleware(next http.Handler) http.Handler {
	allowed := parseAllowedOrigins()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" && allowed.allows(origin) {
			if allowed == nil {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", corsMethods)
			w.Header().Set("Access-Control-Allow-Headers", corsHeaders)
		}

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Max-Age", corsMaxAge)
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
