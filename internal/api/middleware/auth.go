package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/zatekoja/smart-health-assistant/internal/application/services"
	apperrors "github.com/zatekoja/smart-health-assistant/pkg/errors"
)

type contextKey string

const principalKey contextKey = "principal"

// PrincipalFromContext returns the authenticated username stored by
// AuthMiddleware, if any.
func PrincipalFromContext(ctx context.Context) (string, bool) {
	principal, ok := ctx.Value(principalKey).(string)
	return principal, ok
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the token subject in the request context.
func AuthMiddleware(auth *services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w, "Unauthorized: No token provided")
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			principal, err := auth.VerifyToken(token)
			if err != nil {
				message := "Invalid token."
				if appErr, ok := err.(*apperrors.AppError); ok {
					message = appErr.Message
				}
				unauthorized(w, message)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
