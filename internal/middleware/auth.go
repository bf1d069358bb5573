package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/streamtube/backend/internal/auth"
	"github.com/streamtube/backend/internal/logging"
)

// AccessVerifier checks an access token and resolves the user it identifies.
type AccessVerifier interface {
	VerifyAccess(token string) (string, error)
}

// Authenticate rejects requests without a valid bearer access token and
// attaches the resolved user identity to the request context. It performs
// pure token verification; the session store is never consulted here.
func Authenticate(verifier AccessVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			logger := logging.FromContext(ctx)

			token := bearerToken(r)
			if token == "" {
				logger.Warn("missing access token", "path", r.URL.Path)
				unauthorized(w)
				return
			}

			userID, err := verifier.VerifyAccess(token)
			if err != nil {
				logger.Warn("access token rejected", "path", r.URL.Path, "error", err)
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUserID(ctx, userID)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "authentication required"})
}
