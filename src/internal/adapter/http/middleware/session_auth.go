package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/api-sage/voice-banking/src/internal/domain"
	"github.com/api-sage/voice-banking/src/internal/logger"
)

type contextKey string

const accountContextKey contextKey = "authenticated-account"

// Authenticator resolves a session token to the account that owns it.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Account, error)
}

func SessionAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if auth == nil {
				logger.Error("session auth middleware missing authenticator", nil, logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				})
				http.Error(w, "server auth configuration is missing", http.StatusInternalServerError)
				return
			}

			token := bearerToken(r)
			if token == "" {
				logger.Info("session auth middleware unauthorized request", logger.Fields{
					"method":      r.Method,
					"path":        r.URL.Path,
					"credentials": "missing",
				})
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			account, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				logger.Info("session auth middleware unauthorized request", logger.Fields{
					"method":      r.Method,
					"path":        r.URL.Path,
					"credentials": "invalid_or_expired",
				})
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), accountContextKey, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccountFrom returns the account stored by SessionAuth, if any.
func AccountFrom(ctx context.Context) (domain.Account, bool) {
	account, ok := ctx.Value(accountContextKey).(domain.Account)
	return account, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
