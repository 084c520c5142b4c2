package middleware

import (
	"context"
	"net/http"
	"strings"

	"arkiv/internal/auth"
	"arkiv/internal/httputil"
)

type contextKey string

const operatorKey contextKey = "operator"

// openPaths are reachable without a token: the health probe and the token
// exchange itself.
var openPaths = map[string]bool{
	"/health":         true,
	"/api/auth/token": true,
}

// Auth validates the session JWT on every request. The token normally
// arrives as a Bearer header; EventSource cannot set headers, so a token
// query parameter is accepted as well.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if openPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			tokenStr := bearerToken(r)
			if tokenStr == "" {
				tokenStr = r.URL.Query().Get("token")
			}
			if tokenStr == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing authentication token")
				return
			}

			claims, err := auth.ValidateToken(secret, tokenStr)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), operatorKey, claims.Operator)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Operator returns the authenticated operator name, if any.
func Operator(ctx context.Context) string {
	op, _ := ctx.Value(operatorKey).(string)
	return op
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
	return parts[1]
}
