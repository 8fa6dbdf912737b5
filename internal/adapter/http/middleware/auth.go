package middleware

import (
	"fmt"
	"net/http"
	"strings"

	wrap "github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger/wrapper"
)

// RequireAuth validates the bearer token before letting the request through.
// WebSocket clients cannot set headers from the browser, so a "token" query
// parameter is accepted as a fallback.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token := ""
		if header := r.Header.Get("Authorization"); header != "" {
			parsed, err := extractBearerToken(header)
			if err != nil {
				errorResponse(w, http.StatusUnauthorized, err.Error())
				return
			}
			token = parsed
		} else {
			token = r.URL.Query().Get("token")
		}

		if token == "" {
			errorResponse(w, http.StatusUnauthorized, "authorization required")
			return
		}

		if err := m.auth.Verify(ctx, token); err != nil {
			m.log.Warn(wrap.ErrorCtx(ctx, err), "rejected request with invalid token")
			errorResponse(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// --- header parser ---
func extractBearerToken(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", fmt.Errorf("invalid Authorization header format")
	}
	return parts[1], nil
}
