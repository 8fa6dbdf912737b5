package middleware

import (
	"net/http"

	wrap "github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger/wrapper"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/uuid"
)

const requestIDHeader = "X-Request-Id"

// RequestID injects a request ID into the context, honoring one supplied by
// the client, and echoes it back in the response headers.
func (m *Middleware) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			if id, err := uuid.New(); err == nil {
				requestID = id.String()
			}
		}

		w.Header().Set(requestIDHeader, requestID)

		ctx := wrap.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
