package middleware

import (
	"context"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger"
)

type (
	TokenVerifier interface {
		Verify(ctx context.Context, token string) error
	}

	Middleware struct {
		auth TokenVerifier
		log  logger.Logger
	}
)

func NewMiddleware(auth TokenVerifier, log logger.Logger) *Middleware {
	return &Middleware{
		auth: auth,
		log:  log,
	}
}
