package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/config"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/types"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/hasher"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger"
	wrap "github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger/wrapper"
)

const subjectOperator = "operator"

// Service authenticates the single operator by PIN and issues bearer tokens.
type Service struct {
	cfg config.AuthConfig
	log logger.Logger

	now func() time.Time
}

func NewService(cfg config.AuthConfig, log logger.Logger) *Service {
	return &Service{
		cfg: cfg,
		log: log,
		now: time.Now,
	}
}

type Token struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Login checks the PIN against the configured hash and returns a signed
// token.
func (s *Service) Login(ctx context.Context, pin string) (Token, error) {
	ctx = wrap.WithAction(ctx, "login")

	if !hasher.Verify(pin, s.cfg.OperatorPINHash) {
		s.log.Warn(ctx, "login rejected")
		return Token{}, wrap.Error(ctx, types.ErrInvalidCredentials)
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.cfg.AccessTokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   subjectOperator,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return Token{}, wrap.Error(ctx, err)
	}

	s.log.Info(ctx, "operator logged in", "expires_at", expiresAt)
	return Token{AccessToken: signed, ExpiresAt: expiresAt}, nil
}

// Verify parses and validates a bearer token.
func (s *Service) Verify(ctx context.Context, tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, types.ErrInvalidToken
			}
			return []byte(s.cfg.JWTSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return wrap.Error(ctx, types.ErrInvalidToken)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject != subjectOperator {
		return wrap.Error(ctx, types.ErrInvalidToken)
	}
	return nil
}
