package handler

import (
	"context"
	"net/http"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/adapter/http/handler/dto"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/service/auth"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger"
	wrap "github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger/wrapper"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/validator"
)

type AuthService interface {
	Login(ctx context.Context, pin string) (auth.Token, error)
	Verify(ctx context.Context, token string) error
}

type Auth struct {
	auth AuthService
	l    logger.Logger
}

func NewAuth(service AuthService, l logger.Logger) *Auth {
	return &Auth{
		auth: service,
		l:    l,
	}
}

// Login godoc
// @Summary      Operator login
// @Description  Exchanges the operator PIN for a bearer token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      dto.LoginRequest  true  "Operator PIN"
// @Success      200      {object}  map[string]any
// @Failure      401      {object}  map[string]any
// @Router       /auth/login [post]
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "login")

	req := &dto.LoginRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateLogin(v, req)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	token, err := h.auth.Login(ctx, req.PIN)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to login operator", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"access_token": token.AccessToken,
		"expires_at":   token.ExpiresAt,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
