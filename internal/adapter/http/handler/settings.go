package handler

import (
	"context"
	"net/http"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/adapter/http/handler/dto"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/models"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger"
	wrap "github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger/wrapper"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/validator"
)

type SettingsService interface {
	Get(ctx context.Context) (models.Settings, error)
	Update(ctx context.Context, in models.Settings) (models.Settings, error)
	Reset(ctx context.Context, confirm bool) error
}

type Settings struct {
	settings SettingsService
	l        logger.Logger
}

func NewSettings(service SettingsService, l logger.Logger) *Settings {
	return &Settings{
		settings: service,
		l:        l,
	}
}

// Get godoc
// @Summary      Get settings
// @Description  Returns driver, vehicle and fuel settings
// @Tags         Settings
// @Produce      json
// @Success      200  {object}  map[string]any
// @Security     BearerAuth
// @Router       /settings [get]
func (h *Settings) Get(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "get_settings")

	settings, err := h.settings.Get(ctx)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to load settings", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"settings":   settings,
		"configured": settings.Configured(),
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Update godoc
// @Summary      Update settings
// @Description  Replaces driver, vehicle and fuel settings. Completed trips keep their frozen metrics.
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Param        request  body      dto.UpdateSettingsRequest  true  "New settings"
// @Success      200      {object}  map[string]any
// @Failure      422      {object}  map[string]any
// @Security     BearerAuth
// @Router       /settings [put]
func (h *Settings) Update(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "update_settings")

	req := &dto.UpdateSettingsRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateSettings(v, req)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	settings, err := h.settings.Update(ctx, req.ToModel())
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to update settings", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"settings": settings}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Reset godoc
// @Summary      Factory reset
// @Description  Wipes settings, session and the whole trip log. Requires confirm=true.
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Param        request  body      dto.ResetRequest  true  "Confirmation"
// @Success      200      {object}  map[string]any
// @Failure      422      {object}  map[string]any
// @Security     BearerAuth
// @Router       /admin/reset [post]
func (h *Settings) Reset(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "factory_reset")

	req := &dto.ResetRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	if err := h.settings.Reset(ctx, req.Confirm); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to factory reset", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"message": "all logbook data erased"}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
