package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/adapter/http/handler/dto"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/models"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/types"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger"
	wrap "github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger/wrapper"
)

type SessionService interface {
	Current(ctx context.Context) (models.WorkdaySession, error)
	IsStale(ctx context.Context, reference time.Time) (bool, error)
	Open(ctx context.Context, startOdometer float64) (models.WorkdaySession, error)
	Close(ctx context.Context) (models.WorkdaySession, error)
	Reopen(ctx context.Context) (models.WorkdaySession, error)
}

// TripResolver is the slice of the trip service the close flow needs: the
// session service itself never touches trip state, so resolving an
// in-progress trip before a close happens here.
type TripResolver interface {
	Active(ctx context.Context) (*models.Trip, error)
	CancelActive(ctx context.Context) error
}

type Session struct {
	sessions SessionService
	trips    TripResolver
	l        logger.Logger
}

func NewSession(sessions SessionService, trips TripResolver, l logger.Logger) *Session {
	return &Session{
		sessions: sessions,
		trips:    trips,
		l:        l,
	}
}

// Current godoc
// @Summary      Current workday
// @Description  Returns the workday session state with a flag marking a day left open past midnight
// @Tags         Workday
// @Produce      json
// @Success      200  {object}  map[string]any
// @Security     BearerAuth
// @Router       /workday [get]
func (h *Session) Current(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "get_workday")

	session, err := h.sessions.Current(ctx)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to load session", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	stale, err := h.sessions.IsStale(ctx, time.Now())
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to check staleness", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"workday": session, "stale": stale}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Open godoc
// @Summary      Open workday
// @Description  Opens the workday with the vehicle's current odometer reading
// @Tags         Workday
// @Accept       json
// @Produce      json
// @Param        request  body      dto.OpenWorkdayRequest  true  "Start odometer"
// @Success      201      {object}  map[string]any
// @Failure      409      {object}  map[string]any
// @Failure      422      {object}  map[string]any
// @Security     BearerAuth
// @Router       /workday/open [post]
func (h *Session) Open(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "open_workday")

	req := &dto.OpenWorkdayRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	session, err := h.sessions.Open(ctx, req.StartOdometer)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to open workday", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"workday": session}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Close godoc
// @Summary      Close workday
// @Description  Closes the workday. If a trip is in progress the close is refused until confirm_cancel_active is set, which cancels the trip first.
// @Tags         Workday
// @Accept       json
// @Produce      json
// @Param        request  body      dto.CloseWorkdayRequest  false  "Confirmation"
// @Success      200      {object}  map[string]any
// @Failure      409      {object}  map[string]any
// @Security     BearerAuth
// @Router       /workday/close [post]
func (h *Session) Close(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "close_workday")

	req := &dto.CloseWorkdayRequest{}
	if r.ContentLength > 0 {
		if err := readJSON(w, r, req); err != nil {
			badRequestResponse(w, err.Error())
			return
		}
	}

	active, err := h.trips.Active(ctx)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to check active trip", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	if active != nil {
		if !req.ConfirmCancelActive {
			warning := &types.ActiveTripWarning{Destination: active.Destination}
			errorResponse(w, http.StatusConflict, envelope{
				"warning":     "active_trip",
				"message":     warning.Error(),
				"destination": active.Destination,
			})
			return
		}

		if err := h.trips.CancelActive(ctx); err != nil {
			h.l.Error(wrap.ErrorCtx(ctx, err), "failed to cancel active trip before close", err)
			errorResponse(w, GetCode(err), err.Error())
			return
		}
	}

	session, err := h.sessions.Close(ctx)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to close workday", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"workday": session}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Reopen godoc
// @Summary      Reopen workday
// @Description  Reverts the last close, restoring the day as it was when closed
// @Tags         Workday
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      409  {object}  map[string]any
// @Security     BearerAuth
// @Router       /workday/reopen [post]
func (h *Session) Reopen(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "reopen_workday")

	session, err := h.sessions.Reopen(ctx)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to reopen workday", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"workday": session}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
