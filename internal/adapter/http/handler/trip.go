package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/adapter/http/handler/dto"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/models"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/types"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/service/trip"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger"
	wrap "github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger/wrapper"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/uuid"
)

type TripService interface {
	Active(ctx context.Context) (*models.Trip, error)
	Log(ctx context.Context) ([]models.Trip, error)
	Suggested(ctx context.Context) (float64, error)
	Start(ctx context.Context, in trip.StartInput) (*models.Trip, error)
	Finish(ctx context.Context, in trip.FinishInput) (*models.Trip, error)
	CancelActive(ctx context.Context) error
	RecoverGhost(ctx context.Context) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Trip struct {
	trips TripService
	l     logger.Logger
}

func NewTrip(service TripService, l logger.Logger) *Trip {
	return &Trip{
		trips: service,
		l:     l,
	}
}

// List godoc
// @Summary      Trip log
// @Description  Returns completed trips, most recent first
// @Tags         Trips
// @Produce      json
// @Success      200  {object}  map[string]any
// @Security     BearerAuth
// @Router       /trips [get]
func (h *Trip) List(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "list_trips")

	trips, err := h.trips.Log(ctx)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to load trip log", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"trips": trips}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Active godoc
// @Summary      Trip in progress
// @Description  Returns the trip in progress, null when there is none
// @Tags         Trips
// @Produce      json
// @Success      200  {object}  map[string]any
// @Security     BearerAuth
// @Router       /trips/active [get]
func (h *Trip) Active(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "get_active_trip")

	active, err := h.trips.Active(ctx)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to load active trip", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"trip": active}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Suggested godoc
// @Summary      Suggested start odometer
// @Description  Returns the reading to prefill for the next trip
// @Tags         Trips
// @Produce      json
// @Success      200  {object}  map[string]any
// @Security     BearerAuth
// @Router       /trips/suggested-odometer [get]
func (h *Trip) Suggested(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "get_suggested_odometer")

	suggested, err := h.trips.Suggested(ctx)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to compute suggested odometer", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"suggested_odometer": suggested}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Start godoc
// @Summary      Start trip
// @Description  Starts a new trip. A start reading below the suggested one returns a low_odometer warning until confirm_low_odometer is set.
// @Tags         Trips
// @Accept       json
// @Produce      json
// @Param        request  body      dto.StartTripRequest  true  "Trip details"
// @Success      201      {object}  map[string]any
// @Failure      409      {object}  map[string]any
// @Failure      422      {object}  map[string]any
// @Security     BearerAuth
// @Router       /trips [post]
func (h *Trip) Start(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "start_trip")

	req := &dto.StartTripRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	started, err := h.trips.Start(ctx, req.ToInput())
	if err != nil {
		var warning *types.LowOdometerWarning
		if errors.As(err, &warning) {
			errorResponse(w, http.StatusConflict, envelope{
				"warning":   "low_odometer",
				"message":   warning.Error(),
				"entered":   warning.Entered,
				"suggested": warning.Suggested,
			})
			return
		}

		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to start trip", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"trip": started}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Finish godoc
// @Summary      Finish trip
// @Description  Completes the trip in progress, freezing distance, fuel and cost
// @Tags         Trips
// @Accept       json
// @Produce      json
// @Param        request  body      dto.FinishTripRequest  true  "Final odometer and comments"
// @Success      200      {object}  map[string]any
// @Failure      409      {object}  map[string]any
// @Failure      422      {object}  map[string]any
// @Security     BearerAuth
// @Router       /trips/finish [post]
func (h *Trip) Finish(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "finish_trip")

	req := &dto.FinishTripRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	finished, err := h.trips.Finish(ctx, req.ToInput())
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to finish trip", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"trip": finished}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Cancel godoc
// @Summary      Cancel trip
// @Description  Discards the trip in progress without recording it
// @Tags         Trips
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      409  {object}  map[string]any
// @Security     BearerAuth
// @Router       /trips/cancel [post]
func (h *Trip) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "cancel_trip")

	if err := h.trips.CancelActive(ctx); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to cancel trip", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"message": "trip cancelled"}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Recover godoc
// @Summary      Recover ghost trip
// @Description  Clears a leftover in-progress trip. Safe to call when none exists.
// @Tags         Trips
// @Produce      json
// @Success      200  {object}  map[string]any
// @Security     BearerAuth
// @Router       /trips/recover [post]
func (h *Trip) Recover(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "recover_ghost_trip")

	recovered, err := h.trips.RecoverGhost(ctx)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to recover ghost trip", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"recovered": recovered}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Delete godoc
// @Summary      Delete trip
// @Description  Removes a completed trip from the log. Deleting an unknown ID is a no-op.
// @Tags         Trips
// @Produce      json
// @Param        trip_id  path      string  true  "Trip ID"
// @Success      200      {object}  map[string]any
// @Failure      422      {object}  map[string]any
// @Security     BearerAuth
// @Router       /trips/{trip_id} [delete]
func (h *Trip) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "delete_trip")

	id, err := uuid.Parse(r.PathValue("trip_id"))
	if err != nil {
		badRequestResponse(w, "trip_id must be a valid UUID")
		return
	}

	if err := h.trips.Delete(ctx, id); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to delete trip", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"message": "trip deleted"}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
