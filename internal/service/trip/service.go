package trip

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/models"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/types"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger"
	wrap "github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger/wrapper"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/metrics"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/uuid"
)

const defaultComments = "no incidents"

// Service manages the single trip slot and the completed trip log.
// At most one trip is in progress at any time.
type Service struct {
	repo     TripRepo
	settings SettingsSource
	sessions SessionSource
	log      logger.Logger

	now func() time.Time
}

func NewService(repo TripRepo, settings SettingsSource, sessions SessionSource, log logger.Logger) *Service {
	return &Service{
		repo:     repo,
		settings: settings,
		sessions: sessions,
		log:      log,
		now:      time.Now,
	}
}

type StartInput struct {
	Destination        string
	Notes              string
	StartOdometer      float64
	ConfirmLowOdometer bool
}

type FinishInput struct {
	EndOdometer float64
	Comments    string
}

// Active returns the trip in progress, or nil when there is none.
func (s *Service) Active(ctx context.Context) (*models.Trip, error) {
	return s.repo.Active(ctx)
}

// Log returns completed trips, most recent first.
func (s *Service) Log(ctx context.Context) ([]models.Trip, error) {
	return s.repo.Log(ctx)
}

// Suggested returns the start odometer to prefill for the next trip: the end
// reading of the latest completed trip, else the workday's start reading,
// else zero.
func (s *Service) Suggested(ctx context.Context) (float64, error) {
	trips, err := s.repo.Log(ctx)
	if err != nil {
		return 0, err
	}
	for _, t := range trips {
		if t.EndOdometer != nil {
			return *t.EndOdometer, nil
		}
	}

	session, err := s.sessions.Current(ctx)
	if err != nil {
		return 0, err
	}
	if session.StartOdometer != nil {
		return *session.StartOdometer, nil
	}
	return 0, nil
}

// Start begins a new trip. A start reading below the suggested one returns a
// *types.LowOdometerWarning unless the caller already confirmed it.
func (s *Service) Start(ctx context.Context, in StartInput) (*models.Trip, error) {
	ctx = wrap.WithAction(ctx, "start_trip")

	active, err := s.repo.Active(ctx)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, wrap.Error(ctx, types.ErrTripInProgress)
	}

	session, err := s.sessions.Current(ctx)
	if err != nil {
		return nil, err
	}
	if !session.IsOpen() {
		return nil, wrap.Error(ctx, types.ErrDayNotOpen)
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.Configured() {
		return nil, wrap.Error(ctx, types.ErrNotConfigured)
	}

	if strings.TrimSpace(in.Destination) == "" {
		return nil, wrap.Error(ctx, types.ErrEmptyDestination)
	}
	if math.IsNaN(in.StartOdometer) || math.IsInf(in.StartOdometer, 0) {
		return nil, wrap.Error(ctx, types.ErrOdometerNotANumber)
	}
	if in.StartOdometer < 0 {
		return nil, wrap.Error(ctx, types.ErrNegativeOdometer)
	}

	suggested, err := s.Suggested(ctx)
	if err != nil {
		return nil, err
	}
	if in.StartOdometer < suggested && !in.ConfirmLowOdometer {
		return nil, wrap.Error(ctx, &types.LowOdometerWarning{
			Entered:   in.StartOdometer,
			Suggested: suggested,
		})
	}

	id, err := uuid.New()
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	trip := &models.Trip{
		ID:            id,
		DayKey:        session.DayKey(),
		StartedAt:     s.now(),
		StartOdometer: in.StartOdometer,
		Destination:   strings.TrimSpace(in.Destination),
		Notes:         strings.TrimSpace(in.Notes),
		Status:        types.TripInProgress,
	}

	if err := s.repo.SaveActive(ctx, trip); err != nil {
		return nil, err
	}

	metrics.ActiveTripGauge.Set(1)
	s.log.Info(wrap.WithTripID(ctx, trip.ID.String()), "trip started",
		"destination", trip.Destination, "start_odometer", trip.StartOdometer)
	return trip, nil
}

// Finish completes the trip in progress. Distance, fuel used and cost are
// frozen here with the current fuel settings; the finished trip is prepended
// to the log and the active slot cleared in one write.
func (s *Service) Finish(ctx context.Context, in FinishInput) (*models.Trip, error) {
	ctx = wrap.WithAction(ctx, "finish_trip")

	active, err := s.repo.Active(ctx)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, wrap.Error(ctx, types.ErrNoActiveTrip)
	}
	ctx = wrap.WithTripID(ctx, active.ID.String())

	if math.IsNaN(in.EndOdometer) || math.IsInf(in.EndOdometer, 0) {
		return nil, wrap.Error(ctx, types.ErrOdometerNotANumber)
	}
	if in.EndOdometer <= active.StartOdometer {
		return nil, wrap.Error(ctx, types.ErrFinalNotGreater)
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	m := computeTripMetrics(active.StartOdometer, in.EndOdometer, settings)

	comments := strings.TrimSpace(in.Comments)
	if comments == "" {
		comments = defaultComments
	}

	endedAt := s.now()
	active.EndedAt = &endedAt
	active.EndOdometer = &in.EndOdometer
	active.Status = types.TripCompleted
	active.Distance = &m.Distance
	active.FuelUsed = &m.FuelUsed
	active.Cost = &m.Cost
	active.Comments = &comments

	trips, err := s.repo.Log(ctx)
	if err != nil {
		return nil, err
	}
	trips = append([]models.Trip{*active}, trips...)

	if err := s.repo.Complete(ctx, trips); err != nil {
		return nil, err
	}

	metrics.ActiveTripGauge.Set(0)
	metrics.TripsTotal.WithLabelValues("completed").Inc()
	s.log.Info(ctx, "trip finished",
		"distance", m.Distance, "fuel_used", m.FuelUsed, "cost", m.Cost)
	return active, nil
}

// CancelActive discards the trip in progress without recording it.
func (s *Service) CancelActive(ctx context.Context) error {
	ctx = wrap.WithAction(ctx, "cancel_trip")

	active, err := s.repo.Active(ctx)
	if err != nil {
		return err
	}
	if active == nil {
		return wrap.Error(ctx, types.ErrNoActiveTrip)
	}

	if err := s.repo.SaveActive(ctx, nil); err != nil {
		return err
	}

	metrics.ActiveTripGauge.Set(0)
	metrics.TripsTotal.WithLabelValues("cancelled").Inc()
	s.log.Info(wrap.WithTripID(ctx, active.ID.String()), "trip cancelled",
		"destination", active.Destination)
	return nil
}

// RecoverGhost clears a leftover in-progress trip, e.g. after a crash.
// It is a no-op when nothing is stuck, so it is safe to call repeatedly.
func (s *Service) RecoverGhost(ctx context.Context) (bool, error) {
	ctx = wrap.WithAction(ctx, "recover_ghost_trip")

	active, err := s.repo.Active(ctx)
	if err != nil {
		return false, err
	}
	if active == nil {
		return false, nil
	}

	if err := s.repo.SaveActive(ctx, nil); err != nil {
		return false, err
	}

	metrics.ActiveTripGauge.Set(0)
	metrics.TripsTotal.WithLabelValues("recovered").Inc()
	s.log.Warn(wrap.WithTripID(ctx, active.ID.String()), "ghost trip discarded",
		"destination", active.Destination, "started_at", active.StartedAt)
	return true, nil
}

// Delete removes a completed trip from the log. Deleting an absent ID is a
// no-op.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	ctx = wrap.WithAction(ctx, "delete_trip")

	trips, err := s.repo.Log(ctx)
	if err != nil {
		return err
	}

	kept := trips[:0]
	removed := false
	for _, t := range trips {
		if t.ID == id {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	if !removed {
		return nil
	}

	if err := s.repo.SaveLog(ctx, kept); err != nil {
		return err
	}

	metrics.TripsTotal.WithLabelValues("deleted").Inc()
	s.log.Info(wrap.WithTripID(ctx, id.String()), "trip deleted")
	return nil
}
