package session

import (
	"context"
	"math"
	"time"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/models"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/types"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger"
	wrap "github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger/wrapper"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/metrics"
)

// Service owns the workday state machine:
//
//	Closed --Open--> Open --Close--> Closed --Reopen--> Open
//
// The session is persisted after every transition; a failed precondition
// writes nothing.
type Service struct {
	repo      SessionRepo
	publisher ClosePublisher
	log       logger.Logger

	now func() time.Time
}

func NewService(repo SessionRepo, publisher ClosePublisher, log logger.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// Current returns the persisted session, implicitly Closed on first use.
func (s *Service) Current(ctx context.Context) (models.WorkdaySession, error) {
	return s.repo.Get(ctx)
}

// Open starts the workday at the given odometer reading.
func (s *Service) Open(ctx context.Context, startOdometer float64) (models.WorkdaySession, error) {
	ctx = wrap.WithAction(ctx, "open_workday")

	if err := validOdometer(startOdometer); err != nil {
		return models.WorkdaySession{}, wrap.Error(ctx, err)
	}

	session, err := s.repo.Get(ctx)
	if err != nil {
		return models.WorkdaySession{}, err
	}
	if session.IsOpen() {
		return models.WorkdaySession{}, wrap.Error(ctx, types.ErrDayAlreadyOpen)
	}

	openedAt := s.now()
	session = models.WorkdaySession{
		Status:        types.SessionOpen,
		OpenedAt:      &openedAt,
		StartOdometer: &startOdometer,
	}

	if err := s.repo.Save(ctx, session); err != nil {
		return models.WorkdaySession{}, err
	}

	s.log.Info(wrap.WithDayKey(ctx, session.DayKey().String()), "workday opened", "start_odometer", startOdometer)
	return session, nil
}

// Close ends the workday. The caller is responsible for resolving any trip
// still in progress first; this service never reaches into trip state.
// A workday-closed event is published best-effort after the state is saved.
func (s *Service) Close(ctx context.Context) (models.WorkdaySession, error) {
	ctx = wrap.WithAction(ctx, "close_workday")

	session, err := s.repo.Get(ctx)
	if err != nil {
		return models.WorkdaySession{}, err
	}
	if !session.IsOpen() {
		return models.WorkdaySession{}, wrap.Error(ctx, types.ErrDayNotOpen)
	}

	dayKey := session.DayKey()
	ctx = wrap.WithDayKey(ctx, dayKey.String())

	closedAt := s.now()
	session = models.WorkdaySession{
		Status:   types.SessionClosed,
		ClosedAt: &closedAt,

		// Snapshot the open state so Reopen can restore it.
		LastOpenedAt:      session.OpenedAt,
		LastStartOdometer: session.StartOdometer,
	}

	if err := s.repo.Save(ctx, session); err != nil {
		return models.WorkdaySession{}, err
	}

	metrics.WorkdaysClosedTotal.Inc()
	s.log.Info(ctx, "workday closed")

	if s.publisher != nil {
		msg := models.WorkdayClosedMessage{
			DayKey:        dayKey,
			ClosedAt:      closedAt,
			CorrelationID: wrap.GetRequestID(ctx),
		}
		if err := s.publisher.PublishWorkdayClosed(ctx, msg); err != nil {
			// Fire-and-forget: the close stands even when the report
			// pipeline is unreachable.
			s.log.Warn(ctx, "failed to publish workday closed event", "err", err.Error())
		}
	}

	return session, nil
}

// Reopen reverts a close, restoring the open-state snapshot taken when the
// day was closed.
func (s *Service) Reopen(ctx context.Context) (models.WorkdaySession, error) {
	ctx = wrap.WithAction(ctx, "reopen_workday")

	session, err := s.repo.Get(ctx)
	if err != nil {
		return models.WorkdaySession{}, err
	}
	if session.IsOpen() {
		return models.WorkdaySession{}, wrap.Error(ctx, types.ErrDayAlreadyOpen)
	}
	if session.ClosedAt == nil || session.LastOpenedAt == nil || session.LastStartOdometer == nil {
		return models.WorkdaySession{}, wrap.Error(ctx, types.ErrNoClosedDay)
	}

	session = models.WorkdaySession{
		Status:        types.SessionOpen,
		OpenedAt:      session.LastOpenedAt,
		StartOdometer: session.LastStartOdometer,
	}

	if err := s.repo.Save(ctx, session); err != nil {
		return models.WorkdaySession{}, err
	}

	s.log.Info(wrap.WithDayKey(ctx, session.DayKey().String()), "workday reopened")
	return session, nil
}

// IsStale reports whether the session is Open but was opened on a different
// calendar day than the reference date. Pure query; drives the pending
// closure alert and never closes anything itself.
func (s *Service) IsStale(ctx context.Context, reference time.Time) (bool, error) {
	session, err := s.repo.Get(ctx)
	if err != nil {
		return false, err
	}
	if !session.IsOpen() || session.OpenedAt == nil {
		return false, nil
	}
	return !types.SameDay(*session.OpenedAt, reference), nil
}

func validOdometer(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return types.ErrOdometerNotANumber
	}
	if v < 0 {
		return types.ErrNegativeOdometer
	}
	return nil
}
