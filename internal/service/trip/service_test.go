package trip

import (
	"context"
	"errors"
	"testing"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/adapter/store"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/models"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/types"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/service/session"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/service/settings"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger"
)

type fixture struct {
	trips    *Service
	sessions *session.Service
	settings *settings.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	kv := store.NewMemoryKV()
	log := logger.InitLogger("test", logger.LevelError)

	sessionService := session.NewService(store.NewSessionRepo(kv), nil, log)
	settingsService := settings.NewService(store.NewSettingsRepo(kv), log)
	tripService := NewService(store.NewTripRepo(kv), settingsService, sessionService, log)

	return &fixture{
		trips:    tripService,
		sessions: sessionService,
		settings: settingsService,
	}
}

func (f *fixture) configure(t *testing.T) {
	t.Helper()
	_, err := f.settings.Update(context.Background(), models.Settings{
		Driver:      "Maria Lopez",
		Vehicle:     "Nissan NP300",
		FuelEconomy: 10,
		FuelPrice:   25,
	})
	if err != nil {
		t.Fatalf("configure settings: %v", err)
	}
}

func (f *fixture) openDay(t *testing.T, odometer float64) {
	t.Helper()
	if _, err := f.sessions.Open(context.Background(), odometer); err != nil {
		t.Fatalf("open workday: %v", err)
	}
}

func TestStart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.configure(t)
	f.openDay(t, 500)

	started, err := f.trips.Start(ctx, StartInput{
		Destination:   "warehouse",
		Notes:         "pallet pickup",
		StartOdometer: 500,
	})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if started.Status != types.TripInProgress {
		t.Fatalf("expected IN_PROGRESS, got %s", started.Status)
	}
	if started.ID.IsNil() {
		t.Fatalf("trip must get an ID")
	}

	if _, err := f.trips.Start(ctx, StartInput{Destination: "other", StartOdometer: 500}); !errors.Is(err, types.ErrTripInProgress) {
		t.Fatalf("expected ErrTripInProgress, got %v", err)
	}
}

func TestStart_Preconditions(t *testing.T) {
	ctx := context.Background()

	t.Run("closed day", func(t *testing.T) {
		f := newFixture(t)
		f.configure(t)
		if _, err := f.trips.Start(ctx, StartInput{Destination: "x", StartOdometer: 0}); !errors.Is(err, types.ErrDayNotOpen) {
			t.Fatalf("expected ErrDayNotOpen, got %v", err)
		}
	})

	t.Run("unconfigured", func(t *testing.T) {
		f := newFixture(t)
		f.openDay(t, 0)
		if _, err := f.trips.Start(ctx, StartInput{Destination: "x", StartOdometer: 0}); !errors.Is(err, types.ErrNotConfigured) {
			t.Fatalf("expected ErrNotConfigured, got %v", err)
		}
	})

	t.Run("empty destination", func(t *testing.T) {
		f := newFixture(t)
		f.configure(t)
		f.openDay(t, 0)
		if _, err := f.trips.Start(ctx, StartInput{Destination: "  ", StartOdometer: 0}); !errors.Is(err, types.ErrEmptyDestination) {
			t.Fatalf("expected ErrEmptyDestination, got %v", err)
		}
	})
}

func TestStart_LowOdometerWarning(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.configure(t)
	f.openDay(t, 500)

	_, err := f.trips.Start(ctx, StartInput{Destination: "downtown", StartOdometer: 450})
	var warning *types.LowOdometerWarning
	if !errors.As(err, &warning) {
		t.Fatalf("expected LowOdometerWarning, got %v", err)
	}
	if warning.Entered != 450 || warning.Suggested != 500 {
		t.Fatalf("unexpected warning values: %+v", warning)
	}

	// no trip was created
	active, err := f.trips.Active(ctx)
	if err != nil {
		t.Fatalf("active failed: %v", err)
	}
	if active != nil {
		t.Fatalf("warned start must not create a trip")
	}

	// confirming the same input goes through
	started, err := f.trips.Start(ctx, StartInput{Destination: "downtown", StartOdometer: 450, ConfirmLowOdometer: true})
	if err != nil {
		t.Fatalf("confirmed start failed: %v", err)
	}
	if started.StartOdometer != 450 {
		t.Fatalf("confirmed start must use the entered reading")
	}
}

func TestFinish(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.configure(t)
	f.openDay(t, 500)

	if _, err := f.trips.Finish(ctx, FinishInput{EndOdometer: 550}); !errors.Is(err, types.ErrNoActiveTrip) {
		t.Fatalf("expected ErrNoActiveTrip, got %v", err)
	}

	if _, err := f.trips.Start(ctx, StartInput{Destination: "plant", StartOdometer: 500}); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	if _, err := f.trips.Finish(ctx, FinishInput{EndOdometer: 500}); !errors.Is(err, types.ErrFinalNotGreater) {
		t.Fatalf("expected ErrFinalNotGreater for equal reading, got %v", err)
	}
	if _, err := f.trips.Finish(ctx, FinishInput{EndOdometer: 499}); !errors.Is(err, types.ErrFinalNotGreater) {
		t.Fatalf("expected ErrFinalNotGreater for lower reading, got %v", err)
	}

	finished, err := f.trips.Finish(ctx, FinishInput{EndOdometer: 550})
	if err != nil {
		t.Fatalf("finish failed: %v", err)
	}
	if finished.Status != types.TripCompleted {
		t.Fatalf("expected COMPLETED, got %s", finished.Status)
	}
	if *finished.Distance != 50 || *finished.FuelUsed != 5 || *finished.Cost != 125 {
		t.Fatalf("unexpected metrics: distance=%v fuel=%v cost=%v", *finished.Distance, *finished.FuelUsed, *finished.Cost)
	}
	if *finished.Comments != "no incidents" {
		t.Fatalf("blank comments must default, got %q", *finished.Comments)
	}

	// the active slot is cleared and the log holds the trip
	active, err := f.trips.Active(ctx)
	if err != nil {
		t.Fatalf("active failed: %v", err)
	}
	if active != nil {
		t.Fatalf("finish must clear the active slot")
	}

	trips, err := f.trips.Log(ctx)
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	if len(trips) != 1 || trips[0].ID != finished.ID {
		t.Fatalf("finished trip missing from the log")
	}
}

func TestFinish_MetricsAreFrozen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.configure(t)
	f.openDay(t, 500)

	if _, err := f.trips.Start(ctx, StartInput{Destination: "plant", StartOdometer: 500}); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	finished, err := f.trips.Finish(ctx, FinishInput{EndOdometer: 550})
	if err != nil {
		t.Fatalf("finish failed: %v", err)
	}

	// change fuel settings afterwards
	if _, err := f.settings.Update(ctx, models.Settings{
		Driver: "Maria Lopez", Vehicle: "Nissan NP300", FuelEconomy: 5, FuelPrice: 50,
	}); err != nil {
		t.Fatalf("update settings: %v", err)
	}

	trips, err := f.trips.Log(ctx)
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	if *trips[0].Cost != *finished.Cost {
		t.Fatalf("completed trip metrics must not change when settings do")
	}
}

func TestSuggested(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.configure(t)

	suggested, err := f.trips.Suggested(ctx)
	if err != nil {
		t.Fatalf("suggested failed: %v", err)
	}
	if suggested != 0 {
		t.Fatalf("fresh store should suggest 0, got %v", suggested)
	}

	f.openDay(t, 500)
	suggested, _ = f.trips.Suggested(ctx)
	if suggested != 500 {
		t.Fatalf("open day should suggest its start reading, got %v", suggested)
	}

	if _, err := f.trips.Start(ctx, StartInput{Destination: "a", StartOdometer: 500}); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := f.trips.Finish(ctx, FinishInput{EndOdometer: 560}); err != nil {
		t.Fatalf("finish failed: %v", err)
	}

	suggested, _ = f.trips.Suggested(ctx)
	if suggested != 560 {
		t.Fatalf("should suggest the latest end reading, got %v", suggested)
	}
}

func TestCancelActive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.configure(t)
	f.openDay(t, 100)

	if err := f.trips.CancelActive(ctx); !errors.Is(err, types.ErrNoActiveTrip) {
		t.Fatalf("expected ErrNoActiveTrip, got %v", err)
	}

	if _, err := f.trips.Start(ctx, StartInput{Destination: "a", StartOdometer: 100}); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := f.trips.CancelActive(ctx); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	trips, err := f.trips.Log(ctx)
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	if len(trips) != 0 {
		t.Fatalf("cancelled trip must not be recorded")
	}
}

func TestRecoverGhost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.configure(t)
	f.openDay(t, 100)

	// idempotent when nothing is stuck
	recovered, err := f.trips.RecoverGhost(ctx)
	if err != nil {
		t.Fatalf("recover failed: %v", err)
	}
	if recovered {
		t.Fatalf("nothing to recover yet")
	}

	if _, err := f.trips.Start(ctx, StartInput{Destination: "a", StartOdometer: 100}); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	recovered, err = f.trips.RecoverGhost(ctx)
	if err != nil {
		t.Fatalf("recover failed: %v", err)
	}
	if !recovered {
		t.Fatalf("expected ghost trip to be discarded")
	}

	recovered, err = f.trips.RecoverGhost(ctx)
	if err != nil {
		t.Fatalf("second recover failed: %v", err)
	}
	if recovered {
		t.Fatalf("second recover must be a no-op")
	}
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.configure(t)
	f.openDay(t, 100)

	if _, err := f.trips.Start(ctx, StartInput{Destination: "a", StartOdometer: 100}); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	finished, err := f.trips.Finish(ctx, FinishInput{EndOdometer: 120})
	if err != nil {
		t.Fatalf("finish failed: %v", err)
	}

	if err := f.trips.Delete(ctx, finished.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	trips, _ := f.trips.Log(ctx)
	if len(trips) != 0 {
		t.Fatalf("deleted trip still in log")
	}

	// deleting an absent ID is a no-op
	if err := f.trips.Delete(ctx, finished.ID); err != nil {
		t.Fatalf("delete of absent ID must be a no-op, got %v", err)
	}
}
