package store

import (
	"context"
	"testing"
	"time"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/models"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/types"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/uuid"
)

func newTrip(t *testing.T, status types.TripStatus) models.Trip {
	t.Helper()

	id, err := uuid.New()
	if err != nil {
		t.Fatalf("uuid: %v", err)
	}
	return models.Trip{
		ID:            id,
		DayKey:        "2026-08-15",
		StartedAt:     time.Now(),
		StartOdometer: 500,
		Destination:   "warehouse",
		Status:        status,
	}
}

func TestTripRepo_ActiveEmpty(t *testing.T) {
	repo := NewTripRepo(NewMemoryKV())
	ctx := context.Background()

	active, err := repo.Active(ctx)
	if err != nil {
		t.Fatalf("active on fresh store failed: %v", err)
	}
	if active != nil {
		t.Fatalf("fresh store must have no active trip")
	}
}

func TestTripRepo_SaveActiveRoundTrip(t *testing.T) {
	repo := NewTripRepo(NewMemoryKV())
	ctx := context.Background()

	trip := newTrip(t, types.TripInProgress)
	if err := repo.SaveActive(ctx, &trip); err != nil {
		t.Fatalf("save active failed: %v", err)
	}

	active, err := repo.Active(ctx)
	if err != nil {
		t.Fatalf("active failed: %v", err)
	}
	if active == nil || active.ID != trip.ID {
		t.Fatalf("active trip not restored: %+v", active)
	}

	// nil clears the slot
	if err := repo.SaveActive(ctx, nil); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	active, err = repo.Active(ctx)
	if err != nil {
		t.Fatalf("active after clear failed: %v", err)
	}
	if active != nil {
		t.Fatalf("cleared slot must read as no active trip")
	}
}

func TestTripRepo_ActiveToleratesCorruptEntry(t *testing.T) {
	kv := NewMemoryKV()
	repo := NewTripRepo(kv)
	ctx := context.Background()

	if err := kv.Set(ctx, types.KeyActiveTrip, []byte("{not json")); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	active, err := repo.Active(ctx)
	if err != nil {
		t.Fatalf("corrupt entry must not error: %v", err)
	}
	if active != nil {
		t.Fatalf("corrupt entry must read as no active trip")
	}
}

func TestTripRepo_ActiveIgnoresCompleted(t *testing.T) {
	repo := NewTripRepo(NewMemoryKV())
	ctx := context.Background()

	trip := newTrip(t, types.TripCompleted)
	if err := repo.SaveActive(ctx, &trip); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	active, err := repo.Active(ctx)
	if err != nil {
		t.Fatalf("active failed: %v", err)
	}
	if active != nil {
		t.Fatalf("a completed trip in the slot is not an active trip")
	}
}

func TestTripRepo_Complete(t *testing.T) {
	repo := NewTripRepo(NewMemoryKV())
	ctx := context.Background()

	inProgress := newTrip(t, types.TripInProgress)
	if err := repo.SaveActive(ctx, &inProgress); err != nil {
		t.Fatalf("save active failed: %v", err)
	}

	inProgress.Status = types.TripCompleted
	if err := repo.Complete(ctx, []models.Trip{inProgress}); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	trips, err := repo.Log(ctx)
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	if len(trips) != 1 || trips[0].ID != inProgress.ID {
		t.Fatalf("completed trip missing from log: %+v", trips)
	}

	active, err := repo.Active(ctx)
	if err != nil {
		t.Fatalf("active failed: %v", err)
	}
	if active != nil {
		t.Fatalf("complete must clear the active slot")
	}
}

func TestSessionRepo_DefaultClosed(t *testing.T) {
	repo := NewSessionRepo(NewMemoryKV())

	session, err := repo.Get(context.Background())
	if err != nil {
		t.Fatalf("get on fresh store failed: %v", err)
	}
	if session.IsOpen() {
		t.Fatalf("fresh store must start closed")
	}
}

func TestSettingsRepo_DefaultAndReset(t *testing.T) {
	kv := NewMemoryKV()
	repo := NewSettingsRepo(kv)
	ctx := context.Background()

	settings, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("get on fresh store failed: %v", err)
	}
	if settings != models.DefaultSettings() {
		t.Fatalf("fresh store must return defaults, got %+v", settings)
	}

	settings.Driver = "Maria"
	settings.Vehicle = "NP300"
	if err := repo.Save(ctx, settings); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	settings, err = repo.Get(ctx)
	if err != nil {
		t.Fatalf("get after reset failed: %v", err)
	}
	if settings != models.DefaultSettings() {
		t.Fatalf("reset must restore defaults, got %+v", settings)
	}
}
