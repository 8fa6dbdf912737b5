package settings

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/adapter/store"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/models"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/types"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger"
)

func newTestService(t *testing.T) (*Service, *store.MemoryKV) {
	t.Helper()
	kv := store.NewMemoryKV()
	log := logger.InitLogger("test", logger.LevelError)
	return NewService(store.NewSettingsRepo(kv), log), kv
}

func TestGet_Defaults(t *testing.T) {
	svc, _ := newTestService(t)

	settings, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if settings.FuelEconomy != 10 || settings.FuelPrice != 25 {
		t.Fatalf("unexpected defaults: %+v", settings)
	}
	if settings.Configured() {
		t.Fatalf("defaults must not count as configured")
	}
}

func TestUpdate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	updated, err := svc.Update(ctx, models.Settings{
		Driver:      "  Maria Lopez  ",
		Vehicle:     "Nissan NP300",
		FuelEconomy: 12.5,
		FuelPrice:   24.89,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Driver != "Maria Lopez" {
		t.Fatalf("driver must be trimmed, got %q", updated.Driver)
	}
	if !updated.Configured() {
		t.Fatalf("expected configured settings")
	}

	stored, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored != updated {
		t.Fatalf("settings not persisted: %+v", stored)
	}
}

func TestUpdate_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	base := models.Settings{Driver: "M", Vehicle: "V", FuelEconomy: 10, FuelPrice: 25}

	tests := []struct {
		name   string
		mutate func(models.Settings) models.Settings
		want   error
	}{
		{"empty driver", func(s models.Settings) models.Settings { s.Driver = " "; return s }, types.ErrEmptyDriver},
		{"empty vehicle", func(s models.Settings) models.Settings { s.Vehicle = ""; return s }, types.ErrEmptyVehicle},
		{"zero economy", func(s models.Settings) models.Settings { s.FuelEconomy = 0; return s }, types.ErrInvalidFuelEconomy},
		{"negative economy", func(s models.Settings) models.Settings { s.FuelEconomy = -1; return s }, types.ErrInvalidFuelEconomy},
		{"nan economy", func(s models.Settings) models.Settings { s.FuelEconomy = math.NaN(); return s }, types.ErrInvalidFuelEconomy},
		{"negative price", func(s models.Settings) models.Settings { s.FuelPrice = -0.01; return s }, types.ErrInvalidFuelPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Update(ctx, tt.mutate(base)); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	// zero price is allowed
	if _, err := svc.Update(ctx, models.Settings{Driver: "M", Vehicle: "V", FuelEconomy: 10, FuelPrice: 0}); err != nil {
		t.Fatalf("zero fuel price must be accepted: %v", err)
	}
}

func TestReset(t *testing.T) {
	svc, kv := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Update(ctx, models.Settings{Driver: "M", Vehicle: "V", FuelEconomy: 10, FuelPrice: 25}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := kv.Set(ctx, "some_other_key", []byte(`"x"`)); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if err := svc.Reset(ctx, false); !errors.Is(err, types.ErrResetNotConfirmed) {
		t.Fatalf("unconfirmed reset must be refused, got %v", err)
	}

	if err := svc.Reset(ctx, true); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	settings, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("get after reset failed: %v", err)
	}
	if settings.Configured() {
		t.Fatalf("reset must restore defaults, got %+v", settings)
	}
	if _, err := kv.Get(ctx, "some_other_key"); !errors.Is(err, types.ErrKeyNotFound) {
		t.Fatalf("reset must wipe every key, got %v", err)
	}
}
