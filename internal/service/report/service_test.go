package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/models"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/types"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/uuid"
)

type tripSourceStub struct {
	trips []models.Trip
}

func (s *tripSourceStub) Log(ctx context.Context) ([]models.Trip, error) {
	return s.trips, nil
}

type settingsSourceStub struct {
	settings models.Settings
}

func (s *settingsSourceStub) Get(ctx context.Context) (models.Settings, error) {
	return s.settings, nil
}

func completedTrip(t *testing.T, day string, start, end float64) models.Trip {
	t.Helper()

	id, err := uuid.New()
	if err != nil {
		t.Fatalf("uuid: %v", err)
	}

	startedAt, err := time.ParseInLocation("2006-01-02 15:04", day+" 08:00", time.Local)
	if err != nil {
		t.Fatalf("parse started at: %v", err)
	}
	endedAt := startedAt.Add(45 * time.Minute)

	distance := end - start
	fuelUsed := distance / 10
	cost := fuelUsed * 25
	comments := "no incidents"

	return models.Trip{
		ID:            id,
		DayKey:        types.DayKey(day),
		StartedAt:     startedAt,
		EndedAt:       &endedAt,
		StartOdometer: start,
		EndOdometer:   &end,
		Destination:   "warehouse",
		Notes:         "",
		Status:        types.TripCompleted,
		Distance:      &distance,
		FuelUsed:      &fuelUsed,
		Cost:          &cost,
		Comments:      &comments,
	}
}

func newTestService(trips ...models.Trip) *Service {
	return NewService(
		&tripSourceStub{trips: trips},
		&settingsSourceStub{settings: models.Settings{
			Driver: "Maria Lopez", Vehicle: "Nissan NP300", FuelEconomy: 10, FuelPrice: 25,
		}},
		logger.InitLogger("test", logger.LevelError),
	)
}

func TestScopeFromParams(t *testing.T) {
	if _, err := ScopeFromParams("weekly", "", "", ""); !errors.Is(err, types.ErrInvalidScope) {
		t.Fatalf("expected ErrInvalidScope, got %v", err)
	}
	if _, err := ScopeFromParams("day", "15-08-2026", "", ""); !errors.Is(err, types.ErrInvalidDayKey) {
		t.Fatalf("expected ErrInvalidDayKey, got %v", err)
	}
	if _, err := ScopeFromParams("range", "", "2026-08-10", "2026-08-01"); !errors.Is(err, types.ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
	if _, err := ScopeFromParams("range", "", "2026-08-01", "bad"); !errors.Is(err, types.ErrInvalidDayKey) {
		t.Fatalf("expected ErrInvalidDayKey for bad range end, got %v", err)
	}

	scope, err := ScopeFromParams("day", "2026-08-15", "", "")
	if err != nil {
		t.Fatalf("valid day scope rejected: %v", err)
	}
	if scope.Kind != models.ScopeSingleDay || scope.Day != "2026-08-15" {
		t.Fatalf("unexpected scope: %+v", scope)
	}

	scope, err = ScopeFromParams("range", "", "2026-08-01", "2026-08-01")
	if err != nil {
		t.Fatalf("single-day range rejected: %v", err)
	}
	if scope.Kind != models.ScopeDateRange {
		t.Fatalf("unexpected scope: %+v", scope)
	}
}

func TestExport_ScopeFiltering(t *testing.T) {
	svc := newTestService(
		completedTrip(t, "2026-08-17", 700, 750),
		completedTrip(t, "2026-08-16", 600, 700),
		completedTrip(t, "2026-08-15", 500, 600),
	)
	ctx := context.Background()

	all, err := svc.Export(ctx, models.ReportScope{Kind: models.ScopeAll})
	if err != nil {
		t.Fatalf("export all: %v", err)
	}
	if len(all.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(all.Rows))
	}
	// stored order is preserved, most recent first
	if all.Rows[0][1] != "2026-08-17" || all.Rows[2][1] != "2026-08-15" {
		t.Fatalf("export must preserve log order: %v, %v", all.Rows[0][1], all.Rows[2][1])
	}

	day, err := svc.Export(ctx, models.ReportScope{Kind: models.ScopeSingleDay, Day: "2026-08-16"})
	if err != nil {
		t.Fatalf("export day: %v", err)
	}
	if len(day.Rows) != 1 || day.Rows[0][1] != "2026-08-16" {
		t.Fatalf("day scope filtered wrong rows: %v", day.Rows)
	}

	from, _ := time.ParseInLocation("2006-01-02", "2026-08-15", time.Local)
	to, _ := time.ParseInLocation("2006-01-02", "2026-08-16", time.Local)
	ranged, err := svc.Export(ctx, models.ReportScope{Kind: models.ScopeDateRange, From: from, To: to})
	if err != nil {
		t.Fatalf("export range: %v", err)
	}
	if len(ranged.Rows) != 2 {
		t.Fatalf("range scope expected 2 rows, got %d", len(ranged.Rows))
	}
}

func TestExport_SkipsInProgress(t *testing.T) {
	inProgress := completedTrip(t, "2026-08-17", 700, 750)
	inProgress.Status = types.TripInProgress

	svc := newTestService(inProgress, completedTrip(t, "2026-08-17", 600, 700))

	rep, err := svc.Export(context.Background(), models.ReportScope{Kind: models.ScopeAll})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(rep.Rows) != 1 {
		t.Fatalf("in-progress trips must be excluded, got %d rows", len(rep.Rows))
	}
}

func TestExport_EmptyResult(t *testing.T) {
	svc := newTestService()

	rep, err := svc.Export(context.Background(), models.ReportScope{Kind: models.ScopeAll})
	if err != nil {
		t.Fatalf("empty export must not error: %v", err)
	}
	if !rep.Empty() {
		t.Fatalf("expected empty report")
	}
	if len(rep.Header) == 0 {
		t.Fatalf("empty report still carries the header")
	}
}

func TestExport_Filename(t *testing.T) {
	svc := newTestService(completedTrip(t, "2026-08-15", 500, 600))
	svc.now = func() time.Time {
		return time.Date(2026, 8, 15, 18, 30, 5, 0, time.Local)
	}

	rep, err := svc.Export(context.Background(), models.ReportScope{Kind: models.ScopeSingleDay, Day: "2026-08-15"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	want := "logbook_2026-08-15_20260815_183005.csv"
	if rep.Filename != want {
		t.Fatalf("filename: got %s want %s", rep.Filename, want)
	}
}
