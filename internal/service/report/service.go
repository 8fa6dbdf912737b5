package report

import (
	"context"
	"time"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/models"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/types"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger"
	wrap "github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger/wrapper"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/metrics"
)

// Service renders CSV exports of the completed trip log. Exports read stored
// values only; no metric is ever recomputed here.
type Service struct {
	trips    TripSource
	settings SettingsSource
	log      logger.Logger

	now func() time.Time
}

func NewService(trips TripSource, settings SettingsSource, log logger.Logger) *Service {
	return &Service{
		trips:    trips,
		settings: settings,
		log:      log,
		now:      time.Now,
	}
}

// ScopeFromParams builds and validates a ReportScope from raw query values.
func ScopeFromParams(scope, day, from, to string) (models.ReportScope, error) {
	switch models.ScopeKind(scope) {
	case models.ScopeAll:
		return models.ReportScope{Kind: models.ScopeAll}, nil

	case models.ScopeSingleDay:
		key := types.DayKey(day)
		if !key.Valid() {
			return models.ReportScope{}, types.ErrInvalidDayKey
		}
		return models.ReportScope{Kind: models.ScopeSingleDay, Day: key}, nil

	case models.ScopeDateRange:
		fromDay, err := time.ParseInLocation("2006-01-02", from, time.Local)
		if err != nil {
			return models.ReportScope{}, types.ErrInvalidDayKey
		}
		toDay, err := time.ParseInLocation("2006-01-02", to, time.Local)
		if err != nil {
			return models.ReportScope{}, types.ErrInvalidDayKey
		}
		if toDay.Before(fromDay) {
			return models.ReportScope{}, types.ErrInvalidDateRange
		}
		return models.ReportScope{Kind: models.ScopeDateRange, From: fromDay, To: toDay}, nil

	default:
		return models.ReportScope{}, types.ErrInvalidScope
	}
}

// Export renders the scope's completed trips as a CSV report. An empty result
// is returned as a Report with zero rows, not an error.
func (s *Service) Export(ctx context.Context, scope models.ReportScope) (*models.Report, error) {
	ctx = wrap.WithAction(ctx, "export_report")

	trips, err := s.trips.Log(ctx)
	if err != nil {
		metrics.ReportsGeneratedTotal.WithLabelValues(string(scope.Kind), "error").Inc()
		return nil, err
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		metrics.ReportsGeneratedTotal.WithLabelValues(string(scope.Kind), "error").Inc()
		return nil, err
	}

	selected := filterTrips(trips, scope)

	generatedAt := s.now()
	report := &models.Report{
		Scope:       scope,
		Filename:    reportFilename(scope, generatedAt),
		GeneratedAt: generatedAt,
		Header:      csvHeader(),
		Rows:        renderRows(selected, settings),
	}

	if report.Empty() {
		metrics.ReportsGeneratedTotal.WithLabelValues(string(scope.Kind), "empty").Inc()
		s.log.Info(ctx, "export matched no trips", "scope", string(scope.Kind))
		return report, nil
	}

	metrics.ReportsGeneratedTotal.WithLabelValues(string(scope.Kind), "ok").Inc()
	s.log.Info(ctx, "report generated", "scope", string(scope.Kind), "rows", len(report.Rows))
	return report, nil
}

// filterTrips keeps completed trips within the scope, preserving the log's
// most-recent-first order.
func filterTrips(trips []models.Trip, scope models.ReportScope) []models.Trip {
	var out []models.Trip
	for _, t := range trips {
		if !t.IsCompleted() {
			continue
		}
		switch scope.Kind {
		case models.ScopeSingleDay:
			if t.DayKey != scope.Day {
				continue
			}
		case models.ScopeDateRange:
			day, err := time.ParseInLocation("2006-01-02", t.DayKey.String(), time.Local)
			if err != nil {
				continue
			}
			if day.Before(scope.From) || day.After(scope.To) {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

func reportFilename(scope models.ReportScope, generatedAt time.Time) string {
	label := "all"
	switch scope.Kind {
	case models.ScopeSingleDay:
		label = scope.Day.String()
	case models.ScopeDateRange:
		label = scope.From.Format("20060102") + "-" + scope.To.Format("20060102")
	}
	return "logbook_" + label + "_" + generatedAt.Format("20060102_150405") + ".csv"
}
