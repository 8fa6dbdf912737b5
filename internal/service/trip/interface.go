package trip

import (
	"context"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/models"
)

type TripRepo interface {
	// Active returns the trip in progress, or nil when there is none.
	Active(ctx context.Context) (*models.Trip, error)
	// SaveActive persists the trip in progress; nil clears the slot.
	SaveActive(ctx context.Context, trip *models.Trip) error
	// Log returns the completed trip log, most recent first.
	Log(ctx context.Context) ([]models.Trip, error)
	SaveLog(ctx context.Context, trips []models.Trip) error
	// Complete writes the updated log and clears the active slot atomically.
	Complete(ctx context.Context, trips []models.Trip) error
}

type SettingsSource interface {
	Get(ctx context.Context) (models.Settings, error)
}

type SessionSource interface {
	Current(ctx context.Context) (models.WorkdaySession, error)
}
