package report

import (
	"context"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/models"
)

type TripSource interface {
	Log(ctx context.Context) ([]models.Trip, error)
}

type SettingsSource interface {
	Get(ctx context.Context) (models.Settings, error)
}
