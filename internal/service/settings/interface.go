package settings

import (
	"context"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/models"
)

type SettingsRepo interface {
	Get(ctx context.Context) (models.Settings, error)
	Save(ctx context.Context, settings models.Settings) error
	// Reset wipes the whole store, settings included.
	Reset(ctx context.Context) error
}
