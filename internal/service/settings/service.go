package settings

import (
	"context"
	"math"
	"strings"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/models"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/types"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger"
	wrap "github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger/wrapper"
)

type Service struct {
	repo SettingsRepo
	log  logger.Logger
}

func NewService(repo SettingsRepo, log logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Get returns the stored settings, defaults when none were saved yet.
func (s *Service) Get(ctx context.Context) (models.Settings, error) {
	return s.repo.Get(ctx)
}

// Update validates and persists the full settings document. Updates do not
// touch completed trips: their metrics stay as frozen at completion.
func (s *Service) Update(ctx context.Context, in models.Settings) (models.Settings, error) {
	ctx = wrap.WithAction(ctx, "update_settings")

	in.Driver = strings.TrimSpace(in.Driver)
	in.Vehicle = strings.TrimSpace(in.Vehicle)

	if in.Driver == "" {
		return models.Settings{}, wrap.Error(ctx, types.ErrEmptyDriver)
	}
	if in.Vehicle == "" {
		return models.Settings{}, wrap.Error(ctx, types.ErrEmptyVehicle)
	}
	if math.IsNaN(in.FuelEconomy) || math.IsInf(in.FuelEconomy, 0) || in.FuelEconomy <= 0 {
		return models.Settings{}, wrap.Error(ctx, types.ErrInvalidFuelEconomy)
	}
	if math.IsNaN(in.FuelPrice) || math.IsInf(in.FuelPrice, 0) || in.FuelPrice < 0 {
		return models.Settings{}, wrap.Error(ctx, types.ErrInvalidFuelPrice)
	}

	if err := s.repo.Save(ctx, in); err != nil {
		return models.Settings{}, err
	}

	s.log.Info(ctx, "settings updated", "driver", in.Driver, "vehicle", in.Vehicle)
	return in, nil
}

// Reset wipes all stored state: settings, session, active trip and the log.
// Requires explicit confirmation; there is no undo.
func (s *Service) Reset(ctx context.Context, confirm bool) error {
	ctx = wrap.WithAction(ctx, "factory_reset")

	if !confirm {
		return wrap.Error(ctx, types.ErrResetNotConfirmed)
	}

	if err := s.repo.Reset(ctx); err != nil {
		return err
	}

	s.log.Warn(ctx, "factory reset completed")
	return nil
}
