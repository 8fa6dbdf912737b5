package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/models"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/types"
	wrap "github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger/wrapper"
)

type SettingsRepo struct {
	kv KV
}

func NewSettingsRepo(kv KV) *SettingsRepo {
	return &SettingsRepo{kv: kv}
}

// Get returns the configuration record, falling back to factory defaults on
// first use.
func (r *SettingsRepo) Get(ctx context.Context) (models.Settings, error) {
	const op = "SettingsRepo.Get"

	raw, err := r.kv.Get(ctx, types.KeySettings)
	if err != nil {
		if errors.Is(err, types.ErrKeyNotFound) {
			return models.DefaultSettings(), nil
		}
		return models.Settings{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	var settings models.Settings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return models.Settings{}, wrap.Error(ctx, fmt.Errorf("%s: decode: %w", op, err))
	}

	return settings, nil
}

func (r *SettingsRepo) Save(ctx context.Context, settings models.Settings) error {
	const op = "SettingsRepo.Save"

	raw, err := json.Marshal(settings)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: encode: %w", op, err))
	}

	if err := r.kv.Set(ctx, types.KeySettings, raw); err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	return nil
}

// Reset wipes the whole store. Only the factory-reset path calls this.
func (r *SettingsRepo) Reset(ctx context.Context) error {
	if err := r.kv.Clear(ctx); err != nil {
		return wrap.Error(ctx, fmt.Errorf("SettingsRepo.Reset: %w", err))
	}
	return nil
}
