package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/models"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/types"
	wrap "github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger/wrapper"
)

// nullValue marks "no active trip". Kept as an explicit value rather than a
// deleted key so a reload can tell a cleared pointer from a fresh install.
var nullValue = []byte("null")

type TripRepo struct {
	kv KV
}

func NewTripRepo(kv KV) *TripRepo {
	return &TripRepo{kv: kv}
}

// Active returns the in-progress trip, or nil when there is none. An absent
// or malformed entry is treated as "no active trip" rather than failing
// startup: a corrupt pointer must never wedge the whole logbook.
func (r *TripRepo) Active(ctx context.Context) (*models.Trip, error) {
	raw, err := r.kv.Get(ctx, types.KeyActiveTrip)
	if err != nil {
		if errors.Is(err, types.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, wrap.Error(ctx, fmt.Errorf("TripRepo.Active: %w", err))
	}

	if bytes.Equal(bytes.TrimSpace(raw), nullValue) {
		return nil, nil
	}

	var trip models.Trip
	if err := json.Unmarshal(raw, &trip); err != nil {
		return nil, nil
	}
	if trip.Status != types.TripInProgress {
		return nil, nil
	}

	return &trip, nil
}

// SaveActive persists the active-trip pointer; nil clears it.
func (r *TripRepo) SaveActive(ctx context.Context, trip *models.Trip) error {
	const op = "TripRepo.SaveActive"

	raw := nullValue
	if trip != nil {
		var err error
		raw, err = json.Marshal(trip)
		if err != nil {
			return wrap.Error(ctx, fmt.Errorf("%s: encode: %w", op, err))
		}
	}

	if err := r.kv.Set(ctx, types.KeyActiveTrip, raw); err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	return nil
}

// Log returns the completed-trip log, most-recently-completed first.
func (r *TripRepo) Log(ctx context.Context) ([]models.Trip, error) {
	const op = "TripRepo.Log"

	raw, err := r.kv.Get(ctx, types.KeyTripLog)
	if err != nil {
		if errors.Is(err, types.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	var trips []models.Trip
	if err := json.Unmarshal(raw, &trips); err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: decode: %w", op, err))
	}

	return trips, nil
}

func (r *TripRepo) SaveLog(ctx context.Context, trips []models.Trip) error {
	const op = "TripRepo.SaveLog"

	raw, err := json.Marshal(trips)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: encode: %w", op, err))
	}

	if err := r.kv.Set(ctx, types.KeyTripLog, raw); err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	return nil
}

// Complete writes the updated log and clears the active-trip pointer in one
// store operation, so a crash mid-completion cannot leave the trip both in
// the log and still marked active.
func (r *TripRepo) Complete(ctx context.Context, trips []models.Trip) error {
	const op = "TripRepo.Complete"

	raw, err := json.Marshal(trips)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: encode: %w", op, err))
	}

	if err := r.kv.SetAll(ctx, map[string][]byte{
		types.KeyTripLog:    raw,
		types.KeyActiveTrip: nullValue,
	}); err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	return nil
}
