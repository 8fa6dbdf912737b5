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

type SessionRepo struct {
	kv KV
}

func NewSessionRepo(kv KV) *SessionRepo {
	return &SessionRepo{kv: kv}
}

// Get returns the workday session. A session that was never persisted is the
// implicit Closed one.
func (r *SessionRepo) Get(ctx context.Context) (models.WorkdaySession, error) {
	const op = "SessionRepo.Get"

	raw, err := r.kv.Get(ctx, types.KeySession)
	if err != nil {
		if errors.Is(err, types.ErrKeyNotFound) {
			return models.ClosedSession(), nil
		}
		return models.WorkdaySession{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	var session models.WorkdaySession
	if err := json.Unmarshal(raw, &session); err != nil {
		return models.WorkdaySession{}, wrap.Error(ctx, fmt.Errorf("%s: decode: %w", op, err))
	}

	return session, nil
}

func (r *SessionRepo) Save(ctx context.Context, session models.WorkdaySession) error {
	const op = "SessionRepo.Save"

	raw, err := json.Marshal(session)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: encode: %w", op, err))
	}

	if err := r.kv.Set(ctx, types.KeySession, raw); err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	return nil
}
