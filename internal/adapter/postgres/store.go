package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/types"
	wrap "github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger/wrapper"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/metrics"
	pgdb "github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/postgres"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/trm"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the PostgreSQL implementation of the KV contract: one row per
// aggregate in logbook_state, upserts give last-write-wins per key.
type Store struct {
	db  *pgxpool.Pool
	trm trm.TxManager
}

func NewStore(ctx context.Context, db *pgxpool.Pool, txm trm.TxManager) (*Store, error) {
	s := &Store{db: db, trm: txm}
	if err := s.migrate(ctx); err != nil {
		return nil, fmt.Errorf("store migration failed: %w", err)
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	const query = `
		CREATE TABLE IF NOT EXISTS logbook_state (
			key        TEXT PRIMARY KEY,
			value      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`

	_, err := s.db.Exec(ctx, query)
	return err
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "Store.Get"
	start := time.Now()

	const query = `SELECT value FROM logbook_state WHERE key = $1;`

	var value []byte
	err := TxOrDB(ctx, s.db).QueryRow(ctx, query, key).Scan(&value)
	metrics.RecordStoreOperation("get", err, time.Since(start))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrKeyNotFound
		}
		ctx = wrap.WithAction(ctx, types.ActionStoreQueryFailed)
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w: %w", op, types.ErrStoreFailed, classify(err)))
	}

	return value, nil
}

// classify attaches a recovery hint to errors the operator can act on.
func classify(err error) error {
	if pgdb.IsUndefinedTable(err) {
		return fmt.Errorf("state table missing, restart the service to migrate: %w", err)
	}
	return err
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	const op = "Store.Set"
	start := time.Now()

	err := s.set(ctx, key, value)
	metrics.RecordStoreOperation("set", err, time.Since(start))

	if err != nil {
		ctx = wrap.WithAction(ctx, types.ActionStoreQueryFailed)
		return wrap.Error(ctx, fmt.Errorf("%s: %w: %w", op, types.ErrStoreFailed, classify(err)))
	}
	return nil
}

func (s *Store) set(ctx context.Context, key string, value []byte) error {
	const query = `
		INSERT INTO logbook_state(key, value, updated_at)
		VALUES($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = now();`

	_, err := TxOrDB(ctx, s.db).Exec(ctx, query, key, value)
	return err
}

// SetAll writes every key inside a single transaction.
func (s *Store) SetAll(ctx context.Context, values map[string][]byte) error {
	const op = "Store.SetAll"
	start := time.Now()

	err := s.trm.Do(ctx, func(ctx context.Context) error {
		for key, value := range values {
			if err := s.set(ctx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
	metrics.RecordStoreOperation("set_all", err, time.Since(start))

	if err != nil {
		ctx = wrap.WithAction(ctx, types.ActionStoreQueryFailed)
		return wrap.Error(ctx, fmt.Errorf("%s: %w: %w", op, types.ErrStoreFailed, classify(err)))
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	const op = "Store.Clear"
	start := time.Now()

	const query = `DELETE FROM logbook_state;`

	_, err := TxOrDB(ctx, s.db).Exec(ctx, query)
	metrics.RecordStoreOperation("clear", err, time.Since(start))

	if err != nil {
		ctx = wrap.WithAction(ctx, types.ActionStoreQueryFailed)
		return wrap.Error(ctx, fmt.Errorf("%s: %w: %w", op, types.ErrStoreFailed, classify(err)))
	}
	return nil
}
