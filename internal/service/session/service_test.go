package session

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/adapter/store"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/models"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/types"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger"
)

type publisherStub struct {
	published []models.WorkdayClosedMessage
	err       error
}

func (p *publisherStub) PublishWorkdayClosed(ctx context.Context, msg models.WorkdayClosedMessage) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, msg)
	return nil
}

func newTestService(t *testing.T) (*Service, *publisherStub) {
	t.Helper()
	pub := &publisherStub{}
	log := logger.InitLogger("test", logger.LevelError)
	return NewService(store.NewSessionRepo(store.NewMemoryKV()), pub, log), pub
}

func TestOpen(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	session, err := svc.Open(ctx, 1500)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if !session.IsOpen() {
		t.Fatalf("expected open session, got %s", session.Status)
	}
	if session.StartOdometer == nil || *session.StartOdometer != 1500 {
		t.Fatalf("start odometer not persisted: %+v", session)
	}

	if _, err := svc.Open(ctx, 1600); !errors.Is(err, types.ErrDayAlreadyOpen) {
		t.Fatalf("expected ErrDayAlreadyOpen, got %v", err)
	}
}

func TestOpen_InvalidOdometer(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Open(ctx, -1); !errors.Is(err, types.ErrNegativeOdometer) {
		t.Fatalf("expected ErrNegativeOdometer, got %v", err)
	}
	if _, err := svc.Open(ctx, math.NaN()); !errors.Is(err, types.ErrOdometerNotANumber) {
		t.Fatalf("expected ErrOdometerNotANumber, got %v", err)
	}
	if _, err := svc.Open(ctx, math.Inf(1)); !errors.Is(err, types.ErrOdometerNotANumber) {
		t.Fatalf("expected ErrOdometerNotANumber for +Inf, got %v", err)
	}

	// a failed open must not change state
	session, err := svc.Current(ctx)
	if err != nil {
		t.Fatalf("current failed: %v", err)
	}
	if session.IsOpen() {
		t.Fatalf("failed open leaked state: %+v", session)
	}
}

func TestClose(t *testing.T) {
	svc, pub := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Close(ctx); !errors.Is(err, types.ErrDayNotOpen) {
		t.Fatalf("expected ErrDayNotOpen, got %v", err)
	}

	opened, err := svc.Open(ctx, 1200)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	closed, err := svc.Close(ctx)
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if closed.IsOpen() {
		t.Fatalf("expected closed session, got %s", closed.Status)
	}
	if closed.ClosedAt == nil {
		t.Fatalf("closed session must record ClosedAt")
	}
	if closed.LastStartOdometer == nil || *closed.LastStartOdometer != 1200 {
		t.Fatalf("close must snapshot open state: %+v", closed)
	}

	if len(pub.published) != 1 {
		t.Fatalf("expected one published event, got %d", len(pub.published))
	}
	if pub.published[0].DayKey != types.DayKeyFor(*opened.OpenedAt) {
		t.Fatalf("published wrong day key: %s", pub.published[0].DayKey)
	}
}

func TestClose_PublishFailureDoesNotBlock(t *testing.T) {
	svc, pub := newTestService(t)
	pub.err = errors.New("broker down")
	ctx := context.Background()

	if _, err := svc.Open(ctx, 100); err != nil {
		t.Fatalf("open failed: %v", err)
	}

	closed, err := svc.Close(ctx)
	if err != nil {
		t.Fatalf("close must stand even when publish fails: %v", err)
	}
	if closed.IsOpen() {
		t.Fatalf("expected closed session")
	}
}

func TestReopen(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Reopen(ctx); !errors.Is(err, types.ErrNoClosedDay) {
		t.Fatalf("expected ErrNoClosedDay on fresh session, got %v", err)
	}

	opened, err := svc.Open(ctx, 900)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if _, err := svc.Reopen(ctx); !errors.Is(err, types.ErrDayAlreadyOpen) {
		t.Fatalf("expected ErrDayAlreadyOpen, got %v", err)
	}

	if _, err := svc.Close(ctx); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	reopened, err := svc.Reopen(ctx)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if !reopened.IsOpen() {
		t.Fatalf("expected open session after reopen")
	}
	if reopened.StartOdometer == nil || *reopened.StartOdometer != 900 {
		t.Fatalf("reopen must restore start odometer: %+v", reopened)
	}
	if reopened.OpenedAt == nil || !reopened.OpenedAt.Equal(*opened.OpenedAt) {
		t.Fatalf("reopen must restore OpenedAt")
	}
}

func TestIsStale(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	stale, err := svc.IsStale(ctx, time.Now())
	if err != nil {
		t.Fatalf("isStale failed: %v", err)
	}
	if stale {
		t.Fatalf("closed session must not be stale")
	}

	yesterday := time.Now().Add(-24 * time.Hour)
	svc.now = func() time.Time { return yesterday }
	if _, err := svc.Open(ctx, 100); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	svc.now = time.Now

	stale, err = svc.IsStale(ctx, time.Now())
	if err != nil {
		t.Fatalf("isStale failed: %v", err)
	}
	if !stale {
		t.Fatalf("session opened yesterday must be stale")
	}

	stale, err = svc.IsStale(ctx, yesterday)
	if err != nil {
		t.Fatalf("isStale failed: %v", err)
	}
	if stale {
		t.Fatalf("same-day reference must not be stale")
	}
}
