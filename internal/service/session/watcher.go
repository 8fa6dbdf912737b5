package session

import (
	"context"
	"time"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/models"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/types"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger"
	wrap "github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger/wrapper"
)

// StaleWatcher periodically checks whether the open workday has crossed a
// calendar day boundary and pushes a pending-closure notice to connected
// clients. Detection only; it never closes the day.
type StaleWatcher struct {
	sessions *Service
	notifier Notifier
	log      logger.Logger

	interval time.Duration

	// day key of the last notice sent, so one stale day alerts once
	notified types.DayKey
}

func NewStaleWatcher(sessions *Service, notifier Notifier, log logger.Logger, interval time.Duration) *StaleWatcher {
	if interval <= 0 {
		interval = time.Minute
	}
	return &StaleWatcher{
		sessions: sessions,
		notifier: notifier,
		log:      log,
		interval: interval,
	}
}

// Run blocks until ctx is cancelled.
func (w *StaleWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.check(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

func (w *StaleWatcher) check(ctx context.Context) {
	ctx = wrap.WithAction(ctx, "stale_workday_check")

	session, err := w.sessions.Current(ctx)
	if err != nil {
		w.log.Warn(ctx, "failed to load session", "err", err.Error())
		return
	}
	if !session.IsOpen() || session.OpenedAt == nil {
		w.notified = ""
		return
	}

	dayKey := session.DayKey()
	if types.SameDay(*session.OpenedAt, time.Now()) {
		w.notified = ""
		return
	}
	if w.notified == dayKey {
		return
	}

	w.notifier.Notify(models.Notice{
		Type:    types.NoticePendingClosure,
		Message: "a previous workday is still open",
		Data: map[string]any{
			"day_key":   dayKey.String(),
			"opened_at": session.OpenedAt,
		},
		SentAt: time.Now(),
	})
	w.notified = dayKey

	w.log.Info(wrap.WithDayKey(ctx, dayKey.String()), "pending closure notice sent")
}
