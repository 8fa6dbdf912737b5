package session

import (
	"context"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/models"
)

type SessionRepo interface {
	Get(ctx context.Context) (models.WorkdaySession, error)
	Save(ctx context.Context, session models.WorkdaySession) error
}

// ClosePublisher emits the workday-closed event. Publishing is best-effort:
// the close itself never depends on it.
type ClosePublisher interface {
	PublishWorkdayClosed(ctx context.Context, msg models.WorkdayClosedMessage) error
}

// Notifier pushes non-blocking advisories to connected UI clients.
type Notifier interface {
	Notify(notice models.Notice)
}
