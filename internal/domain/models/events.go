package models

import (
	"time"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/types"
)

/* ======================= rabbitmq ======================= */

// WorkdayClosedMessage is published after a day is closed. Consumers produce
// the end-of-day report from it; publishing is best-effort and never blocks
// or rolls back the close itself.
type WorkdayClosedMessage struct {
	DayKey        types.DayKey `json:"day_key"`
	ClosedAt      time.Time    `json:"closed_at"`
	CorrelationID string       `json:"correlation_id"`
}

/* ======================= websocket ======================= */

// Notice is a non-blocking advisory pushed to connected UI clients.
type Notice struct {
	Type    string         `json:"type"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
	SentAt  time.Time      `json:"sent_at"`
}
