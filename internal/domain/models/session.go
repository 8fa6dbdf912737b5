package models

import (
	"time"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/types"
)

// WorkdaySession is the single, process-wide workday record.
//
// Invariant: Closed implies OpenedAt and StartOdometer are nil;
// Open implies OpenedAt is set and StartOdometer >= 0.
//
// LastOpenedAt/LastStartOdometer snapshot the open state at close time so a
// reopen can restore it instead of coming back up with a hollow session.
type WorkdaySession struct {
	Status        types.SessionStatus `json:"status"`
	OpenedAt      *time.Time          `json:"opened_at"`
	StartOdometer *float64            `json:"start_odometer"`
	ClosedAt      *time.Time          `json:"closed_at"`

	LastOpenedAt      *time.Time `json:"last_opened_at,omitempty"`
	LastStartOdometer *float64   `json:"last_start_odometer,omitempty"`
}

// ClosedSession is the implicit initial state on first use.
func ClosedSession() WorkdaySession {
	return WorkdaySession{Status: types.SessionClosed}
}

func (s WorkdaySession) IsOpen() bool {
	return s.Status == types.SessionOpen
}

// DayKey returns the calendar day this session was opened on, or "" when the
// session is closed.
func (s WorkdaySession) DayKey() types.DayKey {
	if !s.IsOpen() || s.OpenedAt == nil {
		return ""
	}
	return types.DayKeyFor(*s.OpenedAt)
}
