package models

import (
	"time"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/types"
)

// ScopeKind selects which slice of the completed-trip log an export covers.
type ScopeKind string

const (
	ScopeAll       ScopeKind = "all"
	ScopeSingleDay ScopeKind = "day"
	ScopeDateRange ScopeKind = "range"
)

// ReportScope is the export filter. Day is set for ScopeSingleDay,
// From/To for ScopeDateRange.
type ReportScope struct {
	Kind ScopeKind
	Day  types.DayKey
	From time.Time
	To   time.Time
}

// Report is a rendered export: raw and computed trip fields exactly as
// stored, in the log's most-recent-first order.
type Report struct {
	Scope       ReportScope
	Filename    string
	GeneratedAt time.Time
	Header      []string
	Rows        [][]string
}

// Empty reports the EmptyResultNotice outcome: the scope matched zero
// completed trips. Not an error.
func (r *Report) Empty() bool {
	return len(r.Rows) == 0
}
