package models

import (
	"time"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/types"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/uuid"
)

// Trip is one recorded journey within a workday.
//
// Derived fields (Distance, FuelUsed, Cost) are computed once, at completion,
// with the fuel settings in effect at that moment. They are never recomputed,
// so later settings changes do not rewrite history.
type Trip struct {
	ID            uuid.UUID        `json:"id"`
	DayKey        types.DayKey     `json:"day_key"`
	StartedAt     time.Time        `json:"started_at"`
	EndedAt       *time.Time       `json:"ended_at"`
	StartOdometer float64          `json:"start_odometer"`
	EndOdometer   *float64         `json:"end_odometer"`
	Destination   string           `json:"destination"`
	Notes         string           `json:"notes"`
	Status        types.TripStatus `json:"status"`

	// Set on completion only.
	Distance *float64 `json:"distance"`
	FuelUsed *float64 `json:"fuel_used"`
	Cost     *float64 `json:"cost"`
	Comments *string  `json:"comments"`
}

func (t Trip) IsCompleted() bool {
	return t.Status == types.TripCompleted
}
