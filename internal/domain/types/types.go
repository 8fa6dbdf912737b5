package types

import "time"

// SessionStatus is the workday lifecycle state.
type SessionStatus string

const (
	SessionClosed SessionStatus = "CLOSED"
	SessionOpen   SessionStatus = "OPEN"
)

func (s SessionStatus) String() string {
	return string(s)
}

// TripStatus is the per-trip lifecycle state.
type TripStatus string

const (
	TripInProgress TripStatus = "IN_PROGRESS"
	TripCompleted  TripStatus = "COMPLETED"
)

func (s TripStatus) String() string {
	return string(s)
}

const dayKeyLayout = "2006-01-02"

// DayKey identifies the calendar day a session (and its trips) belongs to.
type DayKey string

// DayKeyFor derives the key from a timestamp in local time.
func DayKeyFor(t time.Time) DayKey {
	return DayKey(t.Format(dayKeyLayout))
}

func (d DayKey) String() string {
	return string(d)
}

// Valid reports whether the key parses back as a calendar day.
func (d DayKey) Valid() bool {
	_, err := time.Parse(dayKeyLayout, string(d))
	return err == nil
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DayKeyFor(a) == DayKeyFor(b)
}
