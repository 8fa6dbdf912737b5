package types

import (
	"errors"
	"fmt"
)

// The two error kinds of the core. Every precondition failure wraps one of
// them, so callers can classify with errors.Is without matching messages.
var (
	ErrValidation   = errors.New("validation failed")
	ErrInvalidState = errors.New("invalid state")
)

// Invalid-state sentinels.
var (
	ErrDayAlreadyOpen = fmt.Errorf("%w: workday is already open", ErrInvalidState)
	ErrDayNotOpen     = fmt.Errorf("%w: workday is not open", ErrInvalidState)
	ErrNoClosedDay    = fmt.Errorf("%w: no closed workday to reopen", ErrInvalidState)
	ErrTripInProgress = fmt.Errorf("%w: a trip is already in progress", ErrInvalidState)
	ErrNoActiveTrip   = fmt.Errorf("%w: no trip in progress", ErrInvalidState)
	ErrNotConfigured  = fmt.Errorf("%w: driver and vehicle must be configured first", ErrInvalidState)
)

// Validation sentinels.
var (
	ErrNegativeOdometer   = fmt.Errorf("%w: odometer reading must be zero or greater", ErrValidation)
	ErrOdometerNotANumber = fmt.Errorf("%w: odometer reading must be a finite number", ErrValidation)
	ErrFinalNotGreater    = fmt.Errorf("%w: final odometer must exceed initial", ErrValidation)
	ErrEmptyDestination   = fmt.Errorf("%w: destination must not be empty", ErrValidation)
	ErrEmptyDriver        = fmt.Errorf("%w: driver name must not be empty", ErrValidation)
	ErrEmptyVehicle       = fmt.Errorf("%w: vehicle descriptor must not be empty", ErrValidation)
	ErrInvalidFuelEconomy = fmt.Errorf("%w: fuel economy must be greater than zero", ErrValidation)
	ErrInvalidFuelPrice   = fmt.Errorf("%w: fuel price must be zero or greater", ErrValidation)
	ErrInvalidScope       = fmt.Errorf("%w: unknown export scope", ErrValidation)
	ErrInvalidDayKey      = fmt.Errorf("%w: day must be formatted as YYYY-MM-DD", ErrValidation)
	ErrInvalidDateRange   = fmt.Errorf("%w: range end must not be before range start", ErrValidation)
)

// Infrastructure sentinels.
var (
	ErrKeyNotFound        = errors.New("key not found")
	ErrStoreFailed        = errors.New("persistent store operation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrResetNotConfirmed  = errors.New("factory reset requires explicit confirmation")
)

// LowOdometerWarning is a non-fatal advisory: the entered start reading is
// below the suggested one. The caller either confirms and retries or aborts;
// the trip is never created silently.
type LowOdometerWarning struct {
	Entered   float64
	Suggested float64
}

func (w *LowOdometerWarning) Error() string {
	return fmt.Sprintf("start odometer %.2f is below the suggested %.2f", w.Entered, w.Suggested)
}

// ActiveTripWarning is the advisory returned when closing a day while a trip
// is still running. Confirming cancels the trip before the close.
type ActiveTripWarning struct {
	Destination string
}

func (w *ActiveTripWarning) Error() string {
	return fmt.Sprintf("a trip to %q is still in progress; it will be cancelled if you confirm the close", w.Destination)
}
