package dto

type OpenWorkdayRequest struct {
	StartOdometer float64 `json:"start_odometer"`
}

// CloseWorkdayRequest is optional: a bare close with no body is treated as
// unconfirmed.
type CloseWorkdayRequest struct {
	ConfirmCancelActive bool `json:"confirm_cancel_active"`
}
