package dto

import (
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/service/trip"
)

type StartTripRequest struct {
	Destination        string  `json:"destination"`
	Notes              string  `json:"notes"`
	StartOdometer      float64 `json:"start_odometer"`
	ConfirmLowOdometer bool    `json:"confirm_low_odometer"`
}

func (r *StartTripRequest) ToInput() trip.StartInput {
	return trip.StartInput{
		Destination:        r.Destination,
		Notes:              r.Notes,
		StartOdometer:      r.StartOdometer,
		ConfirmLowOdometer: r.ConfirmLowOdometer,
	}
}

type FinishTripRequest struct {
	EndOdometer float64 `json:"end_odometer"`
	Comments    string  `json:"comments"`
}

func (r *FinishTripRequest) ToInput() trip.FinishInput {
	return trip.FinishInput{
		EndOdometer: r.EndOdometer,
		Comments:    r.Comments,
	}
}
