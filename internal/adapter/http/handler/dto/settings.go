package dto

import (
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/models"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/validator"
)

type UpdateSettingsRequest struct {
	Driver      string  `json:"driver"`
	Vehicle     string  `json:"vehicle"`
	FuelEconomy float64 `json:"fuel_economy"`
	FuelPrice   float64 `json:"fuel_price"`
}

func (r *UpdateSettingsRequest) ToModel() models.Settings {
	return models.Settings{
		Driver:      r.Driver,
		Vehicle:     r.Vehicle,
		FuelEconomy: r.FuelEconomy,
		FuelPrice:   r.FuelPrice,
	}
}

func ValidateSettings(v *validator.Validator, req *UpdateSettingsRequest) {
	v.Check(req.Driver != "", "driver", "must be provided")
	v.Check(len(req.Driver) <= 500, "driver", "must not be more than 500 bytes long")

	v.Check(req.Vehicle != "", "vehicle", "must be provided")
	v.Check(len(req.Vehicle) <= 500, "vehicle", "must not be more than 500 bytes long")

	v.Check(req.FuelEconomy > 0, "fuel_economy", "must be greater than zero")
	v.Check(req.FuelPrice >= 0, "fuel_price", "must be zero or greater")
}

type ResetRequest struct {
	Confirm bool `json:"confirm"`
}
