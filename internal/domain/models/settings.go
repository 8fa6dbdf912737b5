package models

// Settings is the mutable configuration record: who drives, what they drive,
// and the fuel figures used to cost a trip. It is only ever changed through
// an explicit settings update, never derived.
type Settings struct {
	Driver      string  `json:"driver"`
	Vehicle     string  `json:"vehicle"`
	FuelEconomy float64 `json:"fuel_economy"` // distance units per fuel unit, > 0
	FuelPrice   float64 `json:"fuel_price"`   // currency per fuel unit, >= 0
}

// DefaultSettings mirrors the factory defaults of a fresh install.
func DefaultSettings() Settings {
	return Settings{
		FuelEconomy: 10,
		FuelPrice:   25.00,
	}
}

// Configured reports whether the operator identity is filled in. Trips cannot
// be logged against a blank driver or vehicle.
func (s Settings) Configured() bool {
	return s.Driver != "" && s.Vehicle != ""
}
