package trip

import (
	"testing"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/models"
)

func TestComputeTripMetrics(t *testing.T) {
	tests := []struct {
		name           string
		start, end     float64
		economy, price float64
		distance       float64
		fuelUsed       float64
		cost           float64
	}{
		{"default settings", 500, 550, 10, 25, 50, 5, 125},
		{"fractional distance", 100, 112.5, 10, 25, 12.5, 1.25, 31.25},
		{"rounding to cents", 0, 100, 3, 23.99, 100, 33.33, 799.59},
		{"zero economy clamps to one", 0, 10, 0, 25, 10, 10, 250},
		{"negative economy clamps to one", 0, 10, -5, 25, 10, 10, 250},
		{"free fuel", 0, 10, 10, 0, 10, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := computeTripMetrics(tt.start, tt.end, models.Settings{
				FuelEconomy: tt.economy,
				FuelPrice:   tt.price,
			})
			if m.Distance != tt.distance {
				t.Fatalf("distance: got %v want %v", m.Distance, tt.distance)
			}
			if m.FuelUsed != tt.fuelUsed {
				t.Fatalf("fuel used: got %v want %v", m.FuelUsed, tt.fuelUsed)
			}
			if m.Cost != tt.cost {
				t.Fatalf("cost: got %v want %v", m.Cost, tt.cost)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	if got := round2(1.005); got != 1.0 && got != 1.01 {
		t.Fatalf("round2(1.005) = %v", got)
	}
	if got := round2(33.333333); got != 33.33 {
		t.Fatalf("round2(33.333333) = %v", got)
	}
	if got := round2(125.0); got != 125.0 {
		t.Fatalf("round2(125.0) = %v", got)
	}
}
