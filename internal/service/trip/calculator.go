package trip

import (
	"math"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/domain/models"
)

type tripMetrics struct {
	Distance float64
	FuelUsed float64
	Cost     float64
}

// computeTripMetrics derives distance, fuel used and cost from the odometer
// delta and the fuel settings captured at completion time. A non-positive
// economy would divide by zero, so it is clamped to 1.
func computeTripMetrics(startOdometer, endOdometer float64, settings models.Settings) tripMetrics {
	economy := settings.FuelEconomy
	if economy <= 0 {
		economy = 1
	}

	distance := round2(endOdometer - startOdometer)
	fuelUsed := round2(distance / economy)
	cost := round2(fuelUsed * settings.FuelPrice)

	return tripMetrics{
		Distance: distance,
		FuelUsed: fuelUsed,
		Cost:     cost,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
