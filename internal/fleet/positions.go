// Package fleet serves mock vessel telemetry for the map panel. Positions
// are derived deterministically from the clock so repeated reads at the same
// instant agree and vessels drift smoothly between reads.
package fleet

import (
	"math"
	"time"

	"github.com/harborgrid/gridiq/internal/domain"
)

type vessel struct {
	id      string
	name    string
	lat     float64
	lon     float64
	course  float64 // degrees, base heading
	speedKn float64
	fuelPct float64
}

var vessels = []vessel{
	{id: "mv-aurora", name: "MV Aurora", lat: 51.95, lon: 4.05, course: 214, speedKn: 12.4, fuelPct: 68},
	{id: "mv-boreas", name: "MV Boreas", lat: 49.42, lon: -2.90, course: 198, speedKn: 14.1, fuelPct: 54},
	{id: "mv-castor", name: "MV Castor", lat: 43.38, lon: -3.12, course: 76, speedKn: 0.2, fuelPct: 81},
	{id: "mv-delphin", name: "MV Delphin", lat: 46.10, lon: -5.45, course: 182, speedKn: 11.8, fuelPct: 37},
}

// Snapshot returns the fleet state at the given instant.
func Snapshot(at time.Time) []domain.VesselPosition {
	// One cycle every 20 minutes keeps drift visible without teleporting.
	phase := float64(at.Unix()%1200) / 1200 * 2 * math.Pi

	out := make([]domain.VesselPosition, 0, len(vessels))
	for i, v := range vessels {
		// Offset each vessel so the fleet does not move in lockstep.
		p := phase + float64(i)*math.Pi/3

		pos := domain.VesselPosition{
			VesselID:   v.id,
			Name:       v.name,
			Lat:        round5(v.lat + 0.08*math.Sin(p)),
			Lon:        round5(v.lon + 0.11*math.Cos(p)),
			SpeedKn:    round1(v.speedKn + 0.6*math.Sin(2*p)),
			HeadingDeg: round1(math.Mod(v.course+8*math.Sin(p)+360, 360)),
			FuelPct:    round1(v.fuelPct),
			UpdatedAt:  at,
		}
		if pos.SpeedKn < 0 {
			pos.SpeedKn = 0
		}
		out = append(out, pos)
	}
	return out
}

func round5(f float64) float64 {
	return math.Round(f*1e5) / 1e5
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
