package fleetview

type (
	Metrics struct {
		TotalVehicles    int     `json:"total_vehicles"`
		Moving           int     `json:"moving"`
		Idle             int     `json:"idle"`
		Offline          int     `json:"offline"`
		AvgSpeed         float64 `json:"avg_speed"`
		TotalEngineHours float64 `json:"total_engine_hours"`
		LowFuel          int     `json:"low_fuel"`
	}
)

// Summarize computes the fleet metrics over a joined table. Counts and
// means only consider rows with telemetry; the mean over an empty
// selection is 0, never NaN.
func Summarize(t Table) Metrics {
	m := Metrics{
		TotalVehicles: len(t),
	}

	withStats := 0
	speedSum := 0.0
	for _, row := range t {
		if row.Stats == nil {
			continue
		}
		withStats++
		speedSum += row.Stats.SpeedMPH
		m.TotalEngineHours += row.Stats.EngineHours

		switch row.Stats.Status {
		case StatusMoving:
			m.Moving++
		case StatusIdle:
			m.Idle++
		case StatusOffline:
			m.Offline++
		}

		if row.Stats.FuelPercent < lowFuelThreshold {
			m.LowFuel++
		}
	}

	if withStats > 0 {
		m.AvgSpeed = speedSum / float64(withStats)
	}

	return m
}
