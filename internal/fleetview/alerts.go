package fleetview

import (
	"fmt"
)

const (
	speedingThreshold = 80.0
	lowFuelThreshold  = 20.0
)

// Alerts generates the active alert strings for a joined table, in table
// row order. Per row the speeding check comes before the fuel check.
func Alerts(t Table) []string {
	alerts := make([]string, 0)
	for _, row := range t {
		if row.Stats == nil {
			continue
		}
		if row.Stats.SpeedMPH > speedingThreshold {
			alerts = append(alerts, fmt.Sprintf("Vehicle %s: Speeding (%g mph)", row.ID, row.Stats.SpeedMPH))
		}
		if row.Stats.FuelPercent < lowFuelThreshold {
			alerts = append(alerts, fmt.Sprintf("Vehicle %s: Low fuel (%g%%)", row.ID, row.Stats.FuelPercent))
		}
	}
	return alerts
}
