package repairs

import (
	"sort"
)

type (
	Metrics struct {
		TotalROs      int     `json:"total_ros"`
		OpenROs       int     `json:"open_ros"`
		ClosedROs     int     `json:"closed_ros"`
		PendingROs    int     `json:"pending_ros"`
		CancelledROs  int     `json:"cancelled_ros"`
		AvgDaysOpen   float64 `json:"avg_days_open"`
		TotalCost     float64 `json:"total_cost"`
		AvgLaborHours float64 `json:"avg_labor_hours"`
		UnassignedROs int     `json:"unassigned_ros"`
	}

	// CostBreakdown reports parts, labor and the remainder of the total
	// independently. No parts+labor<=total invariant is assumed, the
	// provider data does not guarantee it.
	CostBreakdown struct {
		Parts    float64 `json:"parts"`
		Labor    float64 `json:"labor"`
		Other    float64 `json:"other"`
		PartsPct float64 `json:"parts_pct"`
		LaborPct float64 `json:"labor_pct"`
		OtherPct float64 `json:"other_pct"`
	}

	TechnicianStats struct {
		Technician  string  `json:"technician"`
		TotalROs    int     `json:"total_ros"`
		TotalHours  float64 `json:"total_hours"`
		TotalCost   float64 `json:"total_cost"`
		AvgDaysOpen float64 `json:"avg_days_open"`
	}

	UnitHistory struct {
		UnitNumber   string  `json:"unit_number"`
		TotalRepairs int     `json:"total_repairs"`
		TotalCost    float64 `json:"total_cost"`
		Orders       Table   `json:"orders"`
	}
)

// Summarize computes the repair-order metrics. Days-open only averages
// over open orders; every mean over an empty selection is 0, never NaN.
func Summarize(t Table) Metrics {
	m := Metrics{
		TotalROs: len(t),
	}

	daysOpenSum := 0
	laborHoursSum := 0.0
	for _, ro := range t {
		switch ro.Status {
		case StatusOpen:
			m.OpenROs++
			daysOpenSum += ro.DaysOpen
		case StatusClosed:
			m.ClosedROs++
		case StatusPending:
			m.PendingROs++
		case StatusCancelled:
			m.CancelledROs++
		}

		m.TotalCost += ro.TotalCost
		laborHoursSum += ro.LaborHours

		if ro.Technician == DefaultTechnician {
			m.UnassignedROs++
		}
	}

	if m.OpenROs > 0 {
		m.AvgDaysOpen = float64(daysOpenSum) / float64(m.OpenROs)
	}
	if len(t) > 0 {
		m.AvgLaborHours = laborHoursSum / float64(len(t))
	}

	return m
}

// CostReport splits the total cost into parts, labor and other, with the
// share of each. Percentages are 0 when nothing was spent.
func CostReport(t Table) CostBreakdown {
	var b CostBreakdown

	total := 0.0
	for _, ro := range t {
		b.Parts += ro.PartsCost
		b.Labor += ro.LaborCost
		total += ro.TotalCost
	}
	b.Other = total - b.Parts - b.Labor

	sum := b.Parts + b.Labor + b.Other
	if sum != 0 {
		b.PartsPct = b.Parts / sum * 100
		b.LaborPct = b.Labor / sum * 100
		b.OtherPct = b.Other / sum * 100
	}

	return b
}

// TechnicianReport aggregates the orders per technician, sorted by name
func TechnicianReport(t Table) []TechnicianStats {
	byTech := make(map[string]*TechnicianStats)
	daysOpen := make(map[string]int)

	for _, ro := range t {
		ts, ok := byTech[ro.Technician]
		if !ok {
			ts = &TechnicianStats{Technician: ro.Technician}
			byTech[ro.Technician] = ts
		}
		ts.TotalROs++
		ts.TotalHours += ro.LaborHours
		ts.TotalCost += ro.TotalCost
		daysOpen[ro.Technician] += ro.DaysOpen
	}

	report := make([]TechnicianStats, 0, len(byTech))
	for tech, ts := range byTech {
		if ts.TotalROs > 0 {
			ts.AvgDaysOpen = float64(daysOpen[tech]) / float64(ts.TotalROs)
		}
		report = append(report, *ts)
	}

	sort.Slice(report, func(i, j int) bool {
		return report[i].Technician < report[j].Technician
	})

	return report
}

// HistoryForUnit collects the repair history of one unit, in table order
func HistoryForUnit(t Table, unitNumber string) UnitHistory {
	h := UnitHistory{
		UnitNumber: unitNumber,
		Orders:     make(Table, 0),
	}

	for _, ro := range t {
		if ro.UnitNumber == unitNumber {
			h.Orders = append(h.Orders, ro)
			h.TotalRepairs++
			h.TotalCost += ro.TotalCost
		}
	}

	return h
}
