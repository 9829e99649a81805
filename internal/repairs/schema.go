package repairs

import (
	"strings"
)

type (
	// RepairOrder is one normalized maintenance ticket. All fields carry
	// documented defaults, see Normalize.
	RepairOrder struct {
		RONumber            string  `json:"ro_number"`
		UnitNumber          string  `json:"unit_number"`
		VIN                 string  `json:"vin"`
		Status              string  `json:"status"`
		Priority            string  `json:"priority"`
		CreatedDate         string  `json:"created_date"`
		DueDate             string  `json:"due_date"`
		DaysOpen            int     `json:"days_open"`
		EstimatedCompletion string  `json:"estimated_completion,omitempty"`
		Description         string  `json:"description"`
		Tasks               string  `json:"tasks"`
		PartsNeeded         string  `json:"parts_needed"`
		TotalCost           float64 `json:"total_cost"`
		LaborHours          float64 `json:"labor_hours"`
		PartsCost           float64 `json:"parts_cost"`
		LaborCost           float64 `json:"labor_cost"`
		Technician          string  `json:"technician"`
		Location            string  `json:"location"`
		CustomerName        string  `json:"customer_name,omitempty"`
		CustomerContact     string  `json:"customer_contact,omitempty"`
		Notes               string  `json:"notes,omitempty"`
		Warranty            bool    `json:"warranty"`
	}

	Table []RepairOrder
)

const (
	StatusOpen      = "open"
	StatusClosed    = "closed"
	StatusPending   = "pending"
	StatusCancelled = "cancelled"

	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"

	DefaultTechnician = "Unassigned"
	DefaultLocation   = "Main Shop"
)

// FilterStatus returns the orders matching a status, "all" keeps everything
func (t Table) FilterStatus(status string) Table {
	if status == "" || status == "all" {
		return t
	}

	filtered := make(Table, 0, len(t))
	for _, ro := range t {
		if ro.Status == status {
			filtered = append(filtered, ro)
		}
	}
	return filtered
}

// FilterPriority returns the orders whose priority is in the given set,
// case-insensitive. An empty set keeps everything.
func (t Table) FilterPriority(priorities []string) Table {
	if len(priorities) == 0 {
		return t
	}

	wanted := make(map[string]bool, len(priorities))
	for _, p := range priorities {
		wanted[strings.ToLower(p)] = true
	}

	filtered := make(Table, 0, len(t))
	for _, ro := range t {
		if wanted[strings.ToLower(ro.Priority)] {
			filtered = append(filtered, ro)
		}
	}
	return filtered
}

// Find returns the order with the given number
func (t Table) Find(roNumber string) (RepairOrder, bool) {
	for _, ro := range t {
		if ro.RONumber == roNumber {
			return ro, true
		}
	}
	return RepairOrder{}, false
}
