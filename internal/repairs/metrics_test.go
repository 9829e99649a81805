package repairs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeEmptyTable(t *testing.T) {

	m := Summarize(Table{})

	assert.Zero(t, m.TotalROs)
	assert.Zero(t, m.OpenROs)
	assert.Equal(t, 0.0, m.AvgDaysOpen)
	assert.Equal(t, 0.0, m.AvgLaborHours)
	assert.False(t, math.IsNaN(m.AvgDaysOpen))
	assert.False(t, math.IsNaN(m.AvgLaborHours))
}

func TestSummarize(t *testing.T) {

	table := Table{
		{RONumber: "RO-1", Status: StatusOpen, DaysOpen: 10, TotalCost: 100, LaborHours: 2, Technician: "Jordan"},
		{RONumber: "RO-2", Status: StatusOpen, DaysOpen: 20, TotalCost: 200, LaborHours: 4, Technician: DefaultTechnician},
		{RONumber: "RO-3", Status: StatusClosed, DaysOpen: 99, TotalCost: 300, LaborHours: 6, Technician: "Jordan"},
		{RONumber: "RO-4", Status: StatusPending, Technician: "Sam"},
		{RONumber: "RO-5", Status: StatusCancelled, Technician: DefaultTechnician},
	}

	m := Summarize(table)

	assert.Equal(t, 5, m.TotalROs)
	assert.Equal(t, 2, m.OpenROs)
	assert.Equal(t, 1, m.ClosedROs)
	assert.Equal(t, 1, m.PendingROs)
	assert.Equal(t, 1, m.CancelledROs)
	// days-open only averages over the open orders
	assert.Equal(t, 15.0, m.AvgDaysOpen)
	assert.Equal(t, 600.0, m.TotalCost)
	assert.Equal(t, 2.4, m.AvgLaborHours)
	assert.Equal(t, 2, m.UnassignedROs)
}

func TestSummarizeNoOpenOrders(t *testing.T) {

	table := Table{
		{RONumber: "RO-1", Status: StatusClosed, DaysOpen: 42},
	}

	m := Summarize(table)
	assert.Equal(t, 0.0, m.AvgDaysOpen)
	assert.False(t, math.IsNaN(m.AvgDaysOpen))
}

func TestSummarizeNoCostInvariant(t *testing.T) {

	// parts+labor exceeding the total is reported as-is, the sums are
	// independent of each other
	table := Table{
		{RONumber: "RO-1", Status: StatusOpen, TotalCost: 100, PartsCost: 80, LaborCost: 80},
	}

	m := Summarize(table)
	b := CostReport(table)

	assert.Equal(t, 100.0, m.TotalCost)
	assert.Equal(t, 80.0, b.Parts)
	assert.Equal(t, 80.0, b.Labor)
	assert.Equal(t, -60.0, b.Other)
}

func TestCostReport(t *testing.T) {

	table := Table{
		{TotalCost: 1000, PartsCost: 400, LaborCost: 500},
		{TotalCost: 500, PartsCost: 100, LaborCost: 300},
	}

	b := CostReport(table)

	assert.Equal(t, 500.0, b.Parts)
	assert.Equal(t, 800.0, b.Labor)
	assert.Equal(t, 200.0, b.Other)
	assert.InDelta(t, 33.3, b.PartsPct, 0.1)
	assert.InDelta(t, 53.3, b.LaborPct, 0.1)
	assert.InDelta(t, 13.3, b.OtherPct, 0.1)
}

func TestCostReportEmpty(t *testing.T) {

	b := CostReport(Table{})
	assert.Equal(t, 0.0, b.PartsPct)
	assert.False(t, math.IsNaN(b.PartsPct))
}

func TestTechnicianReport(t *testing.T) {

	table := Table{
		{Status: StatusOpen, Technician: "Jordan", LaborHours: 2, TotalCost: 100, DaysOpen: 10},
		{Status: StatusOpen, Technician: "Alex", LaborHours: 1, TotalCost: 50, DaysOpen: 4},
		{Status: StatusClosed, Technician: "Jordan", LaborHours: 4, TotalCost: 300, DaysOpen: 20},
	}

	report := TechnicianReport(table)

	assert.Len(t, report, 2)
	assert.Equal(t, "Alex", report[0].Technician)
	assert.Equal(t, "Jordan", report[1].Technician)
	assert.Equal(t, 2, report[1].TotalROs)
	assert.Equal(t, 6.0, report[1].TotalHours)
	assert.Equal(t, 400.0, report[1].TotalCost)
	assert.Equal(t, 15.0, report[1].AvgDaysOpen)
}

func TestHistoryForUnit(t *testing.T) {

	table := Table{
		{RONumber: "RO-1", UnitNumber: "T-12", TotalCost: 100},
		{RONumber: "RO-2", UnitNumber: "T-7", TotalCost: 50},
		{RONumber: "RO-3", UnitNumber: "T-12", TotalCost: 300},
	}

	h := HistoryForUnit(table, "T-12")

	assert.Equal(t, 2, h.TotalRepairs)
	assert.Equal(t, 400.0, h.TotalCost)
	assert.Len(t, h.Orders, 2)
	assert.Equal(t, "RO-1", h.Orders[0].RONumber)
}

func TestFilters(t *testing.T) {

	table := Table{
		{RONumber: "RO-1", Status: StatusOpen, Priority: PriorityHigh},
		{RONumber: "RO-2", Status: StatusClosed, Priority: "High"},
		{RONumber: "RO-3", Status: StatusOpen, Priority: PriorityLow},
	}

	assert.Len(t, table.FilterStatus("all"), 3)
	assert.Len(t, table.FilterStatus(StatusOpen), 2)
	assert.Len(t, table.FilterPriority([]string{PriorityHigh}), 2)
	assert.Len(t, table.FilterPriority(nil), 3)

	ro, ok := table.Find("RO-2")
	assert.True(t, ok)
	assert.Equal(t, StatusClosed, ro.Status)

	_, ok = table.Find("RO-9")
	assert.False(t, ok)
}
