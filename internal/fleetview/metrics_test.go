package fleetview

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeEmptyTable(t *testing.T) {

	m := Summarize(Table{})

	assert.Zero(t, m.TotalVehicles)
	assert.Zero(t, m.Moving)
	assert.Zero(t, m.Idle)
	assert.Zero(t, m.Offline)
	assert.Zero(t, m.LowFuel)
	assert.Equal(t, 0.0, m.AvgSpeed)
	assert.False(t, math.IsNaN(m.AvgSpeed))
}

func TestSummarizeNoTelemetry(t *testing.T) {

	// vehicles without any stats rows: counted, but no mean blows up
	table := Table{
		{Vehicle: Vehicle{ID: "1"}},
		{Vehicle: Vehicle{ID: "2"}},
	}

	m := Summarize(table)
	assert.Equal(t, 2, m.TotalVehicles)
	assert.Equal(t, 0.0, m.AvgSpeed)
	assert.False(t, math.IsNaN(m.AvgSpeed))
}

func TestSummarize(t *testing.T) {

	table := Table{
		{Vehicle: Vehicle{ID: "1"}, Stats: &StatSnapshot{SpeedMPH: 60, FuelPercent: 80, EngineHours: 100, Status: StatusMoving}},
		{Vehicle: Vehicle{ID: "2"}, Stats: &StatSnapshot{SpeedMPH: 0, FuelPercent: 15, EngineHours: 50, Status: StatusIdle}},
		{Vehicle: Vehicle{ID: "3"}, Stats: &StatSnapshot{SpeedMPH: 0, FuelPercent: 40, EngineHours: 10, Status: StatusOffline}},
		{Vehicle: Vehicle{ID: "4"}}, // no telemetry, excluded from the mean
	}

	m := Summarize(table)

	assert.Equal(t, 4, m.TotalVehicles)
	assert.Equal(t, 1, m.Moving)
	assert.Equal(t, 1, m.Idle)
	assert.Equal(t, 1, m.Offline)
	assert.Equal(t, 1, m.LowFuel)
	assert.Equal(t, 20.0, m.AvgSpeed)
	assert.Equal(t, 160.0, m.TotalEngineHours)
}
