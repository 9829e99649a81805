package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wanship-fleet/fleetops/api/fleetrock"
	"github.com/wanship-fleet/fleetops/api/samsara"
	"github.com/wanship-fleet/fleetops/internal"
	"github.com/wanship-fleet/fleetops/internal/dashboard"
)

func TestSimulatedTelemetry(t *testing.T) {
	svc := httptest.NewServer(newSimulator())
	defer svc.Close()

	cl, err := samsara.NewClient(context.TODO(),
		internal.WithEndpoint(svc.URL),
		internal.WithCredentials("", "simulator-token"),
	)
	assert.NoError(t, err)

	status, vehicles := cl.GetVehicles()
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, vehicles, 3)

	status, rec := cl.GetVehicleStats("281474")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 90.0, rec.GetFloat("speedMilesPerHour", 0))

	status, _ = cl.GetVehicleStats("281476")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSimulatedRepairShop(t *testing.T) {
	svc := httptest.NewServer(newSimulator())
	defer svc.Close()

	cl, err := fleetrock.NewClient(context.TODO(),
		internal.WithEndpoint(svc.URL),
		internal.WithCredentials("wanship.shop", "simulator-key"),
	)
	assert.NoError(t, err)

	status, orders := cl.GetRepairOrders("")
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, orders, 2)

	status = cl.CreateRepairOrder(internal.RawRecord{"unit_number": "T-14", "description": "tire rotation"})
	assert.Equal(t, http.StatusCreated, status)

	status, orders = cl.GetRepairOrders("")
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, orders, 3)

	status = cl.UpdateRepairOrder("RO-1042", internal.RawRecord{"status": "closed"})
	assert.Equal(t, http.StatusOK, status)

	status, orders = cl.GetRepairOrders("closed")
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, orders, 2)
}

func TestSimulatedDashboard(t *testing.T) {
	svc := httptest.NewServer(newSimulator())
	defer svc.Close()

	telemetry, err := samsara.NewClient(context.TODO(),
		internal.WithEndpoint(svc.URL),
		internal.WithCredentials("", "simulator-token"),
	)
	assert.NoError(t, err)

	shop, err := fleetrock.NewClient(context.TODO(),
		internal.WithEndpoint(svc.URL),
		internal.WithCredentials("wanship.shop", "simulator-key"),
	)
	assert.NoError(t, err)

	db := dashboard.New(telemetry, shop, internal.NewCache(internal.DefaultTTL))
	db.Refresh(context.TODO())

	assert.Len(t, db.Fleet("all"), 3)
	assert.Len(t, db.Fleet("moving"), 1)

	m := db.FleetMetrics()
	assert.Equal(t, 3, m.TotalVehicles)
	assert.Equal(t, 1, m.Moving)
	assert.Equal(t, 1, m.Idle)
	// the vehicle without telemetry is not classified
	assert.Equal(t, 0, m.Offline)

	alerts := db.Alerts()
	assert.Contains(t, alerts, "Vehicle 281474: Speeding (90 mph)")
	assert.Contains(t, alerts, "Vehicle 281474: Low fuel (15%)")

	h := db.UnitHistory("T-12")
	assert.Equal(t, 1, h.TotalRepairs)
}
