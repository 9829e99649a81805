// A stand-in for both fleet providers. It serves a small canned fleet
// plus an in-memory repair-order list so the dashboard and the CLI can
// run without real provider accounts.
package main

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/rs/zerolog/log"

	"github.com/txsvc/stdlib/v2"

	"github.com/wanship-fleet/fleetops/internal"
)

const (
	simulatorToken = "simulator-token"
)

type (
	simulator struct {
		mu     sync.Mutex
		orders []internal.RawRecord
	}
)

var (
	vehicles = []internal.RawRecord{
		{"id": "281474", "name": "Truck 12", "vin": "1FUJGLDR2CSBE5481", "make": "Freightliner", "model": "Cascadia", "year": 2020, "licensePlate": "UT-1042"},
		{"id": "281475", "name": "Truck 13", "vin": "1FUJGLDR4CSBE5482", "make": "Kenworth", "model": "T680", "year": 2019, "licensePlate": "UT-1043"},
		{"id": "281476", "name": "Truck 14", "vin": "1FUJGLDR6CSBE5483", "make": "Peterbilt", "model": "579", "year": 2021},
	}

	stats = map[string]internal.RawRecord{
		"281474": {"speedMilesPerHour": 90.0, "fuelPercent": 15.0, "engineHours": 8210.5, "odometerMiles": 412345.0, "engineState": "Running"},
		"281475": {"speedMilesPerHour": 0.0, "fuelPercent": 62.0, "engineHours": 9120.0, "odometerMiles": 501200.0, "engineState": "Running"},
	}

	locations = map[string]internal.RawRecord{
		"281474": {"latitude": 40.8027, "longitude": -111.4043, "time": "2024-01-31T08:15:00Z", "formattedAddress": "Wanship, UT"},
		"281475": {"latitude": 40.7608, "longitude": -111.8910, "time": "2024-01-31T08:10:00Z", "formattedAddress": "Salt Lake City, UT"},
	}

	drivers = []internal.RawRecord{
		{"id": "d-1", "name": "Jordan Miles"},
		{"id": "d-2", "name": "Alex Reyes"},
	}

	assignments = []internal.RawRecord{
		{"vehicleId": "281474", "driverId": "d-1"},
		{"vehicleId": "281475", "driverId": "d-2"},
	}
)

func newSimulator() *echo.Echo {
	sim := &simulator{
		orders: []internal.RawRecord{
			{"ro_number": "RO-1042", "unit_number": "T-12", "status": "open", "priority": "high", "created_date": "2024-01-01T00:00:00Z", "description": "brake system overhaul", "total_cost": 1250.50, "parts_cost": 800.0, "labor_cost": 400.0, "labor_hours": 8.0, "technician": "Jordan"},
			{"ro_number": "RO-1043", "unit_number": "T-13", "status": "closed", "priority": "low", "created_date": "2023-12-10T00:00:00Z", "description": "oil change", "total_cost": 180.0},
		},
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	// telemetry provider
	e.GET("/fleet/vehicles", listEndpoint(vehicles))
	e.GET("/fleet/vehicles/:id/stats", itemEndpoint(stats))
	e.GET("/fleet/vehicles/:id/location", itemEndpoint(locations))
	e.GET("/fleet/drivers", listEndpoint(drivers))
	e.GET("/fleet/driver-vehicle-assignments", listEndpoint(assignments))

	// repair-shop provider
	e.GET("/GetToken", getTokenEndpoint)
	e.GET("/GetRO", sim.getOrdersEndpoint)
	e.POST("/CreateRO", sim.createOrderEndpoint)
	e.PUT("/UpdateRO", sim.updateOrderEndpoint)

	return e
}

func main() {
	addr := fmt.Sprintf(":%s", stdlib.GetString("PORT", "8090"))

	e := newSimulator()
	log.Info().Str("addr", addr).Msg("starting provider simulator")

	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg(err.Error())
	}
}

// handler

func listEndpoint(data []internal.RawRecord) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{"data": data})
	}
}

func itemEndpoint(data map[string]internal.RawRecord) echo.HandlerFunc {
	return func(c echo.Context) error {
		rec, ok := data[c.Param("id")]
		if !ok {
			return c.NoContent(http.StatusNotFound)
		}
		// no data envelope here, only the list endpoints carry one
		return c.JSON(http.StatusOK, rec)
	}
}

func getTokenEndpoint(c echo.Context) error {
	if c.QueryParam("username") == "" || c.QueryParam("key") == "" {
		return c.NoContent(http.StatusUnauthorized)
	}
	return c.JSON(http.StatusOK, map[string]string{"token": simulatorToken})
}

func (sim *simulator) getOrdersEndpoint(c echo.Context) error {
	sim.mu.Lock()
	defer sim.mu.Unlock()

	orders := sim.orders
	if status := c.QueryParam("status"); status != "" {
		filtered := make([]internal.RawRecord, 0)
		for _, ro := range orders {
			if ro.GetString("status", "") == status {
				filtered = append(filtered, ro)
			}
		}
		orders = filtered
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"repair_orders": orders})
}

func (sim *simulator) createOrderEndpoint(c echo.Context) error {
	var ro internal.RawRecord
	if err := c.Bind(&ro); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	sim.mu.Lock()
	defer sim.mu.Unlock()

	if ro.GetString("ro_number", "") == "" {
		ro["ro_number"] = fmt.Sprintf("RO-%04d", len(sim.orders)+1042)
	}
	sim.orders = append(sim.orders, ro)

	return c.JSON(http.StatusCreated, map[string]string{"status": "created"})
}

func (sim *simulator) updateOrderEndpoint(c echo.Context) error {
	var updates internal.RawRecord
	if err := c.Bind(&updates); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	roNumber := updates.GetString("ro_number", "")
	if roNumber == "" {
		return c.NoContent(http.StatusBadRequest)
	}

	sim.mu.Lock()
	defer sim.mu.Unlock()

	for _, ro := range sim.orders {
		if ro.GetString("ro_number", "") == roNumber {
			for k, v := range updates {
				if k != "ro_number" {
					ro[k] = v
				}
			}
			return c.JSON(http.StatusOK, map[string]string{"status": "updated"})
		}
	}

	return c.NoContent(http.StatusNotFound)
}
