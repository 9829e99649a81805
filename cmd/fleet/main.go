package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/wanship-fleet/fleetops/api/fleetrock"
	"github.com/wanship-fleet/fleetops/api/samsara"
	"github.com/wanship-fleet/fleetops/internal"
	"github.com/wanship-fleet/fleetops/internal/dashboard"
)

func main() {

	var status string
	var showAlerts bool
	var showOrders bool

	flag.StringVar(&status, "status", "all", "vehicle status filter (all, moving, idle, offline)")
	flag.BoolVar(&showAlerts, "alerts", false, "print active alerts")
	flag.BoolVar(&showOrders, "orders", false, "print repair-order metrics")
	flag.Parse()

	godotenv.Load()

	telemetry, err := samsara.NewClient(context.TODO())
	if err != nil {
		log.Fatal(err)
	}

	shop, err := fleetrock.NewClient(context.TODO())
	if err != nil {
		log.Fatal(err)
	}

	db := dashboard.New(telemetry, shop, internal.NewCache(internal.DefaultTTL))
	db.Refresh(context.TODO())

	m := db.FleetMetrics()
	fmt.Printf("vehicles: %d (moving %d, idle %d, offline %d)\n", m.TotalVehicles, m.Moving, m.Idle, m.Offline)
	fmt.Printf("avg speed: %.1f mph, engine hours: %.1f, low fuel: %d\n", m.AvgSpeed, m.TotalEngineHours, m.LowFuel)

	for _, row := range db.Fleet(status) {
		line := fmt.Sprintf("%s %s", row.ID, row.Name)
		if row.Stats != nil {
			line = fmt.Sprintf("%s [%s, %.0f mph, %.0f%% fuel]", line, row.Status(), row.Stats.SpeedMPH, row.Stats.FuelPercent)
		}
		if row.Driver != nil {
			line = fmt.Sprintf("%s driver=%s", line, row.Driver.Name)
		}
		fmt.Println(line)
	}

	if showAlerts {
		for _, alert := range db.Alerts() {
			fmt.Println(alert)
		}
	}

	if showOrders {
		om := db.OrderMetrics()
		fmt.Printf("repair orders: %d (open %d, closed %d, pending %d)\n", om.TotalROs, om.OpenROs, om.ClosedROs, om.PendingROs)
		fmt.Printf("avg days open: %.1f, total cost: %.2f\n", om.AvgDaysOpen, om.TotalCost)
	}
}
