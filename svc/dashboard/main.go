package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/rs/zerolog/log"

	"github.com/txsvc/apikit"
	"github.com/txsvc/apikit/api"
	"github.com/txsvc/stdlib/v2"

	"github.com/wanship-fleet/fleetops/api/fleetrock"
	"github.com/wanship-fleet/fleetops/api/samsara"
	"github.com/wanship-fleet/fleetops/internal"
	"github.com/wanship-fleet/fleetops/internal/dashboard"
	"github.com/wanship-fleet/fleetops/internal/notify"
)

const (
	// expected ENV variables
	CLIENT_ID        = "client_id"
	REFRESH_INTERVAL = "refresh_interval" // seconds, 0 disables the background refresh

	ENABLE_MQTT_ALERTS  = "enable_mqtt_alerts"
	ENABLE_KAFKA_ALERTS = "enable_kafka_alerts"
)

var (
	db *dashboard.Dashboard
)

func init() {

	// load a local .env file, if any
	godotenv.Load()

	// setup logging
	internal.SetLogLevel()

	clientID := stdlib.GetString(CLIENT_ID, "fleetops-dashboard-svc")

	// telemetry provider client
	telemetry, err := samsara.NewClient(context.TODO())
	if err != nil {
		log.Warn().Err(err).Msg("telemetry provider not configured")
	}

	// repair-shop provider client
	shop, err := fleetrock.NewClient(context.TODO())
	if err != nil {
		log.Warn().Err(err).Msg("repair-shop provider not configured")
	}

	// alert notifiers
	notifiers := make([]notify.Publisher, 0)
	if internal.GetBool(ENABLE_MQTT_ALERTS, false) {
		p, err := notify.NewMqttPublisher(clientID)
		if err != nil {
			log.Fatal().Err(err).Msg(err.Error())
		}
		notifiers = append(notifiers, p)
	}
	if internal.GetBool(ENABLE_KAFKA_ALERTS, false) {
		p, err := notify.NewKafkaPublisher(clientID)
		if err != nil {
			log.Fatal().Err(err).Msg(err.Error())
		}
		notifiers = append(notifiers, p)
	}

	db = dashboard.New(telemetry, shop, internal.NewCache(internal.DefaultTTL), notifiers...)

	// prometheus endpoint setup
	internal.StartPrometheusListener()

	// periodic background refresh
	if interval := stdlib.GetInt(REFRESH_INTERVAL, 0); interval > 0 {
		go func() {
			for {
				time.Sleep(time.Duration(interval) * time.Second)
				db.Refresh(context.TODO())
			}
		}()
	}
}

func main() {
	// initial state
	db.Refresh(context.TODO())

	// start the http listener
	svc, err := apikit.New(setup, shutdown)
	if err != nil {
		log.Fatal().Err(err).Msg(err.Error())
	}
	svc.Listen("")
}

// http endpoint setup

func setup() *echo.Echo {
	// create a new router instance
	e := echo.New()

	// add and configure any middlewares
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))

	// fleet endpoints
	e.GET("/", api.DefaultEndpoint)
	e.GET("/fleet", getFleetEndpoint)
	e.GET("/fleet/metrics", getFleetMetricsEndpoint)
	e.GET("/fleet/alerts", getAlertsEndpoint)

	// repair-order endpoints
	e.GET("/repairs", getRepairsEndpoint)
	e.GET("/repairs/metrics", getRepairMetricsEndpoint)
	e.GET("/repairs/costs", getCostReportEndpoint)
	e.GET("/repairs/technicians", getTechnicianReportEndpoint)
	e.GET("/repairs/units/:unitnumber", getUnitHistoryEndpoint)
	e.POST("/repairs", createRepairEndpoint)
	e.PUT("/repairs/:ronumber", updateRepairEndpoint)

	// state management
	e.POST("/refresh", refreshEndpoint)

	// done
	return e
}

func shutdown(ctx context.Context, a *apikit.App) error {
	return nil
}

// handler

func getFleetEndpoint(c echo.Context) error {
	return api.StandardResponse(c, http.StatusOK, db.Fleet(c.QueryParam("status")))
}

func getFleetMetricsEndpoint(c echo.Context) error {
	return api.StandardResponse(c, http.StatusOK, db.FleetMetrics())
}

func getAlertsEndpoint(c echo.Context) error {
	return api.StandardResponse(c, http.StatusOK, db.Alerts())
}

func getRepairsEndpoint(c echo.Context) error {
	var priorities []string
	if p := c.QueryParam("priority"); p != "" {
		priorities = strings.Split(p, ",")
	}
	return api.StandardResponse(c, http.StatusOK, db.Orders(c.QueryParam("status"), priorities))
}

func getRepairMetricsEndpoint(c echo.Context) error {
	return api.StandardResponse(c, http.StatusOK, db.OrderMetrics())
}

func getCostReportEndpoint(c echo.Context) error {
	return api.StandardResponse(c, http.StatusOK, db.CostReport())
}

func getTechnicianReportEndpoint(c echo.Context) error {
	return api.StandardResponse(c, http.StatusOK, db.TechnicianReport())
}

func getUnitHistoryEndpoint(c echo.Context) error {
	unitNumber := c.Param("unitnumber")
	if unitNumber == "" {
		return api.ErrorResponse(c, http.StatusBadRequest, api.ErrInvalidRoute, "unitnumber")
	}
	return api.StandardResponse(c, http.StatusOK, db.UnitHistory(unitNumber))
}

func createRepairEndpoint(c echo.Context) error {
	var ro internal.RawRecord
	if err := c.Bind(&ro); err != nil {
		return api.ErrorResponse(c, http.StatusBadRequest, err, "invalid payload")
	}

	status := db.CreateOrder(ro)
	if status != http.StatusOK && status != http.StatusCreated {
		return api.ErrorResponse(c, status, internal.ErrApiInvocationError, "order not created")
	}
	return api.StandardResponse(c, status, nil)
}

func updateRepairEndpoint(c echo.Context) error {
	roNumber := c.Param("ronumber")
	if roNumber == "" {
		return api.ErrorResponse(c, http.StatusBadRequest, api.ErrInvalidRoute, "ronumber")
	}

	var updates internal.RawRecord
	if err := c.Bind(&updates); err != nil {
		return api.ErrorResponse(c, http.StatusBadRequest, err, "invalid payload")
	}

	status := db.UpdateOrder(roNumber, updates)
	if status != http.StatusOK && status != http.StatusNoContent {
		return api.ErrorResponse(c, status, internal.ErrApiInvocationError, "order not updated")
	}
	return api.StandardResponse(c, status, nil)
}

func refreshEndpoint(c echo.Context) error {
	db.ForceRefresh(c.Request().Context())
	return api.StandardResponse(c, http.StatusOK, db.FleetMetrics())
}
