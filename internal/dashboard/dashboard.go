// Package dashboard holds the aggregated fleet state. A refresh polls
// both providers sequentially, normalizes and joins their records and
// swaps the result in wholesale. Provider failures degrade to empty
// tables, the dashboard itself never fails.
package dashboard

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/txsvc/stdlib/v2"

	"github.com/wanship-fleet/fleetops/api/fleetrock"
	"github.com/wanship-fleet/fleetops/api/samsara"
	"github.com/wanship-fleet/fleetops/internal"
	"github.com/wanship-fleet/fleetops/internal/fleetview"
	"github.com/wanship-fleet/fleetops/internal/notify"
	"github.com/wanship-fleet/fleetops/internal/repairs"
)

var (
	// metrics collectors
	opsRefresh = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fleetops_refresh_total",
		Help: "The number of dashboard refreshes",
	})
	opsProviderErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fleetops_provider_errors_total",
		Help: "The number of failed provider calls",
	})
	opsAlerts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fleetops_alerts_total",
		Help: "The number of alerts generated",
	})
)

type (
	Dashboard struct {
		telemetry *samsara.Client
		shop      *fleetrock.Client

		cache     *internal.Cache
		notifiers []notify.Publisher

		mu          sync.RWMutex
		fleet       fleetview.Table
		orders      repairs.Table
		alerts      []string
		lastRefresh time.Time
	}
)

func New(telemetry *samsara.Client, shop *fleetrock.Client, cache *internal.Cache, notifiers ...notify.Publisher) *Dashboard {
	if cache == nil {
		cache = internal.NewCache(internal.DefaultTTL)
	}
	return &Dashboard{
		telemetry: telemetry,
		shop:      shop,
		cache:     cache,
		notifiers: notifiers,
		fleet:     make(fleetview.Table, 0),
		orders:    make(repairs.Table, 0),
		alerts:    make([]string, 0),
	}
}

// Refresh polls both providers and rebuilds the aggregated state. Cached
// provider responses are reused until they expire.
func (d *Dashboard) Refresh(ctx context.Context) {
	opsRefresh.Inc()

	vehicleRecs := d.fetchList(ctx, "/fleet/vehicles", func() (int, []internal.RawRecord) {
		return d.telemetry.GetVehicles()
	})
	vehicles := fleetview.NormalizeVehicles(vehicleRecs)

	stats := make([]fleetview.StatSnapshot, 0, len(vehicles))
	locations := make([]fleetview.Location, 0, len(vehicles))
	for _, v := range vehicles {
		id := v.ID
		if rec := d.fetchItem(ctx, internal.CacheKey("/fleet/vehicles/stats", "id="+id), func() (int, internal.RawRecord) {
			return d.telemetry.GetVehicleStats(id)
		}); rec != nil {
			stats = append(stats, fleetview.NormalizeStats(id, rec))
		}
		if rec := d.fetchItem(ctx, internal.CacheKey("/fleet/vehicles/location", "id="+id), func() (int, internal.RawRecord) {
			return d.telemetry.GetVehicleLocation(id)
		}); rec != nil {
			locations = append(locations, fleetview.NormalizeLocation(id, rec))
		}
	}

	driverRecs := d.fetchList(ctx, "/fleet/drivers", func() (int, []internal.RawRecord) {
		return d.telemetry.GetDrivers()
	})
	assignmentRecs := d.fetchList(ctx, "/fleet/driver-vehicle-assignments", func() (int, []internal.RawRecord) {
		return d.telemetry.GetAssignments()
	})

	fleet := fleetview.Join(vehicles,
		stats,
		locations,
		fleetview.NormalizeAssignments(assignmentRecs),
		fleetview.NormalizeDrivers(driverRecs),
	)
	alerts := fleetview.Alerts(fleet)

	orderRecs := d.fetchShopOrders(ctx)
	orders := repairs.Normalize(orderRecs, time.Now())

	d.mu.Lock()
	newAlerts := len(alerts) - len(d.alerts)
	d.fleet = fleet
	d.orders = orders
	d.alerts = alerts
	d.lastRefresh = time.Now()
	d.mu.Unlock()

	if newAlerts > 0 {
		opsAlerts.Add(float64(newAlerts))
	}
	d.publishAlerts(alerts)

	log.Info().Int("vehicles", len(fleet)).Int("orders", len(orders)).Int("alerts", len(alerts)).Msg("dashboard refreshed")
}

// ForceRefresh drops every cached provider response and refreshes
func (d *Dashboard) ForceRefresh(ctx context.Context) {
	d.cache.InvalidateAll()
	d.Refresh(ctx)
}

func (d *Dashboard) fetchList(ctx context.Context, key string, fn func() (int, []internal.RawRecord)) []internal.RawRecord {
	if d.telemetry == nil {
		return nil
	}
	if v, ok := d.cache.Get(key); ok {
		return v.([]internal.RawRecord)
	}

	status, recs := fn()
	if status != http.StatusOK {
		opsProviderErrors.Inc()
		log.Warn().Str("call", key).Int("status", status).Msg("provider call failed")
		return nil
	}

	d.cache.Set(key, recs)
	return recs
}

func (d *Dashboard) fetchItem(ctx context.Context, key string, fn func() (int, internal.RawRecord)) internal.RawRecord {
	if v, ok := d.cache.Get(key); ok {
		return v.(internal.RawRecord)
	}

	status, rec := fn()
	if status != http.StatusOK {
		opsProviderErrors.Inc()
		log.Warn().Str("call", key).Int("status", status).Msg("provider call failed")
		return nil
	}

	d.cache.Set(key, rec)
	return rec
}

func (d *Dashboard) fetchShopOrders(ctx context.Context) []internal.RawRecord {
	if d.shop == nil {
		return nil
	}

	key := "/GetRO"
	if v, ok := d.cache.Get(key); ok {
		return v.([]internal.RawRecord)
	}

	status, recs := d.shop.GetRepairOrders("")
	if status != http.StatusOK {
		opsProviderErrors.Inc()
		log.Warn().Str("call", key).Int("status", status).Msg("provider call failed")
		return nil
	}

	d.cache.Set(key, recs)
	return recs
}

func (d *Dashboard) publishAlerts(alerts []string) {
	if len(d.notifiers) == 0 {
		return
	}

	for _, msg := range alerts {
		evt := internal.AlertEvent{
			Message:   msg,
			EventTime: stdlib.Now(),
		}
		for _, p := range d.notifiers {
			if err := p.Publish(&evt); err != nil {
				log.Error().Err(err).Str("alert", msg).Msg("alert not published")
			}
		}
	}
}

// Fleet returns the joined fleet view, optionally filtered by status
func (d *Dashboard) Fleet(status string) fleetview.Table {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.fleet.FilterStatus(status)
}

func (d *Dashboard) FleetMetrics() fleetview.Metrics {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return fleetview.Summarize(d.fleet)
}

func (d *Dashboard) Alerts() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.alerts
}

// Orders returns the repair orders, optionally filtered by status and by
// a set of priorities
func (d *Dashboard) Orders(status string, priorities []string) repairs.Table {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.orders.FilterStatus(status).FilterPriority(priorities)
}

func (d *Dashboard) OrderMetrics() repairs.Metrics {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return repairs.Summarize(d.orders)
}

func (d *Dashboard) CostReport() repairs.CostBreakdown {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return repairs.CostReport(d.orders)
}

func (d *Dashboard) TechnicianReport() []repairs.TechnicianStats {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return repairs.TechnicianReport(d.orders)
}

func (d *Dashboard) UnitHistory(unitNumber string) repairs.UnitHistory {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return repairs.HistoryForUnit(d.orders, unitNumber)
}

func (d *Dashboard) LastRefresh() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.lastRefresh
}

// CreateOrder submits a new repair order to the shop provider. The local
// state is not patched, the order shows up with the next refresh.
func (d *Dashboard) CreateOrder(ro internal.RawRecord) int {
	if d.shop == nil {
		return http.StatusServiceUnavailable
	}

	status := d.shop.CreateRepairOrder(ro)
	if status == http.StatusOK || status == http.StatusCreated {
		d.cache.InvalidateAll()
	}
	return status
}

// UpdateOrder submits field updates for an existing repair order, see
// CreateOrder for the refresh semantics
func (d *Dashboard) UpdateOrder(roNumber string, updates internal.RawRecord) int {
	if d.shop == nil {
		return http.StatusServiceUnavailable
	}

	status := d.shop.UpdateRepairOrder(roNumber, updates)
	if status == http.StatusOK || status == http.StatusNoContent {
		d.cache.InvalidateAll()
	}
	return status
}
