package fleetview

type (
	Vehicle struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		VIN          string `json:"vin"`
		Make         string `json:"make"`
		Model        string `json:"model"`
		Year         int    `json:"year,omitempty"`
		LicensePlate string `json:"license_plate"`
		Serial       string `json:"serial"`
	}

	// StatSnapshot is the live telemetry for one vehicle at fetch time,
	// no history is retained. Status is derived, see ClassifyStatus.
	StatSnapshot struct {
		VehicleID     string  `json:"vehicle_id"`
		SpeedMPH      float64 `json:"speed_mph"`
		FuelPercent   float64 `json:"fuel_percent"`
		EngineHours   float64 `json:"engine_hours"`
		OdometerMiles float64 `json:"odometer_miles"`
		Status        string  `json:"status"`
	}

	Location struct {
		VehicleID string  `json:"vehicle_id"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Time      string  `json:"time,omitempty"`
		Address   string  `json:"address,omitempty"`
	}

	Driver struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	Assignment struct {
		VehicleID string `json:"vehicle_id"`
		DriverID  string `json:"driver_id"`
	}

	// Row is one joined fleet-view record. The joined tables land in
	// sub-objects so that e.g. the driver name can never overwrite the
	// vehicle name; nil means the left-outer join found no match.
	Row struct {
		Vehicle
		Stats    *StatSnapshot `json:"stats"`
		Location *Location     `json:"location"`
		Driver   *Driver       `json:"driver"`
	}

	Table []Row
)

const (
	StatusMoving  = "moving"
	StatusIdle    = "idle"
	StatusOffline = "offline"
)

// Status returns the derived vehicle status, offline without telemetry
func (r *Row) Status() string {
	if r.Stats == nil {
		return StatusOffline
	}
	return r.Stats.Status
}

// FilterStatus returns the rows matching a status, "all" keeps everything.
// Rows without telemetry only match "all".
func (t Table) FilterStatus(status string) Table {
	if status == "" || status == "all" {
		return t
	}

	filtered := make(Table, 0, len(t))
	for _, row := range t {
		if row.Stats != nil && row.Stats.Status == status {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
