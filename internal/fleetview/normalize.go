package fleetview

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/wanship-fleet/fleetops/internal"
)

// NormalizeVehicle shapes one raw vehicle record. The identifier is the
// only required field, everything else defaults to its zero value.
func NormalizeVehicle(rec internal.RawRecord) (Vehicle, error) {
	id := rec.GetString("id", "")
	if id == "" {
		return Vehicle{}, fmt.Errorf("vehicle record without id")
	}

	return Vehicle{
		ID:           id,
		Name:         rec.GetString("name", ""),
		VIN:          rec.GetString("vin", ""),
		Make:         rec.GetString("make", ""),
		Model:        rec.GetString("model", ""),
		Year:         rec.GetInt("year", 0),
		LicensePlate: rec.GetString("licensePlate", ""),
		Serial:       rec.GetString("serial", ""),
	}, nil
}

// NormalizeVehicles shapes a batch. A malformed record is dropped with a
// warning, it never aborts the batch.
func NormalizeVehicles(recs []internal.RawRecord) []Vehicle {
	vehicles := make([]Vehicle, 0, len(recs))
	for _, rec := range recs {
		v, err := NormalizeVehicle(rec)
		if err != nil {
			log.Warn().Err(err).Msg("dropping vehicle record")
			continue
		}
		vehicles = append(vehicles, v)
	}
	return vehicles
}

// NormalizeStats shapes the per-vehicle stats response and derives the
// vehicle status from speed and engine state
func NormalizeStats(vehicleID string, rec internal.RawRecord) StatSnapshot {
	speed := rec.GetFloat("speedMilesPerHour", 0)

	return StatSnapshot{
		VehicleID:     vehicleID,
		SpeedMPH:      speed,
		FuelPercent:   rec.GetFloat("fuelPercent", 0),
		EngineHours:   rec.GetFloat("engineHours", 0),
		OdometerMiles: rec.GetFloat("odometerMiles", 0),
		Status:        ClassifyStatus(speed, rec.GetString("engineState", "")),
	}
}

// NormalizeLocation shapes the per-vehicle location response
func NormalizeLocation(vehicleID string, rec internal.RawRecord) Location {
	return Location{
		VehicleID: vehicleID,
		Latitude:  rec.GetFloat("latitude", 0),
		Longitude: rec.GetFloat("longitude", 0),
		Time:      rec.GetString("time", ""),
		Address:   rec.GetString("formattedAddress", ""),
	}
}

func NormalizeDrivers(recs []internal.RawRecord) []Driver {
	drivers := make([]Driver, 0, len(recs))
	for _, rec := range recs {
		id := rec.GetString("id", "")
		if id == "" {
			log.Warn().Msg("dropping driver record without id")
			continue
		}
		drivers = append(drivers, Driver{
			ID:   id,
			Name: rec.GetString("name", ""),
		})
	}
	return drivers
}

func NormalizeAssignments(recs []internal.RawRecord) []Assignment {
	assignments := make([]Assignment, 0, len(recs))
	for _, rec := range recs {
		vehicleID := rec.GetString("vehicleId", "")
		driverID := rec.GetString("driverId", "")
		if vehicleID == "" || driverID == "" {
			log.Warn().Msg("dropping incomplete driver-vehicle assignment")
			continue
		}
		assignments = append(assignments, Assignment{
			VehicleID: vehicleID,
			DriverID:  driverID,
		})
	}
	return assignments
}
