package fleetview

// Join combines the normalized tables into one row per vehicle via
// repeated left-outer joins, in this order: vehicles, stats, locations,
// assignments, drivers. Every vehicle survives even without a match
// anywhere else, and the output order equals the vehicle input order.
// Should a right-side table carry the same vehicle twice, the first
// match wins so the row-per-vehicle invariant holds.
func Join(vehicles []Vehicle, stats []StatSnapshot, locations []Location, assignments []Assignment, drivers []Driver) Table {

	statsByVehicle := make(map[string]StatSnapshot, len(stats))
	for _, s := range stats {
		if _, ok := statsByVehicle[s.VehicleID]; !ok {
			statsByVehicle[s.VehicleID] = s
		}
	}

	locationByVehicle := make(map[string]Location, len(locations))
	for _, l := range locations {
		if _, ok := locationByVehicle[l.VehicleID]; !ok {
			locationByVehicle[l.VehicleID] = l
		}
	}

	assignmentByVehicle := make(map[string]Assignment, len(assignments))
	for _, a := range assignments {
		if _, ok := assignmentByVehicle[a.VehicleID]; !ok {
			assignmentByVehicle[a.VehicleID] = a
		}
	}

	driverByID := make(map[string]Driver, len(drivers))
	for _, d := range drivers {
		if _, ok := driverByID[d.ID]; !ok {
			driverByID[d.ID] = d
		}
	}

	table := make(Table, 0, len(vehicles))
	for _, v := range vehicles {
		row := Row{Vehicle: v}

		if s, ok := statsByVehicle[v.ID]; ok {
			stat := s
			row.Stats = &stat
		}
		if l, ok := locationByVehicle[v.ID]; ok {
			loc := l
			row.Location = &loc
		}
		if a, ok := assignmentByVehicle[v.ID]; ok {
			if d, ok := driverByID[a.DriverID]; ok {
				driver := d
				row.Driver = &driver
			}
		}

		table = append(table, row)
	}

	return table
}
