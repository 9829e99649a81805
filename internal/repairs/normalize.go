package repairs

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wanship-fleet/fleetops/internal"
)

// Normalize shapes a batch of raw repair-order records. Absent fields get
// their documented defaults; an order number is generated as RO-NNNN when
// the source has none. A record that fails normalization (a cost field
// that is not a number) is dropped with a warning, the batch proceeds.
func Normalize(recs []internal.RawRecord, now time.Time) Table {
	table := make(Table, 0, len(recs))
	for _, rec := range recs {
		ro, err := normalizeOne(rec, len(table)+1, now)
		if err != nil {
			log.Warn().Err(err).Msg("dropping repair order record")
			continue
		}
		table = append(table, ro)
	}
	return table
}

func normalizeOne(rec internal.RawRecord, n int, now time.Time) (RepairOrder, error) {

	totalCost, err := numericField(rec, "total_cost")
	if err != nil {
		return RepairOrder{}, err
	}
	laborHours, err := numericField(rec, "labor_hours")
	if err != nil {
		return RepairOrder{}, err
	}
	partsCost, err := numericField(rec, "parts_cost")
	if err != nil {
		return RepairOrder{}, err
	}
	laborCost, err := numericField(rec, "labor_cost")
	if err != nil {
		return RepairOrder{}, err
	}

	createdDate := rec.GetString("created_date", "")

	return RepairOrder{
		RONumber:            rec.GetString("ro_number", fmt.Sprintf("RO-%04d", n)),
		UnitNumber:          rec.GetString("unit_number", ""),
		VIN:                 rec.GetString("vin", ""),
		Status:              rec.GetString("status", StatusOpen),
		Priority:            rec.GetString("priority", PriorityMedium),
		CreatedDate:         createdDate,
		DueDate:             rec.GetString("due_date", ""),
		DaysOpen:            DaysOpen(createdDate, now),
		EstimatedCompletion: rec.GetString("estimated_completion", ""),
		Description:         rec.GetString("description", ""),
		Tasks:               rec.GetJoined("tasks"),
		PartsNeeded:         rec.GetJoined("parts_needed"),
		TotalCost:           totalCost,
		LaborHours:          laborHours,
		PartsCost:           partsCost,
		LaborCost:           laborCost,
		Technician:          rec.GetString("technician", DefaultTechnician),
		Location:            rec.GetString("location", DefaultLocation),
		CustomerName:        rec.GetString("customer_name", ""),
		CustomerContact:     rec.GetString("customer_contact", ""),
		Notes:               rec.GetString("notes", ""),
		Warranty:            rec.GetBool("warranty", false),
	}, nil
}

// numericField converts a cost/hours field. Absent means 0; a value that
// is present but not convertible makes the record malformed.
func numericField(rec internal.RawRecord, key string) (float64, error) {
	v, ok := rec[key]
	if !ok || v == nil {
		return 0, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("field '%s' is not a number: %v", key, v)
		}
		return f, nil
	}
	return 0, fmt.Errorf("field '%s' is not a number: %v", key, v)
}
