package repairs

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// accepted creation timestamp layouts, after stripping a literal 'Z'
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// DaysOpen computes the whole days between a creation timestamp
// (ISO-8601, optionally 'Z'-suffixed for UTC) and now. An empty or
// unparseable timestamp yields 0 with a warning. A future timestamp
// yields a negative count, deliberately not clamped.
func DaysOpen(createdDate string, now time.Time) int {
	if createdDate == "" {
		return 0
	}

	created, err := parseTimestamp(createdDate)
	if err != nil {
		log.Warn().Str("created_date", createdDate).Msg("invalid date format")
		return 0
	}

	return int(now.Sub(created).Hours() / 24)
}

func parseTimestamp(ts string) (time.Time, error) {
	ts = strings.TrimSuffix(ts, "Z")

	var err error
	for _, layout := range timestampLayouts {
		var t time.Time
		if t, err = time.ParseInLocation(layout, ts, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
