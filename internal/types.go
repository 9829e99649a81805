package internal

import (
	"fmt"
	"strconv"
	"strings"
)

type (
	// RawRecord is a single vendor record as decoded from JSON, i.e. a
	// mapping of field names to values of unknown shape. The normalizers
	// turn these into typed rows.
	RawRecord map[string]interface{}

	// {"message":"Vehicle 281474:  Speeding (92 mph)","eventTime":1683137969}
	AlertEvent struct {
		Message   string `json:"message"`
		EventTime int64  `json:"eventTime"`
	}
)

func (evt *AlertEvent) String() string {
	return evt.Message
}

// GetString returns the field as a string or def if absent or not a string
func (r RawRecord) GetString(key, def string) string {
	if v, ok := r[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// GetFloat returns the field as a float64. JSON numbers, integers and
// numeric strings are accepted, anything else yields def.
func (r RawRecord) GetFloat(key string, def float64) float64 {
	v, ok := r[key]
	if !ok || v == nil {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f
		}
	}
	return def
}

// GetInt returns the field as an int, see GetFloat for the accepted shapes
func (r RawRecord) GetInt(key string, def int) int {
	return int(r.GetFloat(key, float64(def)))
}

func (r RawRecord) GetBool(key string, def bool) bool {
	if v, ok := r[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// GetJoined normalizes a list-typed field to a single human-readable
// string, e.g. ["A","B"] -> "A, B". A string value passes through
// unchanged, so re-normalizing is idempotent.
func (r RawRecord) GetJoined(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch l := v.(type) {
	case string:
		return l
	case []interface{}:
		items := make([]string, 0, len(l))
		for _, item := range l {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return strings.Join(items, ", ")
	case []string:
		return strings.Join(l, ", ")
	}
	return ""
}
