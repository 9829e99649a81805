package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetString(t *testing.T) {
	rec := RawRecord{"name": "Truck 12", "year": float64(2020)}

	assert.Equal(t, "Truck 12", rec.GetString("name", ""))
	assert.Equal(t, "n/a", rec.GetString("missing", "n/a"))
	assert.Equal(t, "n/a", rec.GetString("year", "n/a"))
}

func TestGetFloat(t *testing.T) {
	rec := RawRecord{
		"speed": float64(62.5),
		"count": 7,
		"cost":  "99.95",
		"bogus": "not-a-number",
		"empty": nil,
	}

	assert.Equal(t, 62.5, rec.GetFloat("speed", 0))
	assert.Equal(t, 7.0, rec.GetFloat("count", 0))
	assert.Equal(t, 99.95, rec.GetFloat("cost", 0))
	assert.Equal(t, -1.0, rec.GetFloat("bogus", -1))
	assert.Equal(t, -1.0, rec.GetFloat("empty", -1))
	assert.Equal(t, -1.0, rec.GetFloat("missing", -1))
}

func TestGetInt(t *testing.T) {
	rec := RawRecord{"year": float64(2020)}

	assert.Equal(t, 2020, rec.GetInt("year", 0))
	assert.Equal(t, 42, rec.GetInt("missing", 42))
}

func TestGetBool(t *testing.T) {
	rec := RawRecord{"warranty": true, "label": "yes"}

	assert.True(t, rec.GetBool("warranty", false))
	assert.False(t, rec.GetBool("label", false))
	assert.True(t, rec.GetBool("missing", true))
}

func TestGetJoined(t *testing.T) {
	rec := RawRecord{
		"tasks":     []interface{}{"inspect pads", "replace rotors"},
		"prejoined": "A, B",
		"names":     []string{"A", "B"},
		"count":     float64(3),
	}

	assert.Equal(t, "inspect pads, replace rotors", rec.GetJoined("tasks"))
	assert.Equal(t, "A, B", rec.GetJoined("prejoined"))
	assert.Equal(t, "A, B", rec.GetJoined("names"))
	assert.Equal(t, "", rec.GetJoined("count"))
	assert.Equal(t, "", rec.GetJoined("missing"))
}

func TestAlertEventString(t *testing.T) {
	evt := AlertEvent{Message: "Vehicle 281474: Speeding (92 mph)", EventTime: 1683137969}
	assert.Equal(t, "Vehicle 281474: Speeding (92 mph)", evt.String())
}
