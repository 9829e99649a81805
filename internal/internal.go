package internal

import (
	"math"
	"os"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"github.com/txsvc/stdlib/v2"
)

const (
	LOG_LEVEL = "log_level" // trace, debug, info, warn, error
)

// SetLogLevel sets the global zerolog level from the environment
func SetLogLevel() {
	switch strings.ToLower(stdlib.GetString(LOG_LEVEL, "info")) {
	case "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func Duration(d time.Duration, dicimal int) time.Duration {
	shift := int(math.Pow10(dicimal))

	units := []time.Duration{time.Second, time.Millisecond, time.Microsecond, time.Nanosecond}
	for _, u := range units {
		if d > u {
			div := u / time.Duration(shift)
			if div == 0 {
				break
			}
			d = d / div * div
			break
		}
	}
	return d
}

func XID() string {
	return xid.New().String()
}

// FIXME move this to stdlib
func GetBool(env string, def bool) bool {
	e, ok := os.LookupEnv(env)
	if !ok {
		return def
	}

	e = strings.ToLower(e)
	if e == "true" || e == "yes" || e == "1" {
		return true
	}
	return false
}
