// Package notify fans fleet alerts out to messaging backends. Publishing
// is best-effort: a broker being down never fails a dashboard refresh.
package notify

import (
	"github.com/wanship-fleet/fleetops/internal"
)

type (
	Publisher interface {
		// Publish sends one alert event. Errors are reported but the
		// caller is expected to continue.
		Publish(evt *internal.AlertEvent) error

		// Close releases the broker connection
		Close()
	}
)
