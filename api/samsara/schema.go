package samsara

import (
	"github.com/wanship-fleet/fleetops/internal"
)

type (
	// ListResponse is the envelope the fleet list endpoints use,
	// e.g. {"data":[{"id":"281474","name":"Truck 12", ...}]}. The
	// per-vehicle location/stats endpoints return the record directly,
	// without an envelope.
	ListResponse struct {
		Data []internal.RawRecord `json:"data"`
	}
)
