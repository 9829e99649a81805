package fleetrock

import (
	"github.com/wanship-fleet/fleetops/internal"
)

type (
	// TokenResponse is returned by the GetToken login call
	TokenResponse struct {
		Token string `json:"token"`
	}

	// ListResponse is the repair-order list envelope,
	// e.g. {"repair_orders":[{"ro_number":"RO-1042", ...}]}
	ListResponse struct {
		RepairOrders []internal.RawRecord `json:"repair_orders"`
	}

	// StatusResponse acknowledges a create or update call
	StatusResponse struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
)
