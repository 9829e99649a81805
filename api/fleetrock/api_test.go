package fleetrock

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wanship-fleet/fleetops/internal"
)

func fakeShopService(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/GetToken", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "wanship.shop", r.URL.Query().Get("username"))
		assert.Equal(t, "secret-key", r.URL.Query().Get("key"))
		json.NewEncoder(w).Encode(TokenResponse{Token: "session-token"})
	})
	mux.HandleFunc("/GetRO", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "session-token", user)
		assert.Empty(t, pass)

		orders := []internal.RawRecord{
			{"ro_number": "RO-1042", "status": "open"},
			{"ro_number": "RO-1043", "status": "closed"},
		}
		if status := r.URL.Query().Get("status"); status != "" {
			filtered := make([]internal.RawRecord, 0)
			for _, ro := range orders {
				if ro.GetString("status", "") == status {
					filtered = append(filtered, ro)
				}
			}
			orders = filtered
		}
		json.NewEncoder(w).Encode(ListResponse{RepairOrders: orders})
	})
	mux.HandleFunc("/CreateRO", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		// identity rides in the session token, not in the query
		assert.Empty(t, r.URL.RawQuery)

		var body internal.RawRecord
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "T-12", body.GetString("unit_number", ""))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(StatusResponse{Status: "created"})
	})
	mux.HandleFunc("/UpdateRO", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Empty(t, r.URL.RawQuery)

		var body internal.RawRecord
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "RO-1042", body.GetString("ro_number", ""))
		assert.Equal(t, "closed", body.GetString("status", ""))

		json.NewEncoder(w).Encode(StatusResponse{Status: "updated"})
	})

	return httptest.NewServer(mux)
}

func shopClient(t *testing.T, endpoint string) *Client {
	cl, err := NewClient(context.TODO(),
		internal.WithEndpoint(endpoint),
		internal.WithCredentials("wanship.shop", "secret-key"),
	)
	assert.NoError(t, err)
	assert.NotNil(t, cl)
	return cl
}

func TestNewClientLogin(t *testing.T) {
	svc := fakeShopService(t)
	defer svc.Close()

	cl := shopClient(t, svc.URL)

	// the session token replaces the account credentials
	assert.Equal(t, "session-token", cl.rc.Settings.Credentials.UserID)
	assert.Empty(t, cl.rc.Settings.Credentials.Token)
}

func TestNewClientBadKey(t *testing.T) {
	svc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid key", http.StatusUnauthorized)
	}))
	defer svc.Close()

	cl, err := NewClient(context.TODO(),
		internal.WithEndpoint(svc.URL),
		internal.WithCredentials("wanship.shop", "wrong-key"),
	)

	assert.Error(t, err)
	assert.Nil(t, cl)
}

func TestNewClientMissingKey(t *testing.T) {
	cl, err := NewClient(context.TODO(), internal.WithCredentials("wanship.shop", ""))

	assert.Error(t, err)
	assert.Nil(t, cl)
}

func TestGetRepairOrders(t *testing.T) {
	svc := fakeShopService(t)
	defer svc.Close()

	cl := shopClient(t, svc.URL)

	status, orders := cl.GetRepairOrders("")
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, orders, 2)

	status, orders = cl.GetRepairOrders("open")
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, orders, 1)
	assert.Equal(t, "RO-1042", orders[0].GetString("ro_number", ""))
}

func TestCreateRepairOrder(t *testing.T) {
	svc := fakeShopService(t)
	defer svc.Close()

	cl := shopClient(t, svc.URL)

	status := cl.CreateRepairOrder(internal.RawRecord{
		"unit_number": "T-12",
		"description": "brake system overhaul",
	})
	assert.Equal(t, http.StatusCreated, status)
}

func TestUpdateRepairOrder(t *testing.T) {
	svc := fakeShopService(t)
	defer svc.Close()

	cl := shopClient(t, svc.URL)

	status := cl.UpdateRepairOrder("RO-1042", internal.RawRecord{"status": "closed"})
	assert.Equal(t, http.StatusOK, status)
}
