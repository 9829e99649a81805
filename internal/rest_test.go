package internal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/txsvc/apikit/settings"
)

func restClient(endpoint string, cred settings.Credentials) *RestClient {
	return &RestClient{
		HttpClient: NewLoggingTransport(http.DefaultTransport),
		Settings: &settings.DialSettings{
			Endpoint:    endpoint,
			UserAgent:   "fleetops/test",
			Credentials: &cred,
		},
	}
}

func TestGetBearerAuth(t *testing.T) {
	svc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer samsara-token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer svc.Close()

	cl := restClient(svc.URL, settings.Credentials{Token: "samsara-token"})

	var resp map[string]string
	status, err := cl.GET("/fleet/vehicles", &resp)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", resp["status"])
}

func TestGetBasicAuthEmptyPassword(t *testing.T) {
	svc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "session-token", user)
		assert.Empty(t, pass)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer svc.Close()

	cl := restClient(svc.URL, settings.Credentials{UserID: "session-token"})

	var resp map[string]string
	status, err := cl.GET("/GetRO", &resp)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
}

func TestPost(t *testing.T) {
	svc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "RO-1042", body["ro_number"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"status": "created"})
	}))
	defer svc.Close()

	cl := restClient(svc.URL, settings.Credentials{UserID: "session-token"})

	var resp map[string]string
	status, err := cl.POST("/CreateRO", map[string]string{"ro_number": "RO-1042"}, &resp)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "created", resp["status"])
}

func TestApiInvocationError(t *testing.T) {
	svc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer svc.Close()

	cl := restClient(svc.URL, settings.Credentials{Token: "expired"})

	status, err := cl.GET("/fleet/vehicles", nil)

	assert.ErrorIs(t, err, ErrApiInvocationError)
	assert.Equal(t, http.StatusUnauthorized, status)
}
