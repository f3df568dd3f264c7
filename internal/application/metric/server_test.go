package metric

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthReportsActiveRooms(t *testing.T) {
	SetRoomsActive(3)
	t.Cleanup(func() { SetRoomsActive(0) })

	rec := httptest.NewRecorder()
	NewServer().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 3, body.RoomsActive)
	assert.NotEmpty(t, body.Uptime)
}

func TestMetricsEndpointExposesRoomGauge(t *testing.T) {
	SetRoomsActive(2)
	t.Cleanup(func() { SetRoomsActive(0) })

	rec := httptest.NewRecorder()
	NewServer().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "signaling_rooms_active 2")
}
