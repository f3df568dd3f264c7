package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "9090", cfg.MetricPort)
	assert.Equal(t, 30*time.Minute, cfg.RoomTTL)
	assert.Equal(t, time.Minute, cfg.ReapInterval)
	assert.Equal(t, TranscriptStoreFile, cfg.TranscriptStore)
	assert.Equal(t, []string{"stun:stun.l.google.com:19302"}, cfg.STUNURLs)
	assert.False(t, cfg.TurnEnabled())
	assert.Empty(t, cfg.TurnUDPServer.URLs)
}

func TestNewTurnServers(t *testing.T) {
	t.Setenv("COTURN_HOST", "turn.example.com:3478")
	t.Setenv("COTURN_SECRET", "s3cret")

	cfg, err := New()
	require.NoError(t, err)

	require.True(t, cfg.TurnEnabled())
	assert.Equal(t, []string{"turn:turn.example.com:3478?transport=udp"}, cfg.TurnUDPServer.URLs)
	assert.Equal(t, []string{"turn:turn.example.com:3478?transport=tcp"}, cfg.TurnTCPServer.URLs)
}

func TestNewRejectsUnknownTranscriptStore(t *testing.T) {
	t.Setenv("TRANSCRIPT_STORE", "s3")

	_, err := New()
	assert.Error(t, err)
}

func TestNewRejectsNegativeTTL(t *testing.T) {
	t.Setenv("ROOM_TTL", "-1m")

	_, err := New()
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	p := PostgresConfig{
		Host:     "db",
		Port:     5432,
		User:     "u",
		Password: "p",
		Name:     "consultations",
		SSL:      "disable",
	}
	assert.Equal(t, "postgresql://u:p@db:5432/consultations?sslmode=disable", p.DSN())

	p.URL = "postgres://override"
	assert.Equal(t, "postgres://override", p.DSN())
}
