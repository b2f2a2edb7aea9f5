package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	log := logrus.NewEntry(logger)

	t.Run("defaults", func(t *testing.T) {
		for _, key := range []string{"GATEWAY_ADDR", "SESSION_SVC_URL", "NOTIFICATION_MARKER_TTL", "SWEEP_LEASE_TTL"} {
			t.Setenv(key, "")
		}

		settings := Load(log)

		assert.Equal(t, ":8080", settings.GatewayAddr)
		assert.Equal(t, "http://localhost:8081", settings.SessionSvcURL)
		assert.Equal(t, 72*time.Hour, settings.NotificationMarkerTTL)
		assert.Equal(t, 50*time.Second, settings.SweepLeaseTTL)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("SESSION_SVC_URL", "http://session-svc:8081")
		t.Setenv("NOTIFICATION_MARKER_TTL", "24h")

		settings := Load(log)

		assert.Equal(t, "http://session-svc:8081", settings.SessionSvcURL)
		assert.Equal(t, 24*time.Hour, settings.NotificationMarkerTTL)
	})

	t.Run("bare seconds and malformed durations", func(t *testing.T) {
		t.Setenv("SWEEP_LEASE_TTL", "soon")
		t.Setenv("NOTIFICATION_MARKER_TTL", "3600")

		settings := Load(log)

		assert.Equal(t, 50*time.Second, settings.SweepLeaseTTL)
		assert.Equal(t, time.Hour, settings.NotificationMarkerTTL)
	})
}
