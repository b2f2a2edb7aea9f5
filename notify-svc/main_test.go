package main

import (
	"testing"
	"time"

	"meal-together/config"
	"meal-together/notify-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConsumer_WiresSettings(t *testing.T) {
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { rdb.Close() })
	logger, _ := logtest.NewNullLogger()

	settings := config.Settings{
		SMTPAddr:              "mail.example.com:587",
		SMTPFrom:              "lunch@example.com",
		SMTPUser:              "bot",
		SMTPPass:              "secret",
		NotificationMarkerTTL: 48 * time.Hour,
	}

	consumer := newConsumer(settings, rdb, nil, logrus.NewEntry(logger))

	mailer, ok := consumer.Mailer.(*storage.SMTPMailer)
	require.True(t, ok)
	assert.Equal(t, "mail.example.com:587", mailer.Addr)
	assert.Equal(t, "lunch@example.com", mailer.From)
	assert.NotNil(t, mailer.Auth)

	deliveries, ok := consumer.Deliveries.(*storage.RedisDeliveryLog)
	require.True(t, ok)
	assert.Equal(t, 48*time.Hour, deliveries.TTL)
	assert.Same(t, rdb, deliveries.Client)
	assert.Greater(t, consumer.Attempts, 0)
}

func TestNewConsumer_UnauthenticatedRelay(t *testing.T) {
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { rdb.Close() })
	logger, _ := logtest.NewNullLogger()

	consumer := newConsumer(config.Settings{SMTPAddr: "localhost:1025", SMTPFrom: "lunch@example.com"}, rdb, nil, logrus.NewEntry(logger))

	mailer, ok := consumer.Mailer.(*storage.SMTPMailer)
	require.True(t, ok)
	assert.Nil(t, mailer.Auth)
}
