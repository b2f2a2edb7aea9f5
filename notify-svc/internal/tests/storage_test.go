package tests

import (
	"context"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"meal-together/notify-svc/internal/domain"
	"meal-together/notify-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisDeliveryLog(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	ctx := context.Background()
	deliveries := storage.NewRedisDeliveryLog(client, time.Hour)

	delivered, err := deliveries.Delivered(ctx, "n-1")
	require.NoError(t, err)
	assert.False(t, delivered)

	require.NoError(t, deliveries.MarkDelivered(ctx, "n-1"))
	assert.True(t, mr.Exists("notification:n-1"))

	delivered, err = deliveries.Delivered(ctx, "n-1")
	require.NoError(t, err)
	assert.True(t, delivered)

	mr.FastForward(time.Hour + time.Second)
	delivered, err = deliveries.Delivered(ctx, "n-1")
	require.NoError(t, err)
	assert.False(t, delivered)
}

func TestSMTPMailer_Send(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	mailer := storage.NewSMTPMailer("smtp.test:587", "noreply@meal.test", "", "")
	mailer.Now = func() time.Time { return baseTime }
	mailer.SendMail = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		assert.Nil(t, auth)
		return nil
	}

	err := mailer.Send(context.Background(), domain.Email{
		To:      []string{"a@example.com", "b@example.com"},
		Subject: "Updates to the session: Lunch",
		Body:    "line one\nline two\n",
	})

	require.NoError(t, err)
	assert.Equal(t, "smtp.test:587", gotAddr)
	assert.Equal(t, "noreply@meal.test", gotFrom)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, gotTo)

	msg := string(gotMsg)
	assert.Contains(t, msg, "To: a@example.com, b@example.com\r\n")
	assert.Contains(t, msg, "Subject: Updates to the session: Lunch\r\n")
	assert.True(t, strings.HasSuffix(msg, "\r\n\r\nline one\r\nline two\r\n"))
}

func TestSMTPMailer_UsesAuthWhenConfigured(t *testing.T) {
	mailer := storage.NewSMTPMailer("smtp.test:587", "noreply@meal.test", "user", "secret")
	assert.NotNil(t, mailer.Auth)
}

func TestSMTPMailer_SendError(t *testing.T) {
	mailer := storage.NewSMTPMailer("smtp.test:25", "noreply@meal.test", "", "")
	mailer.SendMail = func(string, smtp.Auth, string, []string, []byte) error { return assert.AnError }

	err := mailer.Send(context.Background(), domain.Email{To: []string{"a@example.com"}})
	assert.ErrorIs(t, err, assert.AnError)
}
