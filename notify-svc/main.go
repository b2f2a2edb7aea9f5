package main

import (
	"context"
	"os/signal"
	"syscall"

	"meal-together/config"
	"meal-together/notify-svc/internal/service"
	"meal-together/notify-svc/internal/storage"

	"github.com/juju/clock"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	log := config.NewLogger("notify-svc")
	settings := config.Load(log)

	rdb := config.MustInitRedis(log)
	defer rdb.Close()

	reader := config.NewKafkaReader(config.NotificationsTopic, "notify-svc-consumer")
	defer reader.Close()

	consumer := newConsumer(settings, rdb, reader, log.WithField("component", "consumer"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Start(ctx); err != nil {
		log.WithError(err).Fatal("consumer stopped")
	}
	log.Info("shutting down")
}

func newConsumer(settings config.Settings, rdb *redis.Client, reader service.Reader, log *logrus.Entry) *service.Consumer {
	mailer := storage.NewSMTPMailer(settings.SMTPAddr, settings.SMTPFrom, settings.SMTPUser, settings.SMTPPass)
	deliveries := storage.NewRedisDeliveryLog(rdb, settings.NotificationMarkerTTL)
	return service.NewConsumer(reader, mailer, deliveries, clock.WallClock, log)
}
