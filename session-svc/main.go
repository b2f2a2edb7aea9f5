package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meal-together/config"
	httpapi "meal-together/session-svc/internal/api/http"
	"meal-together/session-svc/internal/service"
	"meal-together/session-svc/internal/storage"

	"github.com/juju/clock"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	log := config.NewLogger("session-svc")
	settings := config.Load(log)

	loc := displayLocation(settings.DisplayTimezone, log)

	db := config.MustInitPostgres(log)
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := storage.EnsureSchema(ctx, db); err != nil {
		log.WithError(err).Fatal("failed to ensure schema")
	}
	cancel()

	rdb := config.MustInitRedis(log)
	defer rdb.Close()

	writer := config.NewKafkaWriter(config.NotificationsTopic)
	defer writer.Close()

	repo := storage.NewPostgresRepository(db)
	publisher := storage.NewKafkaPublisher(writer)
	lock := storage.NewRedisSweepLock(rdb, settings.SweepLeaseTTL)
	clk := clock.WallClock

	dispatcher := service.NewDispatcher(repo, publisher, clk, settings.PublicBaseURL, log.WithField("component", "dispatcher"))
	qr := service.DefaultQRGenerator{BaseURL: settings.PublicBaseURL}

	userSvc := service.NewUserService(repo)
	restSvc := service.NewRestaurantService(repo)
	sessionSvc := service.NewSessionService(repo, repo, repo, repo, dispatcher, qr, clk, loc, log.WithField("component", "sessions"))
	orderSvc := service.NewOrderService(repo, repo, repo, dispatcher, clk, log.WithField("component", "orders"))
	balanceSvc := service.NewBalanceService(repo, repo)

	sweeper := service.NewDeadlineSweeper(repo, lock, dispatcher, clk, log.WithField("component", "sweep"))
	scheduler, err := newScheduler(settings.SweepSchedule, sweeper.Run)
	if err != nil {
		log.WithError(err).WithField("schedule", settings.SweepSchedule).Fatal("invalid sweep schedule")
	}
	scheduler.Start()
	defer scheduler.Stop()

	handler := httpapi.NewHandler(userSvc, restSvc, sessionSvc, orderSvc, balanceSvc, log.WithField("component", "http"))

	go func() {
		if err := httpapi.StartServer(settings.HTTPAddr, httpapi.NewRouter(handler), log); err != nil {
			log.WithError(err).Fatal("http server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("shutting down")
}

// displayLocation falls back to UTC for unknown zone names.
func displayLocation(name string, log *logrus.Entry) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.WithError(err).WithField("timezone", name).Warn("unknown display timezone, using UTC")
		return time.UTC
	}
	return loc
}

func newScheduler(schedule string, job func()) (*cron.Cron, error) {
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(schedule, job); err != nil {
		return nil, err
	}
	return scheduler, nil
}
