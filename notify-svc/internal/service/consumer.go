package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"meal-together/notify-svc/internal/domain"

	"github.com/juju/clock"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const defaultAttempts = 3

// errPermanent marks failures that retrying cannot fix.
var errPermanent = errors.New("permanent delivery failure")

type Consumer struct {
	Reader     Reader
	Mailer     Mailer
	Deliveries DeliveryLog
	Clock      clock.Clock
	Attempts   int
	Backoff    time.Duration
	log        *logrus.Entry
}

func NewConsumer(reader Reader, mailer Mailer, deliveries DeliveryLog, clk clock.Clock, log *logrus.Entry) *Consumer {
	return &Consumer{
		Reader:     reader,
		Mailer:     mailer,
		Deliveries: deliveries,
		Clock:      clk,
		Attempts:   defaultAttempts,
		Backoff:    2 * time.Second,
		log:        log,
	}
}

// Start reads notifications until ctx is cancelled. Every message is committed once it
// was delivered, skipped, or ran out of attempts.
func (c *Consumer) Start(ctx context.Context) error {
	c.log.Info("Starting Notification Service consumer...")
	for {
		message, err := c.Reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.log.WithError(err).Error("error reading message")
			continue
		}

		c.handleMessage(ctx, message)

		if err := c.Reader.CommitMessages(ctx, message); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.log.WithError(err).WithField("offset", message.Offset).Error("error committing message")
		}
	}
}

func (c *Consumer) handleMessage(ctx context.Context, message kafka.Message) {
	var n domain.Notification
	if err := json.Unmarshal(message.Value, &n); err != nil {
		c.log.WithError(err).WithField("offset", message.Offset).Warn("error unmarshaling notification")
		return
	}

	log := c.log.WithFields(logrus.Fields{"notification_id": n.ID, "kind": n.Kind, "session_id": n.SessionID})
	for attempt := 1; ; attempt++ {
		err := c.Process(ctx, n)
		if err == nil {
			return
		}
		if errors.Is(err, errPermanent) || attempt >= c.Attempts || ctx.Err() != nil {
			log.WithError(err).WithField("attempt", attempt).Error("dropping notification")
			return
		}
		log.WithError(err).WithField("attempt", attempt).Warn("delivery failed, retrying")
		if c.Backoff > 0 {
			select {
			case <-ctx.Done():
				return
			case <-c.Clock.After(c.Backoff):
			}
		}
	}
}

// Process delivers n at most once per notification id, as long as the delivery log keeps
// its marker.
func (c *Consumer) Process(ctx context.Context, n domain.Notification) error {
	log := c.log.WithFields(logrus.Fields{"notification_id": n.ID, "kind": n.Kind, "session_id": n.SessionID})

	if n.ID == "" {
		return errors.Join(errPermanent, errors.New("notification without id"))
	}
	if len(n.Recipients) == 0 {
		log.Info("notification has no recipients, skipping")
		return nil
	}

	delivered, err := c.Deliveries.Delivered(ctx, n.ID)
	if err != nil {
		return err
	}
	if delivered {
		log.Debug("notification already delivered")
		return nil
	}

	email, err := Render(n)
	if err != nil {
		return errors.Join(errPermanent, err)
	}
	if err := c.Mailer.Send(ctx, email); err != nil {
		return err
	}

	if err := c.Deliveries.MarkDelivered(ctx, n.ID); err != nil {
		log.WithError(err).Warn("failed to record delivery")
	}
	log.WithField("recipients", len(n.Recipients)).Info("notification delivered")
	return nil
}
