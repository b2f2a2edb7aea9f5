package tests

import (
	"context"
	"time"

	"meal-together/notify-svc/internal/domain"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

var baseTime = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func nullLog() *logrus.Entry {
	logger, _ := logtest.NewNullLogger()
	return logrus.NewEntry(logger)
}

func orderUpdate() domain.Notification {
	return domain.Notification{
		ID:          "n-1",
		Kind:        domain.KindOrderUpdate,
		Subject:     "Your order has been updated in the session: Lunch",
		Recipients:  []string{"guest@example.com"},
		Changes:     []string{"Added item: Pizza x1", "Quantity of Cola: 1 -> 2"},
		SessionID:   42,
		SessionName: "Lunch",
		Link:        "http://meal.test/sessions/42",
		CreatedAt:   baseTime,
	}
}

// queueReader hands out its messages and then blocks until ctx is cancelled.
type queueReader struct {
	messages  []kafka.Message
	committed []kafka.Message
	cancel    context.CancelFunc
}

func (r *queueReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.messages) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	return msg, nil
}

func (r *queueReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.committed = append(r.committed, msgs...)
	return nil
}
