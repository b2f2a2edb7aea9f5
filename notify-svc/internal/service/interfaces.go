package service

import (
	"context"

	"meal-together/notify-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

// Reader is the part of *kafka.Reader the consumer uses.
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

type Mailer interface {
	Send(ctx context.Context, email domain.Email) error
}

// DeliveryLog remembers which notifications were already sent.
type DeliveryLog interface {
	Delivered(ctx context.Context, id string) (bool, error)
	MarkDelivered(ctx context.Context, id string) error
}
