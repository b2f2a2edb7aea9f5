package service

import (
	"context"
	"fmt"
	"strings"

	"meal-together/session-svc/internal/domain"
	"meal-together/session-svc/internal/metrics"

	"github.com/google/uuid"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
)

// Dispatcher turns domain events into notification requests. Callers treat it as
// fire-and-forget; only the deadline sweep looks at the returned error.
type Dispatcher struct {
	users    UserRepository
	notifier Notifier
	clock    clock.Clock
	baseURL  string
	log      *logrus.Entry
}

func NewDispatcher(users UserRepository, notifier Notifier, clk clock.Clock, baseURL string, log *logrus.Entry) *Dispatcher {
	return &Dispatcher{
		users:    users,
		notifier: notifier,
		clock:    clk,
		baseURL:  strings.TrimRight(baseURL, "/"),
		log:      log,
	}
}

func (d *Dispatcher) SessionLink(sessionID int) string {
	return fmt.Sprintf("%s/sessions/%d", d.baseURL, sessionID)
}

// Send resolves recipient addresses and publishes one notification. Users without an
// e-mail address are skipped; an empty recipient list publishes nothing.
func (d *Dispatcher) Send(ctx context.Context, kind domain.NotificationKind, session *domain.MealSession, subject string, changes []string, recipientIDs []int) error {
	log := d.log.WithFields(logrus.Fields{"kind": kind, "session_id": session.ID})
	if len(recipientIDs) == 0 {
		return nil
	}

	users, err := d.users.GetUsers(ctx, recipientIDs)
	if err != nil {
		log.WithError(err).Error("failed to resolve notification recipients")
		metrics.RecordNotification(string(kind), false)
		return err
	}

	var recipients []string
	for _, u := range users {
		if u.Email != "" {
			recipients = append(recipients, u.Email)
		}
	}
	if len(recipients) == 0 {
		log.Debug("no recipients with an e-mail address")
		return nil
	}

	n := domain.Notification{
		ID:          uuid.NewString(),
		Kind:        kind,
		Subject:     subject,
		Recipients:  recipients,
		Changes:     changes,
		SessionID:   session.ID,
		SessionName: session.Name,
		Link:        d.SessionLink(session.ID),
		CreatedAt:   d.clock.Now(),
	}
	if err := d.notifier.Notify(ctx, n); err != nil {
		log.WithError(err).Error("failed to publish notification")
		metrics.RecordNotification(string(kind), false)
		return err
	}

	metrics.RecordNotification(string(kind), true)
	log.WithField("recipients", len(recipients)).Info("notification requested")
	return nil
}

func except(ids []int, excluded int) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if id != excluded {
			out = append(out, id)
		}
	}
	return out
}
