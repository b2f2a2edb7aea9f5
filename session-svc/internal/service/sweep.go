package service

import (
	"context"
	"fmt"
	"time"

	"meal-together/session-svc/internal/domain"
	"meal-together/session-svc/internal/metrics"

	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
)

// DeadlineSweeper notifies session creators once the order deadline has passed.
type DeadlineSweeper struct {
	sessions   SessionRepository
	lock       SweepLock
	dispatcher *Dispatcher
	clock      clock.Clock
	timeout    time.Duration
	log        *logrus.Entry
}

func NewDeadlineSweeper(sessions SessionRepository, lock SweepLock, dispatcher *Dispatcher, clk clock.Clock, log *logrus.Entry) *DeadlineSweeper {
	return &DeadlineSweeper{
		sessions:   sessions,
		lock:       lock,
		dispatcher: dispatcher,
		clock:      clk,
		timeout:    30 * time.Second,
		log:        log,
	}
}

// Run is the cron entry point.
func (s *DeadlineSweeper) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.Sweep(ctx); err != nil {
		s.log.WithError(err).Error("deadline sweep failed")
	}
}

// Sweep sends one deadline notice per due session and returns how many were sent.
// A session is claimed before its notice is published; a failed publish releases the
// claim so a later sweep retries it.
func (s *DeadlineSweeper) Sweep(ctx context.Context) (int, error) {
	acquired, err := s.lock.Acquire(ctx)
	if err != nil {
		metrics.RecordSweep("error", 0)
		return 0, fmt.Errorf("acquire sweep lease: %w", err)
	}
	if !acquired {
		metrics.RecordSweep("skipped", 0)
		s.log.Debug("deadline sweep already running elsewhere")
		return 0, nil
	}
	defer func() {
		if err := s.lock.Release(ctx); err != nil {
			s.log.WithError(err).Warn("failed to release sweep lease")
		}
	}()

	due, err := s.sessions.ListDueSessions(ctx, s.clock.Now())
	if err != nil {
		metrics.RecordSweep("error", 0)
		return 0, fmt.Errorf("list due sessions: %w", err)
	}

	sent := 0
	for i := range due {
		session := &due[i]
		log := s.log.WithField("session_id", session.ID)

		claimed, err := s.sessions.ClaimDeadlineNotice(ctx, session.ID)
		if err != nil {
			log.WithError(err).Error("failed to claim deadline notice")
			continue
		}
		if !claimed {
			continue
		}

		err = s.dispatcher.Send(ctx, domain.NotifyDeadlinePassed, session,
			fmt.Sprintf("Deadline Passed for Session: %s", session.Name),
			nil, []int{session.CreatorID})
		if err != nil {
			if rerr := s.sessions.ReleaseDeadlineNotice(ctx, session.ID); rerr != nil {
				log.WithError(rerr).Error("failed to release deadline notice")
			}
			continue
		}
		sent++
	}

	metrics.RecordSweep("ok", sent)
	if sent > 0 {
		s.log.WithField("sent", sent).Info("deadline notices sent")
	}
	return sent, nil
}
