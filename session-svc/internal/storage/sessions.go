package storage

import (
	"context"
	"time"

	"meal-together/session-svc/internal/domain"
	"meal-together/session-svc/internal/service"

	"github.com/lib/pq"
)

const sessionSelect = `
	SELECT s.id, s.name, s.restaurant_id, r.name, s.creator_id, s.created_at,
		s.delivery_time, s.order_deadline, s.email_sent,
		COALESCE(array_agg(p.user_id ORDER BY p.user_id) FILTER (WHERE p.user_id IS NOT NULL), '{}')
	FROM meal_sessions s
	JOIN restaurants r ON r.id = s.restaurant_id
	LEFT JOIN session_participants p ON p.session_id = s.id`

const sessionGroupBy = `
	GROUP BY s.id, r.name`

func scanSession(row rowScanner) (*domain.MealSession, error) {
	var s domain.MealSession
	var participants pq.Int64Array
	if err := row.Scan(&s.ID, &s.Name, &s.RestaurantID, &s.RestaurantName, &s.CreatorID, &s.CreatedAt,
		&s.DeliveryTime, &s.OrderDeadline, &s.EmailSent, &participants); err != nil {
		return nil, err
	}
	s.ParticipantIDs = ints(participants)
	return &s, nil
}

func (r *PostgresRepository) CreateSession(ctx context.Context, session *domain.MealSession) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `
		INSERT INTO meal_sessions (name, restaurant_id, creator_id, created_at, delivery_time, order_deadline)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		session.Name, session.RestaurantID, session.CreatorID, session.CreatedAt,
		session.DeliveryTime, session.OrderDeadline).Scan(&session.ID); err != nil {
		return missingReference(err, "restaurant or creator")
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO session_participants (session_id, user_id)
		SELECT $1, unnest($2::int[])
		ON CONFLICT DO NOTHING`, session.ID, int64s(session.ParticipantIDs)); err != nil {
		return missingReference(err, "participant")
	}

	return tx.Commit()
}

func (r *PostgresRepository) GetSession(ctx context.Context, id int) (*domain.MealSession, error) {
	session, err := scanSession(r.DB.QueryRowContext(ctx, sessionSelect+`
		WHERE s.id = $1`+sessionGroupBy, id))
	if err != nil {
		return nil, notFound(err)
	}
	return session, nil
}

// UpdateSession saves the editable fields and replaces the participant set.
func (r *PostgresRepository) UpdateSession(ctx context.Context, session *domain.MealSession) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE meal_sessions
		SET name = $1, restaurant_id = $2, delivery_time = $3, order_deadline = $4
		WHERE id = $5`,
		session.Name, session.RestaurantID, session.DeliveryTime, session.OrderDeadline, session.ID)
	if err != nil {
		return missingReference(err, "restaurant")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return service.ErrNotFound
	}

	participants := int64s(session.ParticipantIDs)
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM session_participants
		WHERE session_id = $1 AND NOT (user_id = ANY($2))`, session.ID, participants); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO session_participants (session_id, user_id)
		SELECT $1, unnest($2::int[])
		ON CONFLICT DO NOTHING`, session.ID, participants); err != nil {
		return missingReference(err, "participant")
	}

	return tx.Commit()
}

func (r *PostgresRepository) ListUserSessions(ctx context.Context, userID int) ([]domain.MealSession, error) {
	return r.listSessions(ctx, sessionSelect+`
		WHERE s.id IN (SELECT session_id FROM session_participants WHERE user_id = $1)`+sessionGroupBy+`
		ORDER BY s.order_deadline`, userID)
}

// ListDueSessions returns sessions past their deadline whose creator has not been notified.
func (r *PostgresRepository) ListDueSessions(ctx context.Context, now time.Time) ([]domain.MealSession, error) {
	return r.listSessions(ctx, sessionSelect+`
		WHERE s.order_deadline <= $1 AND s.email_sent = FALSE`+sessionGroupBy+`
		ORDER BY s.order_deadline`, now)
}

// ClaimDeadlineNotice marks the notice as sent. It reports false when another sweep
// already claimed it.
func (r *PostgresRepository) ClaimDeadlineNotice(ctx context.Context, sessionID int) (bool, error) {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE meal_sessions SET email_sent = TRUE
		WHERE id = $1 AND email_sent = FALSE`, sessionID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

func (r *PostgresRepository) ReleaseDeadlineNotice(ctx context.Context, sessionID int) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE meal_sessions SET email_sent = FALSE WHERE id = $1`, sessionID)
	return err
}

func (r *PostgresRepository) listSessions(ctx context.Context, query string, args ...any) ([]domain.MealSession, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []domain.MealSession{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	return sessions, rows.Err()
}
