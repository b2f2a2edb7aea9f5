package storage

import (
	"context"
	"database/sql"
	"fmt"

	"meal-together/session-svc/internal/domain"
	"meal-together/session-svc/internal/service"

	"github.com/lib/pq"
)

func (r *PostgresRepository) CreateUser(ctx context.Context, user *domain.User) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO users (username, email, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		user.Username, user.Email, user.FirstName, user.LastName).Scan(&user.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: username %q is taken", service.ErrValidation, user.Username)
	}
	return err
}

func (r *PostgresRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, username, email, first_name, last_name
		FROM users
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

// GetUsers returns the users with the given ids ordered by id. Unknown ids are skipped.
func (r *PostgresRepository) GetUsers(ctx context.Context, ids []int) ([]domain.User, error) {
	if len(ids) == 0 {
		return []domain.User{}, nil
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, username, email, first_name, last_name
		FROM users
		WHERE id = ANY($1)
		ORDER BY id`, int64s(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *PostgresRepository) CreateGroup(ctx context.Context, group *domain.Group) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `INSERT INTO user_groups (name) VALUES ($1) RETURNING id`, group.Name).Scan(&group.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: group %q already exists", service.ErrValidation, group.Name)
	}
	if err != nil {
		return err
	}

	if len(group.MemberIDs) > 0 {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO group_members (group_id, user_id)
			SELECT $1, unnest($2::int[])
			ON CONFLICT DO NOTHING`, group.ID, int64s(group.MemberIDs)); err != nil {
			return missingReference(err, "group member")
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) ListGroups(ctx context.Context) ([]domain.Group, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT g.id, g.name,
			COALESCE(array_agg(m.user_id ORDER BY m.user_id) FILTER (WHERE m.user_id IS NOT NULL), '{}')
		FROM user_groups g
		LEFT JOIN group_members m ON m.group_id = g.id
		GROUP BY g.id
		ORDER BY g.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []domain.Group{}
	for rows.Next() {
		var g domain.Group
		var members pq.Int64Array
		if err := rows.Scan(&g.ID, &g.Name, &members); err != nil {
			return nil, err
		}
		g.MemberIDs = ints(members)
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *PostgresRepository) GroupMemberIDs(ctx context.Context, groupIDs []int) ([]int, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT DISTINCT user_id
		FROM group_members
		WHERE group_id = ANY($1)
		ORDER BY user_id`, int64s(groupIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanUsers(rows *sql.Rows) ([]domain.User, error) {
	users := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
