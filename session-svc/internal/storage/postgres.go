package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"meal-together/session-svc/internal/service"

	"github.com/lib/pq"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// PostgresRepository implements every session-svc repository on one connection pool.
type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// missingReference turns a foreign key violation into ErrNotFound naming what was missing.
func missingReference(err error, what string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
		return fmt.Errorf("%w: %s does not exist", service.ErrNotFound, what)
	}
	return err
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return service.ErrNotFound
	}
	return err
}

func int64s(ids []int) pq.Int64Array {
	out := make(pq.Int64Array, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}

func ints(values pq.Int64Array) []int {
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = int(v)
	}
	return out
}

var (
	_ service.UserRepository       = (*PostgresRepository)(nil)
	_ service.RestaurantRepository = (*PostgresRepository)(nil)
	_ service.SessionRepository    = (*PostgresRepository)(nil)
	_ service.OrderRepository      = (*PostgresRepository)(nil)
)
