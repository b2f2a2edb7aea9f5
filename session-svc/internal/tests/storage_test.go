package tests

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"meal-together/session-svc/internal/domain"
	"meal-together/session-svc/internal/service"
	"meal-together/session-svc/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) (*storage.PostgresRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return storage.NewPostgresRepository(db), mock
}

var sessionColumns = []string{
	"id", "name", "restaurant_id", "restaurant_name", "creator_id", "created_at",
	"delivery_time", "order_deadline", "email_sent", "participants",
}

func TestPostgresRepository_GetSession(t *testing.T) {
	repo, mock := setupRepo(t)
	deadline := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT s.id, s.name").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(sessionColumns).
			AddRow(1, "Lunch", 3, "Pizzeria", 1, deadline.Add(-time.Hour), deadline.Add(time.Hour), deadline, false, "{1,2,5}"))

	session, err := repo.GetSession(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "Pizzeria", session.RestaurantName)
	assert.Equal(t, []int{1, 2, 5}, session.ParticipantIDs)
	assert.True(t, session.OrderDeadline.Equal(deadline))
}

func TestPostgresRepository_GetSessionNotFound(t *testing.T) {
	repo, mock := setupRepo(t)
	mock.ExpectQuery("SELECT s.id, s.name").WithArgs(7).WillReturnRows(sqlmock.NewRows(sessionColumns))

	_, err := repo.GetSession(context.Background(), 7)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestPostgresRepository_ClaimDeadlineNotice(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectExec("UPDATE meal_sessions SET email_sent = TRUE").
		WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE meal_sessions SET email_sent = TRUE").
		WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 0))

	first, err := repo.ClaimDeadlineNotice(context.Background(), 1)
	require.NoError(t, err)
	second, err := repo.ClaimDeadlineNotice(context.Background(), 1)
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)
}

func TestPostgresRepository_CreateOrder(t *testing.T) {
	repo, mock := setupRepo(t)
	order := &domain.Order{
		SessionID:     1,
		UserID:        2,
		PaymentMethod: domain.PaymentCash,
		TotalPrice:    price("60.00"),
		Items:         []domain.OrderItem{{MenuItemID: 1, Quantity: 2}},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(1, 2, "Cash", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectQuery("INSERT INTO order_items").
		WithArgs(5, 1, 2, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectCommit()

	require.NoError(t, repo.CreateOrder(context.Background(), order))
	assert.Equal(t, 5, order.ID)
	assert.Equal(t, 10, order.Items[0].ID)
	assert.Equal(t, 5, order.Items[0].OrderID)
}

func TestPostgresRepository_CreateOrderDuplicate(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	err := repo.CreateOrder(context.Background(), &domain.Order{SessionID: 1, UserID: 2, PaymentMethod: domain.PaymentCash})
	assert.ErrorIs(t, err, service.ErrDuplicateOrder)
}

func TestPostgresRepository_CreateOrderUnknownUser(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").WillReturnError(&pq.Error{Code: "23503"})
	mock.ExpectRollback()

	err := repo.CreateOrder(context.Background(), &domain.Order{SessionID: 1, UserID: 404, PaymentMethod: domain.PaymentCash})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestPostgresRepository_CreateSessionUnknownParticipant(t *testing.T) {
	repo, mock := setupRepo(t)
	session := &domain.MealSession{Name: "Lunch", RestaurantID: 1, CreatorID: 1, ParticipantIDs: []int{1, 404}}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO meal_sessions").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))
	mock.ExpectExec("INSERT INTO session_participants").
		WithArgs(8, sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: "23503"})
	mock.ExpectRollback()

	err := repo.CreateSession(context.Background(), session)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestPostgresRepository_UpdateOrder(t *testing.T) {
	repo, mock := setupRepo(t)
	order := &domain.Order{
		ID:            5,
		PaymentMethod: domain.PaymentCredit,
		TotalPrice:    price("35.50"),
		Items: []domain.OrderItem{
			{ID: 10, MenuItemID: 1, Quantity: 1, Note: strPtr("spicy")},
			{MenuItemID: 2, Quantity: 1},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE orders SET payment_method").
		WithArgs("Credit", sqlmock.AnyArg(), 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM order_items").
		WithArgs(5, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE order_items SET menu_item_id").
		WithArgs(1, 1, "spicy", 10, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO order_items").
		WithArgs(5, 2, 1, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectCommit()

	require.NoError(t, repo.UpdateOrder(context.Background(), order, []int{11}))
	assert.Equal(t, 12, order.Items[1].ID)
}

func TestPostgresRepository_GetOrder(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery("SELECT id, session_id, user_id, payment_method, total_price").
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "session_id", "user_id", "payment_method", "total_price"}).
			AddRow(5, 1, 2, "Cash", "41.00"))
	mock.ExpectQuery("SELECT oi.id, oi.order_id").
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "order_id", "menu_item_id", "quantity", "note",
			"m_id", "restaurant_id", "item_type", "name", "price", "currency",
		}).
			AddRow(10, 5, 1, 1, nil, 1, 1, "Main", "Pizza", "30.00", "PLN").
			AddRow(11, 5, 2, 2, "cold", 2, 1, "Drink", "Cola", "5.50", "PLN"))

	order, err := repo.GetOrder(context.Background(), 1, 2)

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCash, order.PaymentMethod)
	assert.Equal(t, "41.00", order.TotalPrice.StringFixed(2))
	require.Len(t, order.Items, 2)
	assert.Nil(t, order.Items[0].Note)
	assert.Equal(t, "cold", order.Items[1].NoteText())
	assert.Equal(t, "Cola", order.Items[1].MenuItem.Name)
	assert.Equal(t, "11.00", order.Items[1].LineTotal().StringFixed(2))
}

func TestPostgresRepository_GetOrderNotFound(t *testing.T) {
	repo, mock := setupRepo(t)
	mock.ExpectQuery("SELECT id, session_id").WithArgs(1, 2).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetOrder(context.Background(), 1, 2)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestPostgresRepository_CreditOwedToUser(t *testing.T) {
	repo, mock := setupRepo(t)
	mock.ExpectQuery("SELECT o.user_id, SUM").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "sum"}).AddRow(2, "30.00").AddRow(3, "12.50"))

	totals, err := repo.CreditOwedToUser(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, 2, totals[0].UserID)
	assert.Equal(t, "30.00", totals[0].Total.StringFixed(2))
}

func TestPostgresRepository_DeleteRestaurant(t *testing.T) {
	repo, mock := setupRepo(t)
	mock.ExpectExec("DELETE FROM restaurants").WithArgs(4).WillReturnResult(sqlmock.NewResult(0, 1))

	rows, err := repo.DeleteRestaurant(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
}

func TestPostgresRepository_GetUsersSkipsQueryForNoIDs(t *testing.T) {
	repo, _ := setupRepo(t)

	users, err := repo.GetUsers(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestEnsureSchema_PropagatesErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnError(assert.AnError)

	err = storage.EnsureSchema(context.Background(), db)
	assert.ErrorIs(t, err, assert.AnError)
}
