package storage

import (
	"context"
	"database/sql"

	"meal-together/session-svc/internal/domain"
	"meal-together/session-svc/internal/service"
)

const orderItemSelect = `
	SELECT oi.id, oi.order_id, oi.menu_item_id, oi.quantity, oi.note,
		m.id, m.restaurant_id, m.item_type, m.name, m.price, m.currency
	FROM order_items oi
	JOIN menu_items m ON m.id = oi.menu_item_id`

func (r *PostgresRepository) GetOrder(ctx context.Context, sessionID, userID int) (*domain.Order, error) {
	var order domain.Order
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, session_id, user_id, payment_method, total_price
		FROM orders
		WHERE session_id = $1 AND user_id = $2`, sessionID, userID).
		Scan(&order.ID, &order.SessionID, &order.UserID, &order.PaymentMethod, &order.TotalPrice)
	if err != nil {
		return nil, notFound(err)
	}

	items, err := loadOrderItems(ctx, r.DB, []int{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = itemsOrEmpty(items[order.ID])
	return &order, nil
}

// CreateOrder stores the order with its items in one transaction. A second order for the
// same session and user fails with ErrDuplicateOrder.
func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (session_id, user_id, payment_method, total_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		order.SessionID, order.UserID, order.PaymentMethod, order.TotalPrice).Scan(&order.ID)
	if isUniqueViolation(err) {
		return service.ErrDuplicateOrder
	}
	if err != nil {
		return missingReference(err, "user or session")
	}

	for i := range order.Items {
		if err := insertOrderItem(ctx, tx, order.ID, &order.Items[i]); err != nil {
			return missingReference(err, "menu item")
		}
	}

	return tx.Commit()
}

// UpdateOrder saves the payment method and total, removes deletedItemIDs, updates items
// with an id and inserts items without one.
func (r *PostgresRepository) UpdateOrder(ctx context.Context, order *domain.Order, deletedItemIDs []int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE orders SET payment_method = $1, total_price = $2
		WHERE id = $3`, order.PaymentMethod, order.TotalPrice, order.ID)
	if err != nil {
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return service.ErrNotFound
	}

	if len(deletedItemIDs) > 0 {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM order_items
			WHERE order_id = $1 AND id = ANY($2)`, order.ID, int64s(deletedItemIDs)); err != nil {
			return err
		}
	}

	for i := range order.Items {
		item := &order.Items[i]
		if item.ID == 0 {
			if err := insertOrderItem(ctx, tx, order.ID, item); err != nil {
				return missingReference(err, "menu item")
			}
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE order_items SET menu_item_id = $1, quantity = $2, note = $3
			WHERE id = $4 AND order_id = $5`,
			item.MenuItemID, item.Quantity, item.Note, item.ID, order.ID); err != nil {
			return missingReference(err, "menu item")
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) DeleteOrder(ctx context.Context, orderID int) error {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", orderID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return service.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) ListSessionOrders(ctx context.Context, sessionID int) ([]domain.Order, error) {
	return r.listOrders(ctx, `
		SELECT id, session_id, user_id, payment_method, total_price
		FROM orders
		WHERE session_id = $1
		ORDER BY user_id`, sessionID)
}

func (r *PostgresRepository) ListUserOrders(ctx context.Context, userID int) ([]domain.Order, error) {
	return r.listOrders(ctx, `
		SELECT id, session_id, user_id, payment_method, total_price
		FROM orders
		WHERE user_id = $1
		ORDER BY session_id`, userID)
}

// CreditOwedByUser sums the user's credit orders per session creator.
func (r *PostgresRepository) CreditOwedByUser(ctx context.Context, userID int) ([]domain.CounterpartyTotal, error) {
	return r.counterpartyTotals(ctx, `
		SELECT s.creator_id, SUM(o.total_price)
		FROM orders o
		JOIN meal_sessions s ON s.id = o.session_id
		WHERE o.user_id = $1 AND o.payment_method = 'Credit' AND s.creator_id <> $1
		GROUP BY s.creator_id
		ORDER BY s.creator_id`, userID)
}

// CreditOwedToUser sums credit orders in the user's sessions per ordering user.
func (r *PostgresRepository) CreditOwedToUser(ctx context.Context, userID int) ([]domain.CounterpartyTotal, error) {
	return r.counterpartyTotals(ctx, `
		SELECT o.user_id, SUM(o.total_price)
		FROM orders o
		JOIN meal_sessions s ON s.id = o.session_id
		WHERE s.creator_id = $1 AND o.payment_method = 'Credit' AND o.user_id <> $1
		GROUP BY o.user_id
		ORDER BY o.user_id`, userID)
}

func (r *PostgresRepository) listOrders(ctx context.Context, query string, arg int) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	var ids []int
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.SessionID, &order.UserID, &order.PaymentMethod, &order.TotalPrice); err != nil {
			return nil, err
		}
		orders = append(orders, order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return orders, nil
	}

	items, err := loadOrderItems(ctx, r.DB, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = itemsOrEmpty(items[orders[i].ID])
	}
	return orders, nil
}

func (r *PostgresRepository) counterpartyTotals(ctx context.Context, query string, userID int) ([]domain.CounterpartyTotal, error) {
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []domain.CounterpartyTotal
	for rows.Next() {
		var t domain.CounterpartyTotal
		if err := rows.Scan(&t.UserID, &t.Total); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

func loadOrderItems(ctx context.Context, q querier, orderIDs []int) (map[int][]domain.OrderItem, error) {
	rows, err := q.QueryContext(ctx, orderItemSelect+`
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id`, int64s(orderIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[int][]domain.OrderItem)
	for rows.Next() {
		var item domain.OrderItem
		m := &item.MenuItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.Quantity, &item.Note,
			&m.ID, &m.RestaurantID, &m.ItemType, &m.Name, &m.Price, &m.Currency); err != nil {
			return nil, err
		}
		items[item.OrderID] = append(items[item.OrderID], item)
	}
	return items, rows.Err()
}

func insertOrderItem(ctx context.Context, tx *sql.Tx, orderID int, item *domain.OrderItem) error {
	item.OrderID = orderID
	return tx.QueryRowContext(ctx, `
		INSERT INTO order_items (order_id, menu_item_id, quantity, note)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		orderID, item.MenuItemID, item.Quantity, item.Note).Scan(&item.ID)
}

func itemsOrEmpty(items []domain.OrderItem) []domain.OrderItem {
	if items == nil {
		return []domain.OrderItem{}
	}
	return items
}
