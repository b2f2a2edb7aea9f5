package storage

import (
	"context"

	"meal-together/session-svc/internal/domain"
)

func (r *PostgresRepository) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `
		INSERT INTO restaurants (name, address, phone_number, owner_id)
		VALUES ($1, $2, $3, NULLIF($4, 0))
		RETURNING id, created_at`,
		rest.Name, rest.Address, rest.PhoneNumber, rest.OwnerID).Scan(&rest.ID, &rest.CreatedAt); err != nil {
		return err
	}

	for i := range rest.Tags {
		tag := &rest.Tags[i]
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO tags (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`, tag.Name).Scan(&tag.ID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO restaurant_tags (restaurant_id, tag_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, rest.ID, tag.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, address, phone_number, COALESCE(owner_id, 0), created_at
		FROM restaurants
		ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	restaurants := []domain.Restaurant{}
	var ids []int
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Address, &rest.PhoneNumber, &rest.OwnerID, &rest.CreatedAt); err != nil {
			return nil, err
		}
		rest.Tags = []domain.Tag{}
		restaurants = append(restaurants, rest)
		ids = append(ids, rest.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return restaurants, nil
	}

	tags, err := r.restaurantTags(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range restaurants {
		if t, ok := tags[restaurants[i].ID]; ok {
			restaurants[i].Tags = t
		}
	}
	return restaurants, nil
}

func (r *PostgresRepository) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, address, phone_number, COALESCE(owner_id, 0), created_at
		FROM restaurants
		WHERE id = $1`, id).
		Scan(&rest.ID, &rest.Name, &rest.Address, &rest.PhoneNumber, &rest.OwnerID, &rest.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}

	tags, err := r.restaurantTags(ctx, []int{rest.ID})
	if err != nil {
		return nil, err
	}
	rest.Tags = tags[rest.ID]
	if rest.Tags == nil {
		rest.Tags = []domain.Tag{}
	}
	return &rest, nil
}

func (r *PostgresRepository) DeleteRestaurant(ctx context.Context, id int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM restaurants WHERE id = $1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO menu_items (restaurant_id, item_type, name, price, currency)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		item.RestaurantID, item.ItemType, item.Name, item.Price, item.Currency).Scan(&item.ID)
}

func (r *PostgresRepository) ListMenuItems(ctx context.Context, restaurantID int) ([]domain.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, restaurant_id, item_type, name, price, currency
		FROM menu_items
		WHERE restaurant_id = $1
		ORDER BY item_type, name`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.ItemType, &item.Name, &item.Price, &item.Currency); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) restaurantTags(ctx context.Context, restaurantIDs []int) (map[int][]domain.Tag, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT rt.restaurant_id, t.id, t.name
		FROM restaurant_tags rt
		JOIN tags t ON t.id = rt.tag_id
		WHERE rt.restaurant_id = ANY($1)
		ORDER BY t.name`, int64s(restaurantIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make(map[int][]domain.Tag)
	for rows.Next() {
		var restaurantID int
		var tag domain.Tag
		if err := rows.Scan(&restaurantID, &tag.ID, &tag.Name); err != nil {
			return nil, err
		}
		tags[restaurantID] = append(tags[restaurantID], tag)
	}
	return tags, rows.Err()
}
