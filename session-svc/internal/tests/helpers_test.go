package tests

import (
	"time"

	"meal-together/session-svc/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func nullLog() *logrus.Entry {
	logger, _ := logtest.NewNullLogger()
	return logrus.NewEntry(logger)
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func menuItem(id int, name, p string) domain.MenuItem {
	return domain.MenuItem{ID: id, RestaurantID: 1, ItemType: "Main", Name: name, Price: price(p), Currency: "PLN"}
}

func orderItem(id int, m domain.MenuItem, qty int, note *string) domain.OrderItem {
	return domain.OrderItem{ID: id, MenuItemID: m.ID, MenuItem: m, Quantity: qty, Note: note}
}

func strPtr(s string) *string {
	return &s
}

var baseTime = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
