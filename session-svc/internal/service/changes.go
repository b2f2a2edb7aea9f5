package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"meal-together/session-svc/internal/domain"
)

// SessionSnapshot is the part of a session whose edits participants are told about.
type SessionSnapshot struct {
	Name           string
	RestaurantID   int
	RestaurantName string
	DeliveryTime   time.Time
	OrderDeadline  time.Time
}

func SnapshotSession(s *domain.MealSession) SessionSnapshot {
	return SessionSnapshot{
		Name:           s.Name,
		RestaurantID:   s.RestaurantID,
		RestaurantName: s.RestaurantName,
		DeliveryTime:   s.DeliveryTime,
		OrderDeadline:  s.OrderDeadline,
	}
}

type watchedField[T any] struct {
	label   string
	changed func(before, after T) bool
	render  func(v T, loc *time.Location) string
}

var sessionFields = []watchedField[SessionSnapshot]{
	{
		label:   "Name",
		changed: func(a, b SessionSnapshot) bool { return a.Name != b.Name },
		render:  func(s SessionSnapshot, _ *time.Location) string { return s.Name },
	},
	{
		label:   "Restaurant",
		changed: func(a, b SessionSnapshot) bool { return a.RestaurantID != b.RestaurantID },
		render:  func(s SessionSnapshot, _ *time.Location) string { return s.RestaurantName },
	},
	{
		label:   "Delivery time",
		changed: func(a, b SessionSnapshot) bool { return !a.DeliveryTime.Equal(b.DeliveryTime) },
		render:  func(s SessionSnapshot, loc *time.Location) string { return clockTime(s.DeliveryTime, loc) },
	},
	{
		label:   "Order deadline",
		changed: func(a, b SessionSnapshot) bool { return !a.OrderDeadline.Equal(b.OrderDeadline) },
		render:  func(s SessionSnapshot, loc *time.Location) string { return clockTime(s.OrderDeadline, loc) },
	},
}

var orderFields = []watchedField[*domain.Order]{
	{
		label:   "Payment method",
		changed: func(a, b *domain.Order) bool { return a.PaymentMethod != b.PaymentMethod },
		render:  func(o *domain.Order, _ *time.Location) string { return string(o.PaymentMethod) },
	},
}

func fieldChanges[T any](fields []watchedField[T], before, after T, loc *time.Location) []string {
	var changes []string
	for _, f := range fields {
		if f.changed(before, after) {
			changes = append(changes, fmt.Sprintf("%s: %s -> %s", f.label, f.render(before, loc), f.render(after, loc)))
		}
	}
	return changes
}

// clockTime renders HH:MM. A nil location keeps the time's own zone.
func clockTime(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("15:04")
}

// SessionChanges lists the watched session fields that differ between two snapshots.
func SessionChanges(before, after SessionSnapshot, loc *time.Location) []string {
	return fieldChanges(sessionFields, before, after, loc)
}

// OrderChanges describes an order edit. Items are matched by id; deleted holds items
// removed explicitly by the editor. before and after may be nil to diff items only.
func OrderChanges(before, after *domain.Order, beforeItems, afterItems, deleted []domain.OrderItem) []string {
	var changes []string
	if before != nil && after != nil {
		changes = fieldChanges(orderFields, before, after, nil)
	}

	deletedIDs := make(map[int]bool, len(deleted))
	for _, item := range deleted {
		deletedIDs[item.ID] = true
	}

	old := make(map[int]domain.OrderItem, len(beforeItems))
	for _, item := range beforeItems {
		old[item.ID] = item
	}

	current := make(map[int]domain.OrderItem, len(afterItems))
	var unsaved []domain.OrderItem
	for _, item := range afterItems {
		if item.ID == 0 {
			unsaved = append(unsaved, item)
			continue
		}
		if deletedIDs[item.ID] {
			continue
		}
		current[item.ID] = item
	}

	for _, id := range sortedKeys(old) {
		if _, ok := current[id]; !ok && !deletedIDs[id] {
			changes = append(changes, removedLine(old[id]))
		}
	}

	for _, item := range sortedItems(deleted) {
		changes = append(changes, removedLine(item))
	}

	for _, id := range sortedKeys(current) {
		if _, ok := old[id]; !ok {
			changes = append(changes, addedLine(current[id]))
		}
	}
	for _, item := range unsaved {
		changes = append(changes, addedLine(item))
	}

	for _, id := range sortedKeys(old) {
		updated, ok := current[id]
		if !ok {
			continue
		}
		if line := updatedLine(old[id], updated); line != "" {
			changes = append(changes, line)
		}
	}

	return changes
}

func removedLine(item domain.OrderItem) string {
	return fmt.Sprintf("Removed item: %s x%d", item.MenuItem.Name, item.Quantity)
}

func addedLine(item domain.OrderItem) string {
	return fmt.Sprintf("Added item: %s x%d", item.MenuItem.Name, item.Quantity)
}

func updatedLine(before, after domain.OrderItem) string {
	var sub []string
	if before.MenuItemID != after.MenuItemID {
		sub = append(sub, fmt.Sprintf("Menu item changed from %s to %s", before.MenuItem.Name, after.MenuItem.Name))
	}
	if before.Quantity != after.Quantity {
		sub = append(sub, fmt.Sprintf("Quantity changed from %d to %d", before.Quantity, after.Quantity))
	}
	if before.NoteText() != after.NoteText() {
		sub = append(sub, fmt.Sprintf("Note changed from '%s' to '%s'", before.NoteText(), after.NoteText()))
	}
	if len(sub) == 0 {
		return ""
	}
	return fmt.Sprintf("Updated item (%s): %s", before.MenuItem.Name, strings.Join(sub, "; "))
}

func sortedKeys(m map[int]domain.OrderItem) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func sortedItems(items []domain.OrderItem) []domain.OrderItem {
	out := append([]domain.OrderItem(nil), items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
