package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AggregatedItem struct {
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type ParticipantSummary struct {
	User           User            `json:"user"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
	Orders         []Order         `json:"orders"`
	Items          []OrderItem     `json:"items,omitempty"`
	IsCreator      bool            `json:"is_creator"`
	PaymentMethods []PaymentMethod `json:"payment_methods,omitempty"`
}

type SessionDetail struct {
	Session      MealSession          `json:"session"`
	Participants []ParticipantSummary `json:"participants"`
	IsCreator    bool                 `json:"is_creator"`
	IsActive     bool                 `json:"is_active"`
}

type SessionSummary struct {
	Session           MealSession          `json:"session"`
	ParticipantOrders []ParticipantSummary `json:"participant_orders"`
	AggregatedItems   []AggregatedItem     `json:"aggregated_items"`
	TotalSessionSpent decimal.Decimal      `json:"total_session_spent"`
}

type UserSession struct {
	Session     MealSession     `json:"session"`
	UserExpense decimal.Decimal `json:"user_expense"`
	Order       *Order          `json:"order,omitempty"`
}

type SessionList struct {
	Active     []UserSession   `json:"active_sessions"`
	Past       []UserSession   `json:"past_sessions"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}

type BalanceEntry struct {
	User    User            `json:"user"`
	Balance decimal.Decimal `json:"balance"`
}

type BalanceReport struct {
	Balances     []BalanceEntry  `json:"balances"`
	TotalBalance decimal.Decimal `json:"total_balance"`
}

type RestaurantDetail struct {
	Restaurant Restaurant            `json:"restaurant"`
	Menu       map[string][]MenuItem `json:"menu"`
}

type NotificationKind string

const (
	NotifyInvitation     NotificationKind = "invitation"
	NotifySessionUpdate  NotificationKind = "session_update"
	NotifyOrderUpdate    NotificationKind = "order_update"
	NotifyOrderCancelled NotificationKind = "order_cancelled"
	NotifyDeadlinePassed NotificationKind = "deadline_passed"
)

// Notification is an outbound message request. Delivery happens in notify-svc.
type Notification struct {
	ID          string           `json:"id"`
	Kind        NotificationKind `json:"kind"`
	Subject     string           `json:"subject"`
	Recipients  []string         `json:"recipients"`
	Changes     []string         `json:"changes,omitempty"`
	SessionID   int              `json:"session_id"`
	SessionName string           `json:"session_name"`
	Link        string           `json:"link"`
	CreatedAt   time.Time        `json:"created_at"`
}
