package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentBlik   PaymentMethod = "Blik"
	PaymentCash   PaymentMethod = "Cash"
	PaymentCredit PaymentMethod = "Credit"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentBlik, PaymentCash, PaymentCredit:
		return true
	}
	return false
}

type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type Group struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	MemberIDs []int  `json:"member_ids"`
}

type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Restaurant struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	PhoneNumber string    `json:"phone_number"`
	OwnerID     int       `json:"owner_id"`
	Tags        []Tag     `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
}

type MenuItem struct {
	ID           int             `json:"id"`
	RestaurantID int             `json:"restaurant_id"`
	ItemType     string          `json:"item_type"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency"`
}

type MealSession struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	RestaurantID   int       `json:"restaurant_id"`
	RestaurantName string    `json:"restaurant_name"`
	CreatorID      int       `json:"creator_id"`
	ParticipantIDs []int     `json:"participant_ids"`
	CreatedAt      time.Time `json:"created_at"`
	DeliveryTime   time.Time `json:"delivery_time"`
	OrderDeadline  time.Time `json:"order_deadline"`
	EmailSent      bool      `json:"email_sent"`
}

// IsActive reports whether orders may still be placed by participants.
func (s *MealSession) IsActive(now time.Time) bool {
	return !now.After(s.OrderDeadline)
}

func (s *MealSession) HasParticipant(userID int) bool {
	for _, id := range s.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

type Order struct {
	ID            int             `json:"id"`
	SessionID     int             `json:"session_id"`
	UserID        int             `json:"user_id"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Items         []OrderItem     `json:"items"`
}

// RecalculateTotal sets TotalPrice from the current items. Items must carry their MenuItem.
func (o *Order) RecalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}
	o.TotalPrice = total
}

type OrderItem struct {
	ID         int      `json:"id"`
	OrderID    int      `json:"order_id"`
	MenuItemID int      `json:"menu_item_id"`
	MenuItem   MenuItem `json:"menu_item"`
	Quantity   int      `json:"quantity"`
	Note       *string  `json:"note,omitempty"`
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.MenuItem.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NoteText returns the note with a missing note read as empty.
func (i OrderItem) NoteText() string {
	if i.Note == nil {
		return ""
	}
	return *i.Note
}

// CounterpartyTotal is a credit sum grouped by the other side of a debt.
type CounterpartyTotal struct {
	UserID int
	Total  decimal.Decimal
}
