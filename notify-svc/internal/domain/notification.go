package domain

import "time"

type Kind string

const (
	KindInvitation     Kind = "invitation"
	KindSessionUpdate  Kind = "session_update"
	KindOrderUpdate    Kind = "order_update"
	KindOrderCancelled Kind = "order_cancelled"
	KindDeadlinePassed Kind = "deadline_passed"
)

// Notification is the message session-svc publishes on the notifications topic.
type Notification struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	Subject     string    `json:"subject"`
	Recipients  []string  `json:"recipients"`
	Changes     []string  `json:"changes,omitempty"`
	SessionID   int       `json:"session_id"`
	SessionName string    `json:"session_name"`
	Link        string    `json:"link"`
	CreatedAt   time.Time `json:"created_at"`
}

type Email struct {
	To      []string
	Subject string
	Body    string
}
