package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeLeaveRequest  NotificationType = "leave_request"
	TypeLeaveApproved NotificationType = "leave_approved"
	TypeLeaveRejected NotificationType = "leave_rejected"
)

// Notification is pushed to every recipient's open event streams.
type Notification struct {
	Recipients []string
	Sender     string
	Type       NotificationType
	Title      string
	Message    string
	Data       map[string]interface{}
	CreatedAt  time.Time
}

// Payload is the JSON body sent on the stream.
type Payload struct {
	Type      NotificationType       `json:"type"`
	Sender    string                 `json:"sender,omitempty"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

func (n Notification) Payload() Payload {
	return Payload{
		Type:      n.Type,
		Sender:    n.Sender,
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		CreatedAt: n.CreatedAt,
	}
}
