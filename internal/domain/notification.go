package domain

import (
	"encoding/json"
	"time"
)

type NotificationType string

const (
	NotifBookingRequested NotificationType = "booking_requested"
	NotifBookingAccepted  NotificationType = "booking_accepted"
	NotifBookingDeclined  NotificationType = "booking_declined"
	NotifBookingCancelled NotificationType = "booking_cancelled"
	NotifSessionStarted   NotificationType = "session_started"
	NotifSessionCompleted NotificationType = "session_completed"
	NotifSessionReminder  NotificationType = "session_reminder"
	NotifPaymentReceived  NotificationType = "payment_received"
	NotifNewReview        NotificationType = "new_review"
)

type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id" gorm:"index:idx_notifications_user_unread"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Data      json.RawMessage  `json:"data,omitempty" gorm:"type:jsonb"`
	IsRead    bool             `json:"is_read" gorm:"index:idx_notifications_user_unread"`
	ReadAt    *time.Time       `json:"read_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
