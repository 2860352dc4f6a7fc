package domain

import "time"

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

type Payment struct {
	ID             int64         `json:"id"`
	BookingID      int64         `json:"booking_id" gorm:"index"`
	MenteeUserID   int64         `json:"mentee_user_id" gorm:"index"`
	Amount         float64       `json:"amount"`
	Currency       string        `json:"currency"`
	Status         PaymentStatus `json:"status"`
	IdempotencyKey string        `json:"idempotency_key" gorm:"uniqueIndex"`
	InvID          int64         `json:"inv_id" gorm:"index"`
	PaidAt         *time.Time    `json:"paid_at,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }
