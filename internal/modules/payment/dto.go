package payment

import (
	"time"

	"mentorhub/internal/domain"
)

type InitPaymentRequest struct {
	BookingID int64 `json:"booking_id" validate:"required,gt=0"`
}

// InitPaymentResponse gives the client everything needed to redirect the
// mentee to the provider checkout page.
type InitPaymentResponse struct {
	PaymentID int64   `json:"payment_id"`
	InvID     int64   `json:"inv_id"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Signature string  `json:"signature"`
}

type CallbackRequest struct {
	InvID     int64   `json:"inv_id" form:"InvId" validate:"required"`
	Amount    float64 `json:"amount" form:"OutSum" validate:"required"`
	Signature string  `json:"signature" form:"SignatureValue" validate:"required"`
}

type PaymentResponse struct {
	ID        int64      `json:"id"`
	BookingID int64      `json:"booking_id"`
	Amount    float64    `json:"amount"`
	Currency  string     `json:"currency"`
	Status    string     `json:"status"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func toPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		BookingID: p.BookingID,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Status:    string(p.Status),
		PaidAt:    p.PaidAt,
		CreatedAt: p.CreatedAt,
	}
}

func toPaymentResponses(payments []domain.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, toPaymentResponse(&payments[i]))
	}
	return out
}
