package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"mentorhub/internal/domain"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByInvID(ctx context.Context, invID int64) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).Where("inv_id = ?", invID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// MarkPaidIf flips a pending payment to paid; the guard keeps a replayed
// provider callback from double-processing.
func (r *PaymentRepository) MarkPaidIf(ctx context.Context, paymentID int64, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("id = ? AND status = ?", paymentID, domain.PaymentPending).
		Updates(map[string]any{"status": domain.PaymentPaid, "paid_at": at})
	return res.RowsAffected, res.Error
}

func (r *PaymentRepository) MarkFailed(ctx context.Context, paymentID int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("id = ?", paymentID).
		Update("status", domain.PaymentFailed).Error
}

func (r *PaymentRepository) ListByMentee(ctx context.Context, menteeUserID int64, limit, offset int) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.db.WithContext(ctx).
		Where("mentee_user_id = ?", menteeUserID).
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&payments).Error
	return payments, err
}
