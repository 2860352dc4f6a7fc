package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"mentorhub/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) DB() *gorm.DB {
	return r.db
}

// Transaction runs fn inside a database transaction.
func (r *BookingRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateStatusIf performs the guarded status transition: the row is only
// updated when it still carries the expected status. Returns the number of
// rows changed so the caller can distinguish a lost race from success.
// Runs on tx when given so it can share a transaction with the session insert.
func (r *BookingRepository) UpdateStatusIf(ctx context.Context, tx *gorm.DB, bookingID int64, expected, next domain.BookingStatus) (int64, error) {
	db := r.db
	if tx != nil {
		db = tx
	}
	res := db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND status = ?", bookingID, expected).
		Update("status", next)
	return res.RowsAffected, res.Error
}

// HasOverlap reports whether the mentor already has a requested or accepted
// booking intersecting [start, end).
func (r *BookingRepository) HasOverlap(ctx context.Context, mentorProfileID int64, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("mentor_profile_id = ?", mentorProfileID).
		Where("status IN ?", []string{string(domain.BookingRequested), string(domain.BookingAccepted)}).
		Where("start_time < ? AND end_time > ?", end, start).
		Count(&count).Error
	return count > 0, err
}

// AcceptedInRange returns accepted bookings intersecting the range, used by
// the availability free-slot computation.
func (r *BookingRepository) AcceptedInRange(ctx context.Context, mentorProfileID int64, from, to time.Time) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.WithContext(ctx).
		Where("mentor_profile_id = ? AND status = ?", mentorProfileID, domain.BookingAccepted).
		Where("start_time < ? AND end_time > ?", to, from).
		Order("start_time ASC").
		Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepository) ListByMentee(ctx context.Context, menteeUserID int64, limit, offset int) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Listing").
		Preload("MentorProfile").
		Preload("MentorProfile.User").
		Where("mentee_user_id = ?", menteeUserID).
		Order("start_time DESC").
		Limit(limit).
		Offset(offset).
		Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepository) ListByMentor(ctx context.Context, mentorProfileID int64, limit, offset int) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Listing").
		Preload("Mentee").
		Where("mentor_profile_id = ?", mentorProfileID).
		Order("start_time DESC").
		Limit(limit).
		Offset(offset).
		Find(&bookings).Error
	return bookings, err
}
