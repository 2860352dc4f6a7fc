package repository

import (
	"context"

	"gorm.io/gorm"

	"mentorhub/internal/domain"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rev *domain.Review) error {
	return r.db.WithContext(ctx).Create(rev).Error
}

func (r *ReviewRepository) ExistsBySessionID(ctx context.Context, sessionID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReviewRepository) ListByMentor(ctx context.Context, mentorProfileID int64, limit, offset int) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.db.WithContext(ctx).
		Preload("Mentee").
		Where("mentor_profile_id = ?", mentorProfileID).
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error
	return reviews, err
}

// AggregateForMentor returns the average rating and review count for a mentor.
func (r *ReviewRepository) AggregateForMentor(ctx context.Context, mentorProfileID int64) (float64, int, error) {
	type agg struct {
		Avg   float64
		Count int64
	}
	var a agg
	err := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("mentor_profile_id = ?", mentorProfileID).
		Scan(&a).Error
	if err != nil {
		return 0, 0, err
	}
	return a.Avg, int(a.Count), nil
}
