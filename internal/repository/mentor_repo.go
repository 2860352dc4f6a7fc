package repository

import (
	"context"

	"gorm.io/gorm"

	"mentorhub/internal/domain"
)

type MentorProfileRepository struct {
	db *gorm.DB
}

func NewMentorProfileRepository(db *gorm.DB) *MentorProfileRepository {
	return &MentorProfileRepository{db: db}
}

func (r *MentorProfileRepository) Create(ctx context.Context, p *domain.MentorProfile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *MentorProfileRepository) GetByID(ctx context.Context, id int64) (*domain.MentorProfile, error) {
	var p domain.MentorProfile
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Skills").
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *MentorProfileRepository) GetByUserID(ctx context.Context, userID int64) (*domain.MentorProfile, error) {
	var p domain.MentorProfile
	err := r.db.WithContext(ctx).
		Preload("Skills").
		Where("user_id = ?", userID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ProfileIDByUserID is the lookup the auth middleware uses on every mentor
// request; it stays a single indexed column read.
func (r *MentorProfileRepository) ProfileIDByUserID(ctx context.Context, userID int64) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).
		Model(&domain.MentorProfile{}).
		Where("user_id = ?", userID).
		Limit(1).
		Pluck("id", &id).Error
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *MentorProfileRepository) Update(ctx context.Context, p *domain.MentorProfile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *MentorProfileRepository) UpdateRating(ctx context.Context, profileID int64, rating float64, reviewCount int) error {
	return r.db.WithContext(ctx).
		Model(&domain.MentorProfile{}).
		Where("id = ?", profileID).
		Updates(map[string]any{"rating": rating, "review_count": reviewCount}).Error
}

func (r *MentorProfileRepository) ListPublic(ctx context.Context, limit, offset int) ([]domain.MentorProfile, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.MentorProfile{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []domain.MentorProfile
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Skills").
		Order("rating DESC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&profiles).Error
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func (r *MentorProfileRepository) AttachSkill(ctx context.Context, profileID, skillID int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.MentorProfile{ID: profileID}).
		Association("Skills").
		Append(&domain.Skill{ID: skillID})
}

func (r *MentorProfileRepository) DetachSkill(ctx context.Context, profileID, skillID int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.MentorProfile{ID: profileID}).
		Association("Skills").
		Delete(&domain.Skill{ID: skillID})
}
