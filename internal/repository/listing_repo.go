package repository

import (
	"context"

	"gorm.io/gorm"

	"mentorhub/internal/domain"
)

type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *ListingRepository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	var l domain.Listing
	err := r.db.WithContext(ctx).
		Preload("Skill").
		Preload("MentorProfile").
		First(&l, id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *ListingRepository) Update(ctx context.Context, l *domain.Listing) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *ListingRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return r.db.WithContext(ctx).
		Model(&domain.Listing{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

func (r *ListingRepository) ListPublic(ctx context.Context, skillID int64, limit, offset int) ([]domain.Listing, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Listing{}).Where("is_active = ?", true)
	if skillID > 0 {
		q = q.Where("skill_id = ?", skillID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var listings []domain.Listing
	err := q.
		Preload("Skill").
		Preload("MentorProfile").
		Preload("MentorProfile.User").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&listings).Error
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

func (r *ListingRepository) ListByMentor(ctx context.Context, mentorProfileID int64) ([]domain.Listing, error) {
	var listings []domain.Listing
	err := r.db.WithContext(ctx).
		Preload("Skill").
		Where("mentor_profile_id = ?", mentorProfileID).
		Order("id DESC").
		Find(&listings).Error
	return listings, err
}
