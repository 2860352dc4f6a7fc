package repository

import (
	"context"

	"gorm.io/gorm"

	"mentorhub/internal/domain"
)

type SkillRepository struct {
	db *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{db: db}
}

func (r *SkillRepository) Create(ctx context.Context, s *domain.Skill) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SkillRepository) GetByID(ctx context.Context, id int64) (*domain.Skill, error) {
	var s domain.Skill
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SkillRepository) GetBySlug(ctx context.Context, slug string) (*domain.Skill, error) {
	var s domain.Skill
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SkillRepository) List(ctx context.Context) ([]domain.Skill, error) {
	var skills []domain.Skill
	err := r.db.WithContext(ctx).Order("name ASC").Find(&skills).Error
	return skills, err
}
