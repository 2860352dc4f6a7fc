package catalog

import (
	"context"

	"mentorhub/internal/domain"
)

type SkillRepository interface {
	Create(ctx context.Context, s *domain.Skill) error
	GetByID(ctx context.Context, id int64) (*domain.Skill, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Skill, error)
	List(ctx context.Context) ([]domain.Skill, error)
}

type ListingRepository interface {
	Create(ctx context.Context, l *domain.Listing) error
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
	Update(ctx context.Context, l *domain.Listing) error
	SetActive(ctx context.Context, id int64, active bool) error
	ListPublic(ctx context.Context, skillID int64, limit, offset int) ([]domain.Listing, int64, error)
	ListByMentor(ctx context.Context, mentorProfileID int64) ([]domain.Listing, error)
}
