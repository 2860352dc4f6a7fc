package review

import (
	"context"

	"mentorhub/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, rev *domain.Review) error
	ExistsBySessionID(ctx context.Context, sessionID int64) (bool, error)
	ListByMentor(ctx context.Context, mentorProfileID int64, limit, offset int) ([]domain.Review, error)
	AggregateForMentor(ctx context.Context, mentorProfileID int64) (float64, int, error)
}

type SessionReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Session, error)
}

type MentorUpdater interface {
	GetByID(ctx context.Context, id int64) (*domain.MentorProfile, error)
	UpdateRating(ctx context.Context, profileID int64, rating float64, reviewCount int) error
}

type NotificationSender interface {
	NotifyNewReview(ctx context.Context, mentorUserID, reviewID int64, rating int) error
}
