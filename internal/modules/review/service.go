package review

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"mentorhub/internal/domain"
)

type Service struct {
	reviews       ReviewRepository
	sessions      SessionReader
	mentors       MentorUpdater
	notifications NotificationSender
	logger        *zap.Logger
}

func NewService(reviews ReviewRepository, sessions SessionReader, mentors MentorUpdater, notifications NotificationSender, logger *zap.Logger) *Service {
	return &Service{
		reviews:       reviews,
		sessions:      sessions,
		mentors:       mentors,
		notifications: notifications,
		logger:        logger,
	}
}

// Create records the mentee's review of a completed session and refreshes the
// mentor's aggregate rating. One review per session, mentee of the session only.
func (s *Service) Create(ctx context.Context, menteeUserID int64, req CreateReviewRequest) (*domain.Review, error) {
	sess, err := s.sessions.GetByID(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if sess.MenteeUserID != menteeUserID {
		return nil, ErrForbidden
	}
	if sess.Status != domain.SessionCompleted || !sess.ReviewEligible {
		return nil, ErrNotEligible
	}

	exists, err := s.reviews.ExistsBySessionID(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	rev := &domain.Review{
		SessionID:       sess.ID,
		MentorProfileID: sess.MentorProfileID,
		MenteeUserID:    menteeUserID,
		Rating:          req.Rating,
		Comment:         req.Comment,
	}
	if err := s.reviews.Create(ctx, rev); err != nil {
		return nil, err
	}

	s.refreshMentorRating(ctx, sess.MentorProfileID)

	if mentor, merr := s.mentors.GetByID(ctx, sess.MentorProfileID); merr == nil {
		if nerr := s.notifications.NotifyNewReview(ctx, mentor.UserID, rev.ID, rev.Rating); nerr != nil {
			s.logger.Warn("review notification failed", zap.Int64("review_id", rev.ID), zap.Error(nerr))
		}
	}

	return rev, nil
}

func (s *Service) ListForMentor(ctx context.Context, mentorProfileID int64, limit, offset int) ([]domain.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.reviews.ListByMentor(ctx, mentorProfileID, limit, offset)
}

func (s *Service) refreshMentorRating(ctx context.Context, mentorProfileID int64) {
	avg, count, err := s.reviews.AggregateForMentor(ctx, mentorProfileID)
	if err != nil {
		s.logger.Warn("rating aggregation failed", zap.Int64("mentor_profile_id", mentorProfileID), zap.Error(err))
		return
	}
	if err := s.mentors.UpdateRating(ctx, mentorProfileID, avg, count); err != nil {
		s.logger.Warn("rating update failed", zap.Int64("mentor_profile_id", mentorProfileID), zap.Error(err))
	}
}
