package notification

import (
	"context"

	"mentorhub/internal/domain"
)

// NotificationRepository is the subset of storage the service uses
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification, data map[string]any) error
	GetByUserID(ctx context.Context, userID int64, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkAsRead(ctx context.Context, notificationID, userID int64) error
	MarkAllAsRead(ctx context.Context, userID int64) error
}
