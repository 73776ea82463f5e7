package usecasecontract

import (
	"context"

	"github.com/bizsuite/crm-api/internal/domain/entity"
)

// INotificationUseCase defines the notification fan-out plus the receiver-scoped
// read operations.
type INotificationUseCase interface {
	// FanOut creates one notification document per receiver in a single bulk
	// insert and returns the created count. Calling it twice produces duplicates.
	FanOut(ctx context.Context, senderID string, receiverIDs []string, ntype entity.NotificationType, message, relatedID string, onModel entity.RelatedModel) (int, error)
	// Dispatch is the best-effort wrapper around FanOut: failures are logged and
	// swallowed so the triggering action still succeeds.
	Dispatch(ctx context.Context, senderID string, receiverIDs []string, ntype entity.NotificationType, message, relatedID string, onModel entity.RelatedModel)

	ListNotifications(ctx context.Context, actor *entity.User, unreadOnly bool, page, limit int) ([]*entity.Notification, int64, error)
	UnreadCount(ctx context.Context, actor *entity.User) (int64, error)
	MarkRead(ctx context.Context, actor *entity.User, id string) error
	MarkAllRead(ctx context.Context, actor *entity.User) error
	DeleteNotification(ctx context.Context, actor *entity.User, id string) error
}
