package contract

import (
	"context"

	"github.com/bizsuite/crm-api/internal/domain/entity"
)

// NotificationFilter narrows a notification listing to a single receiver.
type NotificationFilter struct {
	Receiver   string
	UnreadOnly bool
	Page       int
	Limit      int
}

type INotificationRepository interface {
	// InsertMany persists one document per receiver in a single bulk write.
	InsertMany(ctx context.Context, notifications []*entity.Notification) error
	GetNotificationByID(ctx context.Context, id string) (*entity.Notification, error)
	// ListNotifications returns a page of notifications plus the total match count.
	ListNotifications(ctx context.Context, filter *NotificationFilter) ([]*entity.Notification, int64, error)
	CountUnread(ctx context.Context, receiver string) (int64, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, receiver string) error
	DeleteNotification(ctx context.Context, id string) error
}
