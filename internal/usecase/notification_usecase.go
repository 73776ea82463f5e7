package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bizsuite/crm-api/internal/domain/contract"
	"github.com/bizsuite/crm-api/internal/domain/entity"
	usecasecontract "github.com/bizsuite/crm-api/internal/usecase/contract"
)

const errNotificationNotFound = "notification not found"

// NotificationUsecase implements the INotificationUseCase interface.
type NotificationUsecase struct {
	notificationRepo contract.INotificationRepository
	uuidGenerator    contract.IUUIDGenerator
	logger           usecasecontract.IAppLogger
}

func NewNotificationUsecase(
	notificationRepo contract.INotificationRepository,
	uuidGenerator contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
) *NotificationUsecase {
	return &NotificationUsecase{
		notificationRepo: notificationRepo,
		uuidGenerator:    uuidGenerator,
		logger:           logger,
	}
}

var _ usecasecontract.INotificationUseCase = (*NotificationUsecase)(nil)

// FanOut creates one notification document per receiver in a single bulk
// insert and returns the created count.
func (uc *NotificationUsecase) FanOut(ctx context.Context, senderID string, receiverIDs []string, ntype entity.NotificationType, message, relatedID string, onModel entity.RelatedModel) (int, error) {
	if !ntype.IsValid() {
		return 0, fmt.Errorf("%w: unknown notification type %q", ErrValidation, ntype)
	}
	if message == "" {
		return 0, fmt.Errorf("%w: notification message is required", ErrValidation)
	}

	notifications := make([]*entity.Notification, 0, len(receiverIDs))
	now := time.Now()
	for _, receiver := range receiverIDs {
		if receiver == "" {
			continue
		}
		notifications = append(notifications, &entity.Notification{
			ID:        uc.uuidGenerator.NewUUID(),
			Sender:    senderID,
			Receiver:  receiver,
			Type:      ntype,
			Message:   message,
			RelatedID: relatedID,
			OnModel:   onModel,
			IsRead:    false,
			CreatedAt: now,
		})
	}

	if len(notifications) == 0 {
		return 0, nil
	}

	if err := uc.notificationRepo.InsertMany(ctx, notifications); err != nil {
		uc.logger.Errorf("failed to insert notifications: %v", err)
		return 0, errors.New(errInternalServer)
	}

	return len(notifications), nil
}

// Dispatch wraps FanOut and swallows its errors. Notification delivery never
// fails the action that triggered it.
func (uc *NotificationUsecase) Dispatch(ctx context.Context, senderID string, receiverIDs []string, ntype entity.NotificationType, message, relatedID string, onModel entity.RelatedModel) {
	if _, err := uc.FanOut(ctx, senderID, receiverIDs, ntype, message, relatedID, onModel); err != nil {
		uc.logger.Warnf("notification dispatch failed (type=%s, related=%s): %v", ntype, relatedID, err)
	}
}

// ListNotifications returns the actor's own notifications, newest first.
func (uc *NotificationUsecase) ListNotifications(ctx context.Context, actor *entity.User, unreadOnly bool, page, limit int) ([]*entity.Notification, int64, error) {
	filter := &contract.NotificationFilter{
		Receiver:   actor.ID,
		UnreadOnly: unreadOnly,
		Page:       page,
		Limit:      limit,
	}

	notifications, total, err := uc.notificationRepo.ListNotifications(ctx, filter)
	if err != nil {
		uc.logger.Errorf("failed to list notifications for user %s: %v", actor.ID, err)
		return nil, 0, errors.New(errInternalServer)
	}
	return notifications, total, nil
}

func (uc *NotificationUsecase) UnreadCount(ctx context.Context, actor *entity.User) (int64, error) {
	count, err := uc.notificationRepo.CountUnread(ctx, actor.ID)
	if err != nil {
		uc.logger.Errorf("failed to count unread notifications for user %s: %v", actor.ID, err)
		return 0, errors.New(errInternalServer)
	}
	return count, nil
}

// MarkRead marks a single notification as read. Only the receiver may do this.
func (uc *NotificationUsecase) MarkRead(ctx context.Context, actor *entity.User, id string) error {
	notification, err := uc.notificationRepo.GetNotificationByID(ctx, id)
	if err != nil {
		if err.Error() == errNotificationNotFound {
			return ErrNotFound
		}
		uc.logger.Errorf("failed to retrieve notification %s: %v", id, err)
		return errors.New(errInternalServer)
	}

	if notification.Receiver != actor.ID {
		return ErrForbidden
	}

	if err := uc.notificationRepo.MarkRead(ctx, id); err != nil {
		uc.logger.Errorf("failed to mark notification %s as read: %v", id, err)
		return errors.New(errInternalServer)
	}
	return nil
}

func (uc *NotificationUsecase) MarkAllRead(ctx context.Context, actor *entity.User) error {
	if err := uc.notificationRepo.MarkAllRead(ctx, actor.ID); err != nil {
		uc.logger.Errorf("failed to mark all notifications as read for user %s: %v", actor.ID, err)
		return errors.New(errInternalServer)
	}
	return nil
}

// DeleteNotification removes a notification. Only the receiver may do this.
func (uc *NotificationUsecase) DeleteNotification(ctx context.Context, actor *entity.User, id string) error {
	notification, err := uc.notificationRepo.GetNotificationByID(ctx, id)
	if err != nil {
		if err.Error() == errNotificationNotFound {
			return ErrNotFound
		}
		uc.logger.Errorf("failed to retrieve notification %s: %v", id, err)
		return errors.New(errInternalServer)
	}

	if notification.Receiver != actor.ID {
		return ErrForbidden
	}

	if err := uc.notificationRepo.DeleteNotification(ctx, id); err != nil {
		uc.logger.Errorf("failed to delete notification %s: %v", id, err)
		return errors.New(errInternalServer)
	}
	return nil
}
