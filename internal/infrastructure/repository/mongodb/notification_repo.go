package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizsuite/crm-api/internal/domain/contract"
	"github.com/bizsuite/crm-api/internal/domain/entity"
	"github.com/bizsuite/crm-api/internal/infrastructure/metrics"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationRepository is the MongoDB implementation of INotificationRepository.
type NotificationRepository struct {
	collection *mongo.Collection
}

var _ contract.INotificationRepository = (*NotificationRepository)(nil)

func NewNotificationRepository(collection *mongo.Collection) *NotificationRepository {
	return &NotificationRepository{collection: collection}
}

// InsertMany persists one document per receiver in a single bulk write.
func (r *NotificationRepository) InsertMany(ctx context.Context, notifications []*entity.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	docs := make([]interface{}, len(notifications))
	for i, n := range notifications {
		docs[i] = n
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert notifications: %w", err)
	}

	metrics.NotificationsFannedOut.Add(float64(len(notifications)))
	return nil
}

func (r *NotificationRepository) GetNotificationByID(ctx context.Context, id string) (*entity.Notification, error) {
	var notification entity.Notification
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&notification)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.New("notification not found")
		}
		return nil, err
	}
	return &notification, nil
}

// ListNotifications returns a page of notifications plus the total match count.
func (r *NotificationRepository) ListNotifications(ctx context.Context, opts *contract.NotificationFilter) ([]*entity.Notification, int64, error) {
	filter := bson.M{"receiver": opts.Receiver}
	if opts.UnreadOnly {
		filter["is_read"] = false
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	findOpts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(pageSkip(opts.Page, opts.Limit)).
		SetLimit(pageLimit(opts.Limit))

	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var notifications []*entity.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, 0, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return notifications, total, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, receiver string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"receiver": receiver, "is_read": false})
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	if result.MatchedCount == 0 {
		return errors.New("notification not found")
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, receiver string) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"receiver": receiver, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return nil
}

func (r *NotificationRepository) DeleteNotification(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	if result.DeletedCount == 0 {
		return errors.New("notification not found")
	}
	return nil
}
