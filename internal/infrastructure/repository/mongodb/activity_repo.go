package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizsuite/crm-api/internal/domain/contract"
	"github.com/bizsuite/crm-api/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActivityRepository is the MongoDB implementation of IActivityRepository.
type ActivityRepository struct {
	collection *mongo.Collection
}

var _ contract.IActivityRepository = (*ActivityRepository)(nil)

func NewActivityRepository(collection *mongo.Collection) *ActivityRepository {
	return &ActivityRepository{collection: collection}
}

func buildActivityFilter(opts *contract.ActivityFilter) bson.M {
	var conds []bson.M
	if opts.CreatedBy != "" {
		conds = append(conds, bson.M{"created_by": opts.CreatedBy})
	}
	if opts.PinnedBy != "" {
		conds = append(conds, bson.M{"pinned_by": opts.PinnedBy})
	}
	if opts.Search != "" {
		conds = append(conds, bson.M{"content": bson.M{"$regex": opts.Search, "$options": "i"}})
	}
	return combine(conds)
}

func (r *ActivityRepository) CreateActivity(ctx context.Context, activity *entity.Activity) error {
	_, err := r.collection.InsertOne(ctx, activity)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) GetActivityByID(ctx context.Context, id string) (*entity.Activity, error) {
	var activity entity.Activity
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&activity)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.New("activity not found")
		}
		return nil, err
	}
	return &activity, nil
}

// ListActivities returns a page of feed items plus the total match count.
func (r *ActivityRepository) ListActivities(ctx context.Context, opts *contract.ActivityFilter) ([]*entity.Activity, int64, error) {
	filter := buildActivityFilter(opts)

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count activities: %w", err)
	}

	findOpts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(pageSkip(opts.Page, opts.Limit)).
		SetLimit(pageLimit(opts.Limit))

	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activities: %w", err)
	}
	defer cursor.Close(ctx)

	var activities []*entity.Activity
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, 0, fmt.Errorf("failed to decode activities: %w", err)
	}
	return activities, total, nil
}

func (r *ActivityRepository) DeleteActivity(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	if result.DeletedCount == 0 {
		return errors.New("activity not found")
	}
	return nil
}

// SetLiked adds or removes the user id from the activity's likes list.
func (r *ActivityRepository) SetLiked(ctx context.Context, id, userID string, liked bool) error {
	var update bson.M
	if liked {
		update = bson.M{"$addToSet": bson.M{"likes": userID}}
	} else {
		update = bson.M{"$pull": bson.M{"likes": userID}}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update activity like state: %w", err)
	}
	if result.MatchedCount == 0 {
		return errors.New("activity not found")
	}
	return nil
}

// SetPinned adds or removes the user id from the activity's pinned_by list.
func (r *ActivityRepository) SetPinned(ctx context.Context, id, userID string, pinned bool) error {
	var update bson.M
	if pinned {
		update = bson.M{"$addToSet": bson.M{"pinned_by": userID}}
	} else {
		update = bson.M{"$pull": bson.M{"pinned_by": userID}}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update activity pin state: %w", err)
	}
	if result.MatchedCount == 0 {
		return errors.New("activity not found")
	}
	return nil
}

// AddComment appends an embedded comment to the activity.
func (r *ActivityRepository) AddComment(ctx context.Context, id string, comment *entity.ActivityComment) error {
	update := bson.M{"$push": bson.M{"comments": comment}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}
	if result.MatchedCount == 0 {
		return errors.New("activity not found")
	}
	return nil
}

// RemoveComment deletes an embedded comment by id.
func (r *ActivityRepository) RemoveComment(ctx context.Context, id, commentID string) error {
	update := bson.M{"$pull": bson.M{"comments": bson.M{"_id": commentID}}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to remove comment: %w", err)
	}
	if result.MatchedCount == 0 {
		return errors.New("activity not found")
	}
	return nil
}
