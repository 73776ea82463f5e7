package contract

import (
	"context"

	"github.com/bizsuite/crm-api/internal/domain/entity"
)

// ActivityFilter narrows an activity feed listing.
type ActivityFilter struct {
	CreatedBy string
	PinnedBy  string
	Search    string
	Page      int
	Limit     int
}

type IActivityRepository interface {
	CreateActivity(ctx context.Context, activity *entity.Activity) error
	GetActivityByID(ctx context.Context, id string) (*entity.Activity, error)
	// ListActivities returns a page of feed items plus the total match count.
	ListActivities(ctx context.Context, filter *ActivityFilter) ([]*entity.Activity, int64, error)
	DeleteActivity(ctx context.Context, id string) error
	// SetLiked adds or removes the user id from the activity's likes list.
	SetLiked(ctx context.Context, id, userID string, liked bool) error
	// SetPinned adds or removes the user id from the activity's pinned_by list.
	SetPinned(ctx context.Context, id, userID string, pinned bool) error
	AddComment(ctx context.Context, id string, comment *entity.ActivityComment) error
	RemoveComment(ctx context.Context, id, commentID string) error
}
