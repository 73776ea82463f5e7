package usecasecontract

import (
	"context"

	"github.com/bizsuite/crm-api/internal/domain/contract"
	"github.com/bizsuite/crm-api/internal/domain/entity"
)

// ActivityView is a feed item with the viewer's like/pin state derived at read time.
type ActivityView struct {
	entity.Activity
	IsLikedByUser  bool `json:"isLikedByUser"`
	IsPinnedByUser bool `json:"isPinnedByUser"`
}

// IActivityUseCase defines the activity feed operations.
type IActivityUseCase interface {
	PostActivity(ctx context.Context, actor *entity.User, content string) (*entity.Activity, error)
	GetActivity(ctx context.Context, actor *entity.User, id string) (*ActivityView, error)
	ListActivities(ctx context.Context, actor *entity.User, filter *contract.ActivityFilter) ([]*ActivityView, int64, error)
	DeleteActivity(ctx context.Context, actor *entity.User, id string) error
	// ToggleLike flips the viewer's membership in likes and returns the new state
	// plus the resulting like count.
	ToggleLike(ctx context.Context, actor *entity.User, id string) (bool, int, error)
	// TogglePin flips the viewer's membership in pinned_by and returns the new state.
	TogglePin(ctx context.Context, actor *entity.User, id string) (bool, error)
	AddComment(ctx context.Context, actor *entity.User, id, text string) (*entity.ActivityComment, error)
	DeleteComment(ctx context.Context, actor *entity.User, id, commentID string) error
}
