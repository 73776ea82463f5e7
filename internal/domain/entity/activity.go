package entity

import (
	"time"
)

// ActivityComment is a comment embedded in an activity feed item.
type ActivityComment struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Activity is a feed item. Likes and PinnedBy hold user ids; per-viewer
// booleans are derived at the API edge, never stored.
type Activity struct {
	ID        string            `bson:"_id,omitempty" json:"id"`
	Content   string            `bson:"content" json:"content"`
	CreatedBy string            `bson:"created_by" json:"created_by"`
	Likes     []string          `bson:"likes" json:"likes"`
	PinnedBy  []string          `bson:"pinned_by" json:"pinned_by"`
	Comments  []ActivityComment `bson:"comments" json:"comments"`
	CreatedAt time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time         `bson:"updated_at" json:"updated_at"`
}

// IsLikedBy reports whether the given user has liked the activity.
func (a *Activity) IsLikedBy(userID string) bool {
	for _, id := range a.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// IsPinnedBy reports whether the given user has the activity pinned.
func (a *Activity) IsPinnedBy(userID string) bool {
	for _, id := range a.PinnedBy {
		if id == userID {
			return true
		}
	}
	return false
}
