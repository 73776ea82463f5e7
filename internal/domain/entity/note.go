package entity

import (
	"time"
)

// Note is a free-text note owned by its creator. PinnedBy holds the ids of
// every user that pinned it; a per-viewer boolean is derived at the API edge.
type Note struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Content   string    `bson:"content" json:"content"`
	Tags      []string  `bson:"tags" json:"tags"`
	CreatedBy string    `bson:"created_by" json:"created_by"`
	PinnedBy  []string  `bson:"pinned_by" json:"pinned_by"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsPinnedBy reports whether the given user has the note pinned.
func (n *Note) IsPinnedBy(userID string) bool {
	for _, id := range n.PinnedBy {
		if id == userID {
			return true
		}
	}
	return false
}
