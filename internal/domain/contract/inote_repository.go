package contract

import (
	"context"

	"github.com/bizsuite/crm-api/internal/domain/entity"
)

// NoteFilter narrows a note listing. Scope, when set, restricts results to
// documents the given user created. PinnedBy, when set, restricts to notes
// the given viewer has pinned.
type NoteFilter struct {
	Scope    *string
	Tag      string
	PinnedBy string
	Search   string
	Page     int
	Limit    int
}

type INoteRepository interface {
	CreateNote(ctx context.Context, note *entity.Note) error
	GetNoteByID(ctx context.Context, id string) (*entity.Note, error)
	// ListNotes returns a page of notes plus the total match count.
	ListNotes(ctx context.Context, filter *NoteFilter) ([]*entity.Note, int64, error)
	UpdateNote(ctx context.Context, id string, updates map[string]interface{}) error
	DeleteNote(ctx context.Context, id string) error
	// SetPinned adds or removes the user id from the note's pinned_by list.
	SetPinned(ctx context.Context, id, userID string, pinned bool) error
	CountNotes(ctx context.Context, scope *string) (int64, error)
}
