package usecasecontract

import (
	"context"

	"github.com/bizsuite/crm-api/internal/domain/contract"
	"github.com/bizsuite/crm-api/internal/domain/entity"
)

// NoteInput carries the writable fields of a note.
type NoteInput struct {
	Title   string
	Content string
	Tags    []string
}

// NoteView is a note with the viewer's pin state derived at read time.
type NoteView struct {
	entity.Note
	IsPinnedByUser bool `json:"isPinnedByUser"`
}

// INoteUseCase defines owner-scoped CRUD over notes plus the per-user pin toggle.
type INoteUseCase interface {
	CreateNote(ctx context.Context, actor *entity.User, in *NoteInput) (*entity.Note, error)
	GetNote(ctx context.Context, actor *entity.User, id string) (*NoteView, error)
	ListNotes(ctx context.Context, actor *entity.User, filter *contract.NoteFilter) ([]*NoteView, int64, error)
	UpdateNote(ctx context.Context, actor *entity.User, id string, updates map[string]interface{}) (*entity.Note, error)
	DeleteNote(ctx context.Context, actor *entity.User, id string) error
	// TogglePin flips the viewer's membership in pinned_by and returns the new state.
	TogglePin(ctx context.Context, actor *entity.User, id string) (bool, error)
}
