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

const errNoteNotFound = "note not found"

// NoteUsecase implements the INoteUseCase interface.
type NoteUsecase struct {
	noteRepo      contract.INoteRepository
	uuidGenerator contract.IUUIDGenerator
	logger        usecasecontract.IAppLogger
}

func NewNoteUsecase(
	noteRepo contract.INoteRepository,
	uuidGenerator contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
) *NoteUsecase {
	return &NoteUsecase{
		noteRepo:      noteRepo,
		uuidGenerator: uuidGenerator,
		logger:        logger,
	}
}

var _ usecasecontract.INoteUseCase = (*NoteUsecase)(nil)

// CreateNote creates a note owned by the actor.
func (uc *NoteUsecase) CreateNote(ctx context.Context, actor *entity.User, in *usecasecontract.NoteInput) (*entity.Note, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.Content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	note := &entity.Note{
		ID:        uc.uuidGenerator.NewUUID(),
		Title:     in.Title,
		Content:   in.Content,
		Tags:      tags,
		CreatedBy: actor.ID,
		PinnedBy:  []string{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := uc.noteRepo.CreateNote(ctx, note); err != nil {
		uc.logger.Errorf("failed to create note: %v", err)
		return nil, errors.New(errInternalServer)
	}

	return note, nil
}

// GetNote fetches a note by id. Staff can only read their own notes.
func (uc *NoteUsecase) GetNote(ctx context.Context, actor *entity.User, id string) (*usecasecontract.NoteView, error) {
	note, err := uc.noteRepo.GetNoteByID(ctx, id)
	if err != nil {
		if err.Error() == errNoteNotFound {
			return nil, ErrNotFound
		}
		uc.logger.Errorf("failed to retrieve note %s: %v", id, err)
		return nil, errors.New(errInternalServer)
	}

	if !actor.IsAdmin() && note.CreatedBy != actor.ID {
		return nil, ErrForbidden
	}

	return &usecasecontract.NoteView{Note: *note, IsPinnedByUser: note.IsPinnedBy(actor.ID)}, nil
}

// ListNotes returns a role-scoped page of notes with the viewer's pin state derived.
func (uc *NoteUsecase) ListNotes(ctx context.Context, actor *entity.User, filter *contract.NoteFilter) ([]*usecasecontract.NoteView, int64, error) {
	filter.Scope = ownerScope(actor)
	if filter.PinnedBy != "" {
		filter.PinnedBy = actor.ID
	}

	notes, total, err := uc.noteRepo.ListNotes(ctx, filter)
	if err != nil {
		uc.logger.Errorf("failed to list notes: %v", err)
		return nil, 0, errors.New(errInternalServer)
	}

	views := make([]*usecasecontract.NoteView, len(notes))
	for i, n := range notes {
		views[i] = &usecasecontract.NoteView{Note: *n, IsPinnedByUser: n.IsPinnedBy(actor.ID)}
	}
	return views, total, nil
}

// UpdateNote applies a partial update. Only the owner or an Admin may edit.
func (uc *NoteUsecase) UpdateNote(ctx context.Context, actor *entity.User, id string, updates map[string]interface{}) (*entity.Note, error) {
	note, err := uc.noteRepo.GetNoteByID(ctx, id)
	if err != nil {
		if err.Error() == errNoteNotFound {
			return nil, ErrNotFound
		}
		uc.logger.Errorf("failed to retrieve note %s: %v", id, err)
		return nil, errors.New(errInternalServer)
	}

	if !actor.IsAdmin() && note.CreatedBy != actor.ID {
		return nil, ErrForbidden
	}

	set := make(map[string]interface{}, len(updates)+1)
	for k, v := range updates {
		switch k {
		case "title", "content":
			if s, ok := v.(string); ok {
				set[k] = s
			}
		case "tags":
			if raw, ok := v.([]interface{}); ok {
				tags := make([]string, 0, len(raw))
				for _, t := range raw {
					if s, ok := t.(string); ok {
						tags = append(tags, s)
					}
				}
				set[k] = tags
			} else if tags, ok := v.([]string); ok {
				set[k] = tags
			}
		default:
			return nil, fmt.Errorf("%w: unknown field %q", ErrValidation, k)
		}
	}
	if len(set) == 0 {
		return note, nil
	}
	set["updated_at"] = time.Now()

	if err := uc.noteRepo.UpdateNote(ctx, id, set); err != nil {
		uc.logger.Errorf("failed to update note %s: %v", id, err)
		return nil, errors.New(errInternalServer)
	}

	updated, err := uc.noteRepo.GetNoteByID(ctx, id)
	if err != nil {
		uc.logger.Errorf("failed to re-read note %s after update: %v", id, err)
		return nil, errors.New(errInternalServer)
	}
	return updated, nil
}

// DeleteNote removes a note. Only the owner or an Admin may delete.
func (uc *NoteUsecase) DeleteNote(ctx context.Context, actor *entity.User, id string) error {
	note, err := uc.noteRepo.GetNoteByID(ctx, id)
	if err != nil {
		if err.Error() == errNoteNotFound {
			return ErrNotFound
		}
		uc.logger.Errorf("failed to retrieve note %s: %v", id, err)
		return errors.New(errInternalServer)
	}

	if !actor.IsAdmin() && note.CreatedBy != actor.ID {
		return ErrForbidden
	}

	if err := uc.noteRepo.DeleteNote(ctx, id); err != nil {
		if err.Error() == errNoteNotFound {
			return ErrNotFound
		}
		uc.logger.Errorf("failed to delete note %s: %v", id, err)
		return errors.New(errInternalServer)
	}
	return nil
}

// TogglePin flips the actor's membership in the note's pinned_by list and
// returns the resulting state. Toggling twice restores the original state.
func (uc *NoteUsecase) TogglePin(ctx context.Context, actor *entity.User, id string) (bool, error) {
	note, err := uc.noteRepo.GetNoteByID(ctx, id)
	if err != nil {
		if err.Error() == errNoteNotFound {
			return false, ErrNotFound
		}
		uc.logger.Errorf("failed to retrieve note %s: %v", id, err)
		return false, errors.New(errInternalServer)
	}

	if !actor.IsAdmin() && note.CreatedBy != actor.ID {
		return false, ErrForbidden
	}

	pinned := !note.IsPinnedBy(actor.ID)
	if err := uc.noteRepo.SetPinned(ctx, id, actor.ID, pinned); err != nil {
		uc.logger.Errorf("failed to toggle pin on note %s: %v", id, err)
		return false, errors.New(errInternalServer)
	}
	return pinned, nil
}
