package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bizsuite/crm-api/internal/domain/contract"
	"github.com/bizsuite/crm-api/internal/domain/entity"
	usecasecontract "github.com/bizsuite/crm-api/internal/usecase/contract"
)

func noteTestFixture() (*NoteUsecase, *fakeNoteRepo, *entity.User, *entity.User) {
	admin := &entity.User{ID: "admin-1", Role: entity.UserRoleAdmin}
	staff := &entity.User{ID: "staff-1", Role: entity.UserRoleStaff}
	repo := newFakeNoteRepo()
	uc := NewNoteUsecase(repo, &seqUUID{}, nopLogger{})
	return uc, repo, admin, staff
}

func TestCreateNote(t *testing.T) {
	uc, _, _, staff := noteTestFixture()

	note, err := uc.CreateNote(context.Background(), staff, &usecasecontract.NoteInput{
		Title:   "Follow up",
		Content: "Call back tomorrow",
	})
	assert.NoError(t, err)
	assert.Equal(t, staff.ID, note.CreatedBy)
	assert.NotNil(t, note.Tags)
	assert.Empty(t, note.PinnedBy)

	_, err = uc.CreateNote(context.Background(), staff, &usecasecontract.NoteInput{Content: "no title"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetNote_OwnerScoped(t *testing.T) {
	uc, repo, admin, staff := noteTestFixture()
	repo.notes["note-1"] = &entity.Note{ID: "note-1", Title: "Private", Content: "x", CreatedBy: "someone-else"}

	_, err := uc.GetNote(context.Background(), staff, "note-1")
	assert.ErrorIs(t, err, ErrForbidden)

	// admins can read any note
	view, err := uc.GetNote(context.Background(), admin, "note-1")
	assert.NoError(t, err)
	assert.Equal(t, "Private", view.Title)
	assert.False(t, view.IsPinnedByUser)
}

func TestDeleteNote_OwnerScoped(t *testing.T) {
	uc, repo, _, staff := noteTestFixture()
	repo.notes["note-1"] = &entity.Note{ID: "note-1", Title: "Private", Content: "x", CreatedBy: "someone-else"}

	assert.ErrorIs(t, uc.DeleteNote(context.Background(), staff, "note-1"), ErrForbidden)

	repo.notes["note-2"] = &entity.Note{ID: "note-2", Title: "Mine", Content: "x", CreatedBy: staff.ID}
	assert.NoError(t, uc.DeleteNote(context.Background(), staff, "note-2"))
	assert.ErrorIs(t, uc.DeleteNote(context.Background(), staff, "note-2"), ErrNotFound)
}

func TestTogglePin_DoubleToggleRestoresState(t *testing.T) {
	uc, repo, _, staff := noteTestFixture()
	repo.notes["note-1"] = &entity.Note{ID: "note-1", Title: "Mine", Content: "x", CreatedBy: staff.ID}

	pinned, err := uc.TogglePin(context.Background(), staff, "note-1")
	assert.NoError(t, err)
	assert.True(t, pinned)
	assert.True(t, repo.notes["note-1"].IsPinnedBy(staff.ID))

	pinned, err = uc.TogglePin(context.Background(), staff, "note-1")
	assert.NoError(t, err)
	assert.False(t, pinned)
	assert.False(t, repo.notes["note-1"].IsPinnedBy(staff.ID))
}

func TestListNotes_StaffScope(t *testing.T) {
	uc, repo, admin, staff := noteTestFixture()
	repo.notes["note-1"] = &entity.Note{ID: "note-1", Title: "Mine", Content: "x", CreatedBy: staff.ID}
	repo.notes["note-2"] = &entity.Note{ID: "note-2", Title: "Theirs", Content: "x", CreatedBy: "someone-else"}

	views, total, err := uc.ListNotes(context.Background(), staff, &contract.NoteFilter{Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, views, 1)
	assert.Equal(t, "Mine", views[0].Title)

	_, total, err = uc.ListNotes(context.Background(), admin, &contract.NoteFilter{Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
