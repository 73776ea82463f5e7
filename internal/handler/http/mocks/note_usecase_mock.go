package mocks

import (
	"context"
	"fmt"

	"github.com/bizsuite/crm-api/internal/domain/contract"
	"github.com/bizsuite/crm-api/internal/domain/entity"
	"github.com/bizsuite/crm-api/internal/usecase"
	usecasecontract "github.com/bizsuite/crm-api/internal/usecase/contract"
)

// MockNoteUsecase is a mock implementation of the note usecase interface
type MockNoteUsecase struct {
	ShouldForbid  bool
	ShouldNotFind bool
	MockNote      entity.Note
	PinState      bool
}

var _ usecasecontract.INoteUseCase = (*MockNoteUsecase)(nil)

func NewMockNoteUsecase() *MockNoteUsecase {
	return &MockNoteUsecase{
		MockNote: entity.Note{
			ID:        "mock-note-id",
			Title:     "Follow up",
			Content:   "Call back after the demo.",
			CreatedBy: "mock-user-id",
		},
	}
}

func (m *MockNoteUsecase) fail() error {
	if m.ShouldForbid {
		return fmt.Errorf("%w: note", usecase.ErrForbidden)
	}
	if m.ShouldNotFind {
		return fmt.Errorf("%w: note", usecase.ErrNotFound)
	}
	return nil
}

func (m *MockNoteUsecase) CreateNote(ctx context.Context, actor *entity.User, in *usecasecontract.NoteInput) (*entity.Note, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	note := m.MockNote
	note.Title = in.Title
	note.Content = in.Content
	note.Tags = in.Tags
	return &note, nil
}

func (m *MockNoteUsecase) GetNote(ctx context.Context, actor *entity.User, id string) (*usecasecontract.NoteView, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	return &usecasecontract.NoteView{Note: m.MockNote, IsPinnedByUser: m.PinState}, nil
}

func (m *MockNoteUsecase) ListNotes(ctx context.Context, actor *entity.User, filter *contract.NoteFilter) ([]*usecasecontract.NoteView, int64, error) {
	if err := m.fail(); err != nil {
		return nil, 0, err
	}
	return []*usecasecontract.NoteView{{Note: m.MockNote}}, 1, nil
}

func (m *MockNoteUsecase) UpdateNote(ctx context.Context, actor *entity.User, id string, updates map[string]interface{}) (*entity.Note, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	return &m.MockNote, nil
}

func (m *MockNoteUsecase) DeleteNote(ctx context.Context, actor *entity.User, id string) error {
	return m.fail()
}

func (m *MockNoteUsecase) TogglePin(ctx context.Context, actor *entity.User, id string) (bool, error) {
	if err := m.fail(); err != nil {
		return false, err
	}
	m.PinState = !m.PinState
	return m.PinState, nil
}
