package mocks

import (
	"context"
	"fmt"

	"github.com/bizsuite/crm-api/internal/domain/contract"
	"github.com/bizsuite/crm-api/internal/domain/entity"
	"github.com/bizsuite/crm-api/internal/usecase"
	usecasecontract "github.com/bizsuite/crm-api/internal/usecase/contract"
)

// MockLeadUsecase is a mock implementation of the lead usecase interface
type MockLeadUsecase struct {
	ShouldForbid   bool
	ShouldNotFind  bool
	MockLead       entity.Lead
	UpdateLeadKeys map[string]interface{}
}

var _ usecasecontract.ILeadUseCase = (*MockLeadUsecase)(nil)

func NewMockLeadUsecase() *MockLeadUsecase {
	return &MockLeadUsecase{
		MockLead: entity.Lead{
			ID:          "mock-lead-id",
			Title:       "Enterprise rollout",
			ContactName: "Ada Example",
			Stage:       entity.LeadStageNew,
			CreatedBy:   "mock-user-id",
		},
	}
}

func (m *MockLeadUsecase) fail() error {
	if m.ShouldForbid {
		return fmt.Errorf("%w: staff may only update the stage field", usecase.ErrForbidden)
	}
	if m.ShouldNotFind {
		return fmt.Errorf("%w: lead", usecase.ErrNotFound)
	}
	return nil
}

func (m *MockLeadUsecase) CreateLead(ctx context.Context, actor *entity.User, in *usecasecontract.LeadInput) (*entity.Lead, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	lead := m.MockLead
	lead.Title = in.Title
	lead.ContactName = in.ContactName
	return &lead, nil
}

func (m *MockLeadUsecase) GetLead(ctx context.Context, actor *entity.User, id string) (*usecasecontract.LeadView, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	return &usecasecontract.LeadView{Lead: m.MockLead}, nil
}

func (m *MockLeadUsecase) ListLeads(ctx context.Context, actor *entity.User, filter *contract.LeadFilter) ([]*usecasecontract.LeadView, int64, error) {
	if err := m.fail(); err != nil {
		return nil, 0, err
	}
	return []*usecasecontract.LeadView{{Lead: m.MockLead}}, 1, nil
}

func (m *MockLeadUsecase) UpdateLead(ctx context.Context, actor *entity.User, id string, updates map[string]interface{}) (*entity.Lead, error) {
	m.UpdateLeadKeys = updates
	if err := m.fail(); err != nil {
		return nil, err
	}
	return &m.MockLead, nil
}

func (m *MockLeadUsecase) DeleteLead(ctx context.Context, actor *entity.User, id string) error {
	return m.fail()
}
