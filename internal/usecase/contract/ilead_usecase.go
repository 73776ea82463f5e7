package usecasecontract

import (
	"context"

	"github.com/bizsuite/crm-api/internal/domain/contract"
	"github.com/bizsuite/crm-api/internal/domain/entity"
)

// LeadInput carries the writable fields of a lead record.
type LeadInput struct {
	Title       string
	ContactName string
	Email       string
	Phone       string
	Source      string
	Value       float64
	Stage       entity.LeadStage
	AssignedTo  string
}

// LeadView is a lead with its assignee's display name resolved at read time.
type LeadView struct {
	entity.Lead
	AssignedToName string `json:"assigned_to_name,omitempty"`
}

// ILeadUseCase defines role-scoped CRUD over leads. Creation and deletion are
// Admin-only; Staff updates are restricted to the stage field.
type ILeadUseCase interface {
	CreateLead(ctx context.Context, actor *entity.User, in *LeadInput) (*entity.Lead, error)
	GetLead(ctx context.Context, actor *entity.User, id string) (*LeadView, error)
	ListLeads(ctx context.Context, actor *entity.User, filter *contract.LeadFilter) ([]*LeadView, int64, error)
	UpdateLead(ctx context.Context, actor *entity.User, id string, updates map[string]interface{}) (*entity.Lead, error)
	DeleteLead(ctx context.Context, actor *entity.User, id string) error
}
