package usecasecontract

import (
	"context"

	"github.com/bizsuite/crm-api/internal/domain/contract"
	"github.com/bizsuite/crm-api/internal/domain/entity"
)

// ClientInput carries the writable fields of a client record.
type ClientInput struct {
	Name       string
	Email      string
	Phone      string
	Company    string
	Tags       []string
	AssignedTo string
}

// IClientUseCase defines role-scoped CRUD over clients.
type IClientUseCase interface {
	CreateClient(ctx context.Context, actor *entity.User, in *ClientInput) (*entity.Client, error)
	GetClient(ctx context.Context, actor *entity.User, id string) (*entity.Client, error)
	ListClients(ctx context.Context, actor *entity.User, filter *contract.ClientFilter) ([]*entity.Client, int64, error)
	UpdateClient(ctx context.Context, actor *entity.User, id string, updates map[string]interface{}) (*entity.Client, error)
	DeleteClient(ctx context.Context, actor *entity.User, id string) error
}
