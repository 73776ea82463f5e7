package contract

import (
	"context"

	"github.com/bizsuite/crm-api/internal/domain/entity"
)

// ClientFilter narrows a client listing. Scope, when set, restricts results
// to documents the given user created or is assigned to.
type ClientFilter struct {
	Scope      *string
	Search     string
	Tag        string
	AssignedTo string
	Page       int
	Limit      int
}

type IClientRepository interface {
	CreateClient(ctx context.Context, client *entity.Client) error
	GetClientByID(ctx context.Context, id string) (*entity.Client, error)
	// ListClients returns a page of clients plus the total match count.
	ListClients(ctx context.Context, filter *ClientFilter) ([]*entity.Client, int64, error)
	UpdateClient(ctx context.Context, id string, updates map[string]interface{}) error
	DeleteClient(ctx context.Context, id string) error
	CountClients(ctx context.Context, scope *string) (int64, error)
}
