package contract

import (
	"context"

	"github.com/bizsuite/crm-api/internal/domain/entity"
)

// CachedLeadsPage is the cached payload for lead list endpoints.
type CachedLeadsPage struct {
	Leads []entity.Lead `json:"leads"`
	Total int64         `json:"total"`
}

// ILeadCache defines caching operations for lead list pages. The cache is
// read-through and is invalidated on every lead mutation.
type ILeadCache interface {
	GetLeadsPage(ctx context.Context, key string) (*CachedLeadsPage, bool, error)
	SetLeadsPage(ctx context.Context, key string, page *CachedLeadsPage) error
	InvalidateLeadLists(ctx context.Context) error
}
