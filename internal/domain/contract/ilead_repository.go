package contract

import (
	"context"
	"time"

	"github.com/bizsuite/crm-api/internal/domain/entity"
)

// LeadFilter narrows a lead listing. Scope, when set, restricts results to
// documents the given user created or is assigned to.
type LeadFilter struct {
	Scope      *string
	Stage      string
	Source     string
	AssignedTo string
	Search     string
	Page       int
	Limit      int
}

// StageCount is a per-stage rollup row.
type StageCount struct {
	Stage string `bson:"_id"`
	Count int64  `bson:"count"`
}

// SourceCount is a per-source rollup row.
type SourceCount struct {
	Source string `bson:"_id"`
	Count  int64  `bson:"count"`
}

// MonthCount is a per-month rollup row (1-based month).
type MonthCount struct {
	Month int   `bson:"_id"`
	Count int64 `bson:"count"`
}

type ILeadRepository interface {
	CreateLead(ctx context.Context, lead *entity.Lead) error
	GetLeadByID(ctx context.Context, id string) (*entity.Lead, error)
	// ListLeads returns a page of leads plus the total match count.
	ListLeads(ctx context.Context, filter *LeadFilter) ([]*entity.Lead, int64, error)
	UpdateLead(ctx context.Context, id string, updates map[string]interface{}) error
	DeleteLead(ctx context.Context, id string) error

	// Dashboard rollups.
	CountLeads(ctx context.Context, scope *string) (int64, error)
	CountByStage(ctx context.Context, scope *string) ([]StageCount, error)
	CountBySource(ctx context.Context, scope *string) ([]SourceCount, error)
	CountByMonth(ctx context.Context, scope *string, year int) ([]MonthCount, error)
	CountCreatedBetween(ctx context.Context, scope *string, from, to time.Time) (int64, error)
	CountWonBetween(ctx context.Context, scope *string, from, to time.Time) (int64, error)
}
