package usecasecontract

import (
	"context"

	"github.com/bizsuite/crm-api/internal/domain/entity"
)

// DashboardStats is the read-only rollup returned by the dashboard endpoint.
// Every call recomputes it from scratch; nothing is cached.
type DashboardStats struct {
	TotalLeads    int64            `json:"total_leads"`
	TotalClients  int64            `json:"total_clients"`
	TotalTasks    int64            `json:"total_tasks"`
	TotalNotes    int64            `json:"total_notes"`
	LeadsByStage  map[string]int64 `json:"leads_by_stage"`
	LeadsBySource map[string]int64 `json:"leads_by_source"`
	LeadsByMonth  []int64          `json:"leads_by_month"`
	TasksByStatus map[string]int64 `json:"tasks_by_status"`
	// ConversionRate is won leads over total leads, as a percentage.
	ConversionRate float64 `json:"conversion_rate"`
	// LeadChangePct and WonChangePct compare the current calendar month to the
	// previous one.
	LeadChangePct float64 `json:"lead_change_pct"`
	WonChangePct  float64 `json:"won_change_pct"`
}

// IDashboardUseCase computes the per-request dashboard rollups.
type IDashboardUseCase interface {
	GetStats(ctx context.Context, actor *entity.User) (*DashboardStats, error)
}
