package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bizsuite/crm-api/internal/domain/contract"
	"github.com/bizsuite/crm-api/internal/domain/entity"
)

func TestPctChange(t *testing.T) {
	assert.Equal(t, float64(100), PctChange(5, 0))
	assert.Equal(t, float64(100), PctChange(0, 0))
	assert.Equal(t, float64(50), PctChange(15, 10))
	assert.Equal(t, float64(-50), PctChange(5, 10))
	assert.Equal(t, float64(-100), PctChange(0, 10))
}

func TestGetStats(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	thisMonth := time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2025, time.May, 5, 0, 0, 0, 0, time.UTC)

	leadRepo := newFakeLeadRepo(
		&entity.Lead{ID: "l1", Stage: entity.LeadStageWon, CreatedAt: thisMonth, UpdatedAt: thisMonth},
		&entity.Lead{ID: "l2", Stage: entity.LeadStageNew, CreatedAt: thisMonth, UpdatedAt: thisMonth},
		&entity.Lead{ID: "l3", Stage: entity.LeadStageWon, CreatedAt: lastMonth, UpdatedAt: lastMonth},
		&entity.Lead{ID: "l4", Stage: entity.LeadStageLost, CreatedAt: lastMonth, UpdatedAt: lastMonth},
	)
	taskRepo := &stubTaskRepo{total: 7, byStatus: []contract.StatusCount{{Status: "pending", Count: 4}, {Status: "completed", Count: 3}}}

	uc := NewDashboardUsecase(leadRepo, &stubClientRepo{total: 3}, taskRepo, newFakeNoteRepo(), nopLogger{})
	uc.now = func() time.Time { return now }

	admin := &entity.User{ID: "admin-1", Role: entity.UserRoleAdmin}
	stats, err := uc.GetStats(context.Background(), admin)
	assert.NoError(t, err)

	assert.Equal(t, int64(4), stats.TotalLeads)
	assert.Equal(t, int64(3), stats.TotalClients)
	assert.Equal(t, int64(7), stats.TotalTasks)
	assert.Equal(t, int64(2), stats.LeadsByStage["Won"])
	assert.Equal(t, int64(4), stats.TasksByStatus["pending"])
	assert.Equal(t, int64(3), stats.TasksByStatus["completed"])
	assert.InDelta(t, 50.0, stats.ConversionRate, 0.001)

	// two leads this month against two last month
	assert.InDelta(t, 0.0, stats.LeadChangePct, 0.001)
	// one won lead this month against one last month
	assert.InDelta(t, 0.0, stats.WonChangePct, 0.001)
	assert.Len(t, stats.LeadsByMonth, 12)
}
