package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/bizsuite/crm-api/internal/domain/contract"
	"github.com/bizsuite/crm-api/internal/domain/entity"
	usecasecontract "github.com/bizsuite/crm-api/internal/usecase/contract"
)

// DashboardUsecase implements the IDashboardUseCase interface. Stats are
// recomputed on every call and scoped to the actor's role.
type DashboardUsecase struct {
	leadRepo   contract.ILeadRepository
	clientRepo contract.IClientRepository
	taskRepo   contract.ITaskRepository
	noteRepo   contract.INoteRepository
	logger     usecasecontract.IAppLogger
	now        func() time.Time
}

func NewDashboardUsecase(
	leadRepo contract.ILeadRepository,
	clientRepo contract.IClientRepository,
	taskRepo contract.ITaskRepository,
	noteRepo contract.INoteRepository,
	logger usecasecontract.IAppLogger,
) *DashboardUsecase {
	return &DashboardUsecase{
		leadRepo:   leadRepo,
		clientRepo: clientRepo,
		taskRepo:   taskRepo,
		noteRepo:   noteRepo,
		logger:     logger,
		now:        time.Now,
	}
}

var _ usecasecontract.IDashboardUseCase = (*DashboardUsecase)(nil)

// PctChange returns the percentage change from previous to current. A zero
// previous value reports 100 regardless of current, so a fresh month always
// reads as full growth.
func PctChange(current, previous float64) float64 {
	if previous == 0 {
		return 100
	}
	return (current - previous) / previous * 100
}

// GetStats aggregates the dashboard rollups for the actor's scope.
func (uc *DashboardUsecase) GetStats(ctx context.Context, actor *entity.User) (*usecasecontract.DashboardStats, error) {
	scope := ownerScope(actor)

	stats := &usecasecontract.DashboardStats{
		LeadsByStage:  make(map[string]int64),
		LeadsBySource: make(map[string]int64),
		LeadsByMonth:  make([]int64, 12),
		TasksByStatus: make(map[string]int64),
	}

	var err error
	if stats.TotalLeads, err = uc.leadRepo.CountLeads(ctx, scope); err != nil {
		uc.logger.Errorf("failed to count leads: %v", err)
		return nil, errors.New(errInternalServer)
	}
	if stats.TotalClients, err = uc.clientRepo.CountClients(ctx, scope); err != nil {
		uc.logger.Errorf("failed to count clients: %v", err)
		return nil, errors.New(errInternalServer)
	}
	if stats.TotalTasks, err = uc.taskRepo.CountTasks(ctx, scope); err != nil {
		uc.logger.Errorf("failed to count tasks: %v", err)
		return nil, errors.New(errInternalServer)
	}
	if stats.TotalNotes, err = uc.noteRepo.CountNotes(ctx, scope); err != nil {
		uc.logger.Errorf("failed to count notes: %v", err)
		return nil, errors.New(errInternalServer)
	}

	stageCounts, err := uc.leadRepo.CountByStage(ctx, scope)
	if err != nil {
		uc.logger.Errorf("failed to roll up leads by stage: %v", err)
		return nil, errors.New(errInternalServer)
	}
	for _, sc := range stageCounts {
		stats.LeadsByStage[sc.Stage] = sc.Count
	}

	sourceCounts, err := uc.leadRepo.CountBySource(ctx, scope)
	if err != nil {
		uc.logger.Errorf("failed to roll up leads by source: %v", err)
		return nil, errors.New(errInternalServer)
	}
	for _, sc := range sourceCounts {
		stats.LeadsBySource[sc.Source] = sc.Count
	}

	now := uc.now()
	monthCounts, err := uc.leadRepo.CountByMonth(ctx, scope, now.Year())
	if err != nil {
		uc.logger.Errorf("failed to roll up leads by month: %v", err)
		return nil, errors.New(errInternalServer)
	}
	for _, mc := range monthCounts {
		if mc.Month >= 1 && mc.Month <= 12 {
			stats.LeadsByMonth[mc.Month-1] = mc.Count
		}
	}

	statusCounts, err := uc.taskRepo.CountByStatus(ctx, scope)
	if err != nil {
		uc.logger.Errorf("failed to roll up tasks by status: %v", err)
		return nil, errors.New(errInternalServer)
	}
	for _, sc := range statusCounts {
		stats.TasksByStatus[sc.Status] = sc.Count
	}

	won := stats.LeadsByStage[string(entity.LeadStageWon)]
	if stats.TotalLeads > 0 {
		stats.ConversionRate = float64(won) / float64(stats.TotalLeads) * 100
	}

	thisMonthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := thisMonthStart.AddDate(0, -1, 0)

	currentLeads, err := uc.leadRepo.CountCreatedBetween(ctx, scope, thisMonthStart, now)
	if err != nil {
		uc.logger.Errorf("failed to count current month leads: %v", err)
		return nil, errors.New(errInternalServer)
	}
	previousLeads, err := uc.leadRepo.CountCreatedBetween(ctx, scope, lastMonthStart, thisMonthStart)
	if err != nil {
		uc.logger.Errorf("failed to count previous month leads: %v", err)
		return nil, errors.New(errInternalServer)
	}
	stats.LeadChangePct = PctChange(float64(currentLeads), float64(previousLeads))

	currentWon, err := uc.leadRepo.CountWonBetween(ctx, scope, thisMonthStart, now)
	if err != nil {
		uc.logger.Errorf("failed to count current month won leads: %v", err)
		return nil, errors.New(errInternalServer)
	}
	previousWon, err := uc.leadRepo.CountWonBetween(ctx, scope, lastMonthStart, thisMonthStart)
	if err != nil {
		uc.logger.Errorf("failed to count previous month won leads: %v", err)
		return nil, errors.New(errInternalServer)
	}
	stats.WonChangePct = PctChange(float64(currentWon), float64(previousWon))

	return stats, nil
}
