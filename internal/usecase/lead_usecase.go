package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bizsuite/crm-api/internal/domain/contract"
	"github.com/bizsuite/crm-api/internal/domain/entity"
	usecasecontract "github.com/bizsuite/crm-api/internal/usecase/contract"
)

const errLeadNotFound = "lead not found"

// LeadUsecase implements the ILeadUseCase interface.
type LeadUsecase struct {
	leadRepo      contract.ILeadRepository
	userRepo      contract.IUserRepository
	cache         contract.ILeadCache
	notifications usecasecontract.INotificationUseCase
	uuidGenerator contract.IUUIDGenerator
	logger        usecasecontract.IAppLogger
}

func NewLeadUsecase(
	leadRepo contract.ILeadRepository,
	userRepo contract.IUserRepository,
	cache contract.ILeadCache,
	notifications usecasecontract.INotificationUseCase,
	uuidGenerator contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
) *LeadUsecase {
	return &LeadUsecase{
		leadRepo:      leadRepo,
		userRepo:      userRepo,
		cache:         cache,
		notifications: notifications,
		uuidGenerator: uuidGenerator,
		logger:        logger,
	}
}

var _ usecasecontract.ILeadUseCase = (*LeadUsecase)(nil)

// CreateLead creates a lead. Admin-only. The assignee, if set, must resolve to
// an existing user and is notified after the insert.
func (uc *LeadUsecase) CreateLead(ctx context.Context, actor *entity.User, in *usecasecontract.LeadInput) (*entity.Lead, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.ContactName == "" {
		return nil, fmt.Errorf("%w: contact name is required", ErrValidation)
	}

	stage := in.Stage
	if stage == "" {
		stage = entity.LeadStageNew
	}
	if !stage.IsValid() {
		return nil, fmt.Errorf("%w: unknown stage %q", ErrValidation, stage)
	}

	if in.AssignedTo != "" {
		if _, err := uc.userRepo.GetUserByID(ctx, in.AssignedTo); err != nil {
			if err.Error() == errUserNotFound {
				return nil, fmt.Errorf("%w: assignee %s does not exist", ErrValidation, in.AssignedTo)
			}
			uc.logger.Errorf("failed to resolve lead assignee: %v", err)
			return nil, errors.New(errInternalServer)
		}
	}

	lead := &entity.Lead{
		ID:          uc.uuidGenerator.NewUUID(),
		Title:       in.Title,
		ContactName: in.ContactName,
		Email:       in.Email,
		Phone:       in.Phone,
		Source:      in.Source,
		Value:       in.Value,
		Stage:       stage,
		AssignedTo:  in.AssignedTo,
		CreatedBy:   actor.ID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := uc.leadRepo.CreateLead(ctx, lead); err != nil {
		uc.logger.Errorf("failed to create lead: %v", err)
		return nil, errors.New(errInternalServer)
	}

	uc.invalidateListCache(ctx)

	if lead.AssignedTo != "" {
		uc.notifications.Dispatch(ctx, actor.ID, []string{lead.AssignedTo},
			entity.NotificationLeadAssigned,
			fmt.Sprintf("You have been assigned the lead %q", lead.Title),
			lead.ID, entity.RelatedModelLead)
	}

	return lead, nil
}

// GetLead fetches a lead by id, with the assignee's name resolved. Staff can
// only read leads they created or are assigned to.
func (uc *LeadUsecase) GetLead(ctx context.Context, actor *entity.User, id string) (*usecasecontract.LeadView, error) {
	lead, err := uc.leadRepo.GetLeadByID(ctx, id)
	if err != nil {
		if err.Error() == errLeadNotFound {
			return nil, ErrNotFound
		}
		uc.logger.Errorf("failed to retrieve lead %s: %v", id, err)
		return nil, errors.New(errInternalServer)
	}

	if !canTouch(actor, lead.CreatedBy, lead.AssignedTo) {
		return nil, ErrForbidden
	}

	view := &usecasecontract.LeadView{Lead: *lead}
	if lead.AssignedTo != "" {
		if assignee, err := uc.userRepo.GetUserByID(ctx, lead.AssignedTo); err == nil {
			view.AssignedToName = assignee.FullName
		}
	}
	return view, nil
}

// ListLeads returns a role-scoped page of leads with assignee names resolved.
// Pages are served from the cache when present.
func (uc *LeadUsecase) ListLeads(ctx context.Context, actor *entity.User, filter *contract.LeadFilter) ([]*usecasecontract.LeadView, int64, error) {
	filter.Scope = ownerScope(actor)

	key := leadListCacheKey(filter)
	if cached, ok, err := uc.cache.GetLeadsPage(ctx, key); err == nil && ok {
		leads := make([]*entity.Lead, len(cached.Leads))
		for i := range cached.Leads {
			leads[i] = &cached.Leads[i]
		}
		views, verr := uc.resolveAssignees(ctx, leads)
		if verr == nil {
			return views, cached.Total, nil
		}
	} else if err != nil {
		uc.logger.Warnf("lead cache read failed: %v", err)
	}

	leads, total, err := uc.leadRepo.ListLeads(ctx, filter)
	if err != nil {
		uc.logger.Errorf("failed to list leads: %v", err)
		return nil, 0, errors.New(errInternalServer)
	}

	page := &contract.CachedLeadsPage{Leads: make([]entity.Lead, len(leads)), Total: total}
	for i, l := range leads {
		page.Leads[i] = *l
	}
	if err := uc.cache.SetLeadsPage(ctx, key, page); err != nil {
		uc.logger.Warnf("lead cache write failed: %v", err)
	}

	views, err := uc.resolveAssignees(ctx, leads)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// UpdateLead applies a partial update. Admins may change any field; Staff may
// only change the stage of leads they own or are assigned to, and a Staff
// request containing any other key is rejected outright.
func (uc *LeadUsecase) UpdateLead(ctx context.Context, actor *entity.User, id string, updates map[string]interface{}) (*entity.Lead, error) {
	lead, err := uc.leadRepo.GetLeadByID(ctx, id)
	if err != nil {
		if err.Error() == errLeadNotFound {
			return nil, ErrNotFound
		}
		uc.logger.Errorf("failed to retrieve lead %s: %v", id, err)
		return nil, errors.New(errInternalServer)
	}

	if !canTouch(actor, lead.CreatedBy, lead.AssignedTo) {
		return nil, ErrForbidden
	}

	if !actor.IsAdmin() {
		for k := range updates {
			if k != "stage" {
				return nil, fmt.Errorf("%w: staff may only update the stage field", ErrForbidden)
			}
		}
	}

	set := make(map[string]interface{}, len(updates)+1)
	var newAssignee string
	var stageChanged bool
	for k, v := range updates {
		switch k {
		case "title", "contact_name", "email", "phone", "source":
			if s, ok := v.(string); ok {
				set[k] = s
			}
		case "value":
			if f, ok := v.(float64); ok {
				set[k] = f
			}
		case "stage":
			s, ok := v.(string)
			if !ok || !entity.LeadStage(s).IsValid() {
				return nil, fmt.Errorf("%w: unknown stage %q", ErrValidation, v)
			}
			if entity.LeadStage(s) != lead.Stage {
				stageChanged = true
			}
			set[k] = s
		case "assigned_to":
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("%w: assigned_to must be a user id", ErrValidation)
			}
			if s != "" {
				if _, err := uc.userRepo.GetUserByID(ctx, s); err != nil {
					return nil, fmt.Errorf("%w: assignee %s does not exist", ErrValidation, s)
				}
			}
			if s != lead.AssignedTo {
				newAssignee = s
			}
			set[k] = s
		default:
			return nil, fmt.Errorf("%w: unknown field %q", ErrValidation, k)
		}
	}
	if len(set) == 0 {
		return lead, nil
	}
	set["updated_at"] = time.Now()

	if err := uc.leadRepo.UpdateLead(ctx, id, set); err != nil {
		uc.logger.Errorf("failed to update lead %s: %v", id, err)
		return nil, errors.New(errInternalServer)
	}

	uc.invalidateListCache(ctx)

	if newAssignee != "" {
		uc.notifications.Dispatch(ctx, actor.ID, []string{newAssignee},
			entity.NotificationLeadAssigned,
			fmt.Sprintf("You have been assigned the lead %q", lead.Title),
			lead.ID, entity.RelatedModelLead)
	}
	if stageChanged {
		uc.notifyAdmins(ctx, actor, entity.NotificationLeadStageChanged,
			fmt.Sprintf("%s moved the lead %q to stage %v", actor.FullName, lead.Title, set["stage"]),
			lead.ID)
	}

	updated, err := uc.leadRepo.GetLeadByID(ctx, id)
	if err != nil {
		uc.logger.Errorf("failed to re-read lead %s after update: %v", id, err)
		return nil, errors.New(errInternalServer)
	}
	return updated, nil
}

// DeleteLead removes a lead. Admin-only.
func (uc *LeadUsecase) DeleteLead(ctx context.Context, actor *entity.User, id string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	if err := uc.leadRepo.DeleteLead(ctx, id); err != nil {
		if err.Error() == errLeadNotFound {
			return ErrNotFound
		}
		uc.logger.Errorf("failed to delete lead %s: %v", id, err)
		return errors.New(errInternalServer)
	}

	uc.invalidateListCache(ctx)
	return nil
}

// resolveAssignees projects display names onto leads with one batched lookup.
func (uc *LeadUsecase) resolveAssignees(ctx context.Context, leads []*entity.Lead) ([]*usecasecontract.LeadView, error) {
	idSet := make(map[string]bool)
	for _, l := range leads {
		if l.AssignedTo != "" {
			idSet[l.AssignedTo] = true
		}
	}
	names := make(map[string]string, len(idSet))
	if len(idSet) > 0 {
		ids := make([]string, 0, len(idSet))
		for id := range idSet {
			ids = append(ids, id)
		}
		users, err := uc.userRepo.GetUsersByIDs(ctx, ids)
		if err != nil {
			uc.logger.Errorf("failed to resolve lead assignees: %v", err)
			return nil, errors.New(errInternalServer)
		}
		for _, u := range users {
			names[u.ID] = u.FullName
		}
	}

	views := make([]*usecasecontract.LeadView, len(leads))
	for i, l := range leads {
		views[i] = &usecasecontract.LeadView{Lead: *l, AssignedToName: names[l.AssignedTo]}
	}
	return views, nil
}

func (uc *LeadUsecase) notifyAdmins(ctx context.Context, actor *entity.User, ntype entity.NotificationType, message, relatedID string) {
	admins, err := uc.userRepo.GetAdmins(ctx)
	if err != nil {
		uc.logger.Warnf("failed to resolve admins for notification: %v", err)
		return
	}
	receivers := make([]string, 0, len(admins))
	for _, a := range admins {
		if a.ID != actor.ID {
			receivers = append(receivers, a.ID)
		}
	}
	if len(receivers) == 0 {
		return
	}
	uc.notifications.Dispatch(ctx, actor.ID, receivers, ntype, message, relatedID, entity.RelatedModelLead)
}

func (uc *LeadUsecase) invalidateListCache(ctx context.Context) {
	if err := uc.cache.InvalidateLeadLists(ctx); err != nil {
		uc.logger.Warnf("failed to invalidate lead list cache: %v", err)
	}
}

func leadListCacheKey(f *contract.LeadFilter) string {
	scope := ""
	if f.Scope != nil {
		scope = *f.Scope
	}
	return fmt.Sprintf("scope=%s&stage=%s&source=%s&assigned=%s&search=%s&page=%d&limit=%d",
		scope, f.Stage, f.Source, f.AssignedTo, f.Search, f.Page, f.Limit)
}
