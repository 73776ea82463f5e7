package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bizsuite/crm-api/internal/domain/entity"
	usecasecontract "github.com/bizsuite/crm-api/internal/usecase/contract"
)

func leadTestFixture() (*LeadUsecase, *fakeLeadRepo, *fakeNotificationRepo, *entity.User, *entity.User) {
	admin := &entity.User{ID: "admin-1", FullName: "Admin One", Role: entity.UserRoleAdmin, IsActive: true}
	staff := &entity.User{ID: "staff-1", FullName: "Staff One", Role: entity.UserRoleStaff, IsActive: true}

	leadRepo := newFakeLeadRepo()
	userRepo := newFakeUserRepo(admin, staff)
	notifRepo := &fakeNotificationRepo{}
	notifications := NewNotificationUsecase(notifRepo, &seqUUID{}, nopLogger{})
	uc := NewLeadUsecase(leadRepo, userRepo, nopLeadCache{}, notifications, &seqUUID{}, nopLogger{})
	return uc, leadRepo, notifRepo, admin, staff
}

func TestCreateLead_AdminOnly(t *testing.T) {
	uc, _, _, admin, staff := leadTestFixture()

	_, err := uc.CreateLead(context.Background(), staff, &usecasecontract.LeadInput{
		Title:       "Deal",
		ContactName: "Contact",
	})
	assert.ErrorIs(t, err, ErrForbidden)

	lead, err := uc.CreateLead(context.Background(), admin, &usecasecontract.LeadInput{
		Title:       "Deal",
		ContactName: "Contact",
	})
	assert.NoError(t, err)
	assert.Equal(t, entity.LeadStageNew, lead.Stage)
	assert.Equal(t, admin.ID, lead.CreatedBy)
}

func TestCreateLead_NotifiesAssignee(t *testing.T) {
	uc, _, notifRepo, admin, staff := leadTestFixture()

	lead, err := uc.CreateLead(context.Background(), admin, &usecasecontract.LeadInput{
		Title:       "Deal",
		ContactName: "Contact",
		AssignedTo:  staff.ID,
	})
	assert.NoError(t, err)

	all := notifRepo.all()
	assert.Len(t, all, 1)
	assert.Equal(t, staff.ID, all[0].Receiver)
	assert.Equal(t, entity.NotificationLeadAssigned, all[0].Type)
	assert.Equal(t, lead.ID, all[0].RelatedID)
}

func TestCreateLead_UnknownAssignee(t *testing.T) {
	uc, _, _, admin, _ := leadTestFixture()

	_, err := uc.CreateLead(context.Background(), admin, &usecasecontract.LeadInput{
		Title:       "Deal",
		ContactName: "Contact",
		AssignedTo:  "ghost",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateLead_StaffStageOnly(t *testing.T) {
	uc, leadRepo, _, _, staff := leadTestFixture()
	leadRepo.leads["lead-1"] = &entity.Lead{
		ID:          "lead-1",
		Title:       "Deal",
		ContactName: "Contact",
		Stage:       entity.LeadStageNew,
		AssignedTo:  staff.ID,
		CreatedBy:   "admin-1",
	}

	_, err := uc.UpdateLead(context.Background(), staff, "lead-1", map[string]interface{}{
		"title": "Renamed",
	})
	assert.ErrorIs(t, err, ErrForbidden)

	// a stage key mixed with anything else is still rejected
	_, err = uc.UpdateLead(context.Background(), staff, "lead-1", map[string]interface{}{
		"stage": "Contacted",
		"value": 100.0,
	})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := uc.UpdateLead(context.Background(), staff, "lead-1", map[string]interface{}{
		"stage": "Contacted",
	})
	assert.NoError(t, err)
	assert.Equal(t, entity.LeadStageContacted, updated.Stage)
}

func TestUpdateLead_StaffCannotTouchUnrelatedLead(t *testing.T) {
	uc, leadRepo, _, _, staff := leadTestFixture()
	leadRepo.leads["lead-1"] = &entity.Lead{
		ID:        "lead-1",
		Title:     "Deal",
		Stage:     entity.LeadStageNew,
		CreatedBy: "admin-1",
	}

	_, err := uc.UpdateLead(context.Background(), staff, "lead-1", map[string]interface{}{
		"stage": "Contacted",
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateLead_InvalidStage(t *testing.T) {
	uc, leadRepo, _, admin, _ := leadTestFixture()
	leadRepo.leads["lead-1"] = &entity.Lead{
		ID:        "lead-1",
		Title:     "Deal",
		Stage:     entity.LeadStageNew,
		CreatedBy: admin.ID,
	}

	_, err := uc.UpdateLead(context.Background(), admin, "lead-1", map[string]interface{}{
		"stage": "Sideways",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateLead_StageChangeNotifiesAdmins(t *testing.T) {
	uc, leadRepo, notifRepo, _, staff := leadTestFixture()
	leadRepo.leads["lead-1"] = &entity.Lead{
		ID:         "lead-1",
		Title:      "Deal",
		Stage:      entity.LeadStageNew,
		AssignedTo: staff.ID,
		CreatedBy:  "admin-1",
	}

	_, err := uc.UpdateLead(context.Background(), staff, "lead-1", map[string]interface{}{
		"stage": "Won",
	})
	assert.NoError(t, err)

	all := notifRepo.all()
	assert.Len(t, all, 1)
	assert.Equal(t, "admin-1", all[0].Receiver)
	assert.Equal(t, entity.NotificationLeadStageChanged, all[0].Type)
}

func TestDeleteLead_AdminOnly(t *testing.T) {
	uc, leadRepo, _, admin, staff := leadTestFixture()
	leadRepo.leads["lead-1"] = &entity.Lead{ID: "lead-1", Title: "Deal", CreatedBy: staff.ID}

	assert.ErrorIs(t, uc.DeleteLead(context.Background(), staff, "lead-1"), ErrForbidden)
	assert.NoError(t, uc.DeleteLead(context.Background(), admin, "lead-1"))
	assert.ErrorIs(t, uc.DeleteLead(context.Background(), admin, "lead-1"), ErrNotFound)
}

func TestGetLead_Scoping(t *testing.T) {
	uc, leadRepo, _, admin, staff := leadTestFixture()
	leadRepo.leads["lead-1"] = &entity.Lead{
		ID:         "lead-1",
		Title:      "Deal",
		Stage:      entity.LeadStageNew,
		AssignedTo: "admin-1",
		CreatedBy:  "admin-1",
	}

	_, err := uc.GetLead(context.Background(), staff, "lead-1")
	assert.ErrorIs(t, err, ErrForbidden)

	view, err := uc.GetLead(context.Background(), admin, "lead-1")
	assert.NoError(t, err)
	assert.Equal(t, "Admin One", view.AssignedToName)

	_, err = uc.GetLead(context.Background(), admin, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
