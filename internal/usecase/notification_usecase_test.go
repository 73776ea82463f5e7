package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bizsuite/crm-api/internal/domain/entity"
)

func newNotificationUsecaseForTest(repo *fakeNotificationRepo) *NotificationUsecase {
	return NewNotificationUsecase(repo, &seqUUID{}, nopLogger{})
}

func TestFanOut_OneDocumentPerReceiver(t *testing.T) {
	repo := &fakeNotificationRepo{}
	uc := newNotificationUsecaseForTest(repo)

	receivers := []string{"u1", "u2", "u3"}
	count, err := uc.FanOut(context.Background(), "sender", receivers,
		entity.NotificationLeadAssigned, "you have a lead", "lead-1", entity.RelatedModelLead)

	assert.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Len(t, repo.batches, 1, "fan-out should use a single bulk insert")
	assert.Len(t, repo.batches[0], 3)
	for i, n := range repo.batches[0] {
		assert.Equal(t, receivers[i], n.Receiver)
		assert.Equal(t, "sender", n.Sender)
		assert.False(t, n.IsRead)
	}
}

func TestFanOut_DuplicateReceiversKept(t *testing.T) {
	repo := &fakeNotificationRepo{}
	uc := newNotificationUsecaseForTest(repo)

	count, err := uc.FanOut(context.Background(), "sender", []string{"u1", "u1", "sender"},
		entity.NotificationTaskAssigned, "task for you", "task-1", entity.RelatedModelTask)

	assert.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestFanOut_SkipsEmptyReceivers(t *testing.T) {
	repo := &fakeNotificationRepo{}
	uc := newNotificationUsecaseForTest(repo)

	count, err := uc.FanOut(context.Background(), "sender", []string{"", "u1", ""},
		entity.NotificationTaskAssigned, "task for you", "task-1", entity.RelatedModelTask)

	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestFanOut_EmptyReceiverList(t *testing.T) {
	repo := &fakeNotificationRepo{}
	uc := newNotificationUsecaseForTest(repo)

	count, err := uc.FanOut(context.Background(), "sender", nil,
		entity.NotificationTaskAssigned, "task for you", "task-1", entity.RelatedModelTask)

	assert.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, repo.batches)
}

func TestFanOut_RejectsUnknownType(t *testing.T) {
	repo := &fakeNotificationRepo{}
	uc := newNotificationUsecaseForTest(repo)

	_, err := uc.FanOut(context.Background(), "sender", []string{"u1"},
		"Bogus", "message", "", "")

	assert.ErrorIs(t, err, ErrValidation)
}

func TestFanOut_RejectsEmptyMessage(t *testing.T) {
	repo := &fakeNotificationRepo{}
	uc := newNotificationUsecaseForTest(repo)

	_, err := uc.FanOut(context.Background(), "sender", []string{"u1"},
		entity.NotificationLeadAssigned, "", "", entity.RelatedModelLead)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestDispatch_SwallowsInsertFailure(t *testing.T) {
	repo := &fakeNotificationRepo{failInsert: true}
	uc := newNotificationUsecaseForTest(repo)

	// must not panic or surface the error
	uc.Dispatch(context.Background(), "sender", []string{"u1"},
		entity.NotificationLeadAssigned, "you have a lead", "lead-1", entity.RelatedModelLead)
}

func TestMarkRead_OnlyReceiver(t *testing.T) {
	repo := &fakeNotificationRepo{}
	uc := newNotificationUsecaseForTest(repo)

	_, err := uc.FanOut(context.Background(), "sender", []string{"u1"},
		entity.NotificationLeadAssigned, "you have a lead", "lead-1", entity.RelatedModelLead)
	assert.NoError(t, err)
	id := repo.batches[0][0].ID

	stranger := &entity.User{ID: "u2", Role: entity.UserRoleStaff}
	assert.ErrorIs(t, uc.MarkRead(context.Background(), stranger, id), ErrForbidden)

	receiver := &entity.User{ID: "u1", Role: entity.UserRoleStaff}
	assert.NoError(t, uc.MarkRead(context.Background(), receiver, id))

	count, err := uc.UnreadCount(context.Background(), receiver)
	assert.NoError(t, err)
	assert.Zero(t, count)
}
