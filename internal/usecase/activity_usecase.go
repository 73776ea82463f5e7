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

const errActivityNotFound = "activity not found"

// ActivityUsecase implements the IActivityUseCase interface. The feed is
// shared: every authenticated user can read every item.
type ActivityUsecase struct {
	activityRepo  contract.IActivityRepository
	userRepo      contract.IUserRepository
	notifications usecasecontract.INotificationUseCase
	uuidGenerator contract.IUUIDGenerator
	logger        usecasecontract.IAppLogger
}

func NewActivityUsecase(
	activityRepo contract.IActivityRepository,
	userRepo contract.IUserRepository,
	notifications usecasecontract.INotificationUseCase,
	uuidGenerator contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
) *ActivityUsecase {
	return &ActivityUsecase{
		activityRepo:  activityRepo,
		userRepo:      userRepo,
		notifications: notifications,
		uuidGenerator: uuidGenerator,
		logger:        logger,
	}
}

var _ usecasecontract.IActivityUseCase = (*ActivityUsecase)(nil)

// PostActivity adds an item to the shared feed and notifies the admins.
func (uc *ActivityUsecase) PostActivity(ctx context.Context, actor *entity.User, content string) (*entity.Activity, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	activity := &entity.Activity{
		ID:        uc.uuidGenerator.NewUUID(),
		Content:   content,
		CreatedBy: actor.ID,
		Likes:     []string{},
		PinnedBy:  []string{},
		Comments:  []entity.ActivityComment{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := uc.activityRepo.CreateActivity(ctx, activity); err != nil {
		uc.logger.Errorf("failed to create activity: %v", err)
		return nil, errors.New(errInternalServer)
	}

	admins, err := uc.userRepo.GetAdmins(ctx)
	if err != nil {
		uc.logger.Warnf("failed to resolve admins for activity notification: %v", err)
		return activity, nil
	}
	receivers := make([]string, 0, len(admins))
	for _, a := range admins {
		if a.ID != actor.ID {
			receivers = append(receivers, a.ID)
		}
	}
	if len(receivers) > 0 {
		uc.notifications.Dispatch(ctx, actor.ID, receivers,
			entity.NotificationActivityPosted,
			fmt.Sprintf("%s posted an activity", actor.FullName),
			activity.ID, entity.RelatedModelActivity)
	}

	return activity, nil
}

func (uc *ActivityUsecase) GetActivity(ctx context.Context, actor *entity.User, id string) (*usecasecontract.ActivityView, error) {
	activity, err := uc.activityRepo.GetActivityByID(ctx, id)
	if err != nil {
		if err.Error() == errActivityNotFound {
			return nil, ErrNotFound
		}
		uc.logger.Errorf("failed to retrieve activity %s: %v", id, err)
		return nil, errors.New(errInternalServer)
	}

	return uc.toView(activity, actor), nil
}

func (uc *ActivityUsecase) ListActivities(ctx context.Context, actor *entity.User, filter *contract.ActivityFilter) ([]*usecasecontract.ActivityView, int64, error) {
	if filter.PinnedBy != "" {
		filter.PinnedBy = actor.ID
	}

	activities, total, err := uc.activityRepo.ListActivities(ctx, filter)
	if err != nil {
		uc.logger.Errorf("failed to list activities: %v", err)
		return nil, 0, errors.New(errInternalServer)
	}

	views := make([]*usecasecontract.ActivityView, len(activities))
	for i, a := range activities {
		views[i] = uc.toView(a, actor)
	}
	return views, total, nil
}

// DeleteActivity removes a feed item. Only the author or an Admin may delete.
func (uc *ActivityUsecase) DeleteActivity(ctx context.Context, actor *entity.User, id string) error {
	activity, err := uc.activityRepo.GetActivityByID(ctx, id)
	if err != nil {
		if err.Error() == errActivityNotFound {
			return ErrNotFound
		}
		uc.logger.Errorf("failed to retrieve activity %s: %v", id, err)
		return errors.New(errInternalServer)
	}

	if !actor.IsAdmin() && activity.CreatedBy != actor.ID {
		return ErrForbidden
	}

	if err := uc.activityRepo.DeleteActivity(ctx, id); err != nil {
		if err.Error() == errActivityNotFound {
			return ErrNotFound
		}
		uc.logger.Errorf("failed to delete activity %s: %v", id, err)
		return errors.New(errInternalServer)
	}
	return nil
}

// ToggleLike flips the actor's like and returns the new state plus the like count.
func (uc *ActivityUsecase) ToggleLike(ctx context.Context, actor *entity.User, id string) (bool, int, error) {
	activity, err := uc.activityRepo.GetActivityByID(ctx, id)
	if err != nil {
		if err.Error() == errActivityNotFound {
			return false, 0, ErrNotFound
		}
		uc.logger.Errorf("failed to retrieve activity %s: %v", id, err)
		return false, 0, errors.New(errInternalServer)
	}

	liked := !activity.IsLikedBy(actor.ID)
	if err := uc.activityRepo.SetLiked(ctx, id, actor.ID, liked); err != nil {
		uc.logger.Errorf("failed to toggle like on activity %s: %v", id, err)
		return false, 0, errors.New(errInternalServer)
	}

	count := len(activity.Likes)
	if liked {
		count++
	} else {
		count--
	}
	return liked, count, nil
}

// TogglePin flips the actor's membership in pinned_by and returns the new state.
func (uc *ActivityUsecase) TogglePin(ctx context.Context, actor *entity.User, id string) (bool, error) {
	activity, err := uc.activityRepo.GetActivityByID(ctx, id)
	if err != nil {
		if err.Error() == errActivityNotFound {
			return false, ErrNotFound
		}
		uc.logger.Errorf("failed to retrieve activity %s: %v", id, err)
		return false, errors.New(errInternalServer)
	}

	pinned := !activity.IsPinnedBy(actor.ID)
	if err := uc.activityRepo.SetPinned(ctx, id, actor.ID, pinned); err != nil {
		uc.logger.Errorf("failed to toggle pin on activity %s: %v", id, err)
		return false, errors.New(errInternalServer)
	}
	return pinned, nil
}

// AddComment appends an embedded comment and notifies the activity's author.
func (uc *ActivityUsecase) AddComment(ctx context.Context, actor *entity.User, id, text string) (*entity.ActivityComment, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", ErrValidation)
	}

	activity, err := uc.activityRepo.GetActivityByID(ctx, id)
	if err != nil {
		if err.Error() == errActivityNotFound {
			return nil, ErrNotFound
		}
		uc.logger.Errorf("failed to retrieve activity %s: %v", id, err)
		return nil, errors.New(errInternalServer)
	}

	comment := &entity.ActivityComment{
		ID:        uc.uuidGenerator.NewUUID(),
		UserID:    actor.ID,
		Text:      text,
		CreatedAt: time.Now(),
	}

	if err := uc.activityRepo.AddComment(ctx, id, comment); err != nil {
		uc.logger.Errorf("failed to add comment to activity %s: %v", id, err)
		return nil, errors.New(errInternalServer)
	}

	if activity.CreatedBy != actor.ID {
		uc.notifications.Dispatch(ctx, actor.ID, []string{activity.CreatedBy},
			entity.NotificationActivityPosted,
			fmt.Sprintf("%s commented on your activity", actor.FullName),
			activity.ID, entity.RelatedModelActivity)
	}

	return comment, nil
}

// DeleteComment removes an embedded comment. Only the comment's author, the
// activity's author or an Admin may delete it.
func (uc *ActivityUsecase) DeleteComment(ctx context.Context, actor *entity.User, id, commentID string) error {
	activity, err := uc.activityRepo.GetActivityByID(ctx, id)
	if err != nil {
		if err.Error() == errActivityNotFound {
			return ErrNotFound
		}
		uc.logger.Errorf("failed to retrieve activity %s: %v", id, err)
		return errors.New(errInternalServer)
	}

	var comment *entity.ActivityComment
	for i := range activity.Comments {
		if activity.Comments[i].ID == commentID {
			comment = &activity.Comments[i]
			break
		}
	}
	if comment == nil {
		return ErrNotFound
	}

	if !actor.IsAdmin() && comment.UserID != actor.ID && activity.CreatedBy != actor.ID {
		return ErrForbidden
	}

	if err := uc.activityRepo.RemoveComment(ctx, id, commentID); err != nil {
		uc.logger.Errorf("failed to remove comment %s from activity %s: %v", commentID, id, err)
		return errors.New(errInternalServer)
	}
	return nil
}

func (uc *ActivityUsecase) toView(a *entity.Activity, viewer *entity.User) *usecasecontract.ActivityView {
	return &usecasecontract.ActivityView{
		Activity:       *a,
		IsLikedByUser:  a.IsLikedBy(viewer.ID),
		IsPinnedByUser: a.IsPinnedBy(viewer.ID),
	}
}
