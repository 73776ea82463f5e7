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

const errTaskNotFound = "task not found"

// TaskUsecase implements the ITaskUseCase interface.
type TaskUsecase struct {
	taskRepo      contract.ITaskRepository
	userRepo      contract.IUserRepository
	notifications usecasecontract.INotificationUseCase
	uuidGenerator contract.IUUIDGenerator
	logger        usecasecontract.IAppLogger
}

func NewTaskUsecase(
	taskRepo contract.ITaskRepository,
	userRepo contract.IUserRepository,
	notifications usecasecontract.INotificationUseCase,
	uuidGenerator contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
) *TaskUsecase {
	return &TaskUsecase{
		taskRepo:      taskRepo,
		userRepo:      userRepo,
		notifications: notifications,
		uuidGenerator: uuidGenerator,
		logger:        logger,
	}
}

var _ usecasecontract.ITaskUseCase = (*TaskUsecase)(nil)

// CreateTask creates a task. Any authenticated user may create one; the
// assignee, if someone else, is notified after the insert.
func (uc *TaskUsecase) CreateTask(ctx context.Context, actor *entity.User, in *usecasecontract.TaskInput) (*entity.Task, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	status := in.Status
	if status == "" {
		status = entity.TaskStatusPending
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	assignedTo := in.AssignedTo
	if assignedTo == "" {
		assignedTo = actor.ID
	} else if assignedTo != actor.ID {
		if _, err := uc.userRepo.GetUserByID(ctx, assignedTo); err != nil {
			if err.Error() == errUserNotFound {
				return nil, fmt.Errorf("%w: assignee %s does not exist", ErrValidation, assignedTo)
			}
			uc.logger.Errorf("failed to resolve task assignee: %v", err)
			return nil, errors.New(errInternalServer)
		}
	}

	task := &entity.Task{
		ID:          uc.uuidGenerator.NewUUID(),
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      status,
		AssignedTo:  assignedTo,
		CreatedBy:   actor.ID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := uc.taskRepo.CreateTask(ctx, task); err != nil {
		uc.logger.Errorf("failed to create task: %v", err)
		return nil, errors.New(errInternalServer)
	}

	if task.AssignedTo != actor.ID {
		uc.notifications.Dispatch(ctx, actor.ID, []string{task.AssignedTo},
			entity.NotificationTaskAssigned,
			fmt.Sprintf("You have been assigned the task %q", task.Title),
			task.ID, entity.RelatedModelTask)
	}

	return task, nil
}

// GetTask fetches a task by id with the assignee's name resolved. Staff can
// only read tasks they created or are assigned to.
func (uc *TaskUsecase) GetTask(ctx context.Context, actor *entity.User, id string) (*usecasecontract.TaskView, error) {
	task, err := uc.taskRepo.GetTaskByID(ctx, id)
	if err != nil {
		if err.Error() == errTaskNotFound {
			return nil, ErrNotFound
		}
		uc.logger.Errorf("failed to retrieve task %s: %v", id, err)
		return nil, errors.New(errInternalServer)
	}

	if !canTouch(actor, task.CreatedBy, task.AssignedTo) {
		return nil, ErrForbidden
	}

	view := &usecasecontract.TaskView{Task: *task}
	if task.AssignedTo != "" {
		if assignee, err := uc.userRepo.GetUserByID(ctx, task.AssignedTo); err == nil {
			view.AssignedToName = assignee.FullName
		}
	}
	return view, nil
}

// ListTasks returns a role-scoped page of tasks with assignee names resolved.
func (uc *TaskUsecase) ListTasks(ctx context.Context, actor *entity.User, filter *contract.TaskFilter) ([]*usecasecontract.TaskView, int64, error) {
	filter.Scope = ownerScope(actor)

	tasks, total, err := uc.taskRepo.ListTasks(ctx, filter)
	if err != nil {
		uc.logger.Errorf("failed to list tasks: %v", err)
		return nil, 0, errors.New(errInternalServer)
	}

	idSet := make(map[string]bool)
	for _, t := range tasks {
		if t.AssignedTo != "" {
			idSet[t.AssignedTo] = true
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
			uc.logger.Errorf("failed to resolve task assignees: %v", err)
			return nil, 0, errors.New(errInternalServer)
		}
		for _, u := range users {
			names[u.ID] = u.FullName
		}
	}

	views := make([]*usecasecontract.TaskView, len(tasks))
	for i, t := range tasks {
		views[i] = &usecasecontract.TaskView{Task: *t, AssignedToName: names[t.AssignedTo]}
	}
	return views, total, nil
}

// UpdateTask applies a partial update. Staff must own or be assigned the
// task. Completing a task notifies its creator.
func (uc *TaskUsecase) UpdateTask(ctx context.Context, actor *entity.User, id string, updates map[string]interface{}) (*entity.Task, error) {
	task, err := uc.taskRepo.GetTaskByID(ctx, id)
	if err != nil {
		if err.Error() == errTaskNotFound {
			return nil, ErrNotFound
		}
		uc.logger.Errorf("failed to retrieve task %s: %v", id, err)
		return nil, errors.New(errInternalServer)
	}

	if !canTouch(actor, task.CreatedBy, task.AssignedTo) {
		return nil, ErrForbidden
	}

	set := make(map[string]interface{}, len(updates)+1)
	var newAssignee string
	var completed bool
	for k, v := range updates {
		switch k {
		case "title", "description":
			if s, ok := v.(string); ok {
				set[k] = s
			}
		case "due_date":
			switch d := v.(type) {
			case string:
				parsed, err := time.Parse(time.RFC3339, d)
				if err != nil {
					return nil, fmt.Errorf("%w: due_date must be RFC 3339", ErrValidation)
				}
				set[k] = parsed
			case time.Time:
				set[k] = d
			default:
				return nil, fmt.Errorf("%w: due_date must be RFC 3339", ErrValidation)
			}
		case "status":
			s, ok := v.(string)
			if !ok || !entity.TaskStatus(s).IsValid() {
				return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, v)
			}
			if entity.TaskStatus(s) == entity.TaskStatusCompleted && task.Status != entity.TaskStatusCompleted {
				completed = true
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
			if s != task.AssignedTo {
				newAssignee = s
			}
			set[k] = s
		default:
			return nil, fmt.Errorf("%w: unknown field %q", ErrValidation, k)
		}
	}
	if len(set) == 0 {
		return task, nil
	}
	set["updated_at"] = time.Now()

	if err := uc.taskRepo.UpdateTask(ctx, id, set); err != nil {
		uc.logger.Errorf("failed to update task %s: %v", id, err)
		return nil, errors.New(errInternalServer)
	}

	if newAssignee != "" && newAssignee != actor.ID {
		uc.notifications.Dispatch(ctx, actor.ID, []string{newAssignee},
			entity.NotificationTaskAssigned,
			fmt.Sprintf("You have been assigned the task %q", task.Title),
			task.ID, entity.RelatedModelTask)
	}
	if completed && task.CreatedBy != actor.ID {
		uc.notifications.Dispatch(ctx, actor.ID, []string{task.CreatedBy},
			entity.NotificationTaskCompleted,
			fmt.Sprintf("%s completed the task %q", actor.FullName, task.Title),
			task.ID, entity.RelatedModelTask)
	}

	updated, err := uc.taskRepo.GetTaskByID(ctx, id)
	if err != nil {
		uc.logger.Errorf("failed to re-read task %s after update: %v", id, err)
		return nil, errors.New(errInternalServer)
	}
	return updated, nil
}

// DeleteTask removes a task. Staff may delete their own tasks; Admins any.
func (uc *TaskUsecase) DeleteTask(ctx context.Context, actor *entity.User, id string) error {
	task, err := uc.taskRepo.GetTaskByID(ctx, id)
	if err != nil {
		if err.Error() == errTaskNotFound {
			return ErrNotFound
		}
		uc.logger.Errorf("failed to retrieve task %s: %v", id, err)
		return errors.New(errInternalServer)
	}

	if !actor.IsAdmin() && task.CreatedBy != actor.ID {
		return ErrForbidden
	}

	if err := uc.taskRepo.DeleteTask(ctx, id); err != nil {
		if err.Error() == errTaskNotFound {
			return ErrNotFound
		}
		uc.logger.Errorf("failed to delete task %s: %v", id, err)
		return errors.New(errInternalServer)
	}
	return nil
}
