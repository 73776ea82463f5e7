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

const errClientNotFound = "client not found"

// ClientUsecase implements the IClientUseCase interface.
type ClientUsecase struct {
	clientRepo    contract.IClientRepository
	userRepo      contract.IUserRepository
	notifications usecasecontract.INotificationUseCase
	uuidGenerator contract.IUUIDGenerator
	logger        usecasecontract.IAppLogger
}

func NewClientUsecase(
	clientRepo contract.IClientRepository,
	userRepo contract.IUserRepository,
	notifications usecasecontract.INotificationUseCase,
	uuidGenerator contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
) *ClientUsecase {
	return &ClientUsecase{
		clientRepo:    clientRepo,
		userRepo:      userRepo,
		notifications: notifications,
		uuidGenerator: uuidGenerator,
		logger:        logger,
	}
}

var _ usecasecontract.IClientUseCase = (*ClientUsecase)(nil)

// CreateClient creates a client. Admin-only. The assignee, if set, must
// resolve to an existing user and is notified after the insert.
func (uc *ClientUsecase) CreateClient(ctx context.Context, actor *entity.User, in *usecasecontract.ClientInput) (*entity.Client, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.Email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}

	if in.AssignedTo != "" {
		if _, err := uc.userRepo.GetUserByID(ctx, in.AssignedTo); err != nil {
			if err.Error() == errUserNotFound {
				return nil, fmt.Errorf("%w: assignee %s does not exist", ErrValidation, in.AssignedTo)
			}
			uc.logger.Errorf("failed to resolve client assignee: %v", err)
			return nil, errors.New(errInternalServer)
		}
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	client := &entity.Client{
		ID:         uc.uuidGenerator.NewUUID(),
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Company:    in.Company,
		Tags:       tags,
		CreatedBy:  actor.ID,
		AssignedTo: in.AssignedTo,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := uc.clientRepo.CreateClient(ctx, client); err != nil {
		uc.logger.Errorf("failed to create client: %v", err)
		return nil, errors.New(errInternalServer)
	}

	if client.AssignedTo != "" {
		uc.notifications.Dispatch(ctx, actor.ID, []string{client.AssignedTo},
			entity.NotificationClientAssigned,
			fmt.Sprintf("You have been assigned the client %q", client.Name),
			client.ID, entity.RelatedModelClient)
	}

	return client, nil
}

// GetClient fetches a client by id. Staff can only read clients they created
// or are assigned to.
func (uc *ClientUsecase) GetClient(ctx context.Context, actor *entity.User, id string) (*entity.Client, error) {
	client, err := uc.clientRepo.GetClientByID(ctx, id)
	if err != nil {
		if err.Error() == errClientNotFound {
			return nil, ErrNotFound
		}
		uc.logger.Errorf("failed to retrieve client %s: %v", id, err)
		return nil, errors.New(errInternalServer)
	}

	if !canTouch(actor, client.CreatedBy, client.AssignedTo) {
		return nil, ErrForbidden
	}
	return client, nil
}

// ListClients returns a role-scoped page of clients.
func (uc *ClientUsecase) ListClients(ctx context.Context, actor *entity.User, filter *contract.ClientFilter) ([]*entity.Client, int64, error) {
	filter.Scope = ownerScope(actor)

	clients, total, err := uc.clientRepo.ListClients(ctx, filter)
	if err != nil {
		uc.logger.Errorf("failed to list clients: %v", err)
		return nil, 0, errors.New(errInternalServer)
	}
	return clients, total, nil
}

// UpdateClient applies a partial update. Staff must own or be assigned the
// client; reassignment notifies the new assignee.
func (uc *ClientUsecase) UpdateClient(ctx context.Context, actor *entity.User, id string, updates map[string]interface{}) (*entity.Client, error) {
	client, err := uc.clientRepo.GetClientByID(ctx, id)
	if err != nil {
		if err.Error() == errClientNotFound {
			return nil, ErrNotFound
		}
		uc.logger.Errorf("failed to retrieve client %s: %v", id, err)
		return nil, errors.New(errInternalServer)
	}

	if !canTouch(actor, client.CreatedBy, client.AssignedTo) {
		return nil, ErrForbidden
	}

	set := make(map[string]interface{}, len(updates)+1)
	var newAssignee string
	for k, v := range updates {
		switch k {
		case "name", "email", "phone", "company":
			if s, ok := v.(string); ok {
				set[k] = s
			}
		case "tags":
			if raw, ok := v.([]interface{}); ok {
				tags := make([]string, 0, len(raw))
				for _, t := range raw {
					if s, ok := t.(string); ok {
						tags = append(tags, s)
					}
				}
				set[k] = tags
			} else if tags, ok := v.([]string); ok {
				set[k] = tags
			}
		case "assigned_to":
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("%w: assigned_to must be a user id", ErrValidation)
			}
			if !actor.IsAdmin() {
				return nil, fmt.Errorf("%w: only admins may reassign clients", ErrForbidden)
			}
			if s != "" {
				if _, err := uc.userRepo.GetUserByID(ctx, s); err != nil {
					return nil, fmt.Errorf("%w: assignee %s does not exist", ErrValidation, s)
				}
			}
			if s != client.AssignedTo {
				newAssignee = s
			}
			set[k] = s
		default:
			return nil, fmt.Errorf("%w: unknown field %q", ErrValidation, k)
		}
	}
	if len(set) == 0 {
		return client, nil
	}
	set["updated_at"] = time.Now()

	if err := uc.clientRepo.UpdateClient(ctx, id, set); err != nil {
		uc.logger.Errorf("failed to update client %s: %v", id, err)
		return nil, errors.New(errInternalServer)
	}

	if newAssignee != "" {
		uc.notifications.Dispatch(ctx, actor.ID, []string{newAssignee},
			entity.NotificationClientAssigned,
			fmt.Sprintf("You have been assigned the client %q", client.Name),
			client.ID, entity.RelatedModelClient)
	}

	updated, err := uc.clientRepo.GetClientByID(ctx, id)
	if err != nil {
		uc.logger.Errorf("failed to re-read client %s after update: %v", id, err)
		return nil, errors.New(errInternalServer)
	}
	return updated, nil
}

// DeleteClient removes a client. Admin-only.
func (uc *ClientUsecase) DeleteClient(ctx context.Context, actor *entity.User, id string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	if err := uc.clientRepo.DeleteClient(ctx, id); err != nil {
		if err.Error() == errClientNotFound {
			return ErrNotFound
		}
		uc.logger.Errorf("failed to delete client %s: %v", id, err)
		return errors.New(errInternalServer)
	}
	return nil
}
