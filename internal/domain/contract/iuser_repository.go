package contract

import (
	"context"

	"github.com/bizsuite/crm-api/internal/domain/entity"
)

// UserFilter narrows a user listing.
type UserFilter struct {
	Search string
	Role   string
	Page   int
	Limit  int
}

type IUserRepository interface {
	CreateUser(ctx context.Context, user *entity.User) error
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
	// GetUserByEmail retrieves a user by email.
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	// ListUsers returns a page of users plus the total match count.
	ListUsers(ctx context.Context, filter *UserFilter) ([]*entity.User, int64, error)
	// GetAdmins returns every user with the Admin role.
	GetAdmins(ctx context.Context) ([]*entity.User, error)
	// GetUsersByIDs returns the users matching the given ids, in no particular order.
	GetUsersByIDs(ctx context.Context, ids []string) ([]*entity.User, error)
	// UpdateUser updates an existing user and returns the updated user.
	UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	// UpdateUserPassword updates a user's password by ID with the provided hashed password.
	UpdateUserPassword(ctx context.Context, id string, hashedPassword string) error
	// DeleteUser removes a user by ID.
	DeleteUser(ctx context.Context, id string) error
}
