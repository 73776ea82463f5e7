package usecasecontract

import (
	"context"

	"github.com/bizsuite/crm-api/internal/domain/contract"
	"github.com/bizsuite/crm-api/internal/domain/entity"
)

// IUserUseCase defines authentication, profile and user administration operations.
type IUserUseCase interface {
	Register(ctx context.Context, fullName, email, password, phone string) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*entity.User, string, string, error)
	Authenticate(ctx context.Context, accessToken string) (*entity.User, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, string, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, verifier, resetToken, newPassword string) error
	Logout(ctx context.Context, refreshToken string) error
	LoginWithOAuth(ctx context.Context, fullName, email string) (string, string, error)

	GetUserByID(ctx context.Context, userID string) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) (*entity.User, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error

	// Admin-only operations; the actor's role is enforced in the usecase as
	// well as by the route guard.
	ListUsers(ctx context.Context, actor *entity.User, filter *contract.UserFilter) ([]*entity.User, int64, error)
	AdminCreateUser(ctx context.Context, actor *entity.User, fullName, email, password string, role entity.UserRole) (*entity.User, error)
	AdminUpdateUser(ctx context.Context, actor *entity.User, userID string, updates map[string]interface{}) (*entity.User, error)
	DeleteUser(ctx context.Context, actor *entity.User, userID string) error
}
