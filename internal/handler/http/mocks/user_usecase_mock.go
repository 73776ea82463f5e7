package mocks

import (
	"context"
	"errors"

	"github.com/bizsuite/crm-api/internal/domain/contract"
	"github.com/bizsuite/crm-api/internal/domain/entity"
	"github.com/bizsuite/crm-api/internal/usecase"
	usecasecontract "github.com/bizsuite/crm-api/internal/usecase/contract"
)

// MockUserUsecase is a mock implementation of the user usecase interface
type MockUserUsecase struct {
	// Control mock behavior
	ShouldFailCreateUser     bool
	ShouldFailLogin          bool
	ShouldFailGetByID        bool
	ShouldFailUpdateProfile  bool
	ShouldFailChangePassword bool
	ShouldFailForgotPassword bool
	ShouldFailResetPassword  bool
	ShouldFailRefreshToken   bool
	ShouldFailLogout         bool
	ShouldFailAuthenticate   bool
	ShouldFailLoginWithOAuth bool
	ShouldFailAdminOps       bool

	// Return values
	MockUser         entity.User
	MockAccessToken  string
	MockRefreshToken string

	AuthenticateCalls int
}

// Ensure MockUserUsecase implements the correct interface for handler.NewUserHandler
var _ usecasecontract.IUserUseCase = (*MockUserUsecase)(nil)

func NewMockUserUsecase() *MockUserUsecase {
	return &MockUserUsecase{
		MockUser: entity.User{
			ID:       "mock-user-id",
			FullName: "Test User",
			Email:    "test@example.com",
			Role:     entity.UserRoleStaff,
			IsActive: true,
		},
		MockAccessToken:  "mock_access_token",
		MockRefreshToken: "mock_refresh_token",
	}
}

func (m *MockUserUsecase) Register(ctx context.Context, fullName, email, password, phone string) (*entity.User, error) {
	if m.ShouldFailCreateUser {
		return nil, errors.New("user creation failed")
	}
	return &m.MockUser, nil
}

func (m *MockUserUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, string, error) {
	if m.ShouldFailLogin {
		return nil, "", "", errors.New("login failed")
	}
	return &m.MockUser, m.MockAccessToken, m.MockRefreshToken, nil
}

func (m *MockUserUsecase) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	m.AuthenticateCalls++
	if m.ShouldFailAuthenticate {
		return nil, errors.New("authentication failed")
	}
	return &m.MockUser, nil
}

func (m *MockUserUsecase) RefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	if m.ShouldFailRefreshToken {
		return "", "", errors.New("refresh token failed")
	}
	return m.MockAccessToken, m.MockRefreshToken, nil
}

func (m *MockUserUsecase) ForgotPassword(ctx context.Context, email string) error {
	if m.ShouldFailForgotPassword {
		return errors.New("forgot password failed")
	}
	return nil
}

func (m *MockUserUsecase) ResetPassword(ctx context.Context, verifier, resetToken, newPassword string) error {
	if m.ShouldFailResetPassword {
		return errors.New("reset password failed")
	}
	return nil
}

func (m *MockUserUsecase) Logout(ctx context.Context, refreshToken string) error {
	if m.ShouldFailLogout {
		return errors.New("logout failed")
	}
	return nil
}

func (m *MockUserUsecase) LoginWithOAuth(ctx context.Context, fullName, email string) (string, string, error) {
	if m.ShouldFailLoginWithOAuth {
		return "", "", errors.New("login with OAuth failed")
	}
	return m.MockAccessToken, m.MockRefreshToken, nil
}

func (m *MockUserUsecase) GetUserByID(ctx context.Context, userID string) (*entity.User, error) {
	if m.ShouldFailGetByID {
		return nil, errors.New("user not found")
	}
	return &m.MockUser, nil
}

func (m *MockUserUsecase) UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) (*entity.User, error) {
	if m.ShouldFailUpdateProfile {
		return nil, errors.New("update profile failed")
	}
	return &m.MockUser, nil
}

func (m *MockUserUsecase) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if m.ShouldFailChangePassword {
		return errors.New("change password failed")
	}
	return nil
}

func (m *MockUserUsecase) ListUsers(ctx context.Context, actor *entity.User, filter *contract.UserFilter) ([]*entity.User, int64, error) {
	if m.ShouldFailAdminOps {
		return nil, 0, usecase.ErrForbidden
	}
	return []*entity.User{&m.MockUser}, 1, nil
}

func (m *MockUserUsecase) AdminCreateUser(ctx context.Context, actor *entity.User, fullName, email, password string, role entity.UserRole) (*entity.User, error) {
	if m.ShouldFailAdminOps {
		return nil, usecase.ErrForbidden
	}
	user := m.MockUser
	user.FullName = fullName
	user.Email = email
	user.Role = role
	return &user, nil
}

func (m *MockUserUsecase) AdminUpdateUser(ctx context.Context, actor *entity.User, userID string, updates map[string]interface{}) (*entity.User, error) {
	if m.ShouldFailAdminOps {
		return nil, usecase.ErrForbidden
	}
	return &m.MockUser, nil
}

func (m *MockUserUsecase) DeleteUser(ctx context.Context, actor *entity.User, userID string) error {
	if m.ShouldFailAdminOps {
		return usecase.ErrForbidden
	}
	return nil
}
