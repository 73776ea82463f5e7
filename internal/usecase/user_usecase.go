package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bizsuite/crm-api/internal/domain/contract"
	"github.com/bizsuite/crm-api/internal/domain/entity"
	usecasecontract "github.com/bizsuite/crm-api/internal/usecase/contract"
	"golang.org/x/crypto/bcrypt"
)

// Constants for common repository error messages.
const (
	errUserNotFound   = "user not found"
	errTokenNotFound  = "token not found"
	errInternalServer = "internal server error"
)

// UserUsecase implements the IUserUseCase interface.
type UserUsecase struct {
	userRepo        contract.IUserRepository
	tokenRepo       contract.ITokenRepository
	hasher          contract.IHasher
	jwtService      JWTService
	mailService     contract.IEmailService
	logger          usecasecontract.IAppLogger
	config          usecasecontract.IConfigProvider
	validator       usecasecontract.IValidator
	uuidGenerator   contract.IUUIDGenerator
	randomGenerator contract.IRandomGenerator
}

// NewUserUsecase creates a new UserUsecase instance.
func NewUserUsecase(
	userRepo contract.IUserRepository,
	tokenRepo contract.ITokenRepository,
	hasher contract.IHasher,
	jwtService JWTService,
	mailService contract.IEmailService,
	logger usecasecontract.IAppLogger,
	cfg usecasecontract.IConfigProvider,
	validator usecasecontract.IValidator,
	uuidGenerator contract.IUUIDGenerator,
	randomgen contract.IRandomGenerator,
) *UserUsecase {
	return &UserUsecase{
		userRepo:        userRepo,
		tokenRepo:       tokenRepo,
		hasher:          hasher,
		jwtService:      jwtService,
		mailService:     mailService,
		logger:          logger,
		config:          cfg,
		validator:       validator,
		uuidGenerator:   uuidGenerator,
		randomGenerator: randomgen,
	}
}

// check if UserUsecase implements the IUserUseCase
var _ usecasecontract.IUserUseCase = (*UserUsecase)(nil)

// Register handles user self-registration. New users get the Staff role.
func (uc *UserUsecase) Register(ctx context.Context, fullName, email, password, phone string) (*entity.User, error) {
	if fullName == "" {
		return nil, fmt.Errorf("%w: full name is required", ErrValidation)
	}
	if err := uc.validator.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	if err := uc.validator.ValidatePasswordStrength(password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	existing, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil && err.Error() != errUserNotFound {
		uc.logger.Errorf("failed to check for existing user by email: %v", err)
		return nil, errors.New(errInternalServer)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: user with email %s already exists", ErrConflict, email)
	}

	hashedPassword, err := uc.hasher.HashPassword(password)
	if err != nil {
		uc.logger.Errorf("failed to hash password: %v", err)
		return nil, errors.New(errInternalServer)
	}

	var pPhone *string
	if phone != "" {
		pPhone = &phone
	}

	user := &entity.User{
		ID:           uc.uuidGenerator.NewUUID(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         entity.DefaultRole(),
		IsActive:     true,
		Phone:        pPhone,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uc.userRepo.CreateUser(ctx, user); err != nil {
		uc.logger.Errorf("failed to create user: %v", err)
		return nil, errors.New(errInternalServer)
	}

	return user, nil
}

// Login handles user login and token generation.
func (uc *UserUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, string, error) {
	user, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if err.Error() == errUserNotFound {
			return nil, "", "", errors.New("invalid credentials")
		}
		uc.logger.Errorf("failed to retrieve user for login: %v", err)
		return nil, "", "", errors.New(errInternalServer)
	}

	if !user.IsActive {
		return nil, "", "", errors.New("account is deactivated")
	}

	if err := uc.hasher.ComparePasswordHash(password, user.PasswordHash); err != nil {
		return nil, "", "", errors.New("invalid credentials")
	}

	accessToken, refreshToken, err := uc.issueTokenPair(ctx, user)
	if err != nil {
		return nil, "", "", err
	}

	return user, accessToken, refreshToken, nil
}

// issueTokenPair generates an access/refresh pair and stores the refresh
// token's hash so it can be revoked.
func (uc *UserUsecase) issueTokenPair(ctx context.Context, user *entity.User) (string, string, error) {
	accessToken, err := uc.jwtService.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		uc.logger.Errorf("failed to generate access token: %v", err)
		return "", "", errors.New("failed to generate token")
	}

	refreshToken, err := uc.jwtService.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		uc.logger.Errorf("failed to generate refresh token: %v", err)
		return "", "", errors.New("failed to generate token")
	}

	refreshTokenExpiry := uc.config.GetRefreshTokenExpiry()
	if refreshTokenExpiry <= 0 {
		uc.logger.Errorf("invalid refresh token expiry configuration: %v", refreshTokenExpiry)
		return "", "", errors.New("invalid refresh token expiry configuration")
	}

	tokenEntity := &entity.Token{
		ID:        uc.uuidGenerator.NewUUID(),
		UserID:    user.ID,
		TokenType: entity.TokenTypeRefresh,
		TokenHash: uc.hasher.HashString(refreshToken),
		ExpiresAt: time.Now().Add(refreshTokenExpiry),
		CreatedAt: time.Now(),
		Revoke:    false,
	}
	if err := uc.tokenRepo.CreateToken(ctx, tokenEntity); err != nil {
		uc.logger.Errorf("failed to store refresh token for user %s: %v", user.ID, err)
		return "", "", errors.New("failed to store token")
	}

	return accessToken, refreshToken, nil
}

// Authenticate resolves an access token to the user it belongs to.
func (uc *UserUsecase) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	claims, err := uc.jwtService.ParseAccessToken(accessToken)
	if err != nil {
		return nil, fmt.Errorf("invalid access token: %w", err)
	}

	user, err := uc.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if err.Error() == errUserNotFound {
			return nil, errors.New(errUserNotFound)
		}
		uc.logger.Errorf("failed to retrieve user during authentication: %v", err)
		return nil, errors.New(errInternalServer)
	}

	if !user.IsActive {
		return nil, errors.New("account is deactivated")
	}

	return user, nil
}

// RefreshToken rotates an access/refresh pair using a valid refresh token.
func (uc *UserUsecase) RefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := uc.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("invalid refresh token: %w", err)
	}

	storedToken, err := uc.tokenRepo.GetTokenByUserID(ctx, claims.UserID)
	if err != nil {
		if err.Error() == errTokenNotFound {
			return "", "", errors.New("refresh token not found or invalidated, please log in again")
		}
		uc.logger.Errorf("failed to retrieve stored refresh token: %v", err)
		return "", "", errors.New(errInternalServer)
	}

	if storedToken.Revoke {
		return "", "", errors.New("refresh token has been revoked, please log in again")
	}

	if !uc.hasher.CheckHash(refreshToken, storedToken.TokenHash) {
		uc.logger.Warnf("refresh token mismatch for user %s", claims.UserID)
		_ = uc.tokenRepo.RevokeToken(ctx, storedToken.ID)
		return "", "", errors.New("invalid refresh token")
	}

	if storedToken.ExpiresAt.Before(time.Now()) {
		_ = uc.tokenRepo.RevokeToken(ctx, storedToken.ID)
		return "", "", errors.New("refresh token expired, please log in again")
	}

	newAccessToken, err := uc.jwtService.GenerateAccessToken(claims.UserID, claims.Role)
	if err != nil {
		uc.logger.Errorf("failed to generate new access token during refresh: %v", err)
		return "", "", errors.New("failed to generate new access token")
	}

	newRefreshToken, err := uc.jwtService.GenerateRefreshToken(claims.UserID, claims.Role)
	if err != nil {
		uc.logger.Errorf("failed to generate new refresh token during refresh: %v", err)
		return "", "", errors.New("failed to generate new refresh token")
	}

	newHashedRefreshToken := uc.hasher.HashString(newRefreshToken)
	err = uc.tokenRepo.UpdateToken(ctx, storedToken.ID, newHashedRefreshToken, time.Now().Add(uc.config.GetRefreshTokenExpiry()))
	if err != nil {
		uc.logger.Errorf("failed to update refresh token in db: %v", err)
		return "", "", errors.New("failed to update token")
	}

	return newAccessToken, newRefreshToken, nil
}

// ForgotPassword starts the password reset flow for the given email.
func (uc *UserUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("email not found: %w", err)
	}

	resetToken, err := uc.randomGenerator.GenerateRandomToken(32)
	if err != nil {
		return fmt.Errorf("failed to create password reset token: %w", err)
	}

	// The stored hash is bcrypt so a leaked tokens collection is not enough
	// to reset a password.
	hashedResetToken, err := bcrypt.GenerateFromPassword([]byte(resetToken), 7)
	if err != nil {
		return fmt.Errorf("failed to hash reset token: %w", err)
	}

	// The verifier identifies the reset token record without revealing it.
	verifier, err := uc.randomGenerator.GenerateRandomToken(16)
	if err != nil {
		return fmt.Errorf("failed to generate verifier: %w", err)
	}

	tokenEntity := &entity.Token{
		ID:        uc.uuidGenerator.NewUUID(),
		UserID:    user.ID,
		TokenType: entity.TokenTypePasswordReset,
		TokenHash: string(hashedResetToken),
		Verifier:  verifier,
		ExpiresAt: time.Now().Add(uc.config.GetPasswordResetTokenExpiry()),
		CreatedAt: time.Now(),
		Revoke:    false,
	}
	if err := uc.tokenRepo.CreateToken(ctx, tokenEntity); err != nil {
		uc.logger.Errorf("failed to store password reset token for user %s: %v", user.ID, err)
		return errors.New("failed to initiate password reset")
	}

	emailSubject := "Password Reset Request"
	resetLink := fmt.Sprintf("%s/reset-password?verifier=%s&token=%s", uc.config.GetAppBaseURL(), verifier, resetToken)
	emailBody := fmt.Sprintf("Hi %s,\n\nYou have requested to reset your password. Please click the following link to reset your password: %s\n\nIf you did not request this, please ignore this email.\n\nThanks,\nThe BizSuite Team", user.FullName, resetLink)

	if err := uc.mailService.SendEmail(ctx, user.Email, emailSubject, emailBody); err != nil {
		uc.logger.Errorf("failed to send password reset email to %s: %v", user.Email, err)
		return errors.New("failed to send password reset email")
	}

	return nil
}

// ResetPassword completes the password reset flow using the verifier/token pair.
func (uc *UserUsecase) ResetPassword(ctx context.Context, verifier, resetToken, newPassword string) error {
	token, err := uc.tokenRepo.GetTokenByVerifier(ctx, verifier)
	if err != nil {
		return fmt.Errorf("%w: invalid or unknown reset token", ErrValidation)
	}

	if time.Now().After(token.ExpiresAt) {
		return fmt.Errorf("%w: reset token is expired", ErrValidation)
	}
	if token.Revoke {
		return fmt.Errorf("%w: reset token is revoked", ErrValidation)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(token.TokenHash), []byte(resetToken)); err != nil {
		return fmt.Errorf("%w: reset token does not match", ErrValidation)
	}

	if err := uc.validator.ValidatePasswordStrength(newPassword); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	hashedPassword, err := uc.hasher.HashPassword(newPassword)
	if err != nil {
		uc.logger.Errorf("failed to hash new password: %v", err)
		return errors.New(errInternalServer)
	}

	if err = uc.userRepo.UpdateUserPassword(ctx, token.UserID, hashedPassword); err != nil {
		uc.logger.Errorf("failed to update password for user %s: %v", token.UserID, err)
		return errors.New(errInternalServer)
	}

	if err = uc.tokenRepo.RevokeToken(ctx, token.ID); err != nil {
		uc.logger.Errorf("failed to revoke reset token %s: %v", token.ID, err)
	}

	return nil
}

// Logout revokes the stored refresh token, invalidating the session.
func (uc *UserUsecase) Logout(ctx context.Context, refreshToken string) error {
	claims, err := uc.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		uc.logger.Warnf("failed to parse refresh token on logout, assuming it's already invalid: %v", err)
		return nil
	}

	storedToken, err := uc.tokenRepo.GetTokenByUserID(ctx, claims.UserID)
	if err != nil {
		if err.Error() == errTokenNotFound {
			return nil
		}
		uc.logger.Errorf("failed to retrieve stored refresh token for user %s: %v", claims.UserID, err)
		return errors.New(errInternalServer)
	}

	if err := uc.tokenRepo.RevokeToken(ctx, storedToken.ID); err != nil {
		uc.logger.Errorf("failed to revoke refresh token for user %s: %v", claims.UserID, err)
		return errors.New("failed to revoke token")
	}

	return nil
}

// LoginWithOAuth signs a federated user in, creating the account on first login.
func (uc *UserUsecase) LoginWithOAuth(ctx context.Context, fullName, email string) (string, string, error) {
	user, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil && err.Error() != errUserNotFound {
		uc.logger.Errorf("failed to check for existing user by email: %v", err)
		return "", "", errors.New(errInternalServer)
	}

	if user == nil {
		newUser := &entity.User{
			ID:           uc.uuidGenerator.NewUUID(),
			FullName:     fullName,
			Email:        email,
			PasswordHash: "", // no password for OAuth users
			Role:         entity.DefaultRole(),
			IsActive:     true,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}

		if err := uc.userRepo.CreateUser(ctx, newUser); err != nil {
			uc.logger.Errorf("failed to create user from OAuth: %v", err)
			return "", "", errors.New(errInternalServer)
		}
		user = newUser
	}

	if !user.IsActive {
		return "", "", errors.New("account is deactivated")
	}

	return uc.issueTokenPair(ctx, user)
}

// GetUserByID retrieves a user by id.
func (uc *UserUsecase) GetUserByID(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if err.Error() == errUserNotFound {
			return nil, ErrNotFound
		}
		uc.logger.Errorf("failed to retrieve user by ID: %v", err)
		return nil, errors.New(errInternalServer)
	}

	return user, nil
}

// UpdateProfile lets a user update their own profile details.
func (uc *UserUsecase) UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) (*entity.User, error) {
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if err.Error() == errUserNotFound {
			return nil, ErrNotFound
		}
		uc.logger.Errorf("failed to retrieve user for profile update: %v", err)
		return nil, errors.New(errInternalServer)
	}

	for k, v := range updates {
		switch k {
		case "full_name":
			if fullName, ok := v.(string); ok && fullName != "" {
				user.FullName = fullName
			}
		case "phone":
			if phone, ok := v.(string); ok {
				user.Phone = &phone
			}
		case "avatar_url":
			if avatarURL, ok := v.(string); ok {
				user.AvatarURL = &avatarURL
			}
		}
	}
	user.UpdatedAt = time.Now()

	updatedUser, err := uc.userRepo.UpdateUser(ctx, user)
	if err != nil {
		uc.logger.Errorf("failed to update profile for user %s: %v", userID, err)
		return nil, errors.New("failed to update profile")
	}

	return updatedUser, nil
}

// ChangePassword verifies the old password before setting the new one.
func (uc *UserUsecase) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if err.Error() == errUserNotFound {
			return ErrNotFound
		}
		uc.logger.Errorf("failed to retrieve user for password change: %v", err)
		return errors.New(errInternalServer)
	}

	if err := uc.hasher.ComparePasswordHash(oldPassword, user.PasswordHash); err != nil {
		return fmt.Errorf("%w: current password is incorrect", ErrValidation)
	}

	if err := uc.validator.ValidatePasswordStrength(newPassword); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	hashedPassword, err := uc.hasher.HashPassword(newPassword)
	if err != nil {
		uc.logger.Errorf("failed to hash new password: %v", err)
		return errors.New(errInternalServer)
	}

	if err := uc.userRepo.UpdateUserPassword(ctx, userID, hashedPassword); err != nil {
		uc.logger.Errorf("failed to update password for user %s: %v", userID, err)
		return errors.New(errInternalServer)
	}

	// Force re-login everywhere.
	if err := uc.tokenRepo.RevokeAllTokensForUser(ctx, userID, entity.TokenTypeRefresh); err != nil {
		uc.logger.Warnf("failed to revoke refresh tokens for user %s after password change: %v", userID, err)
	}

	return nil
}

// ListUsers returns a page of users. Admin-only.
func (uc *UserUsecase) ListUsers(ctx context.Context, actor *entity.User, filter *contract.UserFilter) ([]*entity.User, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, ErrForbidden
	}

	users, total, err := uc.userRepo.ListUsers(ctx, filter)
	if err != nil {
		uc.logger.Errorf("failed to list users: %v", err)
		return nil, 0, errors.New(errInternalServer)
	}
	return users, total, nil
}

// AdminCreateUser creates a user with an explicit role. Admin-only.
func (uc *UserUsecase) AdminCreateUser(ctx context.Context, actor *entity.User, fullName, email, password string, role entity.UserRole) (*entity.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if role != entity.UserRoleAdmin && role != entity.UserRoleStaff {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	if fullName == "" {
		return nil, fmt.Errorf("%w: full name is required", ErrValidation)
	}
	if err := uc.validator.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	if err := uc.validator.ValidatePasswordStrength(password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	existing, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil && err.Error() != errUserNotFound {
		uc.logger.Errorf("failed to check for existing user by email: %v", err)
		return nil, errors.New(errInternalServer)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: user with email %s already exists", ErrConflict, email)
	}

	hashedPassword, err := uc.hasher.HashPassword(password)
	if err != nil {
		uc.logger.Errorf("failed to hash password: %v", err)
		return nil, errors.New(errInternalServer)
	}

	user := &entity.User{
		ID:           uc.uuidGenerator.NewUUID(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uc.userRepo.CreateUser(ctx, user); err != nil {
		uc.logger.Errorf("failed to create user: %v", err)
		return nil, errors.New(errInternalServer)
	}

	return user, nil
}

// AdminUpdateUser edits another user's role/active flag/name. Admin-only.
func (uc *UserUsecase) AdminUpdateUser(ctx context.Context, actor *entity.User, userID string, updates map[string]interface{}) (*entity.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if err.Error() == errUserNotFound {
			return nil, ErrNotFound
		}
		uc.logger.Errorf("failed to retrieve user for admin update: %v", err)
		return nil, errors.New(errInternalServer)
	}

	for k, v := range updates {
		switch k {
		case "full_name":
			if fullName, ok := v.(string); ok && fullName != "" {
				user.FullName = fullName
			}
		case "role":
			if roleStr, ok := v.(string); ok {
				role := entity.UserRole(roleStr)
				if role != entity.UserRoleAdmin && role != entity.UserRoleStaff {
					return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, roleStr)
				}
				user.Role = role
			}
		case "is_active":
			if isActive, ok := v.(bool); ok {
				user.IsActive = isActive
			}
		case "phone":
			if phone, ok := v.(string); ok {
				user.Phone = &phone
			}
		}
	}
	user.UpdatedAt = time.Now()

	updatedUser, err := uc.userRepo.UpdateUser(ctx, user)
	if err != nil {
		uc.logger.Errorf("failed to update user %s: %v", userID, err)
		return nil, errors.New(errInternalServer)
	}

	return updatedUser, nil
}

// DeleteUser removes a user. Admin-only; self-deletion is rejected.
func (uc *UserUsecase) DeleteUser(ctx context.Context, actor *entity.User, userID string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if actor.ID == userID {
		return fmt.Errorf("%w: cannot delete your own account", ErrValidation)
	}

	if err := uc.userRepo.DeleteUser(ctx, userID); err != nil {
		if err.Error() == errUserNotFound {
			return ErrNotFound
		}
		uc.logger.Errorf("failed to delete user %s: %v", userID, err)
		return errors.New(errInternalServer)
	}

	if err := uc.tokenRepo.RevokeAllTokensForUser(ctx, userID, entity.TokenTypeRefresh); err != nil {
		uc.logger.Warnf("failed to revoke tokens for deleted user %s: %v", userID, err)
	}

	return nil
}
