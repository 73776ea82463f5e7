package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bizsuite/crm-api/internal/domain/contract"
	"github.com/bizsuite/crm-api/internal/domain/entity"
	"github.com/bizsuite/crm-api/internal/handler/http/dto"
	"github.com/bizsuite/crm-api/internal/handler/http/middleware"
	usecasecontract "github.com/bizsuite/crm-api/internal/usecase/contract"
)

// UserHandlerInterface defines the methods for user handler to allow interface-based dependency injection (for testing/mocking)
type UserHandlerInterface interface {
	CreateUser(*gin.Context)
	Login(*gin.Context)
	GetUser(*gin.Context)
	ForgotPassword(*gin.Context)
	ResetPassword(*gin.Context)
	RefreshToken(*gin.Context)
	Logout(*gin.Context)
	ListUsers(*gin.Context)
	AdminCreateUser(*gin.Context)
	AdminUpdateUser(*gin.Context)
	DeleteUser(*gin.Context)
}

// Ensure UserHandler implements UserHandlerInterface
var _ UserHandlerInterface = (*UserHandler)(nil)

type UserHandler struct {
	userUsecase usecasecontract.IUserUseCase
}

func NewUserHandler(userUsecase usecasecontract.IUserUseCase) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
	}
}

// parsePagination reads page/limit query params with the listing defaults.
func parsePagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// CreateUser handles user registration (signup)
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	user, err := h.userUsecase.Register(c.Request.Context(), req.FullName, req.Email, req.Password, req.Phone)
	if err != nil {
		RespondError(c, err)
		return
	}

	SuccessHandler(c, http.StatusCreated, dto.ToUserResponse(*user))
}

// Login handles user authentication
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	user, accessToken, refreshToken, err := h.userUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		ErrorHandler(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	response := dto.LoginResponse{
		User:         dto.ToUserResponse(*user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}

	SuccessHandler(c, http.StatusOK, response)
}

// GetUser handles retrieving user by ID
func (h *UserHandler) GetUser(c *gin.Context) {
	userID := c.Param("id")
	user, err := h.userUsecase.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(*user))
}

// ForgotPassword handles password reset request
func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	// Don't reveal if email exists or not
	_ = h.userUsecase.ForgotPassword(c.Request.Context(), req.Email)
	MessageHandler(c, http.StatusOK, "If an account with that email exists, a password reset link has been sent")
}

// ResetPassword handles password reset with token
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	if req.Token == "" || req.Password == "" || req.Verifier == "" {
		ErrorHandler(c, http.StatusBadRequest, "Invalid or missing token/password/verifier")
		return
	}

	err := h.userUsecase.ResetPassword(c.Request.Context(), req.Verifier, req.Token, req.Password)
	if err != nil {
		ErrorHandler(c, http.StatusBadRequest, "Invalid or expired reset token")
		return
	}

	MessageHandler(c, http.StatusOK, "Password reset successfully")
}

// RefreshToken handles token refresh
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorHandler(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.RefreshToken == "" {
		ErrorHandler(c, http.StatusBadRequest, "Refresh token required")
		return
	}

	newAccessToken, newRefreshToken, err := h.userUsecase.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		ErrorHandler(c, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	response := gin.H{
		"access_token":  newAccessToken,
		"refresh_token": newRefreshToken,
	}

	SuccessHandler(c, http.StatusOK, response)
}

// Logout handles user logout
func (h *UserHandler) Logout(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorHandler(c, http.StatusBadRequest, "Invalid or missing refresh token")
		return
	}

	err := h.userUsecase.Logout(c.Request.Context(), req.RefreshToken)
	if err != nil {
		ErrorHandler(c, http.StatusInternalServerError, "Failed to logout")
		return
	}

	MessageHandler(c, http.StatusOK, "Logged out successfully")
}

// ListUsers handles the admin user listing
func (h *UserHandler) ListUsers(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	page, limit := parsePagination(c)

	filter := &contract.UserFilter{
		Search: c.Query("search"),
		Role:   c.Query("role"),
		Page:   page,
		Limit:  limit,
	}

	users, total, err := h.userUsecase.ListUsers(c.Request.Context(), actor, filter)
	if err != nil {
		RespondError(c, err)
		return
	}

	responses := make([]dto.UserResponse, len(users))
	for i, u := range users {
		responses[i] = dto.ToUserResponse(*u)
	}

	SuccessHandler(c, http.StatusOK, dto.ListResponse{
		Data:       responses,
		Pagination: dto.NewPagination(page, limit, total),
	})
}

// AdminCreateUser handles an admin creating a user with an explicit role
func (h *UserHandler) AdminCreateUser(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	var req dto.AdminCreateUserRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	user, err := h.userUsecase.AdminCreateUser(c.Request.Context(), actor, req.FullName, req.Email, req.Password, entity.UserRole(req.Role))
	if err != nil {
		RespondError(c, err)
		return
	}

	SuccessHandler(c, http.StatusCreated, dto.ToUserResponse(*user))
}

// AdminUpdateUser handles an admin editing another user
func (h *UserHandler) AdminUpdateUser(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	userID := c.Param("id")

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		ErrorHandler(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := h.userUsecase.AdminUpdateUser(c.Request.Context(), actor, userID, updates)
	if err != nil {
		RespondError(c, err)
		return
	}

	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(*user))
}

// DeleteUser handles an admin removing a user
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	userID := c.Param("id")

	if err := h.userUsecase.DeleteUser(c.Request.Context(), actor, userID); err != nil {
		RespondError(c, err)
		return
	}

	MessageHandler(c, http.StatusOK, "User deleted successfully")
}
