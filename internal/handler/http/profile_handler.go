package http

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bizsuite/crm-api/internal/handler/http/dto"
	"github.com/bizsuite/crm-api/internal/handler/http/middleware"
	usecasecontract "github.com/bizsuite/crm-api/internal/usecase/contract"
)

const maxAvatarSize = 5 << 20 // 5 MiB

// ProfileHandler serves the authenticated user's own profile operations.
type ProfileHandler struct {
	userUsecase usecasecontract.IUserUseCase
	config      usecasecontract.IConfigProvider
}

func NewProfileHandler(userUsecase usecasecontract.IUserUseCase, config usecasecontract.IConfigProvider) *ProfileHandler {
	return &ProfileHandler{
		userUsecase: userUsecase,
		config:      config,
	}
}

// GetCurrentUser handles retrieving the current authenticated user
func (h *ProfileHandler) GetCurrentUser(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		ErrorHandler(c, http.StatusUnauthorized, "User not authenticated")
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(*user))
}

// UpdateProfile handles updating the current user's profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		ErrorHandler(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req dto.UpdateProfileRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	updates := make(map[string]interface{})
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}

	updatedUser, err := h.userUsecase.UpdateProfile(c.Request.Context(), user.ID, updates)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(*updatedUser))
}

// ChangePassword handles the current user changing their password
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		ErrorHandler(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req dto.ChangePasswordRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	if err := h.userUsecase.ChangePassword(c.Request.Context(), user.ID, req.OldPassword, req.NewPassword); err != nil {
		RespondError(c, err)
		return
	}

	MessageHandler(c, http.StatusOK, "Password changed successfully")
}

// UploadAvatar handles a multipart avatar upload for the current user.
// The file is stored under the configured upload directory as
// <userID>_<unix-ts><ext> and the profile's avatar URL is updated to it.
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		ErrorHandler(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		ErrorHandler(c, http.StatusBadRequest, "avatar file is required")
		return
	}
	if file.Size > maxAvatarSize {
		ErrorHandler(c, http.StatusBadRequest, "avatar file exceeds the 5MB limit")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		ErrorHandler(c, http.StatusBadRequest, "avatar must be an image file")
		return
	}

	uploadDir := h.config.GetUploadDir()
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		ErrorHandler(c, http.StatusInternalServerError, "failed to store avatar")
		return
	}

	filename := fmt.Sprintf("%s_%d%s", user.ID, time.Now().Unix(), ext)
	dst := filepath.Join(uploadDir, filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		ErrorHandler(c, http.StatusInternalServerError, "failed to store avatar")
		return
	}

	avatarURL := fmt.Sprintf("%s/uploads/%s", h.config.GetAppBaseURL(), filename)
	updatedUser, err := h.userUsecase.UpdateProfile(c.Request.Context(), user.ID, map[string]interface{}{
		"avatar_url": avatarURL,
	})
	if err != nil {
		RespondError(c, err)
		return
	}

	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(*updatedUser))
}
