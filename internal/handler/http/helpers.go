package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizsuite/crm-api/internal/handler/http/dto"
	"github.com/bizsuite/crm-api/internal/usecase"
)

// ErrorHandler centralizes error handling for HTTP responses
func ErrorHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// SuccessHandler centralizes success responses
func SuccessHandler(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// MessageHandler centralizes message responses
func MessageHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.MessageResponse{Message: message})
}

// BindAndValidate binds JSON request and validates it
func BindAndValidate(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		ErrorHandler(c, http.StatusBadRequest, err.Error())
		return err
	}
	return nil
}

// RespondError maps usecase sentinel errors to status codes. Anything else is
// a 500 with the error's sanitized message.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		ErrorHandler(c, http.StatusNotFound, err.Error())
	case errors.Is(err, usecase.ErrForbidden):
		ErrorHandler(c, http.StatusForbidden, err.Error())
	case errors.Is(err, usecase.ErrValidation):
		ErrorHandler(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrConflict):
		ErrorHandler(c, http.StatusConflict, err.Error())
	default:
		ErrorHandler(c, http.StatusInternalServerError, err.Error())
	}
}
