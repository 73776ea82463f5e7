package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/bizsuite/crm-api/internal/domain/entity"
	handler "github.com/bizsuite/crm-api/internal/handler/http"
	dto "github.com/bizsuite/crm-api/internal/handler/http/dto"
	"github.com/bizsuite/crm-api/internal/handler/http/middleware"
	mocks "github.com/bizsuite/crm-api/internal/handler/http/mocks"
)

func setupLeadRouter(h *handler.LeadHandler, actor *entity.User) *gin.Engine {
	r := gin.Default()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, actor)
		c.Next()
	})
	r.GET("/leads", h.ListLeads)
	r.POST("/leads", h.CreateLead)
	r.GET("/leads/:id", h.GetLead)
	r.PUT("/leads/:id", h.UpdateLead)
	r.DELETE("/leads/:id", h.DeleteLead)
	return r
}

func adminUser() *entity.User {
	return &entity.User{ID: "admin-id", FullName: "Admin", Role: entity.UserRoleAdmin, IsActive: true}
}

func staffUser() *entity.User {
	return &entity.User{ID: "staff-id", FullName: "Staff", Role: entity.UserRoleStaff, IsActive: true}
}

func TestCreateLead(t *testing.T) {
	mockUsecase := mocks.NewMockLeadUsecase()
	h := handler.NewLeadHandler(mockUsecase)
	r := setupLeadRouter(h, adminUser())

	payload := dto.LeadRequest{
		Title:       "Enterprise rollout",
		ContactName: "Ada Example",
	}
	body, _ := json.Marshal(payload)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/leads", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Enterprise rollout")
}

func TestCreateLead_MissingContactName(t *testing.T) {
	mockUsecase := mocks.NewMockLeadUsecase()
	h := handler.NewLeadHandler(mockUsecase)
	r := setupLeadRouter(h, adminUser())

	payload := dto.LeadRequest{Title: "Enterprise rollout"}
	body, _ := json.Marshal(payload)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/leads", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Field validation for 'ContactName' failed on the 'required' tag")
}

func TestUpdateLead_StaffForbidden(t *testing.T) {
	mockUsecase := mocks.NewMockLeadUsecase()
	mockUsecase.ShouldForbid = true
	h := handler.NewLeadHandler(mockUsecase)
	r := setupLeadRouter(h, staffUser())

	body, _ := json.Marshal(map[string]interface{}{"title": "Renamed"})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/leads/mock-lead-id", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateLead_PassesRawKeys(t *testing.T) {
	mockUsecase := mocks.NewMockLeadUsecase()
	h := handler.NewLeadHandler(mockUsecase)
	r := setupLeadRouter(h, staffUser())

	body, _ := json.Marshal(map[string]interface{}{"stage": "Contacted"})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/leads/mock-lead-id", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{"stage": "Contacted"}, mockUsecase.UpdateLeadKeys)
}

func TestGetLead_NotFound(t *testing.T) {
	mockUsecase := mocks.NewMockLeadUsecase()
	mockUsecase.ShouldNotFind = true
	h := handler.NewLeadHandler(mockUsecase)
	r := setupLeadRouter(h, adminUser())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/leads/missing-id", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListLeads_Pagination(t *testing.T) {
	mockUsecase := mocks.NewMockLeadUsecase()
	h := handler.NewLeadHandler(mockUsecase)
	r := setupLeadRouter(h, adminUser())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/leads?page=1&limit=10", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Pagination dto.Pagination `json:"pagination"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Pagination.CurrentPage)
	assert.Equal(t, 10, resp.Pagination.ItemsPerPage)
	assert.Equal(t, int64(1), resp.Pagination.TotalItems)
	assert.Equal(t, 1, resp.Pagination.TotalPages)
}
