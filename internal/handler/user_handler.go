package handler

import (
	"net/http"

	"github.com/askhub/askhub-backend/internal/common"
	"github.com/askhub/askhub-backend/internal/query"
	"github.com/askhub/askhub-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// UserHandler handles admin user management requests
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /api/admin/users
func (h *UserHandler) List(c *gin.Context) {
	page, err := h.service.List(parseListRequest(c, query.EntityUsers))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	common.Success(c, page)
}

// Get handles GET /api/admin/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := h.service.Get(id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	common.Success(c, user)
}

// Update handles PATCH /api/admin/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var update service.UserUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		common.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.service.Update(id, update)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	common.Success(c, user)
}

// Delete handles DELETE /api/admin/users/:id. The user and all
// dependent records are removed in one transaction.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.Delete(id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	common.Success(c, result)
}
