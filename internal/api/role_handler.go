package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wanderlust-backend/internal/core"
	"wanderlust-backend/internal/models"
)

// RoleHandler handles the role catalogue endpoints.
type RoleHandler struct {
	roles  core.RoleService
	logger *zap.Logger
}

// NewRoleHandler creates a new RoleHandler.
func NewRoleHandler(roles core.RoleService, logger *zap.Logger) *RoleHandler {
	return &RoleHandler{roles: roles, logger: logger}
}

// Create handles POST /api/roles
func (h *RoleHandler) Create(c *gin.Context) {
	var role models.UserRole
	if !bindJSON(c, &role) {
		return
	}
	id, err := h.roles.Create(c.Request.Context(), role)
	if errors.Is(err, core.ErrAlreadyExists) {
		c.JSON(http.StatusOK, MessageResponse{Message: "Role already exists"})
		return
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, CreatedResponse{Acknowledged: true, InsertedID: id.Hex()})
}

// List handles GET /api/roles
func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.roles.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, roles)
}

// Delete handles DELETE /api/roles/:id
func (h *RoleHandler) Delete(c *gin.Context) {
	if err := h.roles.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, DeletedResponse{Acknowledged: true, DeletedCount: 1})
}
