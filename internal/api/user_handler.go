package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wanderlust-backend/internal/core"
	"wanderlust-backend/internal/middleware"
	"wanderlust-backend/internal/models"
)

// UserHandler handles the user account endpoints.
type UserHandler struct {
	users  core.UserService
	logger *zap.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users core.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// Exists handles GET /user-exists?email=
func (h *UserHandler) Exists(c *gin.Context) {
	exists, err := h.users.Exists(c.Request.Context(), c.Query("email"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.ExistsResponse{Exists: exists})
}

// CheckRole handles POST /check-role for the authenticated caller.
func (h *UserHandler) CheckRole(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		respondError(c, h.logger, errors.New("check-role reached without an identity"))
		return
	}
	role, err := h.users.RoleOf(c.Request.Context(), identity.Email)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.CheckRoleResponse{Role: role})
}

// Create handles POST /adduser. An existing email is reported with 200 and
// nothing is written.
func (h *UserHandler) Create(c *gin.Context) {
	var user models.User
	if !bindJSON(c, &user) {
		return
	}
	id, err := h.users.Create(c.Request.Context(), user)
	if errors.Is(err, core.ErrAlreadyExists) {
		c.JSON(http.StatusOK, MessageResponse{Message: "User already exists"})
		return
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, CreatedResponse{Acknowledged: true, InsertedID: id.Hex()})
}

// List handles GET /adduser
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Get handles GET /adduser/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Update handles PATCH /adduser/:id with the submitted fields.
func (h *UserHandler) Update(c *gin.Context) {
	var fields models.Document
	if !bindJSON(c, &fields) {
		return
	}
	n, err := h.users.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, UpdatedResponse{Message: "User updated successfully", ModifiedCount: n})
}

// UpdateRole handles PATCH /updateRole/:id
func (h *UserHandler) UpdateRole(c *gin.Context) {
	var req models.UpdateRoleRequest
	if !bindJSON(c, &req) {
		return
	}
	n, err := h.users.UpdateRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, UpdatedResponse{Message: "Role updated successfully", ModifiedCount: n})
}

// Delete handles DELETE /adduser/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, DeletedResponse{Acknowledged: true, DeletedCount: 1})
}

// Search handles GET /searchUsers?query=
func (h *UserHandler) Search(c *gin.Context) {
	users, err := h.users.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
