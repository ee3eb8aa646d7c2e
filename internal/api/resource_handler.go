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

// ResourceHandler serves the CRUD endpoints of one owned resource.
type ResourceHandler[T any] struct {
	svc    core.ResourceService[T]
	label  string
	logger *zap.Logger
}

// NewResourceHandler creates a ResourceHandler. label names the resource in
// response messages, e.g. "Package".
func NewResourceHandler[T any](svc core.ResourceService[T], label string, logger *zap.Logger) *ResourceHandler[T] {
	return &ResourceHandler[T]{svc: svc, label: label, logger: logger}
}

// Create handles the POST route of the resource. The body is decoded into T
// and handed to the service, which validates it and fills defaults.
// Responds 201 with the inserted id.
func (h *ResourceHandler[T]) Create(c *gin.Context) {
	var doc T
	if !bindJSON(c, &doc) {
		return
	}
	id, err := h.svc.Create(c.Request.Context(), doc)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, CreatedResponse{Acknowledged: true, InsertedID: id.Hex()})
}

// List handles the collection GET route and returns every document in
// natural order.
func (h *ResourceHandler[T]) List(c *gin.Context) {
	docs, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// Get handles GET .../:id. A malformed id is 400 and an unknown one 404.
func (h *ResourceHandler[T]) Get(c *gin.Context) {
	doc, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// ListMine returns the caller's own documents, newest first.
func (h *ResourceHandler[T]) ListMine(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		respondError(c, h.logger, errors.New("owned listing reached without an identity"))
		return
	}
	docs, err := h.svc.ListOwned(c.Request.Context(), identity.Email)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// Update handles PATCH .../:id. The body is applied with $set semantics
// after any _id key is removed.
func (h *ResourceHandler[T]) Update(c *gin.Context) {
	var fields models.Document
	if !bindJSON(c, &fields) {
		return
	}
	n, err := h.svc.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, UpdatedResponse{Message: h.label + " updated successfully", ModifiedCount: n})
}

// SetStatus handles PUT .../status/:id with a {"status": value} body. The
// accepted value type depends on the resource.
func (h *ResourceHandler[T]) SetStatus(c *gin.Context) {
	var req models.StatusRequest
	if !bindJSON(c, &req) {
		return
	}
	n, err := h.svc.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, UpdatedResponse{Message: h.label + " status updated", ModifiedCount: n})
}

// Delete handles DELETE .../:id and responds with a deleted count of 1.
func (h *ResourceHandler[T]) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, DeletedResponse{Acknowledged: true, DeletedCount: 1})
}
