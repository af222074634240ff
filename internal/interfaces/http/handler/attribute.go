package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/shopadmin/backend/internal/application/catalog"
)

// AttributeHandler handles attribute metadata endpoints
type AttributeHandler struct {
	BaseHandler
	attributes *catalogapp.AttributeService
}

// NewAttributeHandler creates a new AttributeHandler
func NewAttributeHandler(attributes *catalogapp.AttributeService) *AttributeHandler {
	return &AttributeHandler{attributes: attributes}
}

// RegisterRoutes registers attribute routes
func (h *AttributeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	attributes := rg.Group("/catalog/attributes")
	{
		attributes.GET("", h.List)
		attributes.POST("", h.Create)
		attributes.GET("/:id", h.Get)
		attributes.PUT("/:id", h.Update)
		attributes.DELETE("/:id", h.Delete)
	}
}

// Create creates an attribute
func (h *AttributeHandler) Create(c *gin.Context) {
	var req catalogapp.CreateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.attributes.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns one attribute with its options
func (h *AttributeHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.attributes.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns all attributes ordered by group and sort order
func (h *AttributeHandler) List(c *gin.Context) {
	items, err := h.attributes.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Update applies a partial update to an attribute
func (h *AttributeHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req catalogapp.UpdateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.attributes.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes an attribute not referenced by any product
func (h *AttributeHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.attributes.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
