package handler

import (
	"github.com/gin-gonic/gin"

	financeapp "github.com/shopadmin/backend/internal/application/finance"
)

// CurrencyHandler handles currency endpoints
type CurrencyHandler struct {
	BaseHandler
	currencies *financeapp.CurrencyService
}

// NewCurrencyHandler creates a new CurrencyHandler
func NewCurrencyHandler(currencies *financeapp.CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{currencies: currencies}
}

// RegisterRoutes registers currency routes
func (h *CurrencyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	currencies := rg.Group("/finance/currencies")
	{
		currencies.GET("", h.List)
		currencies.POST("", h.Create)
		currencies.GET("/:id", h.Get)
		currencies.PUT("/:id", h.Update)
		currencies.DELETE("/:id", h.Delete)
	}
}

// Create registers a new currency
func (h *CurrencyHandler) Create(c *gin.Context) {
	var req financeapp.CreateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	currency, err := h.currencies.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, currency)
}

// Get returns one currency
func (h *CurrencyHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	currency, err := h.currencies.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, currency)
}

// List returns all currencies
func (h *CurrencyHandler) List(c *gin.Context) {
	currencies, err := h.currencies.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, currencies)
}

// Update changes a currency's name or rates
func (h *CurrencyHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req financeapp.UpdateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	currency, err := h.currencies.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, currency)
}

// Delete removes a non-base currency
func (h *CurrencyHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.currencies.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
