package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/shopadmin/backend/internal/application/catalog"
)

// TaxonomyHandler handles the reference entities products link to:
// brands, models, categories, certificates, regions and warehouses.
type TaxonomyHandler struct {
	BaseHandler
	brands       *catalogapp.BrandService
	models       *catalogapp.ModelService
	categories   *catalogapp.CategoryService
	certificates *catalogapp.CertificateService
	regions      *catalogapp.RegionService
	warehouses   *catalogapp.WarehouseService
}

// NewTaxonomyHandler creates a new TaxonomyHandler
func NewTaxonomyHandler(
	brands *catalogapp.BrandService,
	models *catalogapp.ModelService,
	categories *catalogapp.CategoryService,
	certificates *catalogapp.CertificateService,
	regions *catalogapp.RegionService,
	warehouses *catalogapp.WarehouseService,
) *TaxonomyHandler {
	return &TaxonomyHandler{
		brands:       brands,
		models:       models,
		categories:   categories,
		certificates: certificates,
		regions:      regions,
		warehouses:   warehouses,
	}
}

// RegisterRoutes registers taxonomy routes
func (h *TaxonomyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	brands := rg.Group("/catalog/brands")
	{
		brands.GET("", h.ListBrands)
		brands.POST("", h.CreateBrand)
		brands.GET("/:id", h.GetBrand)
		brands.PUT("/:id", h.UpdateBrand)
		brands.DELETE("/:id", h.DeleteBrand)
	}

	models := rg.Group("/catalog/models")
	{
		models.GET("", h.ListModels)
		models.POST("", h.CreateModel)
		models.GET("/:id", h.GetModel)
		models.PUT("/:id", h.UpdateModel)
		models.DELETE("/:id", h.DeleteModel)
	}

	categories := rg.Group("/catalog/categories")
	{
		categories.GET("", h.ListCategories)
		categories.POST("", h.CreateCategory)
		categories.GET("/:id", h.GetCategory)
		categories.GET("/:id/children", h.GetCategoryChildren)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}

	certificates := rg.Group("/catalog/certificates")
	{
		certificates.GET("", h.ListCertificates)
		certificates.POST("", h.CreateCertificate)
		certificates.GET("/:id", h.GetCertificate)
		certificates.PUT("/:id", h.UpdateCertificate)
		certificates.DELETE("/:id", h.DeleteCertificate)
	}

	regions := rg.Group("/catalog/regions")
	{
		regions.GET("", h.ListRegions)
		regions.POST("", h.CreateRegion)
		regions.GET("/:id", h.GetRegion)
		regions.PUT("/:id", h.UpdateRegion)
		regions.DELETE("/:id", h.DeleteRegion)
	}

	warehouses := rg.Group("/catalog/warehouses")
	{
		warehouses.GET("", h.ListWarehouses)
		warehouses.POST("", h.CreateWarehouse)
		warehouses.GET("/:id", h.GetWarehouse)
		warehouses.PUT("/:id", h.UpdateWarehouse)
		warehouses.DELETE("/:id", h.DeleteWarehouse)
	}

	stocks := rg.Group("/catalog/products/:id/stocks")
	{
		stocks.GET("", h.ListProductStocks)
		stocks.PUT("/:warehouseId", h.SetStock)
		stocks.DELETE("/:warehouseId", h.ClearStock)
	}
}

// CreateBrand creates a brand
func (h *TaxonomyHandler) CreateBrand(c *gin.Context) {
	var req catalogapp.NamedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	brand, err := h.brands.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, brand)
}

// GetBrand returns one brand
func (h *TaxonomyHandler) GetBrand(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	brand, err := h.brands.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, brand)
}

// ListBrands returns a page of brands
func (h *TaxonomyHandler) ListBrands(c *gin.Context) {
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	page, err := h.brands.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// UpdateBrand renames a brand
func (h *TaxonomyHandler) UpdateBrand(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.NamedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	brand, err := h.brands.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, brand)
}

// DeleteBrand removes a brand
func (h *TaxonomyHandler) DeleteBrand(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.brands.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateModel creates a model line
func (h *TaxonomyHandler) CreateModel(c *gin.Context) {
	var req catalogapp.CreateModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	model, err := h.models.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, model)
}

// GetModel returns one model line
func (h *TaxonomyHandler) GetModel(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	model, err := h.models.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, model)
}

// ListModels returns a page of model lines
func (h *TaxonomyHandler) ListModels(c *gin.Context) {
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	page, err := h.models.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// UpdateModel renames or re-brands a model line
func (h *TaxonomyHandler) UpdateModel(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.CreateModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	model, err := h.models.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, model)
}

// DeleteModel removes a model line
func (h *TaxonomyHandler) DeleteModel(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.models.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateCategory creates a category node
func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	var req catalogapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	category, err := h.categories.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// GetCategory returns one category
func (h *TaxonomyHandler) GetCategory(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	category, err := h.categories.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// GetCategoryChildren returns the direct children of a category
func (h *TaxonomyHandler) GetCategoryChildren(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	children, err := h.categories.Children(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, children)
}

// ListCategories returns a page of categories
func (h *TaxonomyHandler) ListCategories(c *gin.Context) {
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	page, err := h.categories.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// UpdateCategory renames or moves a category
func (h *TaxonomyHandler) UpdateCategory(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	category, err := h.categories.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// DeleteCategory removes a leaf category
func (h *TaxonomyHandler) DeleteCategory(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateCertificate creates a certificate
func (h *TaxonomyHandler) CreateCertificate(c *gin.Context) {
	var req catalogapp.CreateCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	certificate, err := h.certificates.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, certificate)
}

// GetCertificate returns one certificate
func (h *TaxonomyHandler) GetCertificate(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	certificate, err := h.certificates.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, certificate)
}

// ListCertificates returns a page of certificates
func (h *TaxonomyHandler) ListCertificates(c *gin.Context) {
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	page, err := h.certificates.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// UpdateCertificate changes a certificate's name or number
func (h *TaxonomyHandler) UpdateCertificate(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.CreateCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	certificate, err := h.certificates.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, certificate)
}

// DeleteCertificate removes a certificate
func (h *TaxonomyHandler) DeleteCertificate(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.certificates.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateRegion creates a region
func (h *TaxonomyHandler) CreateRegion(c *gin.Context) {
	var req catalogapp.NamedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	region, err := h.regions.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, region)
}

// GetRegion returns one region
func (h *TaxonomyHandler) GetRegion(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	region, err := h.regions.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, region)
}

// ListRegions returns a page of regions
func (h *TaxonomyHandler) ListRegions(c *gin.Context) {
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	page, err := h.regions.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// UpdateRegion renames a region
func (h *TaxonomyHandler) UpdateRegion(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.NamedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	region, err := h.regions.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, region)
}

// DeleteRegion removes a region
func (h *TaxonomyHandler) DeleteRegion(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.regions.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateWarehouse creates a warehouse
func (h *TaxonomyHandler) CreateWarehouse(c *gin.Context) {
	var req catalogapp.CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	warehouse, err := h.warehouses.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, warehouse)
}

// GetWarehouse returns one warehouse
func (h *TaxonomyHandler) GetWarehouse(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	warehouse, err := h.warehouses.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, warehouse)
}

// ListWarehouses returns a page of warehouses
func (h *TaxonomyHandler) ListWarehouses(c *gin.Context) {
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	page, err := h.warehouses.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// UpdateWarehouse changes a warehouse's name, region or address
func (h *TaxonomyHandler) UpdateWarehouse(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	warehouse, err := h.warehouses.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, warehouse)
}

// DeleteWarehouse removes a warehouse
func (h *TaxonomyHandler) DeleteWarehouse(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.warehouses.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListProductStocks returns a product's stock across warehouses
func (h *TaxonomyHandler) ListProductStocks(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	stocks, err := h.warehouses.ProductStocks(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stocks)
}

// SetStock sets the quantity of a product in a warehouse
func (h *TaxonomyHandler) SetStock(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	warehouseID, ok := h.pathID(c, "warehouseId")
	if !ok {
		return
	}
	var req catalogapp.SetStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if err := h.warehouses.SetStock(c.Request.Context(), id, warehouseID, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ClearStock removes the stock row of a product in a warehouse
func (h *TaxonomyHandler) ClearStock(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	warehouseID, ok := h.pathID(c, "warehouseId")
	if !ok {
		return
	}
	if err := h.warehouses.ClearStock(c.Request.Context(), id, warehouseID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
