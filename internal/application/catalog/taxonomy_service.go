package catalog

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// NamedRequest is the common create/update payload for simple reference
// entities (brands, certificates, regions and the like)
type NamedRequest struct {
	Name string `json:"name" binding:"required,min=1,max=128"`
}

// BrandService manages brands
type BrandService struct {
	brands catalog.BrandRepository
}

// NewBrandService creates a new BrandService
func NewBrandService(brands catalog.BrandRepository) *BrandService {
	return &BrandService{brands: brands}
}

// Create creates a brand with a derived slug
func (s *BrandService) Create(ctx context.Context, req NamedRequest) (*catalog.Brand, error) {
	exists, err := s.brands.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Brand with this name already exists")
	}

	brand := &catalog.Brand{Name: req.Name, Slug: catalog.Slugify(req.Name)}
	if err := s.brands.Save(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// Get returns one brand
func (s *BrandService) Get(ctx context.Context, id uint) (*catalog.Brand, error) {
	return s.brands.FindByID(ctx, id)
}

// List returns a page of brands
func (s *BrandService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[catalog.Brand], error) {
	return listPage[catalog.Brand](ctx, s.brands, filter)
}

// Update renames a brand
func (s *BrandService) Update(ctx context.Context, id uint, req NamedRequest) (*catalog.Brand, error) {
	brand, err := s.brands.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	brand.Name = req.Name
	brand.Slug = catalog.Slugify(req.Name)
	if err := s.brands.Save(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// Delete removes a brand
func (s *BrandService) Delete(ctx context.Context, id uint) error {
	return s.brands.Delete(ctx, id)
}

// CreateCategoryRequest creates a category node
type CreateCategoryRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=128"`
	ParentID  *uint  `json:"parent_id"`
	SortOrder int    `json:"sort_order"`
}

// CategoryService manages the category tree
type CategoryService struct {
	categories catalog.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categories catalog.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// Create creates a category node, optionally under a parent
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*catalog.Category, error) {
	if req.ParentID != nil {
		if _, err := s.categories.FindByID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Parent category not found")
			}
			return nil, err
		}
	}

	category := &catalog.Category{
		Name:      req.Name,
		Slug:      catalog.Slugify(req.Name),
		ParentID:  req.ParentID,
		SortOrder: req.SortOrder,
		IsActive:  true,
	}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Get returns one category
func (s *CategoryService) Get(ctx context.Context, id uint) (*catalog.Category, error) {
	return s.categories.FindByID(ctx, id)
}

// List returns a page of categories
func (s *CategoryService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[catalog.Category], error) {
	return listPage[catalog.Category](ctx, s.categories, filter)
}

// Children returns the direct children of a category node
func (s *CategoryService) Children(ctx context.Context, parentID uint) ([]catalog.Category, error) {
	return s.categories.FindChildren(ctx, parentID)
}

// Update renames or moves a category node
func (s *CategoryService) Update(ctx context.Context, id uint, req CreateCategoryRequest) (*catalog.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.ParentID != nil && *req.ParentID == id {
		return nil, shared.NewDomainError("INVALID_PARENT", "Category cannot be its own parent")
	}
	category.Name = req.Name
	category.Slug = catalog.Slugify(req.Name)
	category.ParentID = req.ParentID
	category.SortOrder = req.SortOrder
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category node. Nodes with children are protected.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	children, err := s.categories.FindChildren(ctx, id)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return shared.NewDomainError("RESOURCE_IN_USE", "Category has child categories")
	}
	return s.categories.Delete(ctx, id)
}

// CreateWarehouseRequest creates a warehouse in a region
type CreateWarehouseRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=128"`
	RegionID uint   `json:"region_id" binding:"required"`
	Address  string `json:"address" binding:"max=255"`
}

// SetStockRequest sets the quantity of one product in one warehouse
type SetStockRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// WarehouseService manages warehouses and per-warehouse stock
type WarehouseService struct {
	warehouses catalog.WarehouseRepository
	regions    catalog.RegionRepository
	stocks     catalog.StockRepository
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(
	warehouses catalog.WarehouseRepository,
	regions catalog.RegionRepository,
	stocks catalog.StockRepository,
) *WarehouseService {
	return &WarehouseService{
		warehouses: warehouses,
		regions:    regions,
		stocks:     stocks,
	}
}

// Create creates a warehouse in an existing region
func (s *WarehouseService) Create(ctx context.Context, req CreateWarehouseRequest) (*catalog.Warehouse, error) {
	if _, err := s.regions.FindByID(ctx, req.RegionID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_REGION", "Region not found")
		}
		return nil, err
	}

	warehouse := &catalog.Warehouse{
		Name:     req.Name,
		RegionID: req.RegionID,
		Address:  req.Address,
	}
	if err := s.warehouses.Save(ctx, warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

// Get returns one warehouse
func (s *WarehouseService) Get(ctx context.Context, id uint) (*catalog.Warehouse, error) {
	return s.warehouses.FindByID(ctx, id)
}

// List returns a page of warehouses
func (s *WarehouseService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[catalog.Warehouse], error) {
	return listPage[catalog.Warehouse](ctx, s.warehouses, filter)
}

// Update changes a warehouse's name, region or address
func (s *WarehouseService) Update(ctx context.Context, id uint, req CreateWarehouseRequest) (*catalog.Warehouse, error) {
	warehouse, err := s.warehouses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.regions.FindByID(ctx, req.RegionID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_REGION", "Region not found")
		}
		return nil, err
	}
	warehouse.Name = req.Name
	warehouse.RegionID = req.RegionID
	warehouse.Address = req.Address
	if err := s.warehouses.Save(ctx, warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

// Delete removes a warehouse
func (s *WarehouseService) Delete(ctx context.Context, id uint) error {
	return s.warehouses.Delete(ctx, id)
}

// ProductStocks returns a product's stock rows across warehouses
func (s *WarehouseService) ProductStocks(ctx context.Context, productID uint) ([]catalog.ProductStock, error) {
	return s.stocks.FindByProduct(ctx, productID)
}

// SetStock sets the quantity of one product in one warehouse
func (s *WarehouseService) SetStock(ctx context.Context, productID, warehouseID uint, req SetStockRequest) error {
	if req.Quantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Stock quantity cannot be negative")
	}
	if _, err := s.warehouses.FindByID(ctx, warehouseID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse not found")
		}
		return err
	}
	return s.stocks.Upsert(ctx, &catalog.ProductStock{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    req.Quantity,
	})
}

// ClearStock removes the stock row of one product in one warehouse
func (s *WarehouseService) ClearStock(ctx context.Context, productID, warehouseID uint) error {
	return s.stocks.Delete(ctx, productID, warehouseID)
}

// CreateCertificateRequest creates a certificate
type CreateCertificateRequest struct {
	Name   string `json:"name" binding:"required,min=1,max=128"`
	Number string `json:"number" binding:"max=64"`
}

// CertificateService manages certificates
type CertificateService struct {
	certificates catalog.CertificateRepository
}

// NewCertificateService creates a new CertificateService
func NewCertificateService(certificates catalog.CertificateRepository) *CertificateService {
	return &CertificateService{certificates: certificates}
}

// Create creates a certificate
func (s *CertificateService) Create(ctx context.Context, req CreateCertificateRequest) (*catalog.Certificate, error) {
	certificate := &catalog.Certificate{Name: req.Name, Number: req.Number}
	if err := s.certificates.Save(ctx, certificate); err != nil {
		return nil, err
	}
	return certificate, nil
}

// Get returns one certificate
func (s *CertificateService) Get(ctx context.Context, id uint) (*catalog.Certificate, error) {
	return s.certificates.FindByID(ctx, id)
}

// List returns a page of certificates
func (s *CertificateService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[catalog.Certificate], error) {
	return listPage[catalog.Certificate](ctx, s.certificates, filter)
}

// Update changes a certificate's name or number
func (s *CertificateService) Update(ctx context.Context, id uint, req CreateCertificateRequest) (*catalog.Certificate, error) {
	certificate, err := s.certificates.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	certificate.Name = req.Name
	certificate.Number = req.Number
	if err := s.certificates.Save(ctx, certificate); err != nil {
		return nil, err
	}
	return certificate, nil
}

// Delete removes a certificate
func (s *CertificateService) Delete(ctx context.Context, id uint) error {
	return s.certificates.Delete(ctx, id)
}

// CreateModelRequest creates a product model line
type CreateModelRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=128"`
	BrandID *uint  `json:"brand_id"`
}

// ModelService manages product model lines
type ModelService struct {
	models catalog.ProductModelRepository
	brands catalog.BrandRepository
}

// NewModelService creates a new ModelService
func NewModelService(models catalog.ProductModelRepository, brands catalog.BrandRepository) *ModelService {
	return &ModelService{models: models, brands: brands}
}

// Create creates a model line, optionally under a brand
func (s *ModelService) Create(ctx context.Context, req CreateModelRequest) (*catalog.ProductModel, error) {
	if req.BrandID != nil {
		if _, err := s.brands.FindByID(ctx, *req.BrandID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_BRAND", "Brand not found")
			}
			return nil, err
		}
	}
	model := &catalog.ProductModel{Name: req.Name, BrandID: req.BrandID}
	if err := s.models.Save(ctx, model); err != nil {
		return nil, err
	}
	return model, nil
}

// Get returns one model line
func (s *ModelService) Get(ctx context.Context, id uint) (*catalog.ProductModel, error) {
	return s.models.FindByID(ctx, id)
}

// List returns a page of model lines
func (s *ModelService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[catalog.ProductModel], error) {
	return listPage[catalog.ProductModel](ctx, s.models, filter)
}

// Update renames a model line or moves it to another brand
func (s *ModelService) Update(ctx context.Context, id uint, req CreateModelRequest) (*catalog.ProductModel, error) {
	model, err := s.models.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	model.Name = req.Name
	model.BrandID = req.BrandID
	if err := s.models.Save(ctx, model); err != nil {
		return nil, err
	}
	return model, nil
}

// Delete removes a model line
func (s *ModelService) Delete(ctx context.Context, id uint) error {
	return s.models.Delete(ctx, id)
}

// RegionService manages regions
type RegionService struct {
	regions catalog.RegionRepository
}

// NewRegionService creates a new RegionService
func NewRegionService(regions catalog.RegionRepository) *RegionService {
	return &RegionService{regions: regions}
}

// Create creates a region
func (s *RegionService) Create(ctx context.Context, req NamedRequest) (*catalog.Region, error) {
	region := &catalog.Region{Name: req.Name}
	if err := s.regions.Save(ctx, region); err != nil {
		return nil, err
	}
	return region, nil
}

// Get returns one region
func (s *RegionService) Get(ctx context.Context, id uint) (*catalog.Region, error) {
	return s.regions.FindByID(ctx, id)
}

// List returns a page of regions
func (s *RegionService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[catalog.Region], error) {
	return listPage[catalog.Region](ctx, s.regions, filter)
}

// Update renames a region
func (s *RegionService) Update(ctx context.Context, id uint, req NamedRequest) (*catalog.Region, error) {
	region, err := s.regions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	region.Name = req.Name
	if err := s.regions.Save(ctx, region); err != nil {
		return nil, err
	}
	return region, nil
}

// Delete removes a region
func (s *RegionService) Delete(ctx context.Context, id uint) error {
	return s.regions.Delete(ctx, id)
}

// listPage runs the repository list+count pair and wraps it in a page
func listPage[T any](ctx context.Context, repo shared.Repository[T], filter shared.Filter) (*shared.Paginated[T], error) {
	items, err := repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}
