package catalog

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// ProductService handles product-related business operations
type ProductService struct {
	products   catalog.ProductRepository
	attributes catalog.AttributeRepository
	brands     catalog.BrandRepository
	categories catalog.CategoryRepository
}

// NewProductService creates a new ProductService
func NewProductService(
	products catalog.ProductRepository,
	attributes catalog.AttributeRepository,
	brands catalog.BrandRepository,
	categories catalog.CategoryRepository,
) *ProductService {
	return &ProductService{
		products:   products,
		attributes: attributes,
		brands:     brands,
		categories: categories,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.products.ExistsBySKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
	}

	if req.BrandID != nil {
		if _, err := s.brands.FindByID(ctx, *req.BrandID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_BRAND", "Brand not found")
			}
			return nil, err
		}
	}

	product, err := catalog.NewProduct(req.SKU, req.Name)
	if err != nil {
		return nil, err
	}

	product.Description = req.Description
	product.Barcode = req.Barcode
	if req.Unit != "" {
		product.Unit = req.Unit
	}
	product.IsNew = req.IsNew
	product.IsFeatured = req.IsFeatured
	product.BrandID = req.BrandID
	product.ModelID = req.ModelID
	if req.SortOrder != nil {
		product.SortOrder = *req.SortOrder
	}
	if req.Weight != nil {
		product.Weight = *req.Weight
	}
	if req.MinStock != nil {
		product.MinStock = *req.MinStock
	}

	purchase, base := decimal.Zero, decimal.Zero
	if req.PurchasePrice != nil {
		purchase = *req.PurchasePrice
	}
	if req.BasePrice != nil {
		base = *req.BasePrice
	}
	if err := product.SetPrices(purchase, base); err != nil {
		return nil, err
	}
	if req.SalePrice != nil {
		if err := product.SetSalePrice(req.SalePrice); err != nil {
			return nil, err
		}
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	if len(req.CategoryIDs) > 0 {
		if err := s.replaceCategories(ctx, product, req.CategoryIDs); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, product.ID)
}

// Get returns one product with all its relations resolved
func (s *ProductService) Get(ctx context.Context, id uint) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List returns a page of products
func (s *ProductService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ProductListResponse], error) {
	products, err := s.products.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.products.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ProductListResponse, len(products))
	for i := range products {
		items[i] = ToProductListResponse(&products[i])
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update applies a partial update to a product
func (s *ProductService) Update(ctx context.Context, id uint, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := product.Name
	description := product.Description
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if err := product.Update(name, description); err != nil {
		return nil, err
	}

	if req.Barcode != nil {
		product.Barcode = *req.Barcode
	}
	if req.Unit != nil && *req.Unit != "" {
		product.Unit = *req.Unit
	}
	if req.IsNew != nil {
		product.IsNew = *req.IsNew
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}
	if req.SortOrder != nil {
		product.SortOrder = *req.SortOrder
	}
	if req.Weight != nil {
		product.Weight = *req.Weight
	}
	if req.MinStock != nil {
		product.MinStock = *req.MinStock
	}
	if req.BrandID != nil {
		product.BrandID = req.BrandID
	}
	if req.ModelID != nil {
		product.ModelID = req.ModelID
	}
	if req.IsActive != nil {
		if *req.IsActive {
			product.Activate()
		} else {
			product.Deactivate()
		}
	}

	if req.BasePrice != nil || req.PurchasePrice != nil {
		purchase := product.PurchasePrice
		base := product.BasePrice
		if req.PurchasePrice != nil {
			purchase = *req.PurchasePrice
		}
		if req.BasePrice != nil {
			base = *req.BasePrice
		}
		if err := product.SetPrices(purchase, base); err != nil {
			return nil, err
		}
	}
	if req.ClearSale {
		if err := product.SetSalePrice(nil); err != nil {
			return nil, err
		}
	} else if req.SalePrice != nil {
		if err := product.SetSalePrice(req.SalePrice); err != nil {
			return nil, err
		}
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	if req.CategoryIDs != nil {
		if err := s.replaceCategories(ctx, product, req.CategoryIDs); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, product.ID)
}

// Delete removes a product together with its stock and attribute rows
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	return s.products.Delete(ctx, id)
}

// SetCertificates replaces a product's certificate links
func (s *ProductService) SetCertificates(ctx context.Context, id uint, req SetCertificatesRequest) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return s.products.ReplaceCertificates(ctx, product, req.CertificateIDs)
}

// SetAttributeValue stores one typed attribute value on a product. The
// request payload must match the attribute's declared type.
func (s *ProductService) SetAttributeValue(ctx context.Context, productID, attributeID uint, req SetAttributeValueRequest) error {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	attr, err := s.attributes.FindByID(ctx, attributeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_ATTRIBUTE", "Attribute not found")
		}
		return err
	}

	value := catalog.ProductAttributeValue{
		ProductID:   product.ID,
		AttributeID: attr.ID,
	}
	switch attr.Type {
	case catalog.AttributeTypeString:
		if req.TextValue == nil {
			return shared.NewDomainError("INVALID_VALUE", "Attribute expects a text value")
		}
		value.SetText(*req.TextValue)
	case catalog.AttributeTypeNumber:
		if req.NumberValue == nil {
			return shared.NewDomainError("INVALID_VALUE", "Attribute expects a numeric value")
		}
		value.SetNumber(*req.NumberValue)
	case catalog.AttributeTypeBoolean:
		if req.BoolValue == nil {
			return shared.NewDomainError("INVALID_VALUE", "Attribute expects a boolean value")
		}
		value.SetBoolean(*req.BoolValue)
	case catalog.AttributeTypeSelect:
		if req.OptionID == nil {
			return shared.NewDomainError("INVALID_VALUE", "Attribute expects an option reference")
		}
		if attr.Option(*req.OptionID) == nil {
			return shared.NewDomainError("INVALID_VALUE", "Option does not belong to this attribute")
		}
		value.SetOption(*req.OptionID)
	default:
		return shared.NewDomainError("INVALID_ATTRIBUTE_TYPE", "Unknown attribute type")
	}

	return s.products.UpsertAttributeValue(ctx, &value)
}

// ClearAttributeValue removes a product's value for one attribute
func (s *ProductService) ClearAttributeValue(ctx context.Context, productID, attributeID uint) error {
	return s.products.DeleteAttributeValue(ctx, productID, attributeID)
}

func (s *ProductService) replaceCategories(ctx context.Context, product *catalog.Product, categoryIDs []uint) error {
	for _, id := range categoryIDs {
		if _, err := s.categories.FindByID(ctx, id); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return err
		}
	}
	return s.products.ReplaceCategories(ctx, product, categoryIDs)
}
