package catalog

import (
	"context"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// AttributeService manages the user-defined attribute metadata that the
// export field registry boots from.
type AttributeService struct {
	attributes catalog.AttributeRepository
}

// NewAttributeService creates a new AttributeService
func NewAttributeService(attributes catalog.AttributeRepository) *AttributeService {
	return &AttributeService{attributes: attributes}
}

// Create creates a new attribute with optional predefined options
func (s *AttributeService) Create(ctx context.Context, req CreateAttributeRequest) (*AttributeResponse, error) {
	attr, err := catalog.NewAttribute(req.Name, catalog.AttributeType(req.Type))
	if err != nil {
		return nil, err
	}
	attr.Unit = req.Unit
	attr.GroupID = req.GroupID
	if req.SortOrder != nil {
		attr.SortOrder = *req.SortOrder
	}

	if len(req.Options) > 0 && attr.Type != catalog.AttributeTypeSelect {
		return nil, shared.NewDomainError("INVALID_OPTIONS", "Only select attributes carry predefined options")
	}

	if err := s.attributes.Save(ctx, attr); err != nil {
		return nil, err
	}

	if len(req.Options) > 0 {
		if err := s.attributes.ReplaceOptions(ctx, attr, buildOptions(attr.ID, req.Options)); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, attr.ID)
}

// Get returns one attribute with its options and group
func (s *AttributeService) Get(ctx context.Context, id uint) (*AttributeResponse, error) {
	attr, err := s.attributes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToAttributeResponse(attr)
	return &resp, nil
}

// List returns all attributes ordered by group and sort order
func (s *AttributeService) List(ctx context.Context) ([]AttributeResponse, error) {
	attrs, err := s.attributes.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]AttributeResponse, len(attrs))
	for i := range attrs {
		items[i] = ToAttributeResponse(&attrs[i])
	}
	return items, nil
}

// Update applies a partial update to an attribute. The declared type
// never changes; replacing options rewires every product that references
// them, so options of an attribute in use are replaced as a whole.
func (s *AttributeService) Update(ctx context.Context, id uint, req UpdateAttributeRequest) (*AttributeResponse, error) {
	attr, err := s.attributes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Attribute name cannot be empty")
		}
		attr.Name = *req.Name
	}
	if req.Unit != nil {
		attr.Unit = *req.Unit
	}
	if req.GroupID != nil {
		attr.GroupID = req.GroupID
	}
	if req.SortOrder != nil {
		attr.SortOrder = *req.SortOrder
	}

	if err := s.attributes.Save(ctx, attr); err != nil {
		return nil, err
	}

	if req.Options != nil {
		if attr.Type != catalog.AttributeTypeSelect {
			return nil, shared.NewDomainError("INVALID_OPTIONS", "Only select attributes carry predefined options")
		}
		if err := s.attributes.ReplaceOptions(ctx, attr, buildOptions(attr.ID, req.Options)); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, attr.ID)
}

// Delete removes an attribute. Attributes still carried by products are
// protected to keep stored values resolvable.
func (s *AttributeService) Delete(ctx context.Context, id uint) error {
	inUse, err := s.attributes.HasValues(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return shared.NewDomainError("RESOURCE_IN_USE", "Attribute has product values and cannot be deleted")
	}
	return s.attributes.Delete(ctx, id)
}

func buildOptions(attributeID uint, values []string) []catalog.AttributeOption {
	options := make([]catalog.AttributeOption, len(values))
	for i, v := range values {
		options[i] = catalog.AttributeOption{
			AttributeID: attributeID,
			Value:       v,
			SortOrder:   i,
		}
	}
	return options
}
