package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/finance"
	"github.com/shopadmin/backend/internal/domain/identity"
	"github.com/shopadmin/backend/internal/domain/shared"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Preview size limits
const (
	defaultPreviewLimit = 10
	maxPreviewLimit     = 100
)

// Encoder writes extracted rows to an output stream. Implementations live
// in the infrastructure layer; the service only needs the logical contract.
type Encoder interface {
	// ContentType is the MIME type of the encoded stream
	ContentType() string

	// Extension is the file extension without the dot
	Extension() string

	// Encode writes the ordered columns and rows to w
	Encode(w io.Writer, columns []Column, rows []map[string]any) error
}

// Request is the common input of preview, count and generate: a filter
// expression, an ordered field selection and an optional client whose user
// personalizes price and stock values.
type Request struct {
	Filters  json.RawMessage `json:"filters"`
	Fields   json.RawMessage `json:"fields"`
	ClientID *uint           `json:"client_id"`
	Limit    int             `json:"limit"`
}

// Preview is a capped extraction run returned as JSON to the admin UI
type Preview struct {
	Columns []Column         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
	Total   int64            `json:"total"`
}

// FileInfo describes a generated export artifact
type FileInfo struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// Artifact describes an export stored in object storage
type Artifact struct {
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	URL         string    `json:"url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Service runs product exports: it boots a field registry per invocation,
// compiles the filter expression into the product query, extracts rows
// through the registry's fields and hands them to an encoder. Nothing is
// cached across invocations.
type Service struct {
	db         *gorm.DB
	attributes catalog.AttributeRepository
	currencies finance.CurrencyRepository
	users      identity.UserRepository
	artifacts  ArtifactStore
	logger     *zap.Logger
}

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithArtifactStore enables storing generated exports in object storage
func WithArtifactStore(store ArtifactStore) ServiceOption {
	return func(s *Service) {
		s.artifacts = store
	}
}

// NewService creates a new export Service
func NewService(
	db *gorm.DB,
	attributes catalog.AttributeRepository,
	currencies finance.CurrencyRepository,
	users identity.UserRepository,
	logger *zap.Logger,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		db:         db,
		attributes: attributes,
		currencies: currencies,
		users:      users,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// boot builds the per-invocation registry from current attribute metadata
func (s *Service) boot(ctx context.Context) (*Registry, error) {
	attrs, err := s.attributes.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load attribute metadata: %w", err)
	}
	return NewRegistry(attrs), nil
}

// Filters lists the available filter fields grouped for the admin UI
func (s *Service) Filters(ctx context.Context) ([]GroupView, error) {
	registry, err := s.boot(ctx)
	if err != nil {
		return nil, err
	}
	return registry.AvailableFilters(), nil
}

// Fields lists the available export fields grouped for the admin UI
func (s *Service) Fields(ctx context.Context) ([]GroupView, error) {
	registry, err := s.boot(ctx)
	if err != nil {
		return nil, err
	}
	return registry.AvailableFields(), nil
}

// Count returns the number of products matching the filter expression
// without fetching them
func (s *Service) Count(ctx context.Context, req Request) (int64, error) {
	registry, err := s.boot(ctx)
	if err != nil {
		return 0, err
	}
	group, err := ParseFilterInput(req.Filters)
	if err != nil {
		return 0, shared.NewDomainError("INVALID_FILTER_INPUT", err.Error())
	}

	var total int64
	tx := NewCompiler(registry).Apply(s.productQuery(ctx), group)
	if err := tx.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}

// Preview runs a capped export and returns the rows as structured data
func (s *Service) Preview(ctx context.Context, req Request) (*Preview, error) {
	run, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultPreviewLimit
	}
	if limit > maxPreviewLimit {
		limit = maxPreviewLimit
	}

	var total int64
	if err := run.query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	products, err := run.fetch(limit)
	if err != nil {
		return nil, err
	}

	return &Preview{
		Columns: run.extractor.Columns(run.selections),
		Rows:    run.rows(ctx, products),
		Total:   total,
	}, nil
}

// Generate runs the full export and streams the encoded file to w
func (s *Service) Generate(ctx context.Context, req Request, encoder Encoder, w io.Writer) (*FileInfo, error) {
	run, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	// The filtered result set is materialized before mapping; memory use
	// is bounded by the result set size, not by the encoded output.
	products, err := run.fetch(0)
	if err != nil {
		return nil, err
	}

	columns := run.extractor.Columns(run.selections)
	rows := run.rows(ctx, products)
	if err := encoder.Encode(w, columns, rows); err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	info := &FileInfo{
		Filename:    exportFilename(encoder.Extension()),
		ContentType: encoder.ContentType(),
	}
	s.logger.Info("export generated",
		zap.String("filename", info.Filename),
		zap.Int("rows", len(rows)),
		zap.Int("columns", len(columns)),
	)
	return info, nil
}

// Archive generates the export into object storage and returns a
// presigned download link instead of streaming the file.
func (s *Service) Archive(ctx context.Context, req Request, encoder Encoder, linkTTL time.Duration) (*Artifact, error) {
	if s.artifacts == nil {
		return nil, shared.ErrStorageDisabled
	}

	var buf bytes.Buffer
	info, err := s.Generate(ctx, req, encoder, &buf)
	if err != nil {
		return nil, err
	}

	if err := s.artifacts.Upload(ctx, info.Filename, &buf, info.ContentType); err != nil {
		return nil, fmt.Errorf("store export artifact: %w", err)
	}

	url, expiresAt, err := s.artifacts.DownloadURL(ctx, info.Filename, linkTTL)
	if err != nil {
		return nil, fmt.Errorf("presign export artifact: %w", err)
	}

	return &Artifact{
		Filename:    info.Filename,
		ContentType: info.ContentType,
		URL:         url,
		ExpiresAt:   expiresAt,
	}, nil
}

// run holds the per-invocation state of one export
type run struct {
	query      *gorm.DB
	selections []FieldSelection
	extractor  *Extractor
}

func (s *Service) prepare(ctx context.Context, req Request) (*run, error) {
	registry, err := s.boot(ctx)
	if err != nil {
		return nil, err
	}

	group, err := ParseFilterInput(req.Filters)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_FILTER_INPUT", err.Error())
	}
	selections, err := ParseFieldSelection(req.Fields)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_FIELD_INPUT", err.Error())
	}
	if len(selections) == 0 {
		return nil, shared.NewDomainError("INVALID_FIELD_INPUT", "At least one export field is required")
	}

	viewer, err := s.resolveViewer(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}

	query := NewCompiler(registry).Apply(s.productQuery(ctx), group)
	for _, relation := range registry.EagerLoadFor(Keys(selections)) {
		query = query.Preload(relation)
	}

	return &run{
		query:      query.Order("products.id"),
		selections: selections,
		extractor:  NewExtractor(registry, s.currencies, viewer),
	}, nil
}

func (s *Service) productQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&catalog.Product{})
}

// resolveViewer loads the personalizing user. A missing user degrades to
// an unpersonalized run rather than failing the export.
func (s *Service) resolveViewer(ctx context.Context, clientID *uint) (*identity.User, error) {
	if clientID == nil {
		return nil, nil
	}
	viewer, err := s.users.FindByID(ctx, *clientID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("export client not found, personalization skipped", zap.Uint("client_id", *clientID))
			return nil, nil
		}
		return nil, err
	}
	return viewer, nil
}

func (r *run) fetch(limit int) ([]catalog.Product, error) {
	tx := r.query
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	var products []catalog.Product
	if err := tx.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	return products, nil
}

func (r *run) rows(ctx context.Context, products []catalog.Product) []map[string]any {
	rows := make([]map[string]any, len(products))
	for i := range products {
		rows[i] = r.extractor.Row(ctx, &products[i], r.selections)
	}
	return rows
}

func exportFilename(extension string) string {
	stamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("products_%s_%s.%s", stamp, uuid.NewString()[:8], extension)
}
