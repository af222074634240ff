package handler

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shopadmin/backend/internal/application/export"
	"github.com/shopadmin/backend/internal/domain/shared"
	exportenc "github.com/shopadmin/backend/internal/infrastructure/export"
)

// IdempotencyKeyHeader carries the client-chosen deduplication key for
// export generation. A repeated key within the TTL answers 409 instead of
// producing a second file.
const IdempotencyKeyHeader = "Idempotency-Key"

// ExportHandler exposes the product export engine: field and filter
// discovery, count, preview, file generation and archiving to object
// storage.
type ExportHandler struct {
	BaseHandler
	service        *export.Service
	idempotency    shared.IdempotencyStore
	idempotencyTTL time.Duration
	linkTTL        time.Duration
	archiving      bool
}

// ExportHandlerOption customizes an ExportHandler
type ExportHandlerOption func(*ExportHandler)

// WithIdempotencyStore enables Idempotency-Key deduplication on generate
func WithIdempotencyStore(store shared.IdempotencyStore, ttl time.Duration) ExportHandlerOption {
	return func(h *ExportHandler) {
		h.idempotency = store
		h.idempotencyTTL = ttl
	}
}

// WithArchiving enables the archive endpoint; linkTTL bounds the lifetime
// of returned download links
func WithArchiving(linkTTL time.Duration) ExportHandlerOption {
	return func(h *ExportHandler) {
		h.archiving = true
		h.linkTTL = linkTTL
	}
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(service *export.Service, opts ...ExportHandlerOption) *ExportHandler {
	h := &ExportHandler{
		service:        service,
		idempotencyTTL: shared.DefaultIdempotencyConfig().TTL,
		linkTTL:        15 * time.Minute,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes registers export routes
func (h *ExportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	exports := rg.Group("/export")
	{
		exports.GET("/filters", h.Filters)
		exports.GET("/fields", h.Fields)
		exports.POST("/count", h.Count)
		exports.POST("/preview", h.Preview)
		exports.POST("/generate", h.Generate)
		exports.POST("/archive", h.Archive)
	}
}

// Filters lists the filterable fields grouped for the admin UI
func (h *ExportHandler) Filters(c *gin.Context) {
	groups, err := h.service.Filters(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, groups)
}

// Fields lists the extractable fields grouped for the admin UI
func (h *ExportHandler) Fields(c *gin.Context) {
	groups, err := h.service.Fields(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, groups)
}

// Count returns how many products match the filter expression
func (h *ExportHandler) Count(c *gin.Context) {
	var req export.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	total, err := h.service.Count(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"total": total})
}

// Preview runs a capped extraction and returns the rows as JSON
func (h *ExportHandler) Preview(c *gin.Context) {
	var req export.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	preview, err := h.service.Preview(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, preview)
}

// Generate runs a full export and streams the encoded file back as an
// attachment. The format comes from the ?format= query parameter and
// defaults to xlsx.
func (h *ExportHandler) Generate(c *gin.Context) {
	if !h.claimIdempotencyKey(c) {
		return
	}

	var req export.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	encoder, err := exportenc.ForFormat(c.DefaultQuery("format", exportenc.FormatXLSX))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	info, err := h.service.Generate(c.Request.Context(), req, encoder, &buf)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+info.Filename+`"`)
	c.Header("Content-Length", strconv.Itoa(buf.Len()))
	c.Data(http.StatusOK, info.ContentType, buf.Bytes())
}

// Archive runs a full export, stores the file in object storage and
// returns a time-limited download link instead of the bytes.
func (h *ExportHandler) Archive(c *gin.Context) {
	if !h.archiving {
		h.HandleError(c, shared.ErrStorageDisabled)
		return
	}
	if !h.claimIdempotencyKey(c) {
		return
	}

	var req export.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	encoder, err := exportenc.ForFormat(c.DefaultQuery("format", exportenc.FormatXLSX))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	artifact, err := h.service.Archive(c.Request.Context(), req, encoder, h.linkTTL)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, artifact)
}

// claimIdempotencyKey enforces Idempotency-Key deduplication. A missing
// header or an unconfigured store passes through; a replayed key answers
// 409. Store failures pass through rather than blocking exports.
func (h *ExportHandler) claimIdempotencyKey(c *gin.Context) bool {
	key := c.GetHeader(IdempotencyKeyHeader)
	if key == "" || h.idempotency == nil {
		return true
	}
	fresh, err := h.idempotency.MarkProcessed(c.Request.Context(), key, h.idempotencyTTL)
	if err != nil {
		return true
	}
	if !fresh {
		h.HandleError(c, shared.ErrDuplicateRequest)
		return false
	}
	return true
}
