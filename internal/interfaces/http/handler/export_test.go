package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shopadmin/backend/internal/application/export"
	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/finance"
	"github.com/shopadmin/backend/internal/domain/identity"
	"github.com/shopadmin/backend/internal/infrastructure/cache"
	"github.com/shopadmin/backend/internal/infrastructure/persistence"
	"github.com/shopadmin/backend/internal/interfaces/http/dto"
)

func newExportRouter(t *testing.T, opts ...ExportHandlerOption) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalog.Brand{},
		&catalog.ProductModel{},
		&catalog.Category{},
		&catalog.Certificate{},
		&catalog.Region{},
		&catalog.Warehouse{},
		&catalog.Product{},
		&catalog.ProductStock{},
		&catalog.AttributeGroup{},
		&catalog.Attribute{},
		&catalog.AttributeOption{},
		&catalog.ProductAttributeValue{},
		&finance.Currency{},
		&identity.User{},
	))

	products := []catalog.Product{
		{Name: "Дрель", SKU: "DRL-1", BasePrice: decimal.RequireFromString("1000"), IsActive: true},
		{Name: "Пила", SKU: "SAW-1", BasePrice: decimal.RequireFromString("500"), IsActive: false},
	}
	require.NoError(t, db.Create(&products).Error)

	service := export.NewService(
		db,
		persistence.NewGormAttributeRepository(db),
		persistence.NewGormCurrencyRepository(db),
		persistence.NewGormUserRepository(db),
		zap.NewNop(),
	)

	engine := gin.New()
	api := engine.Group("/api/v1")
	NewExportHandler(service, opts...).RegisterRoutes(api)
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestExportFieldsEndpoint(t *testing.T) {
	engine := newExportRouter(t)

	w := doJSON(t, engine, http.MethodGet, "/api/v1/export/fields", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data)
}

func TestExportCountEndpoint(t *testing.T) {
	engine := newExportRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/export/count",
		`{"filters": [{"field": "is_active", "operator": "=", "value": true}]}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), data["total"])
}

func TestExportGenerateCSV(t *testing.T) {
	engine := newExportRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/export/generate?format=csv",
		`{"fields": ["name", "sku"]}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="products_`)
	assert.Contains(t, w.Body.String(), "Дрель")
	assert.Contains(t, w.Body.String(), "SAW-1")
}

func TestExportGenerateUnknownFormat(t *testing.T) {
	engine := newExportRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/export/generate?format=pdf",
		`{"fields": ["name"]}`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNSUPPORTED_FORMAT", resp.Error.Code)
}

func TestExportGenerateIdempotency(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { store.Close() })
	engine := newExportRouter(t, WithIdempotencyStore(store, time.Hour))

	body := `{"fields": ["name"]}`
	header := map[string]string{IdempotencyKeyHeader: "run-1"}

	first := doJSON(t, engine, http.MethodPost, "/api/v1/export/generate?format=json", body, header)
	require.Equal(t, http.StatusOK, first.Code)

	replay := doJSON(t, engine, http.MethodPost, "/api/v1/export/generate?format=json", body, header)
	require.Equal(t, http.StatusConflict, replay.Code)
	resp := decodeResponse(t, replay)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "DUPLICATE_REQUEST", resp.Error.Code)

	// a different key is a fresh run
	other := doJSON(t, engine, http.MethodPost, "/api/v1/export/generate?format=json", body,
		map[string]string{IdempotencyKeyHeader: "run-2"})
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestExportArchiveDisabled(t *testing.T) {
	engine := newExportRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/export/archive",
		`{"fields": ["name"]}`, nil)
	require.Equal(t, http.StatusNotImplemented, w.Code)

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "STORAGE_DISABLED", resp.Error.Code)
}
