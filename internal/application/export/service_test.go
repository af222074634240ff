package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shopadmin/backend/internal/domain/finance"
	"github.com/shopadmin/backend/internal/domain/identity"
	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/shopadmin/backend/internal/infrastructure/persistence"
)

// lineEncoder is a trivial Encoder that writes "name=value" pairs, one
// line per row, so tests can assert on extraction without pulling in the
// real serializers.
type lineEncoder struct{}

func (e *lineEncoder) ContentType() string { return "text/plain" }

func (e *lineEncoder) Extension() string { return "txt" }

func (e *lineEncoder) Encode(w io.Writer, columns []Column, rows []map[string]any) error {
	for _, row := range rows {
		parts := make([]string, len(columns))
		for i, col := range columns {
			parts[i] = fmt.Sprintf("%s=%v", col.Label, row[col.Key])
		}
		if _, err := io.WriteString(w, strings.Join(parts, "|")+"\n"); err != nil {
			return err
		}
	}
	return nil
}

type fakeArtifactStore struct {
	uploads map[string][]byte
}

func (s *fakeArtifactStore) Upload(_ context.Context, key string, body io.Reader, _ string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if s.uploads == nil {
		s.uploads = map[string][]byte{}
	}
	s.uploads[key] = data
	return nil
}

func (s *fakeArtifactStore) DownloadURL(_ context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	return "https://exports.test/" + key, time.Now().Add(expiresIn), nil
}

func (s *fakeArtifactStore) Delete(_ context.Context, key string) error {
	delete(s.uploads, key)
	return nil
}

func newExportService(t *testing.T, opts ...ServiceOption) (*Service, *gorm.DB) {
	t.Helper()
	db := newFilterDB(t)
	require.NoError(t, db.AutoMigrate(&finance.Currency{}, &identity.User{}))
	seedFilterData(t, db)

	service := NewService(
		db,
		persistence.NewGormAttributeRepository(db),
		persistence.NewGormCurrencyRepository(db),
		persistence.NewGormUserRepository(db),
		zap.NewNop(),
		opts...,
	)
	return service, db
}

func TestServiceFiltersAndFields(t *testing.T) {
	service, _ := newExportService(t)
	ctx := context.Background()

	filters, err := service.Filters(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, filters)

	fields, err := service.Fields(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, fields)
}

func TestServiceCount(t *testing.T) {
	service, _ := newExportService(t)
	ctx := context.Background()

	total, err := service.Count(ctx, Request{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	total, err = service.Count(ctx, Request{
		Filters: []byte(`[{"field": "is_active", "operator": "=", "value": true}]`),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, err = service.Count(ctx, Request{Filters: []byte(`{broken`)})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_FILTER_INPUT", domainErr.Code)
}

func TestServicePreview(t *testing.T) {
	service, _ := newExportService(t)
	ctx := context.Background()

	preview, err := service.Preview(ctx, Request{
		Fields: []byte(`["name", "sku"]`),
		Limit:  2,
	})
	require.NoError(t, err)

	// the total counts all matches even when the page is capped
	assert.Equal(t, int64(3), preview.Total)
	require.Len(t, preview.Rows, 2)
	require.Len(t, preview.Columns, 2)
	assert.Equal(t, "name", preview.Columns[0].Key)
	assert.Equal(t, "Drill PRO", preview.Rows[0]["name"])
	assert.Equal(t, "Circular saw", preview.Rows[1]["name"])
}

func TestServicePreviewRequiresFields(t *testing.T) {
	service, _ := newExportService(t)

	var domainErr *shared.DomainError
	_, err := service.Preview(context.Background(), Request{})
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_FIELD_INPUT", domainErr.Code)

	_, err = service.Preview(context.Background(), Request{Fields: []byte(`[{"label": "no key"}]`)})
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_FIELD_INPUT", domainErr.Code)
}

func TestServiceGenerate(t *testing.T) {
	service, _ := newExportService(t)
	ctx := context.Background()

	var buf bytes.Buffer
	info, err := service.Generate(ctx, Request{
		Filters: []byte(`[{"field": "is_active", "operator": "=", "value": true}]`),
		Fields:  []byte(`["name", {"key": "base_price", "label": "Цена"}]`),
	}, &lineEncoder{}, &buf)
	require.NoError(t, err)

	assert.Equal(t, "text/plain", info.ContentType)
	assert.Regexp(t, `^products_\d{8}_\d{6}_[0-9a-f]{8}\.txt$`, info.Filename)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Drill PRO")
	assert.Contains(t, lines[0], "Цена=100")
	assert.Contains(t, lines[1], "Hammer")
}

func TestServiceGenerateUnknownClient(t *testing.T) {
	service, _ := newExportService(t)
	ctx := context.Background()

	// a missing client skips personalization instead of failing the run
	missing := uint(404)
	var buf bytes.Buffer
	_, err := service.Generate(ctx, Request{
		Fields:   []byte(`["name"]`),
		ClientID: &missing,
	}, &lineEncoder{}, &buf)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimRight(buf.String(), "\n"), "\n"), 3)
}

func TestServiceArchive(t *testing.T) {
	ctx := context.Background()

	t.Run("without store", func(t *testing.T) {
		service, _ := newExportService(t)
		_, err := service.Archive(ctx, Request{Fields: []byte(`["name"]`)}, &lineEncoder{}, time.Hour)
		assert.ErrorIs(t, err, shared.ErrStorageDisabled)
	})

	t.Run("with store", func(t *testing.T) {
		store := &fakeArtifactStore{}
		service, _ := newExportService(t, WithArtifactStore(store))

		artifact, err := service.Archive(ctx, Request{Fields: []byte(`["name"]`)}, &lineEncoder{}, time.Hour)
		require.NoError(t, err)
		assert.Equal(t, "https://exports.test/"+artifact.Filename, artifact.URL)
		assert.WithinDuration(t, time.Now().Add(time.Hour), artifact.ExpiresAt, 5*time.Second)

		stored, ok := store.uploads[artifact.Filename]
		require.True(t, ok)
		assert.Equal(t, 3, strings.Count(string(stored), "\n"))
	})
}
