package exportenc

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/shopadmin/backend/internal/application/export"
	"github.com/shopadmin/backend/internal/domain/shared"
)

var testColumns = []export.Column{
	{Key: "name", Label: "Название"},
	{Key: "price", Label: "Цена"},
	{Key: "is_active", Label: "Активен"},
}

var testRows = []map[string]any{
	{"name": "Дрель PRO", "price": decimal.New(129999, -2), "is_active": true},
	{"name": "Перфоратор", "price": decimal.New(250000, -2), "is_active": false},
	{"name": "Шуруповёрт"},
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		format      string
		contentType string
		extension   string
	}{
		{"json", "application/json; charset=utf-8", "json"},
		{"csv", "text/csv; charset=utf-8", "csv"},
		{"xml", "application/xml; charset=utf-8", "xml"},
		{"xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx"},
		{"  XLSX ", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx"},
		{"Json", "application/json; charset=utf-8", "json"},
	}
	for _, tt := range tests {
		enc, err := ForFormat(tt.format)
		require.NoError(t, err, tt.format)
		assert.Equal(t, tt.contentType, enc.ContentType())
		assert.Equal(t, tt.extension, enc.Extension())
	}
}

func TestForFormatUnknown(t *testing.T) {
	for _, format := range []string{"", "pdf", "yaml"} {
		enc, err := ForFormat(format)
		assert.Nil(t, enc)
		assert.ErrorIs(t, err, shared.ErrUnsupportedFormat)
	}
}

func TestCellText(t *testing.T) {
	assert.Equal(t, "", cellText(nil))
	assert.Equal(t, "Дрель", cellText("Дрель"))
	assert.Equal(t, "Да", cellText(true))
	assert.Equal(t, "Нет", cellText(false))
	assert.Equal(t, "1299.99", cellText(decimal.New(129999, -2)))
	assert.Equal(t, "2026-03-01 15:04:05", cellText(time.Date(2026, 3, 1, 15, 4, 5, 0, time.UTC)))
	assert.Equal(t, "42", cellText(42))
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONEncoder{}).Encode(&buf, testColumns, testRows))

	want := `[{"Название":"Дрель PRO","Цена":"1299.99","Активен":"Да"},` +
		`{"Название":"Перфоратор","Цена":"2500","Активен":"Нет"},` +
		`{"Название":"Шуруповёрт","Цена":null,"Активен":null}]` + "\n"
	assert.Equal(t, want, buf.String())
}

func TestJSONEncoderEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONEncoder{}).Encode(&buf, testColumns, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestCSVEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&CSVEncoder{}).Encode(&buf, testColumns, testRows))

	raw := buf.Bytes()
	require.True(t, bytes.HasPrefix(raw, utf8BOM))

	records, err := csv.NewReader(bytes.NewReader(raw[len(utf8BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Название", "Цена", "Активен"}, records[0])
	assert.Equal(t, []string{"Дрель PRO", "1299.99", "Да"}, records[1])
	assert.Equal(t, []string{"Перфоратор", "2500", "Нет"}, records[2])
	assert.Equal(t, []string{"Шуруповёрт", "", ""}, records[3])
}

func TestCSVEncoderDelimiter(t *testing.T) {
	var buf bytes.Buffer
	enc := &CSVEncoder{Delimiter: ';'}
	require.NoError(t, enc.Encode(&buf, testColumns, testRows[:1]))

	reader := csv.NewReader(bytes.NewReader(buf.Bytes()[len(utf8BOM):]))
	reader.Comma = ';'
	records, err := reader.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Дрель PRO", "1299.99", "Да"}, records[1])
}

func TestCSVEncoderWindows1251(t *testing.T) {
	var buf bytes.Buffer
	enc := &CSVEncoder{Windows1251: true}
	require.NoError(t, enc.Encode(&buf, testColumns, testRows[:1]))

	raw := buf.Bytes()
	assert.False(t, bytes.HasPrefix(raw, utf8BOM))
	assert.Equal(t, "text/csv; charset=windows-1251", enc.ContentType())

	decoded, err := charmap.Windows1251.NewDecoder().Bytes(raw)
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(decoded)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Название", "Цена", "Активен"}, records[0])
	assert.Equal(t, []string{"Дрель PRO", "1299.99", "Да"}, records[1])
}

func TestXMLEncoder(t *testing.T) {
	columns := []export.Column{
		{Key: "name", Label: "Название"},
		{Key: "attribute.7", Label: "Мощность, Вт"},
	}
	rows := []map[string]any{
		{"name": "Дрель <PRO> & Co", "attribute.7": decimal.New(750, 0)},
	}

	var buf bytes.Buffer
	require.NoError(t, (&XMLEncoder{}).Encode(&buf, columns, rows))

	want := "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<products>\n" +
		"  <product><name>Дрель &lt;PRO&gt; &amp; Co</name><attribute_7>750</attribute_7></product>\n" +
		"</products>\n"
	assert.Equal(t, want, buf.String())
}

func TestElementName(t *testing.T) {
	assert.Equal(t, "attribute_7", elementName("attribute.7"))
	assert.Equal(t, "discounted_price", elementName("discounted_price"))
	assert.Equal(t, "field_7", elementName("7"))
	assert.Equal(t, "field", elementName("!!!"))
}

func TestXLSXEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&XLSXEncoder{}).Encode(&buf, testColumns, testRows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{xlsxSheet}, f.GetSheetList())

	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Название", "Цена", "Активен"}, rows[0])
	assert.Equal(t, "Дрель PRO", rows[1][0])
	assert.Equal(t, "Да", rows[1][2])
	assert.Equal(t, "Нет", rows[2][2])

	// prices stay numeric cells
	price, err := f.GetCellValue(xlsxSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "1299.99", price)
}
