// Package exportenc provides the output serializers for product exports:
// JSON, CSV, XML and XLSX encoders sharing one logical contract, an
// ordered row sequence plus an ordered column label list in, a byte
// stream with a content type out.
package exportenc

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopadmin/backend/internal/application/export"
	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Formats supported by ForFormat
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXML  = "xml"
	FormatXLSX = "xlsx"
)

// Boolean cell labels; every sink renders booleans as localized text, not
// true/false literals
const (
	cellTrue  = "Да"
	cellFalse = "Нет"
)

const cellTimeLayout = "2006-01-02 15:04:05"

// ForFormat returns the encoder for a format name
func ForFormat(format string) (export.Encoder, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON:
		return &JSONEncoder{}, nil
	case FormatCSV:
		return &CSVEncoder{}, nil
	case FormatXML:
		return &XMLEncoder{}, nil
	case FormatXLSX:
		return &XLSXEncoder{}, nil
	default:
		return nil, shared.ErrUnsupportedFormat
	}
}

// cellText renders one extracted value as display text
func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return cellTrue
		}
		return cellFalse
	case decimal.Decimal:
		return x.String()
	case time.Time:
		return x.Format(cellTimeLayout)
	default:
		return fmt.Sprint(x)
	}
}
