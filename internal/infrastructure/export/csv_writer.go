package exportenc

import (
	"encoding/csv"
	"io"

	"github.com/shopadmin/backend/internal/application/export"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVEncoder writes a header row of column labels followed by one record
// per row. UTF-8 output carries a byte-order mark so spreadsheet tools
// detect the encoding; legacy tools can request Windows-1251 instead.
type CSVEncoder struct {
	// Delimiter overrides the comma field separator
	Delimiter rune

	// Windows1251 transcodes the output for legacy CIS spreadsheet tools
	Windows1251 bool
}

// ContentType implements export.Encoder
func (e *CSVEncoder) ContentType() string {
	if e.Windows1251 {
		return "text/csv; charset=windows-1251"
	}
	return "text/csv; charset=utf-8"
}

// Extension implements export.Encoder
func (e *CSVEncoder) Extension() string { return "csv" }

// Encode implements export.Encoder
func (e *CSVEncoder) Encode(w io.Writer, columns []export.Column, rows []map[string]any) error {
	out := w
	if e.Windows1251 {
		out = transform.NewWriter(w, charmap.Windows1251.NewEncoder())
	} else {
		if _, err := w.Write(utf8BOM); err != nil {
			return err
		}
	}

	writer := csv.NewWriter(out)
	if e.Delimiter != 0 {
		writer.Comma = e.Delimiter
	}

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Label
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			record[i] = cellText(row[col.Key])
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	if closer, ok := out.(io.Closer); ok && e.Windows1251 {
		return closer.Close()
	}
	return nil
}
