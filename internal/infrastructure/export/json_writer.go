package exportenc

import (
	"encoding/json"
	"io"
	"time"

	"github.com/shopadmin/backend/internal/application/export"
)

// JSONEncoder streams rows as a JSON array of objects. Object members keep
// the column order of the selection; booleans become their localized
// labels like in every other sink.
type JSONEncoder struct{}

// ContentType implements export.Encoder
func (e *JSONEncoder) ContentType() string { return "application/json; charset=utf-8" }

// Extension implements export.Encoder
func (e *JSONEncoder) Extension() string { return "json" }

// Encode implements export.Encoder
func (e *JSONEncoder) Encode(w io.Writer, columns []export.Column, rows []map[string]any) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	for i, row := range rows {
		if i > 0 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		if err := writeJSONRow(w, columns, row); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "]\n")
	return err
}

// writeJSONRow writes one object by hand so member order follows the
// column order instead of Go's map iteration
func writeJSONRow(w io.Writer, columns []export.Column, row map[string]any) error {
	if _, err := io.WriteString(w, "{"); err != nil {
		return err
	}
	for i, col := range columns {
		if i > 0 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		key, err := json.Marshal(col.Label)
		if err != nil {
			return err
		}
		value, err := json.Marshal(jsonValue(row[col.Key]))
		if err != nil {
			return err
		}
		if _, err := w.Write(key); err != nil {
			return err
		}
		if _, err := io.WriteString(w, ":"); err != nil {
			return err
		}
		if _, err := w.Write(value); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "}")
	return err
}

// jsonValue keeps scalars typed but localizes booleans and formats times
func jsonValue(v any) any {
	switch x := v.(type) {
	case bool:
		return cellText(x)
	case time.Time:
		return cellText(x)
	default:
		return v
	}
}
