package exportenc

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/shopadmin/backend/internal/application/export"
)

// XMLEncoder writes <products><product>...</product></products> with one
// child element per column. Element names derive from field keys, not
// labels, since labels are free text.
type XMLEncoder struct{}

// ContentType implements export.Encoder
func (e *XMLEncoder) ContentType() string { return "application/xml; charset=utf-8" }

// Extension implements export.Encoder
func (e *XMLEncoder) Extension() string { return "xml" }

// Encode implements export.Encoder
func (e *XMLEncoder) Encode(w io.Writer, columns []export.Column, rows []map[string]any) error {
	if _, err := io.WriteString(w, xml.Header+"<products>\n"); err != nil {
		return err
	}

	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = elementName(col.Key)
	}

	for _, row := range rows {
		if _, err := io.WriteString(w, "  <product>"); err != nil {
			return err
		}
		for i, col := range columns {
			if err := writeElement(w, names[i], cellText(row[col.Key])); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</product>\n"); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</products>\n")
	return err
}

func writeElement(w io.Writer, name, text string) error {
	if _, err := io.WriteString(w, "<"+name+">"); err != nil {
		return err
	}
	if err := xml.EscapeText(w, []byte(text)); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</"+name+">")
	return err
}

// elementName maps a field key to a valid XML element name
func elementName(key string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		case r == '.':
			return '_'
		default:
			return -1
		}
	}, key)
	if name == "" {
		return "field"
	}
	if c := name[0]; c >= '0' && c <= '9' {
		name = "field_" + name
	}
	return name
}
