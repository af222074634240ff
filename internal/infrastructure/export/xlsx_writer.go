package exportenc

import (
	"io"

	"github.com/shopadmin/backend/internal/application/export"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Products"

// XLSXEncoder writes an Excel workbook with one sheet, a bold header row
// of column labels and one worksheet row per product.
type XLSXEncoder struct{}

// ContentType implements export.Encoder
func (e *XLSXEncoder) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension implements export.Encoder
func (e *XLSXEncoder) Extension() string { return "xlsx" }

// Encode implements export.Encoder
func (e *XLSXEncoder) Encode(w io.Writer, columns []export.Column, rows []map[string]any) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(xlsxSheet)
	if err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: col.Label}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		record := make([]any, len(columns))
		for j, col := range columns {
			record[j] = cellValue(row[col.Key])
		}
		if err := sw.SetRow(cell, record); err != nil {
			return err
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}
	_, err = f.WriteTo(w)
	return err
}

// cellValue keeps numbers numeric in the worksheet while localizing
// booleans and formatting the rest as text
func cellValue(v any) any {
	switch x := v.(type) {
	case int, int64, uint, float64:
		return x
	case decimal.Decimal:
		f, _ := x.Float64()
		return f
	default:
		return cellText(v)
	}
}
