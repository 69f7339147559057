// Package excel implementa el adaptador de exportación de reportes a hojas
// de cálculo XLSX con excelize.
package excel

import (
	"fmt"

	"github.com/jmcastano/almacen-api/internal/application/dto"
	"github.com/jmcastano/almacen-api/internal/application/usecase"
	"github.com/xuri/excelize/v2"
)

var _ usecase.SpreadsheetExporter = (*Exporter)(nil)

const sheetName = "Sheet1"

// Exporter produce los archivos XLSX de los reportes detallado y resumen.
type Exporter struct{}

// NewExporter construye el adaptador.
func NewExporter() *Exporter {
	return &Exporter{}
}

// ExportDetailed genera la hoja del reporte detallado: un movimiento por fila,
// encabezados en la fila 1.
func (e *Exporter) ExportDetailed(rows []dto.DetailedMovementRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	writeHeaders(f, "Producto", "Categoría", "Cantidad", "Unidad", "Precio Total", "Fecha")
	for i, d := range rows {
		rowNo := i + 2
		f.SetCellValue(sheetName, "A"+fmt.Sprint(rowNo), d.ProductName)
		f.SetCellValue(sheetName, "B"+fmt.Sprint(rowNo), d.Category)
		f.SetCellValue(sheetName, "C"+fmt.Sprint(rowNo), d.QuantityChange.InexactFloat64())
		f.SetCellValue(sheetName, "D"+fmt.Sprint(rowNo), d.Unit)
		f.SetCellValue(sheetName, "E"+fmt.Sprint(rowNo), d.TotalPrice.InexactFloat64())
		f.SetCellValue(sheetName, "F"+fmt.Sprint(rowNo), d.CreatedAt.Format("2006-01-02 15:04"))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportSummary genera la hoja del resumen: un grupo por fila más la fila
// final de totales generales.
func (e *Exporter) ExportSummary(sum dto.SummaryReportResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	writeHeaders(f, "Producto", "Categoría", "Cantidad", "Unidad", "Precio Unitario", "Precio Total")
	rowNo := 2
	for _, g := range sum.Groups {
		f.SetCellValue(sheetName, "A"+fmt.Sprint(rowNo), g.ProductName)
		f.SetCellValue(sheetName, "B"+fmt.Sprint(rowNo), g.Category)
		f.SetCellValue(sheetName, "C"+fmt.Sprint(rowNo), g.Quantity.InexactFloat64())
		f.SetCellValue(sheetName, "D"+fmt.Sprint(rowNo), g.Unit)
		f.SetCellValue(sheetName, "E"+fmt.Sprint(rowNo), g.UnitPrice.InexactFloat64())
		f.SetCellValue(sheetName, "F"+fmt.Sprint(rowNo), g.TotalPrice.InexactFloat64())
		rowNo++
	}
	f.SetCellValue(sheetName, "A"+fmt.Sprint(rowNo), "TOTAL")
	f.SetCellValue(sheetName, "C"+fmt.Sprint(rowNo), sum.TotalQuantity.InexactFloat64())
	f.SetCellValue(sheetName, "F"+fmt.Sprint(rowNo), sum.TotalPrice.InexactFloat64())

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeaders(f *excelize.File, headings ...string) {
	col := 'A'
	for _, h := range headings {
		f.SetCellValue(sheetName, string(col)+"1", h)
		col++
	}
}
