package excel_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jmcastano/almacen-api/internal/application/dto"
	"github.com/jmcastano/almacen-api/internal/infrastructure/excel"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func openSheet(t *testing.T, data []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err, "el archivo generado debe ser un XLSX válido")
	defer f.Close()
	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	return rows
}

// El detallado lleva encabezados en la fila 1 y un movimiento por fila.
func TestExportDetailed(t *testing.T) {
	data, err := excel.NewExporter().ExportDetailed([]dto.DetailedMovementRow{
		{
			ProductName:    "Harina",
			Category:       "General",
			QuantityChange: dec("10"),
			Unit:           "kg",
			TotalPrice:     dec("100.5"),
			CreatedAt:      time.Date(2026, 3, 15, 8, 30, 0, 0, time.UTC),
		},
	})
	require.NoError(t, err)

	rows := openSheet(t, data)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Producto", "Categoría", "Cantidad", "Unidad", "Precio Total", "Fecha"}, rows[0])
	assert.Equal(t, "Harina", rows[1][0])
	assert.Equal(t, "kg", rows[1][3])
	assert.Equal(t, "2026-03-15 08:30", rows[1][5])
}

// El resumen termina con la fila TOTAL de los totales generales.
func TestExportSummary_FilaTotal(t *testing.T) {
	data, err := excel.NewExporter().ExportSummary(dto.SummaryReportResponse{
		Groups: []dto.SummaryGroupRow{
			{ProductName: "Harina", Category: "General", Quantity: dec("15"), Unit: "kg", UnitPrice: dec("9"), TotalPrice: dec("135")},
			{ProductName: "Azúcar", Category: "General", Quantity: dec("2"), Unit: "kg", UnitPrice: dec("3"), TotalPrice: dec("6")},
		},
		TotalQuantity: dec("17"),
		TotalPrice:    dec("141"),
	})
	require.NoError(t, err)

	rows := openSheet(t, data)
	require.Len(t, rows, 4, "encabezado + 2 grupos + fila TOTAL")
	assert.Equal(t, "Harina", rows[1][0])
	assert.Equal(t, "Azúcar", rows[2][0])

	total := rows[3]
	assert.Equal(t, "TOTAL", total[0])
	assert.Equal(t, "17", total[2])
	assert.Equal(t, "141", total[5])
}

// Sin movimientos: solo los encabezados.
func TestExportDetailed_Vacio(t *testing.T) {
	data, err := excel.NewExporter().ExportDetailed(nil)
	require.NoError(t, err)

	rows := openSheet(t, data)
	assert.Len(t, rows, 1)
}
