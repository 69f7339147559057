package report_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcastano/almacen-api/internal/domain/report"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func line(name, category, qty, unit, price string) report.MovementLine {
	return report.MovementLine{
		ProductName:    name,
		Category:       category,
		QuantityChange: dec(qty),
		Unit:           unit,
		TotalPrice:     dec(price),
	}
}

// Agrupación por nombre de producto, conservando el orden de primera aparición.
func TestSummarize_AgrupaPorProductoEnOrdenDeAparicion(t *testing.T) {
	sum := report.Summarize([]report.MovementLine{
		line("Harina", "General", "10", "kg", "100.00"),
		line("Azúcar", "General", "5", "kg", "40.00"),
		line("Harina", "General", "5", "kg", "40.00"),
	})

	require.Len(t, sum.Groups, 2, "debe haber un grupo por producto")
	assert.Equal(t, "Harina", sum.Groups[0].ProductName)
	assert.Equal(t, "Azúcar", sum.Groups[1].ProductName)

	harina := sum.Groups[0]
	assert.True(t, harina.Quantity.Equal(dec("15")), "cantidad del grupo: %s", harina.Quantity)
	assert.True(t, harina.TotalPrice.Equal(dec("140.00")), "precio total del grupo: %s", harina.TotalPrice)
	assert.Equal(t, "kg", harina.Unit)
}

// La cantidad agregada usa el valor absoluto del cambio.
func TestSummarize_CantidadUsaValorAbsoluto(t *testing.T) {
	sum := report.Summarize([]report.MovementLine{
		line("Harina", "General", "10", "kg", "100.00"),
		line("Harina", "General", "-4", "kg", "30.00"),
	})

	require.Len(t, sum.Groups, 1)
	assert.True(t, sum.Groups[0].Quantity.Equal(dec("14")),
		"10 + |-4| = 14, obtuvo %s", sum.Groups[0].Quantity)
}

// Precio unitario = precio total / cantidad, con guarda de división por cero.
func TestSummarize_PrecioUnitarioConGuardaDeCero(t *testing.T) {
	sum := report.Summarize([]report.MovementLine{
		line("Harina", "General", "10", "kg", "150.00"),
		line("Regalo", "General", "0", "u", "25.00"),
	})

	require.Len(t, sum.Groups, 2)
	assert.True(t, sum.Groups[0].UnitPrice.Equal(dec("15")),
		"150 / 10 = 15, obtuvo %s", sum.Groups[0].UnitPrice)
	assert.True(t, sum.Groups[1].UnitPrice.IsZero(),
		"cantidad cero debe producir precio unitario 0, nunca división por cero")
}

// Totales generales: suma de cantidades y precios de todos los grupos.
func TestSummarize_TotalesGenerales(t *testing.T) {
	sum := report.Summarize([]report.MovementLine{
		line("Harina", "General", "10", "kg", "100.00"),
		line("Azúcar", "General", "5", "kg", "40.00"),
		line("Harina", "General", "-2", "kg", "15.00"),
	})

	assert.True(t, sum.TotalQuantity.Equal(dec("17")), "total cantidad: %s", sum.TotalQuantity)
	assert.True(t, sum.TotalPrice.Equal(dec("155.00")), "total precio: %s", sum.TotalPrice)
}

// Entrada vacía produce resumen vacío con totales en cero.
func TestSummarize_SinMovimientos(t *testing.T) {
	sum := report.Summarize(nil)

	assert.Empty(t, sum.Groups)
	assert.True(t, sum.TotalQuantity.IsZero())
	assert.True(t, sum.TotalPrice.IsZero())
}
