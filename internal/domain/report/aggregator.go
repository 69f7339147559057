package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementLine es un movimiento ya unido al nombre/categoría actual de su
// producto. Es la entrada del agregador; no hay acceso a almacenamiento aquí.
type MovementLine struct {
	MovementID     string
	ProductID      string
	ProductName    string
	Category       string
	QuantityChange decimal.Decimal
	Unit           string
	TotalPrice     decimal.Decimal
	CreatedAt      time.Time
	CreatedBy      string
}

// ProductSummary es un grupo por nombre de producto en la vista resumen.
type ProductSummary struct {
	ProductName string
	Category    string
	Quantity    decimal.Decimal // suma de |QuantityChange| del grupo
	Unit        string          // unidad del primer movimiento visto para el grupo
	TotalPrice  decimal.Decimal
	UnitPrice   decimal.Decimal // TotalPrice / Quantity; 0 si Quantity es 0
}

// Summary es la vista resumen: grupos por producto más totales generales.
type Summary struct {
	Groups        []ProductSummary
	TotalQuantity decimal.Decimal // suma de |QuantityChange| de todos los grupos
	TotalPrice    decimal.Decimal
}

// Summarize agrupa los movimientos por nombre de producto, suma cantidad
// absoluta y precio total por grupo y deriva el precio unitario con guarda
// de división por cero. Los grupos conservan el orden de primera aparición.
func Summarize(lines []MovementLine) Summary {
	index := make(map[string]int)
	groups := make([]ProductSummary, 0)

	for _, l := range lines {
		i, ok := index[l.ProductName]
		if !ok {
			i = len(groups)
			index[l.ProductName] = i
			groups = append(groups, ProductSummary{
				ProductName: l.ProductName,
				Category:    l.Category,
				Unit:        l.Unit,
			})
		}
		groups[i].Quantity = groups[i].Quantity.Add(l.QuantityChange.Abs())
		groups[i].TotalPrice = groups[i].TotalPrice.Add(l.TotalPrice)
	}

	sum := Summary{Groups: groups}
	for i := range groups {
		if groups[i].Quantity.IsZero() {
			groups[i].UnitPrice = decimal.Zero
		} else {
			groups[i].UnitPrice = groups[i].TotalPrice.Div(groups[i].Quantity)
		}
		sum.TotalQuantity = sum.TotalQuantity.Add(groups[i].Quantity)
		sum.TotalPrice = sum.TotalPrice.Add(groups[i].TotalPrice)
	}
	return sum
}
