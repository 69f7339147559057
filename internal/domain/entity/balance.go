package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance es la foto derivada por producto (relación 1:1): cantidad y valor
// actuales, cacheados como fold del log de movimientos. Se crea de forma
// perezosa con el primer movimiento y nunca se borra salvo cascada del producto.
// Invariante: Quantity == Σ QuantityChange y TotalValue == Σ TotalPrice de los
// movimientos no eliminados del producto.
type Balance struct {
	ProductID   string
	Quantity    decimal.Decimal
	Unit        string // última unidad escrita (last-writer-wins, no se revierte al borrar)
	TotalValue  decimal.Decimal
	LastUpdated time.Time
	UpdatedBy   string // UserID del último actor, puede ser vacío
}
