package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryReportRow fila de GET /api/reports/inventory: una por producto,
// con su balance actual (no acotado a la ventana) y el conteo de movimientos
// dentro de la ventana [start, end].
type InventoryReportRow struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Category      string          `json:"category"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	TotalValue    decimal.Decimal `json:"total_value"`
	MovementCount int             `json:"movement_count"`
}

// DetailedMovementRow movimiento unido al nombre/categoría actual del
// producto (renombrar un producto re-etiqueta su historial).
type DetailedMovementRow struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Category       string          `json:"category"`
	QuantityChange decimal.Decimal `json:"quantity_change"`
	Unit           string          `json:"unit"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	CreatedAt      time.Time       `json:"created_at"`
	CreatedBy      string          `json:"created_by,omitempty"`
}

// SummaryGroupRow grupo por producto en la vista resumen.
type SummaryGroupRow struct {
	ProductName string          `json:"product_name"`
	Category    string          `json:"category"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// SummaryReportResponse vista resumen con totales generales.
type SummaryReportResponse struct {
	Groups        []SummaryGroupRow `json:"groups"`
	TotalQuantity decimal.Decimal   `json:"total_quantity"`
	TotalPrice    decimal.Decimal   `json:"total_price"`
}
