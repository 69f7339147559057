package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordMovementRequest body para POST /api/inventory/movements.
type RecordMovementRequest struct {
	ProductID      string           `json:"product_id"`
	QuantityChange *decimal.Decimal `json:"quantity_change"`
	Unit           string           `json:"unit"`
	TotalPrice     *decimal.Decimal `json:"total_price"`
}

// MovementResponse representación pública de un movimiento del ledger.
type MovementResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	QuantityChange decimal.Decimal `json:"quantity_change"`
	Unit           string          `json:"unit"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	Kind           string          `json:"kind"`
	CreatedAt      time.Time       `json:"created_at"`
	CreatedBy      string          `json:"created_by,omitempty"`
}

// BalanceResponse fila de GET /api/inventory: balance unido al producto.
type BalanceResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"category"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	TotalValue  decimal.Decimal `json:"total_value"`
	LastUpdated *time.Time      `json:"last_updated,omitempty"`
	UpdatedBy   string          `json:"updated_by,omitempty"`
}
