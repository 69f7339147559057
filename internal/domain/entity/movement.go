package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKindUpdate único tipo de movimiento emitido por el motor actual.
const MovementKindUpdate = "update"

// Movement es una entrada del ledger append-only: inmutable una vez creada,
// salvo su eliminación (que revierte su efecto sobre Balance).
// CreatedAt lo asigna siempre el servidor, nunca el cliente.
type Movement struct {
	ID             string
	ProductID      string
	QuantityChange decimal.Decimal // con signo
	Unit           string
	TotalPrice     decimal.Decimal // con signo (permite correcciones de precio)
	Kind           string
	CreatedAt      time.Time
	CreatedBy      string // UserID
}
