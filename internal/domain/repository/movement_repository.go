package repository

import (
	"time"

	"github.com/jmcastano/almacen-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para el ledger de
// movimientos (append-only; solo inserción, lectura y eliminación).
type MovementRepository interface {
	Create(movement *entity.Movement) error
	// GetByID devuelve nil, nil si el movimiento no existe.
	GetByID(id string) (*entity.Movement, error)
	Delete(id string) error
	// ListByRange lista movimientos con CreatedAt en [from, to] (inclusive),
	// más recientes primero; empates por timestamp en orden de inserción.
	// from/to en nil abren el rango; limit <= 0 no limita.
	ListByRange(from, to *time.Time, limit int) ([]*entity.Movement, error)
	// CountInRange cuenta movimientos por producto con CreatedAt en [from, to].
	CountInRange(from, to time.Time) (map[string]int, error)
	DeleteByProduct(productID string) error
}
