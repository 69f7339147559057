package ledger

import (
	"context"

	"github.com/jmcastano/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la inserción del movimiento y
// la actualización del balance sean visibles juntas o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		balanceRepo repository.BalanceRepository,
		productRepo repository.ProductRepository,
	) error) error
}
