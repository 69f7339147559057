package repository

import "github.com/jmcastano/almacen-api/internal/domain/entity"

// BalanceRepository define el puerto de persistencia para Balance (una fila
// por producto). Get y GetForUpdate devuelven un Balance en cero si la fila
// aún no existe, para que el motor pueda crearla de forma perezosa.
type BalanceRepository interface {
	Get(productID string) (*entity.Balance, error)
	// GetForUpdate bloquea la fila del producto durante la transacción
	// (SELECT FOR UPDATE) para serializar el read-modify-write. La
	// implementación debe garantizar que el bloqueo exista incluso antes
	// del primer movimiento del producto (materializando la fila si hace
	// falta): de lo contrario dos primeros movimientos concurrentes se
	// perderían un incremento.
	GetForUpdate(productID string) (*entity.Balance, error)
	Upsert(balance *entity.Balance) error
	List() ([]*entity.Balance, error)
	DeleteByProduct(productID string) error
}
