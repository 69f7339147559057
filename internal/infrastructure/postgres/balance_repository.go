package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jmcastano/almacen-api/internal/domain/entity"
	"github.com/jmcastano/almacen-api/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// updated_by es UUID en el esquema: se castea a text en lectura (COALESCE con
// '' exige operandos del mismo tipo) y a uuid en escritura (NULLIF produce
// text). Sin los casts el statement falla en el plan (22P02 / 42804).
const balanceColumns = `product_id, quantity, unit, total_value, last_updated, COALESCE(updated_by::text, '')`

// BalanceRepo implementación de BalanceRepository sobre PostgreSQL
// (usable con pool o tx). Una fila por producto.
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador de balances.
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

// Get obtiene el balance actual de un producto; en cero si la fila no existe.
func (r *BalanceRepo) Get(productID string) (*entity.Balance, error) {
	query := `SELECT ` + balanceColumns + ` FROM balances WHERE product_id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID), productID, "get balance")
}

// GetForUpdate obtiene el balance y bloquea su fila (SELECT FOR UPDATE) para
// serializar el read-modify-write dentro de la transacción. La fila se
// materializa primero si aún no existe: FOR UPDATE sobre cero filas no
// bloquea nada, y dos primeros movimientos concurrentes del mismo producto
// se pisarían el upsert entre sí.
func (r *BalanceRepo) GetForUpdate(productID string) (*entity.Balance, error) {
	insert := `INSERT INTO balances (product_id) VALUES ($1) ON CONFLICT (product_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), insert, productID); err != nil {
		return nil, fmt.Errorf("materialize balance: %w", err)
	}
	query := `SELECT ` + balanceColumns + ` FROM balances WHERE product_id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID), productID, "get balance for update")
}

// Upsert inserta o actualiza el balance del producto.
func (r *BalanceRepo) Upsert(balance *entity.Balance) error {
	query := `
		INSERT INTO balances (product_id, quantity, unit, total_value, last_updated, updated_by)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid)
		ON CONFLICT (product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, unit = EXCLUDED.unit,
			total_value = EXCLUDED.total_value, last_updated = EXCLUDED.last_updated,
			updated_by = EXCLUDED.updated_by`
	_, err := r.q.Exec(context.Background(), query,
		balance.ProductID, balance.Quantity, balance.Unit, balance.TotalValue,
		balance.LastUpdated, balance.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("upsert balance: %w", err)
	}
	return nil
}

// List lista todos los balances existentes.
func (r *BalanceRepo) List() ([]*entity.Balance, error) {
	query := `SELECT ` + balanceColumns + ` FROM balances`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}
	defer rows.Close()
	var list []*entity.Balance
	for rows.Next() {
		var b entity.Balance
		if err := rows.Scan(&b.ProductID, &b.Quantity, &b.Unit, &b.TotalValue, &b.LastUpdated, &b.UpdatedBy); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// DeleteByProduct elimina el balance de un producto (cascada de producto).
func (r *BalanceRepo) DeleteByProduct(productID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM balances WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete balance: %w", err)
	}
	return nil
}

func (r *BalanceRepo) scanOne(row pgx.Row, productID, op string) (*entity.Balance, error) {
	var b entity.Balance
	err := row.Scan(&b.ProductID, &b.Quantity, &b.Unit, &b.TotalValue, &b.LastUpdated, &b.UpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Balance{ProductID: productID}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &b, nil
}
