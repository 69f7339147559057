package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jmcastano/almacen-api/internal/domain/entity"
	"github.com/jmcastano/almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// created_by es UUID en el esquema: text en lectura, uuid en escritura
// (mismos casts que balances.updated_by).
const movementColumns = `id, product_id, quantity_change, unit, total_price, kind, created_at, COALESCE(created_by::text, '')`

// MovementRepo implementación de MovementRepository sobre PostgreSQL
// (usable con pool o tx). El ledger es append-only: sin updates.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de movimientos.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento del ledger.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, product_id, quantity_change, unit, total_price, kind, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, '')::uuid)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.QuantityChange, movement.Unit,
		movement.TotalPrice, movement.Kind, movement.CreatedAt, movement.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID. nil, nil si no existe.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	var m entity.Movement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.ProductID, &m.QuantityChange, &m.Unit, &m.TotalPrice, &m.Kind, &m.CreatedAt, &m.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// Delete elimina un movimiento por ID.
func (r *MovementRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	return nil
}

// ListByRange lista movimientos con created_at en [from, to] inclusive, más
// recientes primero.
func (r *MovementRepo) ListByRange(from, to *time.Time, limit int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements`
	args := []any{}
	pos := 1
	where := ""
	if from != nil {
		where += fmt.Sprintf(" WHERE created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		if where == "" {
			where = fmt.Sprintf(" WHERE created_at <= $%d", pos)
		} else {
			where += fmt.Sprintf(" AND created_at <= $%d", pos)
		}
		args = append(args, *to)
		pos++
	}
	query += where + " ORDER BY created_at DESC, id DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", pos)
		args = append(args, limit)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.QuantityChange, &m.Unit,
			&m.TotalPrice, &m.Kind, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// CountInRange cuenta movimientos por producto con created_at en [from, to].
func (r *MovementRepo) CountInRange(from, to time.Time) (map[string]int, error) {
	query := `
		SELECT product_id, COUNT(*)
		FROM movements
		WHERE created_at >= $1 AND created_at <= $2
		GROUP BY product_id`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("count movements: %w", err)
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var productID string
		var n int
		if err := rows.Scan(&productID, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[productID] = n
	}
	return counts, rows.Err()
}

// DeleteByProduct elimina todos los movimientos de un producto (cascada).
func (r *MovementRepo) DeleteByProduct(productID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM movements WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete movements by product: %w", err)
	}
	return nil
}
