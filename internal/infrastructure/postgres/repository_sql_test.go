package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcastano/almacen-api/internal/domain/entity"
)

// Las columnas de actor (balances.updated_by, movements.created_by) son UUID
// en el esquema, pero las entidades las manejan como string con '' por
// ausente. Estos tests fijan el contrato SQL que hace eso posible: cast a
// text en lectura (COALESCE exige operandos del mismo tipo) y a uuid en
// escritura (NULLIF produce text). Sin los casts, Postgres rechaza el
// statement al planificarlo (22P02 / 42804), así que se verifican sobre un
// Querier que graba los statements, sin servidor.

var errNoQuery = errors.New("consulta no ejecutada en este doble")

// stmtRecorder implementa Querier grabando cada statement recibido.
type stmtRecorder struct {
	stmts []string
}

func (r *stmtRecorder) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	r.stmts = append(r.stmts, sql)
	return pgconn.CommandTag{}, nil
}

func (r *stmtRecorder) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	r.stmts = append(r.stmts, sql)
	return nil, errNoQuery
}

func (r *stmtRecorder) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	r.stmts = append(r.stmts, sql)
	return noRow{}
}

// noRow simula una consulta sin resultados.
type noRow struct{}

func (noRow) Scan(_ ...any) error { return pgx.ErrNoRows }

func recordedStmts(t *testing.T, rec *stmtRecorder) string {
	t.Helper()
	require.NotEmpty(t, rec.stmts)
	return strings.Join(rec.stmts, "\n")
}

// Lecturas de balance: updated_by casteado a text dentro del COALESCE.
func TestBalanceRepo_LecturasCasteanActorAText(t *testing.T) {
	rec := &stmtRecorder{}
	repo := NewBalanceRepository(rec)

	_, err := repo.Get("p1")
	require.NoError(t, err)
	_, err = repo.GetForUpdate("p1")
	require.NoError(t, err)
	_, _ = repo.List()

	sql := recordedStmts(t, rec)
	assert.Contains(t, sql, "COALESCE(updated_by::text, '')")
	assert.NotContains(t, sql, "COALESCE(updated_by, '')",
		"COALESCE sin cast resuelve a uuid y uuid_in('') falla en el plan")
}

// Upsert de balance: el actor vacío entra como NULL casteado a uuid.
func TestBalanceRepo_UpsertCasteaActorAUUID(t *testing.T) {
	rec := &stmtRecorder{}
	repo := NewBalanceRepository(rec)

	err := repo.Upsert(&entity.Balance{
		ProductID:  "p1",
		Quantity:   decimal.NewFromInt(10),
		Unit:       "kg",
		TotalValue: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	sql := recordedStmts(t, rec)
	assert.Contains(t, sql, "NULLIF($6, '')::uuid",
		"NULLIF produce text y no es asignable a una columna uuid sin cast")
}

// GetForUpdate materializa la fila antes de bloquearla: FOR UPDATE sobre
// cero filas no bloquea nada, y dos primeros movimientos concurrentes del
// mismo producto perderían un incremento.
func TestBalanceRepo_GetForUpdateMaterializaAntesDeBloquear(t *testing.T) {
	rec := &stmtRecorder{}
	repo := NewBalanceRepository(rec)

	bal, err := repo.GetForUpdate("p1")
	require.NoError(t, err)
	require.NotNil(t, bal)
	assert.True(t, bal.Quantity.IsZero(), "sin fila previa el balance parte en cero")

	require.Len(t, rec.stmts, 2)
	assert.Contains(t, rec.stmts[0], "INSERT INTO balances (product_id)")
	assert.Contains(t, rec.stmts[0], "ON CONFLICT (product_id) DO NOTHING")
	assert.Contains(t, rec.stmts[1], "FOR UPDATE")
}

// Movimientos: created_by con los mismos casts en lectura y escritura.
func TestMovementRepo_ActorConCastsEnLecturaYEscritura(t *testing.T) {
	rec := &stmtRecorder{}
	repo := NewMovementRepository(rec)

	err := repo.Create(&entity.Movement{
		ID:             "m1",
		ProductID:      "p1",
		QuantityChange: decimal.NewFromInt(10),
		Unit:           "kg",
		TotalPrice:     decimal.NewFromInt(100),
		Kind:           entity.MovementKindUpdate,
		CreatedAt:      time.Now().UTC(),
		CreatedBy:      "",
	})
	require.NoError(t, err)

	_, err = repo.GetByID("m1")
	require.NoError(t, err)
	_, _ = repo.ListByRange(nil, nil, 0)

	sql := recordedStmts(t, rec)
	assert.Contains(t, sql, "NULLIF($8, '')::uuid")
	assert.Contains(t, sql, "COALESCE(created_by::text, '')")
	assert.NotContains(t, sql, "COALESCE(created_by, '')")
}
