package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jmcastano/almacen-api/internal/domain"
	"github.com/jmcastano/almacen-api/internal/domain/entity"
	"github.com/jmcastano/almacen-api/internal/domain/repository"
)

// LedgerUseCase es el motor del ledger: registra movimientos y los revierte
// al eliminarlos, manteniendo el Balance derivado consistente con el log
// dentro de una única transacción (bloqueo de fila + Commit/Rollback).
type LedgerUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewLedgerUseCase construye el motor.
func NewLedgerUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, productRepo: productRepo}
}

// MovementInput entrada para RecordMovement. Las reglas de negocio
// (cantidad positiva, precio no negativo) las valida la capa HTTP; aquí solo
// se verifica integridad referencial.
type MovementInput struct {
	ProductID      string
	QuantityChange decimal.Decimal
	Unit           string
	TotalPrice     decimal.Decimal
	ActingUserID   string
}

// RecordMovement inserta el movimiento con timestamp del servidor y aplica su
// efecto sobre el balance del producto en la misma transacción:
// quantity += Δq, total_value += Δp, unit sobrescrita, last_updated y
// updated_by actualizados. La fila de balance se crea si aún no existe.
func (uc *LedgerUseCase) RecordMovement(ctx context.Context, input MovementInput) (*entity.Movement, error) {
	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now().UTC()
	mov := &entity.Movement{
		ID:             uuid.New().String(),
		ProductID:      input.ProductID,
		QuantityChange: input.QuantityChange,
		Unit:           input.Unit,
		TotalPrice:     input.TotalPrice,
		Kind:           entity.MovementKindUpdate,
		CreatedAt:      now,
		CreatedBy:      input.ActingUserID,
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		balanceRepo repository.BalanceRepository,
		productRepo repository.ProductRepository,
	) error {
		// Revalidar dentro de la tx: el producto pudo borrarse entre tanto.
		p, err := productRepo.GetByID(input.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		// Bloquea la fila del balance (SELECT FOR UPDATE) para que dos
		// movimientos concurrentes del mismo producto no pierdan incrementos.
		bal, err := balanceRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		bal.Quantity = bal.Quantity.Add(input.QuantityChange)
		bal.TotalValue = bal.TotalValue.Add(input.TotalPrice)
		bal.Unit = input.Unit
		bal.LastUpdated = now
		bal.UpdatedBy = input.ActingUserID
		return balanceRepo.Upsert(bal)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// DeleteMovement revierte el efecto del movimiento sobre el balance
// (quantity -= Δq, total_value -= Δp) y borra la fila del ledger, todo en una
// transacción. Devuelve false (sin error) si el movimiento no existe.
//
// La unidad del balance NO se revierte a su valor previo: es last-writer-wins
// en una sola dirección (comportamiento acordado con producto).
func (uc *LedgerUseCase) DeleteMovement(ctx context.Context, movementID string) (bool, error) {
	found := false
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		balanceRepo repository.BalanceRepository,
		_ repository.ProductRepository,
	) error {
		mov, err := movRepo.GetByID(movementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return nil
		}
		found = true
		bal, err := balanceRepo.GetForUpdate(mov.ProductID)
		if err != nil {
			return err
		}
		bal.Quantity = bal.Quantity.Sub(mov.QuantityChange)
		bal.TotalValue = bal.TotalValue.Sub(mov.TotalPrice)
		bal.LastUpdated = time.Now().UTC()
		if err := balanceRepo.Upsert(bal); err != nil {
			return err
		}
		return movRepo.Delete(movementID)
	})
	if err != nil {
		return false, err
	}
	return found, nil
}
