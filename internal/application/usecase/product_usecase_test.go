package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcastano/almacen-api/internal/application/dto"
	"github.com/jmcastano/almacen-api/internal/application/usecase"
	"github.com/jmcastano/almacen-api/internal/domain"
	"github.com/jmcastano/almacen-api/internal/domain/entity"
	"github.com/jmcastano/almacen-api/internal/infrastructure/memory"
)

// Crear sin categoría asigna la categoría por defecto.
func TestProductCreate_CategoriaPorDefecto(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products(), store)

	out, err := uc.Create(dto.CreateProductRequest{Name: "Harina"})
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultCategory, out.Category)
	assert.NotEmpty(t, out.ID)
}

// Nombre único case-insensitive: "harina" choca con "Harina".
func TestProductCreate_NombreDuplicadoCaseInsensitive(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products(), store)

	_, err := uc.Create(dto.CreateProductRequest{Name: "Harina"})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateProductRequest{Name: "harina"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// La eliminación es en cascada: balance y movimientos del producto
// desaparecen junto con él.
func TestProductDelete_CascadaDeBalanceYMovimientos(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products(), store)
	product := seedProduct(t, store, "Harina")
	seedMovement(t, store, product.ID, "10", "100.00", time.Now().UTC())
	require.NoError(t, store.Balances().Upsert(&entity.Balance{
		ProductID:  product.ID,
		Quantity:   dec("10"),
		Unit:       "kg",
		TotalValue: dec("100.00"),
	}))

	found, err := uc.Delete(context.Background(), product.ID)
	require.NoError(t, err)
	assert.True(t, found)

	gone, _ := store.Products().GetByID(product.ID)
	assert.Nil(t, gone)

	movs, err := store.Movements().ListByRange(nil, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, movs, "los movimientos del producto deben desaparecer")

	bal, err := store.Balances().Get(product.ID)
	require.NoError(t, err)
	assert.True(t, bal.Quantity.IsZero(), "el balance debe quedar eliminado")
}

// Eliminar un producto inexistente devuelve false, sin error.
func TestProductDelete_Inexistente(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products(), store)

	found, err := uc.Delete(context.Background(), "no-existe")
	require.NoError(t, err)
	assert.False(t, found)
}
