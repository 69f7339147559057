package usecase_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcastano/almacen-api/internal/application/dto"
	"github.com/jmcastano/almacen-api/internal/application/usecase"
	"github.com/jmcastano/almacen-api/internal/domain"
	"github.com/jmcastano/almacen-api/internal/domain/entity"
	"github.com/jmcastano/almacen-api/internal/infrastructure/memory"
)

func seedUser(t *testing.T, store *memory.Store, username string, isAdmin bool) *entity.User {
	t.Helper()
	u := &entity.User{
		ID:        uuid.New().String(),
		Username:  username,
		IsAdmin:   isAdmin,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Users().Create(u))
	return u
}

// Crear cuenta con username ya usado (distinta capitalización) → conflicto.
func TestUserCreate_UsernameDuplicadoCaseInsensitive(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewUserUseCase(store.Users())
	seedUser(t, store, "Maria", false)

	_, err := uc.Create(dto.CreateUserRequest{Username: "maria", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

// Crear cuenta con flags: los permisos quedan asignados.
func TestUserCreate_AsignaFlags(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewUserUseCase(store.Users())

	out, err := uc.Create(dto.CreateUserRequest{
		Username:           "bodeguero",
		Password:           "secreta123",
		CanManageInventory: true,
		CanViewReports:     true,
	})
	require.NoError(t, err)
	assert.True(t, out.CanManageInventory)
	assert.True(t, out.CanViewReports)
	assert.False(t, out.IsAdmin)
	assert.False(t, out.CanDefineProducts)
}

// Nadie puede eliminar su propia cuenta.
func TestUserDelete_AutoEliminacionRechazada(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewUserUseCase(store.Users())
	admin := seedUser(t, store, "admin", true)

	err := uc.Delete(admin.ID, admin.ID)
	assert.ErrorIs(t, err, domain.ErrSelfDelete)

	still, _ := store.Users().GetByID(admin.ID)
	assert.NotNil(t, still, "la cuenta debe seguir existiendo")
}

// El último administrador no puede eliminarse.
func TestUserDelete_UltimoAdminRechazado(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewUserUseCase(store.Users())
	admin := seedUser(t, store, "admin", true)
	actor := seedUser(t, store, "otro", false)

	err := uc.Delete(actor.ID, admin.ID)
	assert.ErrorIs(t, err, domain.ErrLastAdmin)
}

// Con dos administradores, eliminar uno sí procede.
func TestUserDelete_ConDosAdminsProcede(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewUserUseCase(store.Users())
	admin1 := seedUser(t, store, "admin1", true)
	admin2 := seedUser(t, store, "admin2", true)

	err := uc.Delete(admin1.ID, admin2.ID)
	require.NoError(t, err)

	gone, _ := store.Users().GetByID(admin2.ID)
	assert.Nil(t, gone)
}

// Eliminar una cuenta inexistente → ErrUserNotFound.
func TestUserDelete_CuentaInexistente(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewUserUseCase(store.Users())
	actor := seedUser(t, store, "admin", true)

	err := uc.Delete(actor.ID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// Degradar al último administrador vía update → ErrLastAdmin.
func TestUserUpdate_DegradarUltimoAdminRechazado(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewUserUseCase(store.Users())
	admin := seedUser(t, store, "admin", true)

	noAdmin := false
	_, err := uc.Update(admin.ID, dto.UpdateUserRequest{IsAdmin: &noAdmin})
	assert.ErrorIs(t, err, domain.ErrLastAdmin)

	still, _ := store.Users().GetByID(admin.ID)
	require.NotNil(t, still)
	assert.True(t, still.IsAdmin, "el flag no debe haber cambiado")
}

// Con otro administrador presente, la degradación procede y los campos en nil
// no se tocan.
func TestUserUpdate_PatchParcial(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewUserUseCase(store.Users())
	seedUser(t, store, "admin1", true)
	admin2 := seedUser(t, store, "admin2", true)
	admin2.CanViewReports = true
	require.NoError(t, store.Users().Update(admin2))

	noAdmin := false
	out, err := uc.Update(admin2.ID, dto.UpdateUserRequest{IsAdmin: &noAdmin})
	require.NoError(t, err)
	assert.False(t, out.IsAdmin)
	assert.True(t, out.CanViewReports, "los flags no incluidos en el patch se conservan")
}
