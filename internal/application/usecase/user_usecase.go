package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmcastano/almacen-api/internal/application/auth"
	"github.com/jmcastano/almacen-api/internal/application/dto"
	"github.com/jmcastano/almacen-api/internal/domain"
	"github.com/jmcastano/almacen-api/internal/domain/entity"
	"github.com/jmcastano/almacen-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase administración de cuentas (solo administradores). Protege las
// invariantes de borrado: nadie se elimina a sí mismo y el último
// administrador no puede eliminarse.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List lista todas las cuentas.
func (uc *UserUseCase) List() ([]dto.UserResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *auth.ToUserResponse(u))
	}
	return items, nil
}

// Create crea una cuenta con los permisos indicados.
// Devuelve ErrUsernameTaken si el username ya existe (case-insensitive).
func (uc *UserUseCase) Create(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	existing, err := uc.repo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:                 uuid.New().String(),
		Username:           in.Username,
		PasswordHash:       string(hash),
		IsAdmin:            in.IsAdmin,
		CanDefineProducts:  in.CanDefineProducts,
		CanViewReports:     in.CanViewReports,
		CanManageInventory: in.CanManageInventory,
		CreatedAt:          time.Now().UTC(),
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// Update cambia password y/o flags de una cuenta. Quitar IsAdmin al último
// administrador se rechaza con ErrLastAdmin.
func (uc *UserUseCase) Update(id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.IsAdmin != nil && user.IsAdmin && !*in.IsAdmin {
		admins, err := uc.repo.CountAdmins()
		if err != nil {
			return nil, err
		}
		if admins <= 1 {
			return nil, domain.ErrLastAdmin
		}
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.IsAdmin != nil {
		user.IsAdmin = *in.IsAdmin
	}
	if in.CanDefineProducts != nil {
		user.CanDefineProducts = *in.CanDefineProducts
	}
	if in.CanViewReports != nil {
		user.CanViewReports = *in.CanViewReports
	}
	if in.CanManageInventory != nil {
		user.CanManageInventory = *in.CanManageInventory
	}
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// Delete elimina una cuenta. Rechaza auto-eliminación (ErrSelfDelete) y la
// eliminación del último administrador (ErrLastAdmin).
func (uc *UserUseCase) Delete(actorID, id string) error {
	if actorID == id {
		return domain.ErrSelfDelete
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.IsAdmin {
		admins, err := uc.repo.CountAdmins()
		if err != nil {
			return err
		}
		if admins <= 1 {
			return domain.ErrLastAdmin
		}
	}
	return uc.repo.Delete(id)
}
