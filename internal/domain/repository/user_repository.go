package repository

import "github.com/jmcastano/almacen-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	// GetByUsername busca case-insensitive. nil, nil si no existe.
	GetByUsername(username string) (*entity.User, error)
	List() ([]*entity.User, error)
	Update(user *entity.User) error
	Delete(id string) error
	// CountAdmins cuenta las cuentas con IsAdmin (protección de último admin).
	CountAdmins() (int, error)
}
