package repository

import "github.com/jmcastano/almacen-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByName busca case-insensitive. nil, nil si no existe.
	GetByName(name string) (*entity.Product, error)
	List() ([]*entity.Product, error)
	Delete(id string) error
}
