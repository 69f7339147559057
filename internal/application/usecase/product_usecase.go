package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmcastano/almacen-api/internal/application/dto"
	"github.com/jmcastano/almacen-api/internal/application/ledger"
	"github.com/jmcastano/almacen-api/internal/domain"
	"github.com/jmcastano/almacen-api/internal/domain/entity"
	"github.com/jmcastano/almacen-api/internal/domain/repository"
)

// ProductUseCase casos de uso para productos. La eliminación es en cascada:
// primero balance y movimientos, luego el producto, en una transacción.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner ledger.TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRunner ledger.TxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner}
}

// Create crea un producto. Nombre único case-insensitive; categoría por
// defecto si viene vacía.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, err := uc.repo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	category := in.Category
	if category == "" {
		category = entity.DefaultCategory
	}
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Category:  category,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. nil, nil si no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List lista todos los productos del establecimiento.
func (uc *ProductUseCase) List() ([]dto.ProductResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Delete elimina el producto en cascada: movimientos y balance primero,
// luego el producto, todo en una transacción. Devuelve false si no existe.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) (bool, error) {
	found := false
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		balanceRepo repository.BalanceRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetByID(id)
		if err != nil {
			return err
		}
		if product == nil {
			return nil
		}
		found = true
		if err := movRepo.DeleteByProduct(id); err != nil {
			return err
		}
		if err := balanceRepo.DeleteByProduct(id); err != nil {
			return err
		}
		return productRepo.Delete(id)
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		CreatedAt: p.CreatedAt,
	}
}
