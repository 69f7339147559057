// Package memory implementa los puertos de persistencia en memoria, como
// doble de pruebas del almacenamiento PostgreSQL. Un mutex por tabla; las
// transacciones (Run) se serializan con un mutex global y restauran un
// snapshot en caso de error para conservar la atomicidad observable.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmcastano/almacen-api/internal/application/ledger"
	"github.com/jmcastano/almacen-api/internal/domain"
	"github.com/jmcastano/almacen-api/internal/domain/entity"
	"github.com/jmcastano/almacen-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*Store)(nil)

// Store contiene las cuatro tablas en memoria.
type Store struct {
	txMu sync.Mutex // serializa transacciones completas

	usersMu sync.RWMutex
	users   map[string]entity.User

	productsMu sync.RWMutex
	products   map[string]entity.Product

	balancesMu sync.RWMutex
	balances   map[string]entity.Balance

	movementsMu sync.RWMutex
	movements   map[string]entity.Movement
	movSeq      map[string]int // orden de inserción para desempates
	nextSeq     int
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{
		users:     make(map[string]entity.User),
		products:  make(map[string]entity.Product),
		balances:  make(map[string]entity.Balance),
		movements: make(map[string]entity.Movement),
		movSeq:    make(map[string]int),
	}
}

// Users devuelve la vista repositorio de cuentas.
func (s *Store) Users() repository.UserRepository { return (*userTable)(s) }

// Products devuelve la vista repositorio de productos.
func (s *Store) Products() repository.ProductRepository { return (*productTable)(s) }

// Balances devuelve la vista repositorio de balances.
func (s *Store) Balances() repository.BalanceRepository { return (*balanceTable)(s) }

// Movements devuelve la vista repositorio de movimientos.
func (s *Store) Movements() repository.MovementRepository { return (*movementTable)(s) }

// Run ejecuta fn como una transacción: serializada frente a otras y con
// rollback por snapshot si fn devuelve error.
func (s *Store) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	balanceRepo repository.BalanceRepository,
	productRepo repository.ProductRepository,
) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	movSnap := copyMap(s.movements)
	seqSnap := copyMap(s.movSeq)
	balSnap := copyMap(s.balances)
	prodSnap := copyMap(s.products)
	seq := s.nextSeq

	if err := fn(s.Movements(), s.Balances(), s.Products()); err != nil {
		s.movements = movSnap
		s.movSeq = seqSnap
		s.balances = balSnap
		s.products = prodSnap
		s.nextSeq = seq
		return err
	}
	return nil
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ── users ────────────────────────────────────────────────────────────────────

type userTable Store

func (t *userTable) Create(user *entity.User) error {
	t.usersMu.Lock()
	defer t.usersMu.Unlock()
	for _, u := range t.users {
		if strings.EqualFold(u.Username, user.Username) {
			return domain.ErrUsernameTaken
		}
	}
	t.users[user.ID] = *user
	return nil
}

func (t *userTable) GetByID(id string) (*entity.User, error) {
	t.usersMu.RLock()
	defer t.usersMu.RUnlock()
	if u, ok := t.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (t *userTable) GetByUsername(username string) (*entity.User, error) {
	t.usersMu.RLock()
	defer t.usersMu.RUnlock()
	for _, u := range t.users {
		if strings.EqualFold(u.Username, username) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (t *userTable) List() ([]*entity.User, error) {
	t.usersMu.RLock()
	defer t.usersMu.RUnlock()
	list := make([]*entity.User, 0, len(t.users))
	for _, u := range t.users {
		u := u
		list = append(list, &u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

func (t *userTable) Update(user *entity.User) error {
	t.usersMu.Lock()
	defer t.usersMu.Unlock()
	t.users[user.ID] = *user
	return nil
}

func (t *userTable) Delete(id string) error {
	t.usersMu.Lock()
	defer t.usersMu.Unlock()
	delete(t.users, id)
	return nil
}

func (t *userTable) CountAdmins() (int, error) {
	t.usersMu.RLock()
	defer t.usersMu.RUnlock()
	n := 0
	for _, u := range t.users {
		if u.IsAdmin {
			n++
		}
	}
	return n, nil
}

// ── products ─────────────────────────────────────────────────────────────────

type productTable Store

func (t *productTable) Create(product *entity.Product) error {
	t.productsMu.Lock()
	defer t.productsMu.Unlock()
	for _, p := range t.products {
		if strings.EqualFold(p.Name, product.Name) {
			return domain.ErrDuplicate
		}
	}
	t.products[product.ID] = *product
	return nil
}

func (t *productTable) GetByID(id string) (*entity.Product, error) {
	t.productsMu.RLock()
	defer t.productsMu.RUnlock()
	if p, ok := t.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (t *productTable) GetByName(name string) (*entity.Product, error) {
	t.productsMu.RLock()
	defer t.productsMu.RUnlock()
	for _, p := range t.products {
		if strings.EqualFold(p.Name, name) {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (t *productTable) List() ([]*entity.Product, error) {
	t.productsMu.RLock()
	defer t.productsMu.RUnlock()
	list := make([]*entity.Product, 0, len(t.products))
	for _, p := range t.products {
		p := p
		list = append(list, &p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

func (t *productTable) Delete(id string) error {
	t.productsMu.Lock()
	defer t.productsMu.Unlock()
	delete(t.products, id)
	return nil
}

// ── balances ─────────────────────────────────────────────────────────────────

type balanceTable Store

func (t *balanceTable) Get(productID string) (*entity.Balance, error) {
	t.balancesMu.RLock()
	defer t.balancesMu.RUnlock()
	if b, ok := t.balances[productID]; ok {
		return &b, nil
	}
	return &entity.Balance{ProductID: productID}, nil
}

// GetForUpdate en memoria equivale a Get: Run ya serializa la transacción.
func (t *balanceTable) GetForUpdate(productID string) (*entity.Balance, error) {
	return t.Get(productID)
}

func (t *balanceTable) Upsert(balance *entity.Balance) error {
	t.balancesMu.Lock()
	defer t.balancesMu.Unlock()
	t.balances[balance.ProductID] = *balance
	return nil
}

func (t *balanceTable) List() ([]*entity.Balance, error) {
	t.balancesMu.RLock()
	defer t.balancesMu.RUnlock()
	list := make([]*entity.Balance, 0, len(t.balances))
	for _, b := range t.balances {
		b := b
		list = append(list, &b)
	}
	return list, nil
}

func (t *balanceTable) DeleteByProduct(productID string) error {
	t.balancesMu.Lock()
	defer t.balancesMu.Unlock()
	delete(t.balances, productID)
	return nil
}

// ── movements ────────────────────────────────────────────────────────────────

type movementTable Store

func (t *movementTable) Create(movement *entity.Movement) error {
	t.movementsMu.Lock()
	defer t.movementsMu.Unlock()
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	t.movements[movement.ID] = *movement
	t.nextSeq++
	t.movSeq[movement.ID] = t.nextSeq
	return nil
}

func (t *movementTable) GetByID(id string) (*entity.Movement, error) {
	t.movementsMu.RLock()
	defer t.movementsMu.RUnlock()
	if m, ok := t.movements[id]; ok {
		return &m, nil
	}
	return nil, nil
}

func (t *movementTable) Delete(id string) error {
	t.movementsMu.Lock()
	defer t.movementsMu.Unlock()
	delete(t.movements, id)
	delete(t.movSeq, id)
	return nil
}

func (t *movementTable) ListByRange(from, to *time.Time, limit int) ([]*entity.Movement, error) {
	t.movementsMu.RLock()
	defer t.movementsMu.RUnlock()
	list := make([]*entity.Movement, 0, len(t.movements))
	for _, m := range t.movements {
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		m := m
		list = append(list, &m)
	}
	// Más recientes primero; empates por orden de inserción.
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return t.movSeq[list[i].ID] > t.movSeq[list[j].ID]
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (t *movementTable) CountInRange(from, to time.Time) (map[string]int, error) {
	t.movementsMu.RLock()
	defer t.movementsMu.RUnlock()
	counts := make(map[string]int)
	for _, m := range t.movements {
		if m.CreatedAt.Before(from) || m.CreatedAt.After(to) {
			continue
		}
		counts[m.ProductID]++
	}
	return counts, nil
}

func (t *movementTable) DeleteByProduct(productID string) error {
	t.movementsMu.Lock()
	defer t.movementsMu.Unlock()
	for id, m := range t.movements {
		if m.ProductID == productID {
			delete(t.movements, id)
			delete(t.movSeq, id)
		}
	}
	return nil
}
