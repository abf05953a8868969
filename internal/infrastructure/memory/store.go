// Package memory implementa los puertos de repositorio en memoria, con
// transacciones por copia de estado: Run clona el estado, ejecuta el callback
// sobre la copia y solo la publica si no hubo error. Se usa en tests y con
// STORE_DRIVER=memory.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

var _ repository.TxRunner = (*Store)(nil)

type state struct {
	items      map[string]entity.Item
	itemSeq    []string
	orders     map[string]*entity.Order
	orderSeq   []string
	deliveries map[string]*entity.DeliveryRecord // por order_id
	delivSeq   []string
	sales      []entity.Sale
	users      map[string]entity.User // por email
}

func newState() *state {
	return &state{
		items:      make(map[string]entity.Item),
		orders:     make(map[string]*entity.Order),
		deliveries: make(map[string]*entity.DeliveryRecord),
		users:      make(map[string]entity.User),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.items {
		c.items[k] = v
	}
	c.itemSeq = append([]string(nil), s.itemSeq...)
	for k, v := range s.orders {
		c.orders[k] = v.Clone()
	}
	c.orderSeq = append([]string(nil), s.orderSeq...)
	for k, v := range s.deliveries {
		c.deliveries[k] = cloneDelivery(v)
	}
	c.delivSeq = append([]string(nil), s.delivSeq...)
	c.sales = append([]entity.Sale(nil), s.sales...)
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

// Store almacén en memoria seguro para uso concurrente.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Items repositorio de artículos fuera de transacción.
func (s *Store) Items() repository.ItemRepository { return &ItemRepo{s: s} }

// Orders repositorio de órdenes fuera de transacción.
func (s *Store) Orders() repository.OrderRepository { return &OrderRepo{s: s} }

// Deliveries repositorio de entregas fuera de transacción.
func (s *Store) Deliveries() repository.DeliveryRepository { return &DeliveryRepo{s: s} }

// Sales repositorio de ventas.
func (s *Store) Sales() repository.SaleRepository { return &SaleRepo{s: s} }

// Users repositorio de usuarios.
func (s *Store) Users() repository.UserRepository { return &UserRepo{s: s} }

// Run serializa las transacciones: bloquea el almacén, trabaja sobre una copia
// y la publica solo si fn devuelve nil.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.st.clone()
	repos := repository.Repos{
		Items:      &ItemRepo{s: s, tx: tx},
		Orders:     &OrderRepo{s: s, tx: tx},
		Deliveries: &DeliveryRepo{s: s, tx: tx},
	}
	if err := fn(repos); err != nil {
		return err
	}
	s.st = tx
	return nil
}

// view ejecuta fn sobre el estado de la transacción si existe o sobre el
// estado publicado tomando el lock.
func (s *Store) view(tx *state, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

func cloneDelivery(d *entity.DeliveryRecord) *entity.DeliveryRecord {
	c := *d
	c.Lines = append([]entity.DeliveryLine(nil), d.Lines...)
	return &c
}
