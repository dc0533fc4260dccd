package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/isaacnngt/pedido-unijovem/internal/domains/orders/domain"
	"github.com/isaacnngt/pedido-unijovem/internal/domains/orders/ports"
	"github.com/isaacnngt/pedido-unijovem/internal/shared/optional"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter.
type Repository struct {
	mu     sync.RWMutex
	orders map[int64]*domain.Order
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{orders: map[int64]*domain.Order{}}
}

func (r *Repository) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := *order
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	r.orders[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) FindByID(_ context.Context, id int64) (optional.Optional[*domain.Order], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return optional.Empty[*domain.Order](), nil
	}
	clone := *order
	return optional.Of(&clone), nil
}

func (r *Repository) FindAll(_ context.Context) ([]*domain.Order, error) {
	return r.collect(func(*domain.Order) bool { return true }), nil
}

// FindAllOrderedByDateDesc lists newest orders first, breaking ties by id.
func (r *Repository) FindAllOrderedByDateDesc(_ context.Context) ([]*domain.Order, error) {
	list := r.collect(func(*domain.Order) bool { return true })
	sort.Slice(list, func(i, j int) bool {
		if list[i].OrderDate.Equal(list[j].OrderDate) {
			return list[i].ID > list[j].ID
		}
		return list[i].OrderDate.After(list[j].OrderDate)
	})
	return list, nil
}

func (r *Repository) FindByDelivered(_ context.Context, delivered bool) ([]*domain.Order, error) {
	return r.collect(func(o *domain.Order) bool { return o.Delivered == delivered }), nil
}

func (r *Repository) FindByNameContaining(_ context.Context, fragment string) ([]*domain.Order, error) {
	key := domain.FoldName(fragment)
	return r.collect(func(o *domain.Order) bool { return strings.Contains(o.SearchKey(), key) }), nil
}

func (r *Repository) CountByDelivered(_ context.Context, delivered bool) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, order := range r.orders {
		if order.Delivered == delivered {
			count++
		}
	}
	return count, nil
}

func (r *Repository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.orders)), nil
}

func (r *Repository) ExistsByID(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.orders[id]
	return ok, nil
}

func (r *Repository) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, id)
	return nil
}

// collect returns clones sorted by id so results are stable between calls.
func (r *Repository) collect(keep func(*domain.Order) bool) []*domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if !keep(order) {
			continue
		}
		clone := *order
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}
