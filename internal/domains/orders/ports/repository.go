package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/isaacnngt/pedido-unijovem/internal/domains/orders/domain"
	"github.com/isaacnngt/pedido-unijovem/internal/shared/optional"
)

var ErrNotFound = errors.New("pedido não encontrado")

// NotFound wraps ErrNotFound with the missing order id.
func NotFound(id int64) error {
	return fmt.Errorf("%w com id: %d", ErrNotFound, id)
}

// Repository persists orders and exposes the lookups the order use cases need.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id int64) (optional.Optional[*domain.Order], error)
	FindAll(ctx context.Context) ([]*domain.Order, error)
	FindAllOrderedByDateDesc(ctx context.Context) ([]*domain.Order, error)
	FindByDelivered(ctx context.Context, delivered bool) ([]*domain.Order, error)
	FindByNameContaining(ctx context.Context, fragment string) ([]*domain.Order, error)
	CountByDelivered(ctx context.Context, delivered bool) (int64, error)
	Count(ctx context.Context) (int64, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	DeleteByID(ctx context.Context, id int64) error
}
