package ports

import (
	"context"

	"github.com/isaacnngt/pedido-unijovem/internal/domains/orders/application/types"
	"github.com/isaacnngt/pedido-unijovem/internal/domains/orders/domain"
	"github.com/isaacnngt/pedido-unijovem/internal/shared/optional"
)

// Service exposes order use cases to adapters.
type Service interface {
	Create(ctx context.Context, input types.OrderInput) (*domain.Order, error)
	ListAll(ctx context.Context) ([]*domain.Order, error)
	FindByID(ctx context.Context, id int64) (optional.Optional[*domain.Order], error)
	Update(ctx context.Context, id int64, input types.OrderInput) (*domain.Order, error)
	MarkDelivered(ctx context.Context, id int64) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
	ListUndelivered(ctx context.Context) ([]*domain.Order, error)
	ListDelivered(ctx context.Context) ([]*domain.Order, error)
	SearchByName(ctx context.Context, fragment string) ([]*domain.Order, error)
	CountPending(ctx context.Context) (int64, error)
	Statistics(ctx context.Context) (types.Statistics, error)
}
