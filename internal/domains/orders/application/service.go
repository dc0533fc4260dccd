package application

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/isaacnngt/pedido-unijovem/internal/domains/orders/application/types"
	"github.com/isaacnngt/pedido-unijovem/internal/domains/orders/domain"
	"github.com/isaacnngt/pedido-unijovem/internal/domains/orders/ports"
	"github.com/isaacnngt/pedido-unijovem/internal/shared/optional"
)

// Service orchestrates order use cases.
type Service struct {
	repo ports.Repository
	now  func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source used to stamp new orders.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Create stamps the order date, defaults the delivered flag and persists the order.
func (s *Service) Create(ctx context.Context, input types.OrderInput) (*domain.Order, error) {
	quantity, err := validateInput(input)
	if err != nil {
		return nil, mapError(err)
	}
	// Postgres keeps microseconds, so the stored date must round-trip unchanged.
	placedAt := s.now().UTC().Truncate(time.Microsecond)
	order, err := domain.NewOrder(input.PersonName, quantity, input.PaymentMethod, placedAt)
	if err != nil {
		return nil, mapError(err)
	}
	order.Delivered = lo.FromPtr(input.Delivered)
	return s.repo.Save(ctx, order)
}

func (s *Service) ListAll(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.FindAllOrderedByDateDesc(ctx)
}

func (s *Service) FindByID(ctx context.Context, id int64) (optional.Optional[*domain.Order], error) {
	return s.repo.FindByID(ctx, id)
}

// Update replaces the editable fields of an existing order. The order date is kept.
func (s *Service) Update(ctx context.Context, id int64, input types.OrderInput) (*domain.Order, error) {
	quantity, err := validateInput(input)
	if err != nil {
		return nil, mapError(err)
	}
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.Revise(input.PersonName, quantity, input.PaymentMethod, lo.FromPtr(input.Delivered)); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, order)
}

func (s *Service) MarkDelivered(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	order.MarkDelivered()
	return s.repo.Save(ctx, order)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return notFound(id)
	}
	return s.repo.DeleteByID(ctx, id)
}

func (s *Service) ListUndelivered(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.FindByDelivered(ctx, false)
}

func (s *Service) ListDelivered(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.FindByDelivered(ctx, true)
}

func (s *Service) SearchByName(ctx context.Context, fragment string) ([]*domain.Order, error) {
	return s.repo.FindByNameContaining(ctx, fragment)
}

func (s *Service) CountPending(ctx context.Context) (int64, error) {
	return s.repo.CountByDelivered(ctx, false)
}

// Statistics derives delivered orders from the total so the three figures always add up.
func (s *Service) Statistics(ctx context.Context) (types.Statistics, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return types.Statistics{}, err
	}
	pending, err := s.CountPending(ctx)
	if err != nil {
		return types.Statistics{}, err
	}
	return types.Statistics{Total: total, Pending: pending, Delivered: total - pending}, nil
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Order, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	order, ok := found.Get()
	if !ok {
		return nil, notFound(id)
	}
	return order, nil
}

// validateInput checks the payload before any lookup so invalid bodies fail ahead of missing ids.
func validateInput(input types.OrderInput) (int32, error) {
	if input.Quantity == nil {
		return 0, domain.ErrQuantityRequired
	}
	probe := domain.Order{PersonName: input.PersonName, Quantity: *input.Quantity}
	if err := probe.Validate(); err != nil {
		return 0, err
	}
	return *input.Quantity, nil
}

var _ ports.Service = (*Service)(nil)
