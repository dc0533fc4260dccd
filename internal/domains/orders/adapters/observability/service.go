package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/isaacnngt/pedido-unijovem/internal/domains/orders/application/types"
	"github.com/isaacnngt/pedido-unijovem/internal/domains/orders/domain"
	"github.com/isaacnngt/pedido-unijovem/internal/domains/orders/ports"
	"github.com/isaacnngt/pedido-unijovem/internal/shared/optional"
)

const tracerName = "github.com/isaacnngt/pedido-unijovem/internal/domains/orders/adapters/observability/service"

// Service decorates the order service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core order service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Create(ctx context.Context, input types.OrderInput) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Create")
	defer span.End()

	s.logInfo(ctx, "creating order", slog.String("payment_method", input.PaymentMethod))
	result, err := s.inner.Create(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create order")
	}
	span.SetAttributes(attribute.Int64("order.id", result.ID))
	s.metrics.recordCreated(ctx, result.PaymentMethod)
	s.logInfo(ctx, "order created", slog.Int64("order.id", result.ID), slog.Int("quantity", int(result.Quantity)))
	return result, nil
}

func (s *Service) ListAll(ctx context.Context) ([]*domain.Order, error) {
	return s.list(ctx, "OrderService.ListAll", s.inner.ListAll)
}

func (s *Service) FindByID(ctx context.Context, id int64) (optional.Optional[*domain.Order], error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.FindByID", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	result, err := s.inner.FindByID(ctx, id)
	if err != nil {
		return result, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", id))
	}
	span.SetAttributes(attribute.Bool("order.found", result.IsPresent()))
	return result, nil
}

func (s *Service) Update(ctx context.Context, id int64, input types.OrderInput) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Update", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	s.logInfo(ctx, "updating order", slog.Int64("order.id", id))
	result, err := s.inner.Update(ctx, id, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order", slog.Int64("order.id", id))
	}
	s.logInfo(ctx, "order updated", slog.Int64("order.id", id), slog.Bool("delivered", result.Delivered))
	return result, nil
}

func (s *Service) MarkDelivered(ctx context.Context, id int64) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.MarkDelivered", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	s.logInfo(ctx, "marking order delivered", slog.Int64("order.id", id))
	result, err := s.inner.MarkDelivered(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to mark order delivered", slog.Int64("order.id", id))
	}
	s.metrics.recordDelivered(ctx)
	s.logInfo(ctx, "order delivered", slog.Int64("order.id", id))
	return result, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "OrderService.Delete", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	s.logInfo(ctx, "deleting order", slog.Int64("order.id", id))
	if err := s.inner.Delete(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete order", slog.Int64("order.id", id))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "order deleted", slog.Int64("order.id", id))
	return nil
}

func (s *Service) ListUndelivered(ctx context.Context) ([]*domain.Order, error) {
	return s.list(ctx, "OrderService.ListUndelivered", s.inner.ListUndelivered)
}

func (s *Service) ListDelivered(ctx context.Context) ([]*domain.Order, error) {
	return s.list(ctx, "OrderService.ListDelivered", s.inner.ListDelivered)
}

func (s *Service) SearchByName(ctx context.Context, fragment string) ([]*domain.Order, error) {
	return s.list(ctx, "OrderService.SearchByName", func(ctx context.Context) ([]*domain.Order, error) {
		return s.inner.SearchByName(ctx, fragment)
	})
}

func (s *Service) CountPending(ctx context.Context) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CountPending")
	defer span.End()

	count, err := s.inner.CountPending(ctx)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to count pending orders")
	}
	span.SetAttributes(attribute.Int64("orders.pending", count))
	return count, nil
}

func (s *Service) Statistics(ctx context.Context) (types.Statistics, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Statistics")
	defer span.End()

	stats, err := s.inner.Statistics(ctx)
	if err != nil {
		return types.Statistics{}, s.handleError(ctx, span, err, "failed to compute order statistics")
	}
	span.SetAttributes(
		attribute.Int64("orders.total", stats.Total),
		attribute.Int64("orders.pending", stats.Pending),
		attribute.Int64("orders.delivered", stats.Delivered),
	)
	return stats, nil
}

func (s *Service) list(ctx context.Context, spanName string, fn func(context.Context) ([]*domain.Order, error)) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, spanName)
	defer span.End()

	result, err := fn(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders", slog.String("operation", spanName))
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	ordersCreated   metric.Int64Counter
	ordersDelivered metric.Int64Counter
	ordersDeleted   metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersCreated, _ := m.Int64Counter("orders.service.created", metric.WithDescription("Number of orders created"))
	ordersDelivered, _ := m.Int64Counter("orders.service.delivered", metric.WithDescription("Number of orders marked delivered"))
	ordersDeleted, _ := m.Int64Counter("orders.service.deleted", metric.WithDescription("Number of orders deleted"))
	return serviceMetrics{ordersCreated: ordersCreated, ordersDelivered: ordersDelivered, ordersDeleted: ordersDeleted}
}

func (m serviceMetrics) recordCreated(ctx context.Context, paymentMethod string) {
	if m.ordersCreated != nil {
		m.ordersCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("order.payment_method", paymentMethod)))
	}
}

func (m serviceMetrics) recordDelivered(ctx context.Context) {
	if m.ordersDelivered != nil {
		m.ordersDelivered.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.ordersDeleted != nil {
		m.ordersDeleted.Add(ctx, 1)
	}
}

var _ ports.Service = (*Service)(nil)
