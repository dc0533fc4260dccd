package mapper

import (
	"time"

	"github.com/samber/lo"

	"github.com/isaacnngt/pedido-unijovem/internal/domains/orders/application/types"
	"github.com/isaacnngt/pedido-unijovem/internal/domains/orders/domain"
)

// OrderRequest captures create/update payloads while preserving field presence.
// id and orderDate are server-owned and ignored when sent.
type OrderRequest struct {
	PersonName    *string `json:"personName" binding:"required"`
	Quantity      *int32  `json:"quantity" binding:"required"`
	PaymentMethod *string `json:"paymentMethod,omitempty"`
	Delivered     *bool   `json:"delivered,omitempty"`
}

// Order is the HTTP representation of an order.
type Order struct {
	ID            int64     `json:"id"`
	PersonName    string    `json:"personName"`
	Quantity      int32     `json:"quantity"`
	PaymentMethod string    `json:"paymentMethod"`
	Delivered     bool      `json:"delivered"`
	OrderDate     time.Time `json:"orderDate"`
}

// Statistics is the HTTP representation of the order summary.
type Statistics struct {
	TotalPedidos     int64 `json:"totalPedidos"`
	PedidosPendentes int64 `json:"pedidosPendentes"`
	PedidosEntregues int64 `json:"pedidosEntregues"`
}

// ToOrderInput maps a transport payload into the use case input.
func ToOrderInput(req OrderRequest) types.OrderInput {
	return types.OrderInput{
		PersonName:    lo.FromPtr(req.PersonName),
		Quantity:      req.Quantity,
		PaymentMethod: lo.FromPtr(req.PaymentMethod),
		Delivered:     req.Delivered,
	}
}

// FromDomainOrder maps the aggregate to its transport form.
func FromDomainOrder(order *domain.Order) Order {
	if order == nil {
		return Order{}
	}
	return Order{
		ID:            order.ID,
		PersonName:    order.PersonName,
		Quantity:      order.Quantity,
		PaymentMethod: order.PaymentMethod,
		Delivered:     order.Delivered,
		OrderDate:     order.OrderDate,
	}
}

// FromDomainOrders maps a list, always returning a non-nil slice.
func FromDomainOrders(orders []*domain.Order) []Order {
	return lo.Map(orders, func(order *domain.Order, _ int) Order { return FromDomainOrder(order) })
}

// FromStatistics maps the summary to its transport form.
func FromStatistics(stats types.Statistics) Statistics {
	return Statistics{
		TotalPedidos:     stats.Total,
		PedidosPendentes: stats.Pending,
		PedidosEntregues: stats.Delivered,
	}
}
