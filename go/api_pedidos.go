package deliveryserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	ordermapper "github.com/isaacnngt/pedido-unijovem/internal/domains/orders/adapters/http/mapper"
	ordersports "github.com/isaacnngt/pedido-unijovem/internal/domains/orders/ports"
	apierrors "github.com/isaacnngt/pedido-unijovem/internal/shared/errors"
)

// PedidosAPI wires HTTP transport with the orders bounded context service.
type PedidosAPI struct {
	service ordersports.Service
}

// NewPedidosAPI creates a PedidosAPI backed by the provided service.
func NewPedidosAPI(service ordersports.Service) PedidosAPI {
	return PedidosAPI{service: service}
}

// Post /pedidos
// Create an order
func (api *PedidosAPI) CreateOrder(c *gin.Context) {
	var payload ordermapper.OrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	created, err := api.service.Create(c.Request.Context(), ordermapper.ToOrderInput(payload))
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordermapper.FromDomainOrder(created))
}

// Get /pedidos
// List all orders, newest first
func (api *PedidosAPI) ListOrders(c *gin.Context) {
	orders, err := api.service.ListAll(c.Request.Context())
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrders(orders))
}

// Get /pedidos/:id
// Find order by ID
func (api *PedidosAPI) GetOrderByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	found, err := api.service.FindByID(c.Request.Context(), id)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	order, ok := found.Get()
	if !ok {
		apierrors.Respond(c, apierrors.NewNotFoundProblem("pedido", id, ordersports.NotFound(id).Error()))
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(order))
}

// Put /pedidos/:id
// Replace the editable fields of an order
func (api *PedidosAPI) UpdateOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload ordermapper.OrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	updated, err := api.service.Update(c.Request.Context(), id, ordermapper.ToOrderInput(payload))
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(updated))
}

// Patch /pedidos/:id/entregar
// Mark an order as delivered
func (api *PedidosAPI) MarkOrderDelivered(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	delivered, err := api.service.MarkDelivered(c.Request.Context(), id)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(delivered))
}

// Delete /pedidos/:id
// Delete an order
func (api *PedidosAPI) DeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := api.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ordersports.ErrNotFound) {
			respondMessage(c, http.StatusNotFound, messageOrderNotFound)
			return
		}
		respondOrderServiceError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, messageOrderDeleted)
}

// Get /pedidos/nao-entregues
// List pending orders
func (api *PedidosAPI) ListUndeliveredOrders(c *gin.Context) {
	orders, err := api.service.ListUndelivered(c.Request.Context())
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrders(orders))
}

// Get /pedidos/entregues
// List delivered orders
func (api *PedidosAPI) ListDeliveredOrders(c *gin.Context) {
	orders, err := api.service.ListDelivered(c.Request.Context())
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrders(orders))
}

// Get /pedidos/buscar
// Search orders by person name, ignoring case
func (api *PedidosAPI) SearchOrdersByName(c *gin.Context) {
	var nome string
	if err := runtime.BindQueryParameter("form", true, true, "nome", c.Request.URL.Query(), &nome); err != nil {
		respondBadRequest(c, err)
		return
	}
	orders, err := api.service.SearchByName(c.Request.Context(), nome)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrders(orders))
}

// Get /pedidos/estatisticas
// Summarise total, pending and delivered orders
func (api *PedidosAPI) OrderStatistics(c *gin.Context) {
	stats, err := api.service.Statistics(c.Request.Context())
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromStatistics(stats))
}

func parseIDParam(c *gin.Context) (int64, bool) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		respondBadRequest(c, err)
		return 0, false
	}
	return id, true
}
