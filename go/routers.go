package deliveryserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of each API section.
type ApiHandleFunctions struct {
	// Routes for the PedidosAPI part of the API
	PedidosAPI PedidosAPI
}

// NewRouterWithGinEngine adds routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	registerValidatorTagNames()
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

// DefaultHandleFunc answers routes without a handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	api := handleFunctions.PedidosAPI
	return []Route{
		{"CreateOrder", http.MethodPost, "/pedidos", api.CreateOrder},
		{"ListOrders", http.MethodGet, "/pedidos", api.ListOrders},
		{"ListUndeliveredOrders", http.MethodGet, "/pedidos/nao-entregues", api.ListUndeliveredOrders},
		{"ListDeliveredOrders", http.MethodGet, "/pedidos/entregues", api.ListDeliveredOrders},
		{"SearchOrdersByName", http.MethodGet, "/pedidos/buscar", api.SearchOrdersByName},
		{"OrderStatistics", http.MethodGet, "/pedidos/estatisticas", api.OrderStatistics},
		{"GetOrderByID", http.MethodGet, "/pedidos/:id", api.GetOrderByID},
		{"UpdateOrder", http.MethodPut, "/pedidos/:id", api.UpdateOrder},
		{"MarkOrderDelivered", http.MethodPatch, "/pedidos/:id/entregar", api.MarkOrderDelivered},
		{"DeleteOrder", http.MethodDelete, "/pedidos/:id", api.DeleteOrder},
	}
}
