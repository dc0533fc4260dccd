package deliveryserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	ordersapp "github.com/isaacnngt/pedido-unijovem/internal/domains/orders/application"
	ordersports "github.com/isaacnngt/pedido-unijovem/internal/domains/orders/ports"
	apierrors "github.com/isaacnngt/pedido-unijovem/internal/shared/errors"
)

const (
	messageOrderDeleted  = "Pedido deletado com sucesso"
	messageOrderNotFound = "Pedido não encontrado"
)

// orderResponder renders order use case errors as problem details.
var orderResponder = apierrors.NewChainedResponder("", mapOrderError)

func mapOrderError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ordersports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, ordersapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	default:
		return apierrors.ProblemDetail{}, false
	}
}

func respondOrderServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	orderResponder.RespondError(c, err)
}

// respondBadRequest reports malformed payloads and parameters.
func respondBadRequest(c *gin.Context, err error) {
	orderResponder.BadRequest(c, err)
}

// respondMessage writes the bare {"message": ...} / {"error": ...} bodies used by DELETE.
func respondMessage(c *gin.Context, status int, message string) {
	key := "message"
	if status >= http.StatusBadRequest {
		key = "error"
	}
	c.JSON(status, gin.H{key: message})
}
