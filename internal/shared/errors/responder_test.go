package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMissing = stderrors.New("missing thing")

func serve(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/pedidos/:id", handler)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pedidos/9", nil))

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return rec, problem
}

func TestChainedResponder_UsesMapper(t *testing.T) {
	responder := NewChainedResponder("", func(err error) (ProblemDetail, bool) {
		if stderrors.Is(err, errMissing) {
			return NewNotFoundProblem("pedido", 9, err.Error()), true
		}
		return ProblemDetail{}, false
	})

	rec, problem := serve(t, func(c *gin.Context) { responder.RespondError(c, errMissing) })

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	assert.Equal(t, TypeNotFound, problem.Type)
	assert.Equal(t, "missing thing", problem.Detail)
	assert.Equal(t, "/pedidos/9", problem.Instance)
	assert.Equal(t, "pedido", problem.Extensions["resourceType"])
}

func TestResponder_UnknownErrorHidesCause(t *testing.T) {
	rec, problem := serve(t, func(c *gin.Context) { RespondError(c, stderrors.New("pq: connection refused")) })

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, TypeInternal, problem.Type)
	assert.NotContains(t, problem.Detail, "connection refused")
}

func TestResponder_BadRequestExpandsValidatorErrors(t *testing.T) {
	type payload struct {
		Name string `validate:"required"`
	}
	verr := validator.New().Struct(payload{})
	require.Error(t, verr)

	rec, problem := serve(t, func(c *gin.Context) { DefaultResponder.BadRequest(c, verr) })

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, TypeValidation, problem.Type)
	fields, ok := problem.Extensions["fields"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "campo obrigatório", fields["Name"])
}

func TestResponder_BadRequestPlainError(t *testing.T) {
	rec, problem := serve(t, func(c *gin.Context) { DefaultResponder.BadRequest(c, stderrors.New("invalid json")) })

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, TypeBadRequest, problem.Type)
	assert.Equal(t, "invalid json", problem.Detail)
}

func TestProblemDetail_WithExtensionDoesNotShareMaps(t *testing.T) {
	base := ErrValidation.WithExtension("a", 1)
	derived := base.WithExtension("b", 2)

	assert.Len(t, base.Extensions, 1)
	assert.Len(t, derived.Extensions, 2)
}
