package api

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordersmemory "github.com/isaacnngt/pedido-unijovem/internal/domains/orders/adapters/memory"
	orderspostgres "github.com/isaacnngt/pedido-unijovem/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/isaacnngt/pedido-unijovem/internal/domains/orders/application"
	"github.com/isaacnngt/pedido-unijovem/internal/domains/orders/domain"
	"github.com/isaacnngt/pedido-unijovem/internal/platform/ginx"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildOrderRepository_Memory(t *testing.T) {
	repo, cleanup, err := buildOrderRepository(context.Background(), Config{DatabaseDriver: DriverMemory}, discardLogger())
	require.NoError(t, err)
	defer cleanup()
	assert.IsType(t, &ordersmemory.Repository{}, repo)
}

func TestBuildOrderRepository_AutoWithoutDSNUsesMemory(t *testing.T) {
	repo, cleanup, err := buildOrderRepository(context.Background(), Config{DatabaseDriver: DriverAuto}, discardLogger())
	require.NoError(t, err)
	defer cleanup()
	assert.IsType(t, &ordersmemory.Repository{}, repo)
}

func TestBuildOrderRepository_AutoFallsBackOnBadDSN(t *testing.T) {
	cfg := Config{DatabaseDriver: DriverAuto, PostgresDSN: "postgres://%zz"}
	repo, cleanup, err := buildOrderRepository(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	defer cleanup()
	assert.IsType(t, &ordersmemory.Repository{}, repo)
}

func TestBuildOrderRepository_ExplicitPostgresFails(t *testing.T) {
	cfg := Config{DatabaseDriver: DriverPostgres, PostgresDSN: "postgres://%zz"}
	_, _, err := buildOrderRepository(context.Background(), cfg, discardLogger())
	assert.Error(t, err)
}

func TestBuildOrderRepository_SQLiteMigrates(t *testing.T) {
	cfg := Config{DatabaseDriver: DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "pedidos.db")}
	repo, cleanup, err := buildOrderRepository(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	defer cleanup()
	require.IsType(t, &orderspostgres.Repository{}, repo)

	order, err := domain.NewOrder("João", 2, "PIX", time.Now().UTC())
	require.NoError(t, err)
	saved, err := repo.Save(context.Background(), order)
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
}

func TestNewRouter_AddsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newRouter("delivery-api-test", discardLogger(), ordersapp.NewService(ordersmemory.NewRepository()))

	req := httptest.NewRequest(http.MethodGet, "/pedidos/estatisticas", nil)
	req.Header.Set(ginx.HeaderRequestID, "req-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-42", rec.Header().Get(ginx.HeaderRequestID))
	assert.JSONEq(t, `{"totalPedidos":0,"pedidosPendentes":0,"pedidosEntregues":0}`, rec.Body.String())
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	gin.SetMode(gin.TestMode)
	server := &http.Server{
		Addr:    addr,
		Handler: newRouter("delivery-api-test", discardLogger(), ordersapp.NewService(ordersmemory.NewRepository())),
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, server, time.Second, discardLogger()) }()

	require.Eventually(t, func() bool {
		resp, err := http.Post("http://"+addr+"/pedidos", "application/json", strings.NewReader(`{"personName":"Ana","quantity":1}`))
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusCreated
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
