//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "delivery-api"
	ConsumerName = "pedidos-portal"

	StatePedidosBaseline = "pedidos baseline"
	StatePedidoExists    = "pedido with id 301 exists"
	StatePedidoMissing   = "no pedido with id 999"
	StatePedidosMixed    = "one delivered and one pending pedido exist"
)

const (
	ExistingPedidoID  int64 = 301
	DeliveredPedidoID int64 = 302
	MissingPedidoID   int64 = 999
)

const (
	ExamplePersonName    = "João Pact"
	ExamplePaymentMethod = "PIX"
	ExampleOrderDate     = "2024-06-12T10:00:00Z"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the pedidos portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExamplePedidoPayload provides stable test data for pact interactions.
func ExamplePedidoPayload() map[string]any {
	return map[string]any{
		"id":            ExistingPedidoID,
		"personName":    ExamplePersonName,
		"quantity":      2,
		"paymentMethod": ExamplePaymentMethod,
		"delivered":     false,
		"orderDate":     ExampleOrderDate,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
