package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacnngt/pedido-unijovem/internal/platform/sqlite"
)

func TestRun_CreatesOrdersTable(t *testing.T) {
	db, err := sqlite.Open(sqlite.InMemory)
	require.NoError(t, err)

	require.NoError(t, Run(db))
	require.NoError(t, Run(db), "migrations must be idempotent")

	migrator := db.Migrator()
	assert.True(t, migrator.HasTable("pedidos"))
	for _, column := range []string{"id", "nome_pessoa", "nome_busca", "quantidade", "forma_pagamento", "entregue", "data_pedido"} {
		assert.True(t, migrator.HasColumn("pedidos", column), column)
	}
}

func TestRun_NilDB(t *testing.T) {
	assert.NoError(t, Run(nil))
}
