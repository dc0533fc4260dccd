package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	_, err := Open("  ")
	require.Error(t, err)

	db, err := Open(InMemory)
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE probe (id INTEGER)").Error)
	require.NoError(t, db.Exec("INSERT INTO probe (id) VALUES (1)").Error)
	var n int64
	require.NoError(t, db.Raw("SELECT COUNT(*) FROM probe").Scan(&n).Error)
	assert.Equal(t, int64(1), n)

	fileDB, err := Open(filepath.Join(t.TempDir(), "delivery.db"))
	require.NoError(t, err)
	sqlDB, err := fileDB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Ping())
	require.NoError(t, sqlDB.Close())
}
