package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnectSQLiteInMemory(t *testing.T) {
	db, err := Connect(":memory:")
	require.NoError(t, err)

	// the sqlite driver must be registered and usable, not just opened lazily
	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	require.Equal(t, 1, one)
}

func TestConnectSQLiteFile(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "console.db")

	db, err := Connect(dsn)
	require.NoError(t, err)

	require.NoError(t, db.Exec("CREATE TABLE items (id INTEGER PRIMARY KEY)").Error)
	require.NoError(t, db.Exec("INSERT INTO items (id) VALUES (1)").Error)

	var count int64
	require.NoError(t, db.Raw("SELECT COUNT(*) FROM items").Scan(&count).Error)
	require.EqualValues(t, 1, count)
}
