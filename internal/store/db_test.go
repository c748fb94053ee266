package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDB_SQLite(t *testing.T) {
	db, err := NewDB(context.Background(), DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	assert.True(t, db.Healthy(context.Background()))
}

func TestNewDB_UnknownDriver(t *testing.T) {
	_, err := NewDB(context.Background(), "nope", "")
	assert.Error(t, err)
}

func TestNilHandlesAreUnhealthy(t *testing.T) {
	var db *DB
	var r *Redis
	assert.NoError(t, db.Close())
	assert.False(t, db.Healthy(context.Background()))
	assert.False(t, r.Healthy(context.Background()))
}
