package attendance_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"presence/internal/attendance"
	"presence/internal/testutil"
)

func newTestRepo(t *testing.T) (*attendance.Repository, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	repo := attendance.NewRepository(db, nil)
	require.NoError(t, repo.Migrate(testContext(t)))
	return repo, db
}

func TestRepositoryLoad(t *testing.T) {
	repo, db := newTestRepo(t)
	_, err := db.Exec(`
		INSERT INTO presence_entries (user_id, day, start_time, end_time) VALUES
			(10, '2013-09-10', '09:39:05', '17:59:52'),
			(10, '2013-09-11', '09:19:52', '16:07:37'),
			(10, '2013-09-12', '10:48:46', '17:23:51'),
			(11, '2013-09-09', '09:00:00', '17:30:00')
	`)
	require.NoError(t, err)

	data, err := repo.Load(testContext(t))
	require.NoError(t, err)

	assert.Equal(t, testutil.User10(), data[10])
	assert.Len(t, data[11], 1)
}

func TestRepositoryLoad_SkipsMalformedRows(t *testing.T) {
	repo, db := newTestRepo(t)
	_, err := db.Exec(`
		INSERT INTO presence_entries (user_id, day, start_time, end_time) VALUES
			(10, '2013-09-10', '09:00:00', '17:00:00'),
			(11, 'yesterday', '09:00:00', '17:00:00')
	`)
	require.NoError(t, err)

	data, err := repo.Load(testContext(t))
	require.NoError(t, err)

	assert.ElementsMatch(t, []int{10}, data.UserIDs())
}

func TestRepositoryLoad_MissingTable(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = attendance.NewRepository(db, nil).Load(testContext(t))

	require.ErrorIs(t, err, attendance.ErrDataSource)
}
