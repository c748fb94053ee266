package attendance

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// Schema creates the presence_entries table. Dates are stored as YYYY-MM-DD
// and times as HH:MM:SS text so the same rows load on Postgres and SQLite.
const Schema = `
	CREATE TABLE IF NOT EXISTS presence_entries (
		user_id    INTEGER NOT NULL,
		day        TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time   TEXT NOT NULL
	)
`

// Repository reads the attendance dataset from a SQL table.
type Repository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

// Migrate ensures the presence_entries table exists.
func (r *Repository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, Schema)
	return err
}

// Load returns every row of presence_entries as a Map. Rows that fail to
// convert are logged and dropped, as with the CSV dataset.
func (r *Repository) Load(ctx context.Context) (Map, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, day, start_time, end_time
		FROM presence_entries
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataSource, err)
	}
	defer rows.Close()

	data := make(Map)
	n := 0
	for rows.Next() {
		n++
		var id, day, start, end string
		if err := rows.Scan(&id, &day, &start, &end); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDataSource, err)
		}
		userID, date, entry, err := parseRow(id, day, start, end)
		if err != nil {
			skipRow(r.logger, n, err)
			continue
		}
		data.Put(userID, date, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataSource, err)
	}
	return data, nil
}
