package store

import (
	"context"
	"fmt"
	"log/slog"

	"presence/internal/attendance"
	"presence/internal/config"
)

// OpenSource picks the attendance backend named by cfg.DataSource. The
// returned closer releases any database handle and is never nil on success.
func OpenSource(ctx context.Context, cfg config.App, logger *slog.Logger) (attendance.Source, func(), error) {
	var driver, dsn string
	switch cfg.DataSource {
	case "csv":
		return attendance.NewCSVSource(cfg.DataCSV, logger), func() {}, nil
	case "postgres":
		driver, dsn = DriverPostgres, cfg.DatabaseURL
	case "sqlite":
		driver, dsn = DriverSQLite, cfg.SQLitePath
	default:
		return nil, nil, fmt.Errorf("unknown data source %q", cfg.DataSource)
	}

	db, err := NewDB(ctx, driver, dsn)
	if err != nil {
		return nil, nil, err
	}
	repo := attendance.NewRepository(db.Client, logger)
	if err := repo.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return repo, func() { _ = db.Close() }, nil
}

// WatchedFiles maps the local files behind cfg to the cache keys they feed.
// Postgres has no local file, so only the directory is watched for it.
func WatchedFiles(cfg config.App, attendanceKey, directoryKey string) map[string]string {
	files := map[string]string{cfg.DataUsersXML: directoryKey}
	switch cfg.DataSource {
	case "csv":
		files[cfg.DataCSV] = attendanceKey
	case "sqlite":
		files[cfg.SQLitePath] = attendanceKey
	}
	return files
}
