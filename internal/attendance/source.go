package attendance

import (
	"context"
	"log/slog"
)

// Source produces a fresh snapshot of the whole dataset.
type Source interface {
	Load(ctx context.Context) (Map, error)
}

// CSVSource reads the dataset from a comma-delimited file.
type CSVSource struct {
	Path   string
	Logger *slog.Logger
}

// NewCSVSource creates a source backed by the file at path.
func NewCSVSource(path string, logger *slog.Logger) *CSVSource {
	return &CSVSource{Path: path, Logger: logger}
}

// Load parses the file. The context is only checked before the read starts.
func (s *CSVSource) Load(ctx context.Context) (Map, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadCSV(s.Path, s.Logger)
}
