// Package report answers presence questions about single users by combining
// the cached dataset, the user directory and the aggregators in stats.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"presence/internal/attendance"
	"presence/internal/cache"
	"presence/internal/directory"
	"presence/internal/stats"
)

// Cache keys for the registry slots owned by the service.
const (
	AttendanceKey = "attendance"
	DirectoryKey  = "directory"
)

// ErrUnknownUser is returned when a user id has no attendance data.
var ErrUnknownUser = errors.New("unknown user")

// Service coordinates cached loading and aggregation.
type Service struct {
	data     func(context.Context) (attendance.Map, error)
	dir      func(context.Context) (map[int]directory.Entry, error)
	collator directory.Collator
	logger   *slog.Logger
}

// NewService wraps the dataset source and directory loader with the registry
// so both are reloaded at most once per ttl.
func NewService(
	reg *cache.Registry,
	ttl time.Duration,
	src attendance.Source,
	dir func(context.Context) (map[int]directory.Entry, error),
	collator directory.Collator,
	logger *slog.Logger,
) *Service {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		data:     cache.Wrap(reg, AttendanceKey, ttl, src.Load),
		dir:      cache.Wrap(reg, DirectoryKey, ttl, dir),
		collator: collator,
		logger:   logger,
	}
}

// DirectoryFile adapts directory.LoadFile to the loader signature.
func DirectoryFile(path string) func(context.Context) (map[int]directory.Entry, error) {
	return func(context.Context) (map[int]directory.Entry, error) {
		return directory.LoadFile(path)
	}
}

// Data returns the current dataset snapshot.
func (s *Service) Data(ctx context.Context) (attendance.Map, error) {
	return s.data(ctx)
}

func (s *Service) days(ctx context.Context, userID int) (attendance.Days, error) {
	data, err := s.data(ctx)
	if err != nil {
		return nil, err
	}
	days, ok := data[userID]
	if !ok {
		s.logger.Debug("user not found", "user_id", userID)
		return nil, fmt.Errorf("%w: %d", ErrUnknownUser, userID)
	}
	return days, nil
}

// Users lists directory entries for every user present in the dataset,
// sorted by name. Directory users without attendance rows are left out, so
// the listing never offers a user whose charts would 404.
func (s *Service) Users(ctx context.Context) ([]directory.Entry, error) {
	data, err := s.data(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.dir(ctx)
	if err != nil {
		return nil, err
	}
	return directory.Sort(directory.Merge(entries, data.UserIDs()), s.collator), nil
}

// User returns the directory entry for one user.
func (s *Service) User(ctx context.Context, userID int) (directory.Entry, error) {
	entries, err := s.dir(ctx)
	if err != nil {
		return directory.Entry{}, err
	}
	return directory.Lookup(entries, userID)
}

// WeekdayTotals returns total seconds present per weekday.
func (s *Service) WeekdayTotals(ctx context.Context, userID int) ([7]int, error) {
	days, err := s.days(ctx, userID)
	if err != nil {
		return [7]int{}, err
	}
	return stats.TotalByWeekday(days), nil
}

// WeekdayMeans returns mean seconds present per weekday.
func (s *Service) WeekdayMeans(ctx context.Context, userID int) ([7]float64, error) {
	days, err := s.days(ctx, userID)
	if err != nil {
		return [7]float64{}, err
	}
	return stats.MeanByWeekday(days), nil
}

// StartEnd returns mean arrival and departure per weekday.
func (s *Service) StartEnd(ctx context.Context, userID int) ([7]stats.StartEnd, error) {
	days, err := s.days(ctx, userID)
	if err != nil {
		return [7]stats.StartEnd{}, err
	}
	return stats.AverageStartEnd(days), nil
}

// MonthlyHours returns the average hours worked per calendar month.
func (s *Service) MonthlyHours(ctx context.Context, userID int) ([12]stats.MonthHours, error) {
	days, err := s.days(ctx, userID)
	if err != nil {
		return [12]stats.MonthHours{}, err
	}
	return stats.AverageMonthlyHours(days), nil
}
