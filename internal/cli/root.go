// Package cli implements presencectl, a command-line view of the same
// reports the HTTP API serves.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"presence/internal/cache"
	"presence/internal/config"
	"presence/internal/directory"
	"presence/internal/report"
	"presence/internal/store"
)

type options struct {
	cfg    config.App
	format string
}

// NewRootCmd builds the command tree. Flag defaults come from cfg and
// format, which is "table" or "json".
func NewRootCmd(cfg config.App, format string) *cobra.Command {
	opts := &options{cfg: cfg}
	root := &cobra.Command{
		Use:   "presencectl",
		Short: "Presence analyzer reports on the command line",
		Long: `presencectl loads the attendance dataset and user directory configured
for the API and prints per-user presence reports.`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.cfg.DataSource, "source", cfg.DataSource, "Dataset backend: csv, sqlite, postgres")
	flags.StringVar(&opts.cfg.DataCSV, "data", cfg.DataCSV, "Path to the attendance CSV")
	flags.StringVar(&opts.cfg.SQLitePath, "sqlite", cfg.SQLitePath, "Path to the sqlite database")
	flags.StringVar(&opts.cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "Postgres connection URL")
	flags.StringVar(&opts.cfg.DataUsersXML, "users", cfg.DataUsersXML, "Path to the users XML directory")
	flags.StringVar(&opts.cfg.CollationLocale, "locale", cfg.CollationLocale, "Locale used to sort user names")
	flags.StringVar(&opts.format, "format", format, "Output format: table, json")

	root.AddCommand(usersCmd(opts))
	root.AddCommand(syncUsersCmd(opts))
	root.AddCommand(reportCmd(opts, "weekday", "Total presence per weekday in seconds",
		func(ctx context.Context, svc *report.Service, id int) (report.Rows, error) {
			totals, err := svc.WeekdayTotals(ctx, id)
			return report.TotalRows(totals), err
		}))
	root.AddCommand(reportCmd(opts, "mean", "Mean presence per weekday in seconds",
		func(ctx context.Context, svc *report.Service, id int) (report.Rows, error) {
			means, err := svc.WeekdayMeans(ctx, id)
			return report.MeanRows(means), err
		}))
	root.AddCommand(reportCmd(opts, "startend", "Mean arrival and departure per weekday",
		func(ctx context.Context, svc *report.Service, id int) (report.Rows, error) {
			avg, err := svc.StartEnd(ctx, id)
			return report.StartEndRows(avg), err
		}))
	root.AddCommand(reportCmd(opts, "monthly", "Average hours per calendar month",
		func(ctx context.Context, svc *report.Service, id int) (report.Rows, error) {
			months, err := svc.MonthlyHours(ctx, id)
			return report.MonthRows(months), err
		}))
	return root
}

// Execute is the entry point called from main.
func Execute() {
	if err := NewRootCmd(config.Load(), defaultFormat()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// service opens the configured source and returns a report service over it.
// The caller must run the returned closer.
func (o *options) service(ctx context.Context) (*report.Service, func(), error) {
	switch o.format {
	case "table", "json":
	default:
		return nil, nil, fmt.Errorf("unknown format %q", o.format)
	}
	logger := o.cfg.Logger()
	src, closeSource, err := store.OpenSource(ctx, o.cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	collator, err := directory.NewCollator(o.cfg.CollationLocale)
	if err != nil {
		closeSource()
		return nil, nil, err
	}
	svc := report.NewService(cache.New(), cache.DefaultTTL, src,
		report.DirectoryFile(o.cfg.DataUsersXML), collator, logger)
	return svc, closeSource, nil
}
