package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"presence/internal/dirclient"
	"presence/internal/report"
)

func usersCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List users present in both the directory and the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeSource, err := opts.service(cmd.Context())
			if err != nil {
				return err
			}
			defer closeSource()

			users, err := svc.Users(cmd.Context())
			if err != nil {
				return err
			}
			if opts.format == "json" {
				return writeJSON(cmd.OutOrStdout(), users)
			}
			rows := report.Rows{{"ID", "Name", "Image"}}
			for _, u := range users {
				rows = append(rows, []any{u.ID, u.Name, u.Image})
			}
			return writeTable(cmd.OutOrStdout(), rows)
		},
	}
}

type reportFunc func(ctx context.Context, svc *report.Service, id int) (report.Rows, error)

func reportCmd(opts *options, name, short string, fn reportFunc) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <user-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			svc, closeSource, err := opts.service(cmd.Context())
			if err != nil {
				return err
			}
			defer closeSource()

			rows, err := fn(cmd.Context(), svc, id)
			if err != nil {
				return err
			}
			if opts.format == "json" {
				return writeJSON(cmd.OutOrStdout(), rows)
			}
			return writeTable(cmd.OutOrStdout(), rows)
		},
	}
}

func syncUsersCmd(opts *options) *cobra.Command {
	var url string
	cmd := &cobra.Command{
		Use:   "sync-users",
		Short: "Download the user directory XML into the configured path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" {
				return fmt.Errorf("no directory URL: pass --url or set DIRECTORY_URL")
			}
			written, err := dirclient.New(url).Sync(cmd.Context(), opts.cfg.DataUsersXML)
			if err != nil {
				return err
			}
			if written {
				fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", opts.cfg.DataUsersXML)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date\n", opts.cfg.DataUsersXML)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", opts.cfg.DirectoryURL, "Directory XML URL")
	return cmd
}
