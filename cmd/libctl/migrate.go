package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"library-backend/internal/infrastructure/database/migrations"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect schema migrations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: withProvider(func(ctx context.Context, out io.Writer, p *goose.Provider) error {
				results, err := p.Up(ctx)
				if err != nil {
					return err
				}
				for _, r := range results {
					log.Info().Int64("version", r.Source.Version).Dur("took", r.Duration).Msg("migration applied")
				}
				fmt.Fprintf(out, "applied %d migration(s)\n", len(results))
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: withProvider(func(ctx context.Context, out io.Writer, p *goose.Provider) error {
				r, err := p.Down(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "rolled back version %d\n", r.Source.Version)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			Args:  cobra.NoArgs,
			RunE: withProvider(func(ctx context.Context, out io.Writer, p *goose.Provider) error {
				statuses, err := p.Status(ctx)
				if err != nil {
					return err
				}
				for _, s := range statuses {
					applied := "pending"
					if s.State == goose.StateApplied {
						applied = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
					fmt.Fprintf(out, "%-40s %s\n", s.Source.Path, applied)
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: withProvider(func(ctx context.Context, out io.Writer, p *goose.Provider) error {
				v, err := p.GetDBVersion(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%d\n", v)
				return nil
			}),
		},
	)
	return cmd
}

type providerFunc func(ctx context.Context, out io.Writer, p *goose.Provider) error

// withProvider opens the configured database over lib/pq and hands a goose
// provider to fn.
func withProvider(fn providerFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		provider, err := migrations.NewProvider(db)
		if err != nil {
			return fmt.Errorf("failed to load migrations: %w", err)
		}
		return fn(cmd.Context(), cmd.OutOrStdout(), provider)
	}
}
