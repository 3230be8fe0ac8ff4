package main

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/domains/user/repository"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage the user directory",
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE:  runUserAdd,
	}
	add.Flags().String("login", "", "Unique login")
	add.Flags().String("role", "user", "Role: user or admin")
	_ = add.MarkFlagRequired("login")

	cmd.AddCommand(add)
	return cmd
}

func runUserAdd(cmd *cobra.Command, _ []string) error {
	login, _ := cmd.Flags().GetString("login")
	role, _ := cmd.Flags().GetString("role")

	login = strings.TrimSpace(login)
	if login == "" {
		return fmt.Errorf("login must not be blank")
	}
	if !model.ValidRole(role) {
		return fmt.Errorf("unknown role %q", role)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	u := &model.User{Login: login, Role: role}
	if err := repository.NewPostgresRepository(pool).Create(ctx, u); err != nil {
		return err
	}

	log.Info().Int("user_id", u.ID).Str("login", u.Login).Msg("user created")
	fmt.Fprintf(cmd.OutOrStdout(), "%d\n", u.ID)
	return nil
}
