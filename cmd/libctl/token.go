package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/domains/user/repository"
	"library-backend/pkg/jwt"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Access token helpers",
	}

	issue := &cobra.Command{
		Use:   "issue",
		Short: "Sign an access token for a user id",
		Args:  cobra.NoArgs,
		RunE:  runTokenIssue,
	}
	issue.Flags().Int("user-id", 0, "User id to embed in the token")
	issue.Flags().String("login", "", "Login to embed in the token")
	issue.Flags().String("role", jwt.RoleUser, "Role: user or admin")
	_ = issue.MarkFlagRequired("user-id")

	forUser := &cobra.Command{
		Use:   "for",
		Short: "Sign an access token for a user in the directory",
		Args:  cobra.NoArgs,
		RunE:  runTokenFor,
	}
	forUser.Flags().Int("user-id", 0, "Directory user id")
	forUser.Flags().String("login", "", "Directory login")
	forUser.MarkFlagsOneRequired("user-id", "login")
	forUser.MarkFlagsMutuallyExclusive("user-id", "login")

	cmd.AddCommand(issue, forUser)
	return cmd
}

func runTokenIssue(cmd *cobra.Command, _ []string) error {
	userID, err := cmd.Flags().GetInt("user-id")
	if err != nil {
		return err
	}
	login, err := cmd.Flags().GetString("login")
	if err != nil {
		return err
	}
	role, err := cmd.Flags().GetString("role")
	if err != nil {
		return err
	}

	if userID <= 0 {
		return fmt.Errorf("user-id must be positive")
	}
	if role != jwt.RoleUser && role != jwt.RoleAdmin {
		return fmt.Errorf("unknown role %q", role)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTTL)
	token, err := tokens.GenerateAccessToken(userID, login, role)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

func runTokenFor(cmd *cobra.Command, _ []string) error {
	userID, _ := cmd.Flags().GetInt("user-id")
	login, _ := cmd.Flags().GetString("login")

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

	u, err := lookupUser(ctx, repository.NewPostgresRepository(pool), userID, login)
	if err != nil {
		return err
	}

	role := jwt.RoleUser
	if u.IsAdmin() {
		role = jwt.RoleAdmin
	}

	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTTL)
	token, err := tokens.GenerateAccessToken(u.ID, u.Login, role)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

// lookupUser resolves a directory user by id, or by login when id is zero.
func lookupUser(ctx context.Context, users repository.RepositoryInterface, id int, login string) (*model.User, error) {
	if id > 0 {
		return users.GetByID(ctx, id)
	}

	login = strings.TrimSpace(login)
	if login == "" {
		return nil, fmt.Errorf("user-id or login is required")
	}
	u, err := users.GetByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("no user with login %q", login)
	}
	return u, nil
}
