package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/shared/utils"
	"library-backend/pkg/database"
)

const constraintLogin = "ux_users_login"

type postgresRepository struct {
	db database.Querier
}

func NewPostgresRepository(db database.Querier) RepositoryInterface {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	query := `SELECT id, login, role, created_at FROM users WHERE id = $1`

	var u model.User
	err := r.db.QueryRow(ctx, query, id).Scan(&u.ID, &u.Login, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewUserNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return &u, nil
}

func (r *postgresRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	query := `SELECT id, login, role, created_at FROM users WHERE login = $1`

	var u model.User
	err := r.db.QueryRow(ctx, query, login).Scan(&u.ID, &u.Login, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by login: %w", err)
	}
	return &u, nil
}

func (r *postgresRepository) ListForAdmin(ctx context.Context, nameFilter string) ([]model.User, error) {
	query := `SELECT id, login, role, created_at FROM users`
	args := []any{}

	// SEARCH by login, LIKE metacharacters matched literally
	if filter := strings.TrimSpace(nameFilter); filter != "" {
		query += ` WHERE login ILIKE $1`
		args = append(args, utils.ContainsPattern(filter))
	}
	query += ` ORDER BY id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.User])
	if err != nil {
		return nil, fmt.Errorf("failed to scan users: %w", err)
	}
	return users, nil
}

func (r *postgresRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (login, role)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, u.Login, u.Role).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, constraintLogin) {
			return model.NewLoginTakenError(u.Login).Wrap(err)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}
