package repository

import (
	"context"

	"library-backend/internal/domains/user/model"
)

// RepositoryInterface is the read side of the user directory plus the
// insert used by provisioning tools.
type RepositoryInterface interface {
	GetByID(ctx context.Context, id int) (*model.User, error)
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	// ListForAdmin returns users whose login contains nameFilter
	// (case-insensitive, trimmed). A blank filter returns everyone.
	ListForAdmin(ctx context.Context, nameFilter string) ([]model.User, error)
	Create(ctx context.Context, u *model.User) error
}
