package model

import (
	"time"

	"library-backend/internal/shared/apperror"
	"library-backend/pkg/jwt"
)

type User struct {
	ID        int       `json:"id" db:"id"`
	Login     string    `json:"login" db:"login"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == jwt.RoleAdmin
}

// ValidRole reports whether role is one the directory accepts.
func ValidRole(role string) bool {
	return role == jwt.RoleUser || role == jwt.RoleAdmin
}

const (
	CodeUserNotFound = "USER_NOT_FOUND"
	CodeLoginTaken   = "USER_LOGIN_TAKEN"
)

var (
	ErrUserNotFound = &apperror.Error{Kind: apperror.KindNotFound, Code: CodeUserNotFound}
	ErrLoginTaken   = &apperror.Error{Kind: apperror.KindConflict, Code: CodeLoginTaken}
)

func NewUserNotFoundError(id int) *apperror.Error {
	return apperror.NotFound(CodeUserNotFound, "User with ID '%d' not found.", id)
}

func NewLoginTakenError(login string) *apperror.Error {
	return apperror.Conflict(CodeLoginTaken, "Login '%s' is already taken.", login)
}
