package user

import (
	"context"
	"errors"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Repository is the credential store. Email lookups are exact-match against
// the stored value; uniqueness of email is enforced by the store itself so
// Insert is safe to race.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Insert(ctx context.Context, u *User) (*User, error)
	ListByRole(ctx context.Context, role UserRole) ([]*User, error)
}
