package filestore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/altivainc/altiva/internal/services/user"
)

// UserRepo implements user.Repository on top of the file store.
type UserRepo struct {
	store *Store
}

func NewUserRepo(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var found *user.User
	err := r.store.view(func(doc *document) error {
		for _, u := range doc.Users {
			if u.Email == email {
				copied := *u
				found = &copied
				return nil
			}
		}
		return user.ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	var found *user.User
	err := r.store.view(func(doc *document) error {
		for _, u := range doc.Users {
			if u.ID == id {
				copied := *u
				found = &copied
				return nil
			}
		}
		return user.ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *UserRepo) Insert(ctx context.Context, u *user.User) (*user.User, error) {
	stored := *u
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now().UTC()

	err := r.store.update(func(doc *document) error {
		for _, existing := range doc.Users {
			if existing.Email == stored.Email {
				return user.ErrDuplicateEmail
			}
		}
		doc.Users = append(doc.Users, &stored)
		return nil
	})
	if err != nil {
		return nil, err
	}

	created := stored
	return &created, nil
}

func (r *UserRepo) ListByRole(ctx context.Context, role user.UserRole) ([]*user.User, error) {
	var users []*user.User
	err := r.store.view(func(doc *document) error {
		for _, u := range doc.Users {
			if u.Role == role {
				copied := *u
				users = append(users, &copied)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}
