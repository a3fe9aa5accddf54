package user

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both unknown email and wrong password so the
// login response cannot be used for account enumeration.
var ErrInvalidCredentials = errors.New("invalid credentials")

// demoSentinelDigest is the fixture hash shipped with demo datasets. When demo
// login is enabled, the literal password "123456" is accepted for accounts
// whose stored hash is exactly this digest. Never enable outside demos.
const (
	demoSentinelDigest = "$2a$10$abcdefghijklmnopqrstuvwx"
	demoPassword       = "123456"
)

type UserService struct {
	repo      Repository
	demoLogin bool
}

func NewUserService(repo Repository, demoLogin bool) *UserService {
	return &UserService{repo: repo, demoLogin: demoLogin}
}

// Register creates a client account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.repo.Insert(ctx, &User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         RoleClient,
		OrgLabel:     req.OrgLabel,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	return created, nil
}

// Authenticate verifies email/password credentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil {
		return user, nil
	}

	if s.demoLogin && user.PasswordHash == demoSentinelDigest && password == demoPassword {
		return user, nil
	}

	return nil, ErrInvalidCredentials
}

// FindOrCreateSSO returns the account for a verified external identity,
// provisioning a client account on first login. The account gets a random
// unusable password since authentication always goes through the identity
// provider. Safe to call concurrently for the same email: the store's unique
// constraint arbitrates, and the loser re-reads the winner's row.
func (s *UserService) FindOrCreateSSO(ctx context.Context, email, name, picture string) (*User, error) {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	placeholder := make([]byte, 32)
	if _, err := rand.Read(placeholder); err != nil {
		return nil, fmt.Errorf("failed to generate placeholder password: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword(placeholder, bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash placeholder password: %w", err)
	}

	created, err := s.repo.Insert(ctx, &User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         RoleClient,
		OrgLabel:     SSOOrgLabel,
		Picture:      picture,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return s.repo.GetByEmail(ctx, email)
		}
		return nil, fmt.Errorf("failed to provision sso user: %w", err)
	}

	return created, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// ListClients returns every client-role account.
func (s *UserService) ListClients(ctx context.Context) ([]*User, error) {
	clients, err := s.repo.ListByRole(ctx, RoleClient)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}
