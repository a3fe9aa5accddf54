package user

import "time"

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleClient UserRole = "client"
)

// SSOOrgLabel marks accounts that were provisioned through Google sign-in and
// therefore carry an unusable random password.
const SSOOrgLabel = "Google Auth"

type User struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         UserRole  `db:"role" json:"role"`
	OrgLabel     string    `db:"org_label" json:"org_label"`
	Picture      string    `db:"picture" json:"picture,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// RegisterRequest captures payload for manual registration
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	OrgLabel string `json:"org_label,omitempty"`
}
