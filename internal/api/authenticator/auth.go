package authenticator

import (
	"context"
	"errors"
	"time"

	"github.com/altivainc/altiva/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the lifetime of a session token. Sessions are stateless, so a
// token cannot be revoked before it expires; logout only clears client state.
const TokenTTL = 8 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// UserClaims is the decoded payload of a session token.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type Authenticator struct {
	secret []byte
	ttl    time.Duration

	// Google is nil when GOOGLE_CLIENT_ID is not configured.
	Google *GoogleVerifier
}

func New(conf *config.Config) (*Authenticator, error) {
	if conf.JWT_SECRET == "" {
		return nil, errors.New("JWT_SECRET is not configured")
	}

	a := &Authenticator{
		secret: []byte(conf.JWT_SECRET),
		ttl:    TokenTTL,
	}

	if conf.GOOGLE_CLIENT_ID != "" {
		google, err := NewGoogleVerifier(context.Background(), conf.GOOGLE_CLIENT_ID)
		if err != nil {
			return nil, err
		}
		a.Google = google
	}

	return a, nil
}

// GenerateToken issues a signed session token for the user.
func (a *Authenticator) GenerateToken(userID, email, name, role string) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
		UserID: userID,
		Role:   role,
		Name:   name,
		Email:  email,
	})

	return token.SignedString(a.secret)
}

// VerifyAccessToken validates the signature and expiry of a session token and
// returns its claims. Any failure maps to ErrInvalidToken.
func (a *Authenticator) VerifyAccessToken(tokenString string) (*UserClaims, error) {
	claims := &UserClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
