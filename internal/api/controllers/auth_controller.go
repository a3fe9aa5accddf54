package controllers

import (
	"errors"
	"net/http"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	"github.com/altivainc/altiva/internal/api/authenticator"
	"github.com/altivainc/altiva/internal/api/response"
	"github.com/altivainc/altiva/internal/perrors"
	"github.com/altivainc/altiva/internal/services"
	user2 "github.com/altivainc/altiva/internal/services/user"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"idToken"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	OrgLabel string `json:"org_label,omitempty"`
	Picture  string `json:"picture,omitempty"`
}

func toUserResponse(u *user2.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     string(u.Role),
		OrgLabel: u.OrgLabel,
		Picture:  u.Picture,
	}
}

func RegisterAuthRoutes(r *router.Router, svc *services.Services, auth *authenticator.Authenticator) {
	// Manual registration. New accounts always get the client role.
	r.POST("/api/auth/register", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		var req user2.RegisterRequest
		if err := parseBody(ctx, &req); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if req.Name == "" || req.Email == "" || req.Password == "" {
			writeError(ctx, stdCtx, "Name, email and password are required", perrors.NewErrInvalidRequest("Name, email and password are required", errors.New("missing fields")))
			return
		}

		created, err := svc.User.Register(stdCtx, &req)
		if err != nil {
			switch {
			case errors.Is(err, user2.ErrDuplicateEmail):
				writeError(ctx, stdCtx, "Email already registered", perrors.New(perrors.ErrCodeDuplicateEmail, "Email already registered", err))
			default:
				writeError(ctx, stdCtx, "Failed to register", perrors.NewErrInternalServerError("Failed to register", err))
			}
			return
		}

		token, err := auth.GenerateToken(created.ID, created.Email, created.Name, string(created.Role))
		if err != nil {
			writeError(ctx, stdCtx, "Failed to generate token", err)
			return
		}

		response.NewResponse(stdCtx, "success", LoginResponse{
			Token: token,
			User:  toUserResponse(created),
		}).WithStatus(http.StatusCreated).Write(ctx)
	})

	// Login with email/password
	r.POST("/api/auth/login", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		var req LoginRequest
		if err := parseBody(ctx, &req); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if req.Email == "" || req.Password == "" {
			writeError(ctx, stdCtx, "Email and password are required", perrors.NewErrInvalidRequest("Email and password are required", errors.New("missing credentials")))
			return
		}

		// Authenticate user
		usr, err := svc.User.Authenticate(stdCtx, req.Email, req.Password)
		if err != nil {
			// Unknown email and wrong password answer alike
			writeError(ctx, stdCtx, "Invalid credentials", perrors.NewErrInvalidCredentials("Invalid credentials", err))
			return
		}

		token, err := auth.GenerateToken(usr.ID, usr.Email, usr.Name, string(usr.Role))
		if err != nil {
			writeError(ctx, stdCtx, "Failed to generate token", err)
			return
		}

		writeOK(ctx, stdCtx, "success", LoginResponse{
			Token: token,
			User:  toUserResponse(usr),
		})
	})

	// Login with a Google ID token (SSO). Provisions a client account on
	// first login.
	r.POST("/api/auth/google", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		var req GoogleLoginRequest
		if err := parseBody(ctx, &req); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if req.IDToken == "" {
			writeError(ctx, stdCtx, "idToken is required", perrors.NewErrInvalidRequest("idToken is required", errors.New("missing idToken")))
			return
		}

		if auth.Google == nil {
			writeError(ctx, stdCtx, "Google sign-in is not configured", perrors.NewErrInternalServerError("Google sign-in is not configured", errors.New("GOOGLE_CLIENT_ID not set")))
			return
		}

		identity, err := auth.Google.Verify(stdCtx, req.IDToken)
		if err != nil {
			writeError(ctx, stdCtx, "Google authentication failed", perrors.NewErrUnauthorized("Google authentication failed", err))
			return
		}

		usr, err := svc.User.FindOrCreateSSO(stdCtx, identity.Email, identity.Name, identity.Picture)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to sign in", perrors.NewErrInternalServerError("Failed to sign in", err))
			return
		}

		token, err := auth.GenerateToken(usr.ID, usr.Email, usr.Name, string(usr.Role))
		if err != nil {
			writeError(ctx, stdCtx, "Failed to generate token", err)
			return
		}

		writeOK(ctx, stdCtx, "success", LoginResponse{
			Token: token,
			User:  toUserResponse(usr),
		})
	})

	// Get current user info
	r.GET("/api/auth/me", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		claims, ok := authedClaims(ctx, stdCtx)
		if !ok {
			return
		}

		usr, err := svc.User.GetByID(stdCtx, claims.UserID)
		if err != nil {
			// A valid token can outlive its user row.
			if errors.Is(err, user2.ErrUserNotFound) {
				writeError(ctx, stdCtx, "User not found", perrors.NewErrNotFound("User not found", err))
			} else {
				writeError(ctx, stdCtx, "Failed to get user", perrors.NewErrInternalServerError("Failed to get user", err))
			}
			return
		}

		writeOK(ctx, stdCtx, "success", toUserResponse(usr))
	})
}
