package controllers

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	"github.com/altivainc/altiva/internal/perrors"
	"github.com/altivainc/altiva/internal/services"
)

func RegisterUserRoutes(r *router.Router, svc *services.Services) {
	// List client accounts (admin only)
	r.GET("/api/users/clients", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		if _, ok := adminClaims(ctx, stdCtx); !ok {
			return
		}

		clients, err := svc.User.ListClients(stdCtx)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to list clients", perrors.NewErrInternalServerError("Failed to list clients", err))
			return
		}

		out := make([]UserResponse, 0, len(clients))
		for _, c := range clients {
			out = append(out, toUserResponse(c))
		}

		writeOK(ctx, stdCtx, "success", out)
	})
}
