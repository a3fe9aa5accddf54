package controllers

import (
	"context"
	"errors"
	"fmt"

	json "github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/altivainc/altiva/internal/api/authenticator"
	"github.com/altivainc/altiva/internal/api/response"
	"github.com/altivainc/altiva/internal/perrors"
	"github.com/altivainc/altiva/internal/services/user"
)

// requestContext returns the context for downstream calls. fasthttp does not
// provide a standard context, so the middleware stores the extracted trace
// context as a user value; fall back to Background when it is absent.
func requestContext(ctx *fasthttp.RequestCtx) context.Context {
	if traceCtx, ok := ctx.UserValue("traceCtx").(context.Context); ok {
		return traceCtx
	}
	return context.Background()
}

func parseBody(ctx *fasthttp.RequestCtx, target any) error {
	body := ctx.PostBody()
	if len(body) == 0 {
		return errors.New("request body is empty")
	}

	return json.Unmarshal(body, target)
}

func writeError(ctx *fasthttp.RequestCtx, stdCtx context.Context, message string, err error) {
	response.NewResponse[any](stdCtx, message, nil).WithError(err).Write(ctx)
}

func writeOK(ctx *fasthttp.RequestCtx, stdCtx context.Context, message string, data any) {
	response.NewResponse(stdCtx, message, data).Write(ctx)
}

// WriteUnauthorized is used by the auth middleware, which lives outside this
// package but shares the response envelope.
func WriteUnauthorized(ctx *fasthttp.RequestCtx, message string) {
	stdCtx := requestContext(ctx)
	writeError(ctx, stdCtx, message, perrors.NewErrUnauthorized(message, errors.New("missing or invalid credentials")))
}

func pathParam(ctx *fasthttp.RequestCtx, key string) (string, error) {
	val := ctx.UserValue(key)
	if val == nil {
		return "", fmt.Errorf("%s is required", key)
	}

	return fmt.Sprint(val), nil
}

func pathParamUUID(ctx *fasthttp.RequestCtx, key string) (uuid.UUID, error) {
	val, err := pathParam(ctx, key)
	if err != nil {
		return uuid.Nil, err
	}

	return uuid.Parse(val)
}

// authedClaims returns the verified claims the middleware stored, writing a
// 401 when they are absent.
func authedClaims(ctx *fasthttp.RequestCtx, stdCtx context.Context) (*authenticator.UserClaims, bool) {
	claims, ok := ctx.UserValue("userClaims").(*authenticator.UserClaims)
	if !ok || claims == nil {
		writeError(ctx, stdCtx, "Unauthorized", perrors.NewErrUnauthorized("Unauthorized", errors.New("no user claims")))
		return nil, false
	}

	return claims, true
}

// adminClaims additionally requires the admin role, writing a 403 otherwise.
func adminClaims(ctx *fasthttp.RequestCtx, stdCtx context.Context) (*authenticator.UserClaims, bool) {
	claims, ok := authedClaims(ctx, stdCtx)
	if !ok {
		return nil, false
	}

	if claims.Role != string(user.RoleAdmin) {
		writeError(ctx, stdCtx, "Not authorized", perrors.NewErrForbidden("Not authorized", errors.New("admin role required")))
		return nil, false
	}

	return claims, true
}
