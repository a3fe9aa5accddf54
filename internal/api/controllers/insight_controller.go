package controllers

import (
	"context"
	"errors"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	"github.com/altivainc/altiva/internal/api/authenticator"
	"github.com/altivainc/altiva/internal/perrors"
	"github.com/altivainc/altiva/internal/services"
	insight2 "github.com/altivainc/altiva/internal/services/insight"
	report2 "github.com/altivainc/altiva/internal/services/report"
	user2 "github.com/altivainc/altiva/internal/services/user"
)

// checkInsightAccess validates the optional report reference: when the caller
// names a report, they must be allowed to read it.
func checkInsightAccess(ctx *fasthttp.RequestCtx, stdCtx context.Context, svc *services.Services, claims *authenticator.UserClaims, req *insight2.GenerateRequest) bool {
	if req.ReportID == "" {
		return true
	}

	rep, err := svc.Report.GetByID(stdCtx, req.ReportID)
	if err != nil {
		if errors.Is(err, report2.ErrReportNotFound) {
			writeError(ctx, stdCtx, "Report not found", perrors.NewErrNotFound("Report not found", err))
		} else {
			writeError(ctx, stdCtx, "Failed to get report", perrors.NewErrInternalServerError("Failed to get report", err))
		}
		return false
	}

	if !svc.Report.CanAccess(rep, user2.UserRole(claims.Role), claims.UserID) {
		writeError(ctx, stdCtx, "Not authorized", perrors.NewErrForbidden("Not authorized", errors.New("report belongs to another client")))
		return false
	}

	return true
}

func RegisterInsightRoutes(r *router.Router, svc *services.Services) {
	// Free-text summary. Upstream failures come back as a tagged fallback,
	// never as an error.
	r.POST("/api/ai/generate", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		claims, ok := authedClaims(ctx, stdCtx)
		if !ok {
			return
		}

		var req insight2.GenerateRequest
		if err := parseBody(ctx, &req); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if req.KeyData == "" {
			writeError(ctx, stdCtx, "keyData is required", perrors.NewErrInvalidRequest("keyData is required", errors.New("missing keyData")))
			return
		}

		if !checkInsightAccess(ctx, stdCtx, svc, claims, &req) {
			return
		}

		writeOK(ctx, stdCtx, "success", svc.Insight.Summarize(stdCtx, req.KeyData))
	})

	// Structured risk assessment variant
	r.POST("/api/analizar", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		claims, ok := authedClaims(ctx, stdCtx)
		if !ok {
			return
		}

		var req insight2.GenerateRequest
		if err := parseBody(ctx, &req); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if req.KeyData == "" {
			writeError(ctx, stdCtx, "keyData is required", perrors.NewErrInvalidRequest("keyData is required", errors.New("missing keyData")))
			return
		}

		if !checkInsightAccess(ctx, stdCtx, svc, claims, &req) {
			return
		}

		writeOK(ctx, stdCtx, "success", svc.Insight.Assess(stdCtx, req.KeyData))
	})
}
