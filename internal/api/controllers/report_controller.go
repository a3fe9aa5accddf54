package controllers

import (
	"errors"
	"net/http"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	"github.com/altivainc/altiva/internal/api/response"
	"github.com/altivainc/altiva/internal/perrors"
	"github.com/altivainc/altiva/internal/services"
	report2 "github.com/altivainc/altiva/internal/services/report"
	user2 "github.com/altivainc/altiva/internal/services/user"
)

func RegisterReportRoutes(r *router.Router, svc *services.Services) {
	// List reports visible to the caller. Admins see everything, clients only
	// reports addressed to them.
	r.GET("/api/reports", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		claims, ok := authedClaims(ctx, stdCtx)
		if !ok {
			return
		}

		reports, err := svc.Report.ListFor(stdCtx, user2.UserRole(claims.Role), claims.UserID)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to list reports", perrors.NewErrInternalServerError("Failed to list reports", err))
			return
		}

		if reports == nil {
			reports = []*report2.Report{}
		}

		writeOK(ctx, stdCtx, "success", reports)
	})

	// Create report (admin only)
	r.POST("/api/reports", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		if _, ok := adminClaims(ctx, stdCtx); !ok {
			return
		}

		var body report2.CreateReportRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if body.Title == "" || body.ClientID == "" {
			writeError(ctx, stdCtx, "Title and client_id are required", perrors.NewErrInvalidRequest("Title and client_id are required", errors.New("missing fields")))
			return
		}

		created, err := svc.Report.Create(stdCtx, &body)
		if err != nil {
			switch {
			case errors.Is(err, report2.ErrClientNotFound):
				writeError(ctx, stdCtx, "Client does not exist", perrors.NewErrInvalidRequest("Client does not exist", err))
			default:
				writeError(ctx, stdCtx, "Failed to create report", perrors.NewErrInternalServerError("Failed to create report", err))
			}
			return
		}

		response.NewResponse(stdCtx, "success", created).WithStatus(http.StatusCreated).Write(ctx)
	})

	// Update report (admin only)
	r.PUT("/api/reports/{id}", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		if _, ok := adminClaims(ctx, stdCtx); !ok {
			return
		}

		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID format", perrors.NewErrInvalidRequest("Invalid ID format", err))
			return
		}

		var body report2.UpdateReportRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		updated, err := svc.Report.Update(stdCtx, id.String(), &body)
		if err != nil {
			switch {
			case errors.Is(err, report2.ErrReportNotFound):
				writeError(ctx, stdCtx, "Report not found", perrors.NewErrNotFound("Report not found", err))
			default:
				writeError(ctx, stdCtx, "Failed to update report", perrors.NewErrInternalServerError("Failed to update report", err))
			}
			return
		}

		writeOK(ctx, stdCtx, "success", updated)
	})

	// Delete report (admin only)
	r.DELETE("/api/reports/{id}", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		if _, ok := adminClaims(ctx, stdCtx); !ok {
			return
		}

		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID format", perrors.NewErrInvalidRequest("Invalid ID format", err))
			return
		}

		if err := svc.Report.Delete(stdCtx, id.String()); err != nil {
			switch {
			case errors.Is(err, report2.ErrReportNotFound):
				writeError(ctx, stdCtx, "Report not found", perrors.NewErrNotFound("Report not found", err))
			default:
				writeError(ctx, stdCtx, "Failed to delete report", perrors.NewErrInternalServerError("Failed to delete report", err))
			}
			return
		}

		writeOK(ctx, stdCtx, "success", map[string]any{
			"message": "Report deleted",
		})
	})
}
