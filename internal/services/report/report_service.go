package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/altivainc/altiva/internal/services/user"
)

// fileURLBase mirrors the synthetic attachment location the upload flow
// produces; no object store is wired in this deployment.
const fileURLBase = "https://fake-s3.com/"

// ReportService contains business logic and the access-control gate for
// reports: admins see and mutate everything, clients only read reports
// addressed to them.
type ReportService struct {
	repo Repository
}

func NewReportService(repo Repository) *ReportService {
	return &ReportService{repo: repo}
}

// ListFor returns the reports visible to the caller. Admins get all reports;
// everyone else only the reports addressed to their own id.
func (s *ReportService) ListFor(ctx context.Context, role user.UserRole, userID string) ([]*Report, error) {
	if role == user.RoleAdmin {
		return s.repo.List(ctx)
	}
	return s.repo.ListByClient(ctx, userID)
}

// CanAccess reports whether the caller may read the report.
func (s *ReportService) CanAccess(rep *Report, role user.UserRole, userID string) bool {
	return role == user.RoleAdmin || rep.ClientID == userID
}

func (s *ReportService) GetByID(ctx context.Context, id string) (*Report, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ReportService) Create(ctx context.Context, req *CreateReportRequest) (*Report, error) {
	if req.Title == "" || req.ClientID == "" {
		return nil, fmt.Errorf("title and client_id are required")
	}

	created, err := s.repo.Create(ctx, &Report{
		Title:     req.Title,
		ClientID:  req.ClientID,
		AIContext: req.AIContext,
		Status:    StatusCompleted,
		FileURL:   fileURLBase + req.FileName,
	})
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	return created, nil
}

func (s *ReportService) Update(ctx context.Context, id string, req *UpdateReportRequest) (*Report, error) {
	upd := &UpdateFields{
		Title:     req.Title,
		AIContext: req.AIContext,
		Status:    req.Status,
	}
	if req.FileName != nil {
		fileURL := fileURLBase + *req.FileName
		upd.FileURL = &fileURL
	}

	updated, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, ErrReportNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to update report: %w", err)
	}

	return updated, nil
}

func (s *ReportService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrReportNotFound) {
			return ErrReportNotFound
		}
		return fmt.Errorf("failed to delete report: %w", err)
	}

	return nil
}
