package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// pq foreign-key violation (reports.client_id -> users.id)
const foreignKeyViolation = "23503"

type ReportRepo struct {
	db *sqlx.DB
}

func NewReportRepo(db *sqlx.DB) *ReportRepo {
	return &ReportRepo{db: db}
}

func (r *ReportRepo) Create(ctx context.Context, rep *Report) (*Report, error) {
	query := `
        INSERT INTO reports (title, client_id, ai_context, status, file_url)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `

	var id string
	err := r.db.GetContext(ctx, &id, query, rep.Title, rep.ClientID, rep.AIContext, rep.Status, rep.FileURL)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *ReportRepo) GetByID(ctx context.Context, id string) (*Report, error) {
	query := `
        SELECT r.id, r.title, r.client_id, u.name AS client_name, r.ai_context, r.status, r.file_url, r.created_at
        FROM reports r
        JOIN users u ON u.id = r.client_id
        WHERE r.id = $1
    `

	var report Report
	err := r.db.GetContext(ctx, &report, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return &report, nil
}

func (r *ReportRepo) List(ctx context.Context) ([]*Report, error) {
	query := `
        SELECT r.id, r.title, r.client_id, u.name AS client_name, r.ai_context, r.status, r.file_url, r.created_at
        FROM reports r
        JOIN users u ON u.id = r.client_id
        ORDER BY r.created_at DESC
    `

	var reports []*Report
	err := r.db.SelectContext(ctx, &reports, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	return reports, nil
}

func (r *ReportRepo) ListByClient(ctx context.Context, clientID string) ([]*Report, error) {
	query := `
        SELECT r.id, r.title, r.client_id, u.name AS client_name, r.ai_context, r.status, r.file_url, r.created_at
        FROM reports r
        JOIN users u ON u.id = r.client_id
        WHERE r.client_id = $1
        ORDER BY r.created_at DESC
    `

	var reports []*Report
	err := r.db.SelectContext(ctx, &reports, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	return reports, nil
}

// Update applies the non-nil fields. Last write wins; there is no optimistic
// lock, which is acceptable at this write volume.
func (r *ReportRepo) Update(ctx context.Context, id string, upd *UpdateFields) (*Report, error) {
	setParts := []string{}
	args := []interface{}{}

	if upd.Title != nil {
		setParts = append(setParts, fmt.Sprintf("title = $%d", len(args)+1))
		args = append(args, *upd.Title)
	}
	if upd.AIContext != nil {
		setParts = append(setParts, fmt.Sprintf("ai_context = $%d", len(args)+1))
		args = append(args, *upd.AIContext)
	}
	if upd.Status != nil {
		setParts = append(setParts, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *upd.Status)
	}
	if upd.FileURL != nil {
		setParts = append(setParts, fmt.Sprintf("file_url = $%d", len(args)+1))
		args = append(args, *upd.FileURL)
	}

	if len(setParts) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)

	query := fmt.Sprintf(`
        UPDATE reports
        SET %s
        WHERE id = $%d
        RETURNING id
    `, strings.Join(setParts, ", "), len(args))

	var updatedID string
	err := r.db.GetContext(ctx, &updatedID, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to update report: %w", err)
	}

	return r.GetByID(ctx, updatedID)
}

func (r *ReportRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM reports WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrReportNotFound
	}

	return nil
}
