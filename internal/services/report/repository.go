package report

import (
	"context"
	"errors"
)

var (
	ErrReportNotFound = errors.New("report not found")
	ErrClientNotFound = errors.New("client not found")
)

// UpdateFields carries the resolved column updates for a report. Nil fields
// are left untouched.
type UpdateFields struct {
	Title     *string
	AIContext *string
	Status    *string
	FileURL   *string
}

type Repository interface {
	Create(ctx context.Context, r *Report) (*Report, error)
	GetByID(ctx context.Context, id string) (*Report, error)
	List(ctx context.Context) ([]*Report, error)
	ListByClient(ctx context.Context, clientID string) ([]*Report, error)
	Update(ctx context.Context, id string, upd *UpdateFields) (*Report, error)
	Delete(ctx context.Context, id string) error
}
