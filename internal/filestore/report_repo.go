package filestore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/altivainc/altiva/internal/services/report"
)

// ReportRepo implements report.Repository on top of the file store.
type ReportRepo struct {
	store *Store
}

func NewReportRepo(store *Store) *ReportRepo {
	return &ReportRepo{store: store}
}

func clientName(doc *document, clientID string) string {
	for _, u := range doc.Users {
		if u.ID == clientID {
			return u.Name
		}
	}
	return ""
}

func (r *ReportRepo) Create(ctx context.Context, rep *report.Report) (*report.Report, error) {
	stored := *rep
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now().UTC()

	err := r.store.update(func(doc *document) error {
		name := clientName(doc, stored.ClientID)
		if name == "" {
			return report.ErrClientNotFound
		}
		stored.ClientName = name
		doc.Reports = append(doc.Reports, &stored)
		return nil
	})
	if err != nil {
		return nil, err
	}

	created := stored
	return &created, nil
}

func (r *ReportRepo) GetByID(ctx context.Context, id string) (*report.Report, error) {
	var found *report.Report
	err := r.store.view(func(doc *document) error {
		for _, rep := range doc.Reports {
			if rep.ID == id {
				copied := *rep
				copied.ClientName = clientName(doc, rep.ClientID)
				found = &copied
				return nil
			}
		}
		return report.ErrReportNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *ReportRepo) List(ctx context.Context) ([]*report.Report, error) {
	var reports []*report.Report
	err := r.store.view(func(doc *document) error {
		for _, rep := range doc.Reports {
			copied := *rep
			copied.ClientName = clientName(doc, rep.ClientID)
			reports = append(reports, &copied)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *ReportRepo) ListByClient(ctx context.Context, clientID string) ([]*report.Report, error) {
	var reports []*report.Report
	err := r.store.view(func(doc *document) error {
		for _, rep := range doc.Reports {
			if rep.ClientID == clientID {
				copied := *rep
				copied.ClientName = clientName(doc, rep.ClientID)
				reports = append(reports, &copied)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *ReportRepo) Update(ctx context.Context, id string, upd *report.UpdateFields) (*report.Report, error) {
	var updated *report.Report
	err := r.store.update(func(doc *document) error {
		for _, rep := range doc.Reports {
			if rep.ID != id {
				continue
			}

			if upd.Title != nil {
				rep.Title = *upd.Title
			}
			if upd.AIContext != nil {
				rep.AIContext = *upd.AIContext
			}
			if upd.Status != nil {
				rep.Status = *upd.Status
			}
			if upd.FileURL != nil {
				rep.FileURL = *upd.FileURL
			}

			copied := *rep
			copied.ClientName = clientName(doc, rep.ClientID)
			updated = &copied
			return nil
		}
		return report.ErrReportNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *ReportRepo) Delete(ctx context.Context, id string) error {
	return r.store.update(func(doc *document) error {
		for i, rep := range doc.Reports {
			if rep.ID == id {
				doc.Reports = append(doc.Reports[:i], doc.Reports[i+1:]...)
				return nil
			}
		}
		return report.ErrReportNotFound
	})
}
