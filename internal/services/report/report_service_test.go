package report

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altivainc/altiva/internal/services/user"
)

// memRepo is an in-memory Repository for service tests. knownClients stands in
// for the foreign-key check the real store does.
type memRepo struct {
	reports      []*Report
	knownClients map[string]bool
}

func (m *memRepo) Create(_ context.Context, r *Report) (*Report, error) {
	if !m.knownClients[r.ClientID] {
		return nil, ErrClientNotFound
	}

	cp := *r
	cp.ID = uuid.NewString()
	m.reports = append(m.reports, &cp)

	out := cp
	return &out, nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*Report, error) {
	for _, r := range m.reports {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, ErrReportNotFound
}

func (m *memRepo) List(_ context.Context) ([]*Report, error) {
	out := make([]*Report, 0, len(m.reports))
	for _, r := range m.reports {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memRepo) ListByClient(_ context.Context, clientID string) ([]*Report, error) {
	var out []*Report
	for _, r := range m.reports {
		if r.ClientID == clientID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memRepo) Update(_ context.Context, id string, upd *UpdateFields) (*Report, error) {
	for _, r := range m.reports {
		if r.ID != id {
			continue
		}
		if upd.Title != nil {
			r.Title = *upd.Title
		}
		if upd.AIContext != nil {
			r.AIContext = *upd.AIContext
		}
		if upd.Status != nil {
			r.Status = *upd.Status
		}
		if upd.FileURL != nil {
			r.FileURL = *upd.FileURL
		}
		cp := *r
		return &cp, nil
	}
	return nil, ErrReportNotFound
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	for i, r := range m.reports {
		if r.ID == id {
			m.reports = append(m.reports[:i], m.reports[i+1:]...)
			return nil
		}
	}
	return ErrReportNotFound
}

func newTestRepo(clientIDs ...string) *memRepo {
	known := make(map[string]bool, len(clientIDs))
	for _, id := range clientIDs {
		known[id] = true
	}
	return &memRepo{knownClients: known}
}

func TestCreate(t *testing.T) {
	clientID := uuid.NewString()
	svc := NewReportService(newTestRepo(clientID))
	ctx := context.Background()

	created, err := svc.Create(ctx, &CreateReportRequest{
		Title:     "Q3 audit",
		ClientID:  clientID,
		AIContext: "revenue up 12%",
		FileName:  "q3.pdf",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, StatusCompleted, created.Status)
	assert.Equal(t, "https://fake-s3.com/q3.pdf", created.FileURL)
}

func TestCreate_UnknownClient(t *testing.T) {
	svc := NewReportService(newTestRepo())

	_, err := svc.Create(context.Background(), &CreateReportRequest{
		Title:    "Q3 audit",
		ClientID: uuid.NewString(),
	})
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestCreate_MissingFields(t *testing.T) {
	svc := NewReportService(newTestRepo())

	_, err := svc.Create(context.Background(), &CreateReportRequest{Title: "no client"})
	require.Error(t, err)

	_, err = svc.Create(context.Background(), &CreateReportRequest{ClientID: uuid.NewString()})
	require.Error(t, err)
}

func TestListFor(t *testing.T) {
	alice := uuid.NewString()
	bob := uuid.NewString()
	svc := NewReportService(newTestRepo(alice, bob))
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreateReportRequest{Title: "for alice", ClientID: alice})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &CreateReportRequest{Title: "for bob 1", ClientID: bob})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &CreateReportRequest{Title: "for bob 2", ClientID: bob})
	require.NoError(t, err)

	all, err := svc.ListFor(ctx, user.RoleAdmin, uuid.NewString())
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := svc.ListFor(ctx, user.RoleClient, alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "for alice", mine[0].Title)

	none, err := svc.ListFor(ctx, user.RoleClient, uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCanAccess(t *testing.T) {
	alice := uuid.NewString()
	rep := &Report{ID: uuid.NewString(), ClientID: alice}

	svc := NewReportService(newTestRepo())

	assert.True(t, svc.CanAccess(rep, user.RoleAdmin, uuid.NewString()))
	assert.True(t, svc.CanAccess(rep, user.RoleClient, alice))
	assert.False(t, svc.CanAccess(rep, user.RoleClient, uuid.NewString()))
}

func TestUpdate(t *testing.T) {
	clientID := uuid.NewString()
	svc := NewReportService(newTestRepo(clientID))
	ctx := context.Background()

	created, err := svc.Create(ctx, &CreateReportRequest{
		Title:    "draft",
		ClientID: clientID,
		FileName: "draft.pdf",
	})
	require.NoError(t, err)

	title := "final"
	fileName := "final.pdf"
	updated, err := svc.Update(ctx, created.ID, &UpdateReportRequest{
		Title:    &title,
		FileName: &fileName,
	})
	require.NoError(t, err)

	assert.Equal(t, "final", updated.Title)
	assert.Equal(t, "https://fake-s3.com/final.pdf", updated.FileURL)
	// Untouched fields survive.
	assert.Equal(t, StatusCompleted, updated.Status)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewReportService(newTestRepo())

	title := "ghost"
	_, err := svc.Update(context.Background(), uuid.NewString(), &UpdateReportRequest{Title: &title})
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestDelete(t *testing.T) {
	clientID := uuid.NewString()
	svc := NewReportService(newTestRepo(clientID))
	ctx := context.Background()

	created, err := svc.Create(ctx, &CreateReportRequest{Title: "gone soon", ClientID: clientID})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrReportNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrReportNotFound)
}
