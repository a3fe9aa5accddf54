package services_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altivainc/altiva/internal/filestore"
	"github.com/altivainc/altiva/internal/services/insight"
	"github.com/altivainc/altiva/internal/services/report"
	"github.com/altivainc/altiva/internal/services/user"
)

type scriptedGenerator struct {
	text string
	err  error
}

func (g *scriptedGenerator) GenerateContent(context.Context, string, string) (string, error) {
	return g.text, g.err
}

// TestClientReportFlow walks the whole business flow over the file store: a
// client registers and logs in, an admin assigns them a report, the client
// sees exactly their own reports, and asks for an AI summary.
func TestClientReportFlow(t *testing.T) {
	store, err := filestore.Open(filepath.Join(t.TempDir(), "altiva.json"))
	require.NoError(t, err)

	userRepo := filestore.NewUserRepo(store)
	users := user.NewUserService(userRepo, false)
	reports := report.NewReportService(filestore.NewReportRepo(store))
	ctx := context.Background()

	// Admin account exists up front, like the seeded one.
	admin, err := userRepo.Insert(ctx, &user.User{
		Name:         "Altiva Admin",
		Email:        "admin@altiva.com",
		PasswordHash: "unused",
		Role:         user.RoleAdmin,
	})
	require.NoError(t, err)

	alice, err := users.Register(ctx, &user.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@ex.com",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, user.RoleClient, alice.Role)

	loggedIn, err := users.Authenticate(ctx, "alice@ex.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, loggedIn.ID)

	// Admin assigns Alice a report; an unrelated report exists too.
	bob, err := users.Register(ctx, &user.RegisterRequest{Name: "Bob", Email: "bob@ex.com", Password: "s3cret"})
	require.NoError(t, err)

	created, err := reports.Create(ctx, &report.CreateReportRequest{
		Title:     "Q3 audit",
		ClientID:  alice.ID,
		AIContext: "revenue up 12%",
		FileName:  "q3.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", created.ClientName)

	_, err = reports.Create(ctx, &report.CreateReportRequest{Title: "Bob's report", ClientID: bob.ID})
	require.NoError(t, err)

	// Alice sees only her report, the admin sees both.
	mine, err := reports.ListFor(ctx, user.RoleClient, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Q3 audit", mine[0].Title)

	all, err := reports.ListFor(ctx, user.RoleAdmin, admin.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assert.True(t, reports.CanAccess(created, user.RoleClient, alice.ID))
	assert.False(t, reports.CanAccess(created, user.RoleClient, bob.ID))

	// AI summary over the report context, model path and degraded path.
	insights := insight.NewInsightService(&scriptedGenerator{text: "Mantener la tendencia."}, "gemini-2.0-flash", time.Second)
	summary := insights.Summarize(ctx, created.AIContext)
	assert.Equal(t, insight.OriginModel, summary.Origin)
	assert.Equal(t, "Mantener la tendencia.", summary.Summary)

	degraded := insight.NewInsightService(&scriptedGenerator{err: errors.New("quota exceeded")}, "gemini-2.0-flash", time.Second)
	fallback := degraded.Summarize(ctx, created.AIContext)
	assert.Equal(t, insight.OriginFallback, fallback.Origin)
	assert.Equal(t, "No se pudo generar el análisis.", fallback.Summary)
}
