package filestore

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altivainc/altiva/internal/services/report"
	"github.com/altivainc/altiva/internal/services/user"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data", "altiva.json")
	store, err := Open(path)
	require.NoError(t, err)

	return store, path
}

func TestOpen_MissingFile(t *testing.T) {
	store, _ := newTestStore(t)

	users, err := NewUserRepo(store).ListByRole(context.Background(), user.RoleClient)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUserRepo_InsertAndGet(t *testing.T) {
	store, _ := newTestStore(t)
	repo := NewUserRepo(store)
	ctx := context.Background()

	created, err := repo.Insert(ctx, &user.User{
		Name:         "Alice",
		Email:        "alice@ex.com",
		PasswordHash: "hash",
		Role:         user.RoleClient,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	byEmail, err := repo.GetByEmail(ctx, "alice@ex.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", byID.Name)

	_, err = repo.GetByEmail(ctx, "nobody@ex.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	store, _ := newTestStore(t)
	repo := NewUserRepo(store)
	ctx := context.Background()

	_, err := repo.Insert(ctx, &user.User{Email: "alice@ex.com", Role: user.RoleClient})
	require.NoError(t, err)

	_, err = repo.Insert(ctx, &user.User{Email: "alice@ex.com", Role: user.RoleClient})
	assert.ErrorIs(t, err, user.ErrDuplicateEmail)
}

func TestReportRepo_CRUD(t *testing.T) {
	store, _ := newTestStore(t)
	users := NewUserRepo(store)
	reports := NewReportRepo(store)
	ctx := context.Background()

	alice, err := users.Insert(ctx, &user.User{Name: "Alice", Email: "alice@ex.com", Role: user.RoleClient})
	require.NoError(t, err)

	created, err := reports.Create(ctx, &report.Report{
		Title:    "Q3 audit",
		ClientID: alice.ID,
		Status:   report.StatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", created.ClientName)

	got, err := reports.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Q3 audit", got.Title)
	assert.Equal(t, "Alice", got.ClientName)

	title := "Q3 audit (final)"
	updated, err := reports.Update(ctx, created.ID, &report.UpdateFields{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, report.StatusCompleted, updated.Status)

	require.NoError(t, reports.Delete(ctx, created.ID))
	_, err = reports.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, report.ErrReportNotFound)
}

func TestReportRepo_UnknownClient(t *testing.T) {
	store, _ := newTestStore(t)
	reports := NewReportRepo(store)

	_, err := reports.Create(context.Background(), &report.Report{
		Title:    "orphan",
		ClientID: "no-such-client",
	})
	assert.ErrorIs(t, err, report.ErrClientNotFound)
}

func TestReportRepo_ListByClient(t *testing.T) {
	store, _ := newTestStore(t)
	users := NewUserRepo(store)
	reports := NewReportRepo(store)
	ctx := context.Background()

	alice, err := users.Insert(ctx, &user.User{Name: "Alice", Email: "alice@ex.com", Role: user.RoleClient})
	require.NoError(t, err)
	bob, err := users.Insert(ctx, &user.User{Name: "Bob", Email: "bob@ex.com", Role: user.RoleClient})
	require.NoError(t, err)

	_, err = reports.Create(ctx, &report.Report{Title: "for alice", ClientID: alice.ID})
	require.NoError(t, err)
	_, err = reports.Create(ctx, &report.Report{Title: "for bob", ClientID: bob.ID})
	require.NoError(t, err)

	all, err := reports.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := reports.ListByClient(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "for alice", mine[0].Title)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	created, err := NewUserRepo(store).Insert(ctx, &user.User{
		Name:         "Alice",
		Email:        "alice@ex.com",
		PasswordHash: "$2a$10$somebcrypthash",
		Role:         user.RoleClient,
		OrgLabel:     "Acme",
		Picture:      "https://pic/alice.png",
	})
	require.NoError(t, err)

	reopened, err := Open(path)
	require.NoError(t, err)

	// The whole record must survive the round trip, the password hash
	// included even though the API model hides it from JSON.
	got, err := NewUserRepo(reopened).GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, created.Email, got.Email)
	assert.Equal(t, created.PasswordHash, got.PasswordHash)
	assert.Equal(t, created.Role, got.Role)
	assert.Equal(t, created.OrgLabel, got.OrgLabel)
	assert.Equal(t, created.Picture, got.Picture)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
}

func TestAuthenticate_AfterReopen(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	users := user.NewUserService(NewUserRepo(store), false)

	_, err := users.Register(ctx, &user.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@ex.com",
		Password: "pw123",
	})
	require.NoError(t, err)

	_, err = users.Authenticate(ctx, "alice@ex.com", "pw123")
	require.NoError(t, err)

	// Login must still work after a restart.
	reopened, err := Open(path)
	require.NoError(t, err)

	got, err := user.NewUserService(NewUserRepo(reopened), false).Authenticate(ctx, "alice@ex.com", "pw123")
	require.NoError(t, err)
	assert.Equal(t, "alice@ex.com", got.Email)
}

func TestStore_ConcurrentWriters(t *testing.T) {
	store, path := newTestStore(t)
	repo := NewUserRepo(store)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := repo.Insert(ctx, &user.User{
				Name:  fmt.Sprintf("User %d", i),
				Email: fmt.Sprintf("user%d@ex.com", i),
				Role:  user.RoleClient,
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// Every write survived both in memory and on disk.
	users, err := repo.ListByRole(ctx, user.RoleClient)
	require.NoError(t, err)
	assert.Len(t, users, n)

	reopened, err := Open(path)
	require.NoError(t, err)
	persisted, err := NewUserRepo(reopened).ListByRole(ctx, user.RoleClient)
	require.NoError(t, err)
	assert.Len(t, persisted, n)
}
