package adapter

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-seed-api/internal/config"
	handlerhttp "github.com/MKhiriev/go-seed-api/internal/handler/http"
	"github.com/MKhiriev/go-seed-api/internal/logger"
	"github.com/MKhiriev/go-seed-api/internal/service"
	"github.com/MKhiriev/go-seed-api/internal/store"
	"github.com/MKhiriev/go-seed-api/models"
)

// newE2EServer serves the real router over the in-memory document store.
func newE2EServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := logger.Nop()

	documents := store.NewMemoryDocumentStore()
	require.NoError(t, documents.EnsureUniqueIndex(context.Background(), store.UserCollection, "email"))

	cfg := config.StructuredConfig{
		App: config.App{
			TokenSignKey:  "e2e-secret",
			TokenIssuer:   config.DefaultTokenIssuer,
			TokenDuration: time.Minute,
			Version:       "e2e",
			Argon2:        config.Argon2{MemoryKiB: 1024, Iterations: 1, Parallelism: 1},
		},
		Server: config.Server{RequestTimeout: 5 * time.Second, LoginRateLimit: 100},
	}

	services, err := service.NewServices(store.NewStoragesFrom(documents, log), cfg, log)
	require.NoError(t, err)

	srv := httptest.NewServer(handlerhttp.NewHandler(services, cfg.Server, log).Init())
	t.Cleanup(srv.Close)
	return srv
}

func TestE2E_UserLifecycle(t *testing.T) {
	srv := newE2EServer(t)
	ctx := context.Background()
	neo := newTestAdapter(t, srv.URL)
	smith := newTestAdapter(t, srv.URL)

	created, err := neo.CreateUser(ctx, models.UserRegistration{Email: "neo@zion.org", Username: "neo", Password: "thereisnospoon"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "neo@zion.org", created.Email)

	_, err = smith.CreateUser(ctx, models.UserRegistration{Email: "neo@zion.org", Password: "anotherpassword"})
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Contains(t, err.Error(), "Email already exists")

	_, err = smith.CreateUser(ctx, models.UserRegistration{Email: "smith@matrix.io", Username: "neo", Password: "anotherpassword"})
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Contains(t, err.Error(), "Username already exists")

	other, err := smith.CreateUser(ctx, models.UserRegistration{Email: "smith@matrix.io", Password: "anotherpassword"})
	require.NoError(t, err)

	_, err = neo.Login(ctx, "neo@zion.org", "wrong-password")
	assert.ErrorIs(t, err, ErrBadRequest)

	token, err := neo.Login(ctx, "neo@zion.org", "thereisnospoon")
	require.NoError(t, err)
	assert.Equal(t, models.TokenTypeBearer, token.TokenType)

	me, err := neo.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, created, me)

	username := "the_one"
	updated, err := neo.UpdateUser(ctx, created.ID, models.UserPatch{Username: &username})
	require.NoError(t, err)
	assert.Equal(t, "the_one", updated.Username)

	_, err = neo.UpdateUser(ctx, other.ID, models.UserPatch{Username: &username})
	assert.ErrorIs(t, err, ErrForbidden)

	newPassword := "followthewhiterabbit"
	_, err = neo.UpdateUser(ctx, created.ID, models.UserPatch{Password: &newPassword})
	require.NoError(t, err)
	_, err = neo.Login(ctx, "neo@zion.org", newPassword)
	require.NoError(t, err)

	users, err := neo.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	require.NoError(t, neo.DeleteUser(ctx, created.ID))

	_, err = neo.GetUser(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = neo.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestE2E_ItemLifecycle(t *testing.T) {
	srv := newE2EServer(t)
	ctx := context.Background()
	a := newTestAdapter(t, srv.URL)

	items, err := a.ListItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	spoon, err := a.CreateItem(ctx, models.Item{Name: "spoon", Number: 1})
	require.NoError(t, err)
	assert.NotEmpty(t, spoon.ID)

	_, err = a.CreateItem(ctx, models.Item{Number: 2})
	assert.ErrorIs(t, err, ErrBadRequest)

	got, err := a.GetItem(ctx, spoon.ID)
	require.NoError(t, err)
	assert.Equal(t, spoon, got)

	name := "bent spoon"
	updated, err := a.UpdateItem(ctx, spoon.ID, models.ItemPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, models.Item{ID: spoon.ID, Name: name, Number: 1}, updated)

	require.NoError(t, a.DeleteItem(ctx, spoon.ID))

	err = a.DeleteItem(ctx, spoon.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "Item not found")

	_, err = a.GetItem(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)

	version, err := a.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, "e2e", version)
}
