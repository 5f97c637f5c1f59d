package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templateworks/backend/internal/docstore"
	"github.com/templateworks/backend/internal/models"
)

var (
	alice = &models.Viewer{ID: "user-alice", Email: "alice@example.com"}
	bob   = &models.Viewer{ID: "user-bob", Email: "bob@example.com"}
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func newChatRepo(t *testing.T) (ChatTemplateRepository, *docstore.Memory) {
	t.Helper()
	store := docstore.NewMemory()
	return NewChatTemplateRepository(store), store
}

func TestChatTemplateCreateDefaults(t *testing.T) {
	repo, store := newChatRepo(t)
	ctx := context.Background()

	template, err := repo.Create(ctx, alice, &models.ChatTemplateCreateRequest{
		Name:        "Greeting",
		ContentMale: "Hello there",
	})
	require.NoError(t, err)

	assert.Equal(t, alice.ID, template.OwnerID)
	assert.True(t, template.IsPrivate)
	assert.Equal(t, models.LanguageEnglish, template.Language)
	assert.Equal(t, []string{}, template.Tags)
	assert.False(t, template.CreatedAt.IsZero())

	// Defaults are persisted concretely so equality filters can match
	// them later.
	doc, err := store.Get(ctx, "chat_templates", template.ID)
	require.NoError(t, err)
	assert.Equal(t, true, doc["is_private"])
	assert.Equal(t, "en", doc["language"])
	_, hasTags := doc["tags"]
	assert.True(t, hasTags)
}

func TestChatTemplateCreateRequiresViewer(t *testing.T) {
	repo, _ := newChatRepo(t)

	_, err := repo.Create(context.Background(), nil, &models.ChatTemplateCreateRequest{Name: "x"})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestChatTemplateCreateDedupesTags(t *testing.T) {
	repo, _ := newChatRepo(t)

	template, err := repo.Create(context.Background(), alice, &models.ChatTemplateCreateRequest{
		Name: "Tagged",
		Tags: []string{"greeting", "vip", "greeting"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"greeting", "vip"}, template.Tags)
}

func TestChatTemplateListVisibility(t *testing.T) {
	repo, _ := newChatRepo(t)
	ctx := context.Background()

	ownPrivate, err := repo.Create(ctx, alice, &models.ChatTemplateCreateRequest{Name: "mine private"})
	require.NoError(t, err)
	ownPublic, err := repo.Create(ctx, alice, &models.ChatTemplateCreateRequest{
		Name: "mine public", IsPrivate: boolPtr(false),
	})
	require.NoError(t, err)
	otherPublic, err := repo.Create(ctx, bob, &models.ChatTemplateCreateRequest{
		Name: "theirs public", IsPrivate: boolPtr(false),
	})
	require.NoError(t, err)
	_, err = repo.Create(ctx, bob, &models.ChatTemplateCreateRequest{Name: "theirs private"})
	require.NoError(t, err)

	templates, err := repo.List(ctx, alice)
	require.NoError(t, err)

	ids := make([]string, len(templates))
	for i, tpl := range templates {
		ids[i] = tpl.ID
	}
	assert.ElementsMatch(t, []string{ownPrivate.ID, ownPublic.ID, otherPublic.ID}, ids)
}

func TestChatTemplateListDedupesOwnPublic(t *testing.T) {
	repo, _ := newChatRepo(t)
	ctx := context.Background()

	// Owned and public: matched by both query branches, returned once.
	tpl, err := repo.Create(ctx, alice, &models.ChatTemplateCreateRequest{
		Name: "both branches", IsPrivate: boolPtr(false),
	})
	require.NoError(t, err)

	templates, err := repo.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, tpl.ID, templates[0].ID)
}

func TestChatTemplateListOrderedNewestFirst(t *testing.T) {
	repo, store := newChatRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)
	for i, name := range []string{"oldest", "middle", "newest"} {
		tpl, err := repo.Create(ctx, alice, &models.ChatTemplateCreateRequest{Name: name})
		require.NoError(t, err)
		require.NoError(t, store.Update(ctx, "chat_templates", tpl.ID, docstore.Document{
			"created_at": base.Add(time.Duration(i) * time.Minute),
		}))
	}

	templates, err := repo.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, templates, 3)
	assert.Equal(t, "newest", templates[0].Name)
	assert.Equal(t, "middle", templates[1].Name)
	assert.Equal(t, "oldest", templates[2].Name)
}

func TestChatTemplateListFiltersPlaceholder(t *testing.T) {
	store := docstore.NewMemory()
	repo := NewChatTemplateRepository(store)
	ctx := context.Background()

	bootstrap := NewBootstrap(store, repo, NewEmailTemplateRepository(store))
	require.NoError(t, bootstrap.EnsureCollections(ctx))

	templates, err := repo.List(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, templates)
}

func TestChatTemplateListRequiresViewer(t *testing.T) {
	repo, _ := newChatRepo(t)

	_, err := repo.List(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestChatTemplateListSurfacesIndexRequired(t *testing.T) {
	store := docstore.NewMemory()
	store.RequireCompositeIndexes()
	repo := NewChatTemplateRepository(store)
	ctx := context.Background()

	_, err := repo.Create(ctx, alice, &models.ChatTemplateCreateRequest{Name: "x"})
	require.NoError(t, err)

	_, err = repo.List(ctx, alice)
	assert.ErrorIs(t, err, ErrIndexRequired)

	store.AddIndex("chat_templates", "created_at", docstore.FieldID)
	_, err = repo.List(ctx, alice)
	assert.NoError(t, err)
}

func TestChatTemplateGetHidesPrivateFromOthers(t *testing.T) {
	repo, _ := newChatRepo(t)
	ctx := context.Background()

	tpl, err := repo.Create(ctx, alice, &models.ChatTemplateCreateRequest{Name: "secret"})
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, alice, tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "secret", got.Name)

	_, err = repo.FindByID(ctx, bob, tpl.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChatTemplateGetPlaceholderIsNotFound(t *testing.T) {
	store := docstore.NewMemory()
	repo := NewChatTemplateRepository(store)
	ctx := context.Background()

	bootstrap := NewBootstrap(store, repo, NewEmailTemplateRepository(store))
	require.NoError(t, bootstrap.EnsureCollections(ctx))

	_, err := repo.FindByID(ctx, alice, "placeholder")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChatTemplateUpdateFieldIsolation(t *testing.T) {
	repo, _ := newChatRepo(t)
	ctx := context.Background()

	tpl, err := repo.Create(ctx, alice, &models.ChatTemplateCreateRequest{
		Name:          "original",
		ContentMale:   "hello sir",
		ContentFemale: "hello madam",
		Tags:          []string{"greeting"},
	})
	require.NoError(t, err)

	err = repo.Update(ctx, alice, tpl.ID, &models.ChatTemplateUpdateRequest{
		Name: strPtr("renamed"),
	})
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, alice, tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)
	assert.Equal(t, "hello sir", got.ContentMale)
	assert.Equal(t, "hello madam", got.ContentFemale)
	assert.Equal(t, []string{"greeting"}, got.Tags)
	assert.Equal(t, tpl.CreatedAt, got.CreatedAt)
	assert.Equal(t, alice.ID, got.OwnerID)
}

func TestChatTemplateUpdateByNonOwnerDenied(t *testing.T) {
	repo, _ := newChatRepo(t)
	ctx := context.Background()

	tpl, err := repo.Create(ctx, alice, &models.ChatTemplateCreateRequest{
		Name: "mine", IsPrivate: boolPtr(false),
	})
	require.NoError(t, err)

	err = repo.Update(ctx, bob, tpl.ID, &models.ChatTemplateUpdateRequest{
		Name: strPtr("hijacked"),
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	got, err := repo.FindByID(ctx, alice, tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Name)
	assert.Equal(t, tpl.UpdatedAt, got.UpdatedAt)
}

func TestChatTemplateDeleteOwnership(t *testing.T) {
	repo, _ := newChatRepo(t)
	ctx := context.Background()

	tpl, err := repo.Create(ctx, alice, &models.ChatTemplateCreateRequest{
		Name: "doomed", IsPrivate: boolPtr(false),
	})
	require.NoError(t, err)

	assert.ErrorIs(t, repo.Delete(ctx, bob, tpl.ID), ErrPermissionDenied)

	require.NoError(t, repo.Delete(ctx, alice, tpl.ID))
	_, err = repo.FindByID(ctx, alice, tpl.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, alice, tpl.ID), ErrNotFound)
}

func TestChatTemplateSharedEditingFlow(t *testing.T) {
	repo, store := newChatRepo(t)
	ctx := context.Background()

	tpl, err := repo.Create(ctx, alice, &models.ChatTemplateCreateRequest{
		Name:          "Greet",
		ContentMale:   "Hi {name}",
		ContentFemale: "Hi {name}",
		Tags:          []string{"greeting"},
		IsPrivate:     boolPtr(false),
	})
	require.NoError(t, err)

	visible, err := repo.List(ctx, bob)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Greet", visible[0].Name)

	err = repo.Update(ctx, bob, tpl.ID, &models.ChatTemplateUpdateRequest{Name: strPtr("Hacked")})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// Backdate updated_at so the owner's edit observably advances it.
	require.NoError(t, store.Update(ctx, "chat_templates", tpl.ID, docstore.Document{
		"updated_at": tpl.UpdatedAt.Add(-time.Minute),
	}))

	require.NoError(t, repo.Update(ctx, alice, tpl.ID, &models.ChatTemplateUpdateRequest{Name: strPtr("Greeting")}))

	visible, err = repo.List(ctx, bob)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Greeting", visible[0].Name)
	assert.True(t, visible[0].UpdatedAt.After(tpl.UpdatedAt.Add(-time.Minute)))
}

func TestChatTemplateRoundTrip(t *testing.T) {
	repo, _ := newChatRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, alice, &models.ChatTemplateCreateRequest{
		Name:          "full",
		ContentMale:   "hi sir",
		ContentFemale: "hi madam",
		Tags:          []string{"vip", "greeting"},
		Language:      models.LanguageHebrew,
		IsPrivate:     boolPtr(false),
	})
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, bob, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}
