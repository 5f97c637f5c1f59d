package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templateworks/backend/internal/docstore"
	"github.com/templateworks/backend/internal/models"
)

func newBootstrap(t *testing.T) (*Bootstrap, ChatTemplateRepository, EmailTemplateRepository) {
	t.Helper()
	store := docstore.NewMemory()
	chats := NewChatTemplateRepository(store)
	emails := NewEmailTemplateRepository(store)
	return NewBootstrap(store, chats, emails), chats, emails
}

func TestEnsureCollectionsIsIdempotent(t *testing.T) {
	bootstrap, chats, _ := newBootstrap(t)
	ctx := context.Background()

	require.NoError(t, bootstrap.EnsureCollections(ctx))
	require.NoError(t, bootstrap.EnsureCollections(ctx))

	templates, err := chats.List(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, templates)
}

func TestSeedStarterTemplates(t *testing.T) {
	bootstrap, chats, emails := newBootstrap(t)
	ctx := context.Background()

	require.NoError(t, bootstrap.SeedStarterTemplates(ctx, alice))

	chatTemplates, err := chats.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, chatTemplates, 1)
	assert.Equal(t, "Welcome Message", chatTemplates[0].Name)
	assert.Equal(t, alice.ID, chatTemplates[0].OwnerID)
	assert.True(t, chatTemplates[0].IsPrivate)

	emailTemplates, err := emails.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, emailTemplates, 1)
	assert.Equal(t, "Issue Follow-up", emailTemplates[0].Name)
	assert.NotEmpty(t, emailTemplates[0].Subject)

	// Another user's starter templates are invisible to this one.
	theirs, err := chats.List(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestSeedStarterTemplatesRequiresViewer(t *testing.T) {
	bootstrap, _, _ := newBootstrap(t)
	assert.ErrorIs(t, bootstrap.SeedStarterTemplates(context.Background(), nil), ErrUnauthenticated)
}

func TestEmailTemplateDefaults(t *testing.T) {
	store := docstore.NewMemory()
	repo := NewEmailTemplateRepository(store)

	template, err := repo.Create(context.Background(), alice, &models.EmailTemplateCreateRequest{
		Name:    "Follow-up",
		Subject: "Re: your case",
	})
	require.NoError(t, err)
	assert.True(t, template.IsPrivate)
	assert.Equal(t, models.TextAlignLeft, template.TextAlign)
	assert.Equal(t, models.LanguageEnglish, template.Language)
}
