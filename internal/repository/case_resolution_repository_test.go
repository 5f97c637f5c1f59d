package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templateworks/backend/internal/docstore"
	"github.com/templateworks/backend/internal/models"
	"github.com/templateworks/backend/pkg/utils"
)

func newResolutionRepo(t *testing.T) (CaseResolutionRepository, *docstore.Memory) {
	t.Helper()
	store := docstore.NewMemory()
	return NewCaseResolutionRepository(store), store
}

func TestCaseResolutionCreatePublicByDefault(t *testing.T) {
	repo, _ := newResolutionRepo(t)

	resolution, err := repo.Create(context.Background(), alice, &models.CaseResolutionCreateRequest{
		Title: "Router reset",
	})
	require.NoError(t, err)
	assert.False(t, resolution.IsPrivate)
	assert.Equal(t, models.LanguageEnglish, resolution.Language)
	assert.Equal(t, []models.ResolutionStep{}, resolution.Steps)
}

func TestCaseResolutionStepsRoundTrip(t *testing.T) {
	repo, _ := newResolutionRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, alice, &models.CaseResolutionCreateRequest{
		Title: "Router reset",
		Steps: []models.ResolutionStepPayload{
			{
				ID:      "step-1",
				Content: "Unplug the router, wait ten seconds",
				Images:  []string{"/img/router.png"},
				Links: []utils.Link{
					{URL: "https://kb.example.com/reset", Description: "KB article", Image: utils.PlaceholderImage},
				},
			},
			{ID: "step-2", Content: "Plug it back in"},
		},
	})
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, alice, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Steps, 2)
	assert.Equal(t, "step-1", got.Steps[0].ID)
	assert.Equal(t, []string{"/img/router.png"}, got.Steps[0].Images)
	require.Len(t, got.Steps[0].Links, 1)
	assert.Equal(t, "KB article", got.Steps[0].Links[0].Description)
	assert.Equal(t, "Plug it back in", got.Steps[1].Content)
	assert.Equal(t, []string{}, got.Steps[1].Images)
}

func TestCaseResolutionListAnonymousSeesPublicOnly(t *testing.T) {
	repo, _ := newResolutionRepo(t)
	ctx := context.Background()

	public, err := repo.Create(ctx, alice, &models.CaseResolutionCreateRequest{Title: "shared"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, alice, &models.CaseResolutionCreateRequest{
		Title: "hidden", IsPrivate: boolPtr(true),
	})
	require.NoError(t, err)

	resolutions, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, resolutions, 1)
	assert.Equal(t, public.ID, resolutions[0].ID)
}

func TestCaseResolutionListOwnerSeesPrivate(t *testing.T) {
	repo, _ := newResolutionRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, alice, &models.CaseResolutionCreateRequest{
		Title: "hidden", IsPrivate: boolPtr(true),
	})
	require.NoError(t, err)

	mine, err := repo.List(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := repo.List(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestCaseResolutionGetAnonymous(t *testing.T) {
	repo, _ := newResolutionRepo(t)
	ctx := context.Background()

	public, err := repo.Create(ctx, alice, &models.CaseResolutionCreateRequest{Title: "shared"})
	require.NoError(t, err)
	private, err := repo.Create(ctx, alice, &models.CaseResolutionCreateRequest{
		Title: "hidden", IsPrivate: boolPtr(true),
	})
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, nil, public.ID)
	require.NoError(t, err)
	assert.Equal(t, "shared", got.Title)

	_, err = repo.FindByID(ctx, nil, private.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCaseResolutionUpdateOwnership(t *testing.T) {
	repo, _ := newResolutionRepo(t)
	ctx := context.Background()

	resolution, err := repo.Create(ctx, alice, &models.CaseResolutionCreateRequest{Title: "shared"})
	require.NoError(t, err)

	err = repo.Update(ctx, bob, resolution.ID, &models.CaseResolutionUpdateRequest{
		Title: strPtr("hijacked"),
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	err = repo.Update(ctx, alice, resolution.ID, &models.CaseResolutionUpdateRequest{
		Title:  strPtr("revised"),
		Reason: strPtr("clearer wording"),
	})
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, alice, resolution.ID)
	require.NoError(t, err)
	assert.Equal(t, "revised", got.Title)
	assert.Equal(t, "clearer wording", got.Reason)
}

func TestCaseResolutionDeleteOwnership(t *testing.T) {
	repo, _ := newResolutionRepo(t)
	ctx := context.Background()

	resolution, err := repo.Create(ctx, alice, &models.CaseResolutionCreateRequest{Title: "doomed"})
	require.NoError(t, err)

	assert.ErrorIs(t, repo.Delete(ctx, bob, resolution.ID), ErrPermissionDenied)
	require.NoError(t, repo.Delete(ctx, alice, resolution.ID))

	_, err = repo.FindByID(ctx, alice, resolution.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
