package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templateworks/backend/internal/docstore"
	"github.com/templateworks/backend/internal/models"
	"github.com/templateworks/backend/internal/repository"
	"github.com/templateworks/backend/pkg/utils"
)

var owner = &models.Viewer{ID: "user-owner", Email: "owner@example.com"}

func newResolutionService(t *testing.T) CaseResolutionService {
	t.Helper()
	store := docstore.NewMemory()
	resolutions := repository.NewCaseResolutionRepository(store)
	replies := repository.NewCaseReplyRepository(store)
	return NewCaseResolutionService(resolutions, replies, nil, nil)
}

func TestCreateExtractsStepLinks(t *testing.T) {
	svc := newResolutionService(t)

	resolution, err := svc.Create(context.Background(), owner, &models.CaseResolutionCreateRequest{
		Title: "VPN drops",
		Steps: []models.ResolutionStepPayload{
			{Content: "Check the status page https://status.example.com first"},
		},
	})
	require.NoError(t, err)

	require.Len(t, resolution.Steps, 1)
	assert.NotEmpty(t, resolution.Steps[0].ID)
	require.Len(t, resolution.Steps[0].Links, 1)
	assert.Equal(t, "https://status.example.com", resolution.Steps[0].Links[0].URL)
	assert.Equal(t, utils.PlaceholderImage, resolution.Steps[0].Links[0].Image)
}

func TestUpdatePreservesLinkAnnotations(t *testing.T) {
	svc := newResolutionService(t)
	ctx := context.Background()

	resolution, err := svc.Create(ctx, owner, &models.CaseResolutionCreateRequest{
		Title: "VPN drops",
		Steps: []models.ResolutionStepPayload{
			{Content: "See https://kb.example.com/vpn and https://status.example.com"},
		},
	})
	require.NoError(t, err)
	stepID := resolution.Steps[0].ID

	// Annotate the first link, then edit the content so the second URL
	// disappears.
	annotated := resolution.Steps[0].Links
	annotated[0].Description = "VPN guide"
	_, err = svc.Update(ctx, owner, resolution.ID, &models.CaseResolutionUpdateRequest{
		Steps: []models.ResolutionStepPayload{
			{ID: stepID, Content: "See https://kb.example.com/vpn only", Links: annotated},
		},
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, owner, resolution.ID)
	require.NoError(t, err)
	require.Len(t, got.Steps, 1)
	require.Len(t, got.Steps[0].Links, 1)
	assert.Equal(t, "https://kb.example.com/vpn", got.Steps[0].Links[0].URL)
	assert.Equal(t, "VPN guide", got.Steps[0].Links[0].Description)
}

func TestUpdateCarriesPreviousLinksByStepID(t *testing.T) {
	svc := newResolutionService(t)
	ctx := context.Background()

	resolution, err := svc.Create(ctx, owner, &models.CaseResolutionCreateRequest{
		Title: "VPN drops",
		Steps: []models.ResolutionStepPayload{
			{Content: "Read https://kb.example.com/vpn"},
		},
	})
	require.NoError(t, err)
	stepID := resolution.Steps[0].ID

	// Annotate through a direct update, then send a payload without any
	// links. The stored annotation survives because the URL is still in
	// the content.
	withDescription := resolution.Steps[0].Links
	withDescription[0].Description = "VPN guide"
	_, err = svc.Update(ctx, owner, resolution.ID, &models.CaseResolutionUpdateRequest{
		Steps: []models.ResolutionStepPayload{
			{ID: stepID, Content: resolution.Steps[0].Content, Links: withDescription},
		},
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, owner, resolution.ID, &models.CaseResolutionUpdateRequest{
		Steps: []models.ResolutionStepPayload{
			{ID: stepID, Content: "Read https://kb.example.com/vpn again"},
		},
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, owner, resolution.ID)
	require.NoError(t, err)
	require.Len(t, got.Steps[0].Links, 1)
	assert.Equal(t, "VPN guide", got.Steps[0].Links[0].Description)
}

func TestReplyVisibilityFollowsResolution(t *testing.T) {
	store := docstore.NewMemory()
	resolutions := repository.NewCaseResolutionRepository(store)
	replies := repository.NewCaseReplyRepository(store)
	svc := NewCaseResolutionService(resolutions, replies, nil, nil)
	ctx := context.Background()

	private := true
	resolution, err := svc.Create(ctx, owner, &models.CaseResolutionCreateRequest{
		Title:     "internal only",
		IsPrivate: &private,
	})
	require.NoError(t, err)

	_, err = svc.CreateReply(ctx, owner, resolution.ID, &models.CaseReplyCreateRequest{Content: "noted"})
	require.NoError(t, err)

	other := &models.Viewer{ID: "user-other", Email: "other@example.com"}
	_, err = svc.CreateReply(ctx, other, resolution.ID, &models.CaseReplyCreateRequest{Content: "intruding"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.ListReplies(ctx, other, resolution.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	listed, err := svc.ListReplies(ctx, owner, resolution.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}
