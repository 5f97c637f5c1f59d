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

func TestCaseReplyListOrderedOldestFirst(t *testing.T) {
	store := docstore.NewMemory()
	repo := NewCaseReplyRepository(store)
	ctx := context.Background()

	base := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	for i, content := range []string{"first", "second", "third"} {
		reply, err := repo.Create(ctx, alice, "res-1", &models.CaseReplyCreateRequest{Content: content})
		require.NoError(t, err)
		require.NoError(t, store.Update(ctx, "case_replies", reply.ID, docstore.Document{
			"created_at": base.Add(time.Duration(i) * time.Second),
		}))
	}
	// A reply on another resolution must not leak into the thread.
	_, err := repo.Create(ctx, bob, "res-2", &models.CaseReplyCreateRequest{Content: "elsewhere"})
	require.NoError(t, err)

	replies, err := repo.ListByResolution(ctx, "res-1")
	require.NoError(t, err)
	require.Len(t, replies, 3)
	assert.Equal(t, "first", replies[0].Content)
	assert.Equal(t, "second", replies[1].Content)
	assert.Equal(t, "third", replies[2].Content)
}

func TestCaseReplyCreateRequiresViewer(t *testing.T) {
	repo := NewCaseReplyRepository(docstore.NewMemory())

	_, err := repo.Create(context.Background(), nil, "res-1", &models.CaseReplyCreateRequest{Content: "x"})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestCaseReplyMutationOwnership(t *testing.T) {
	repo := NewCaseReplyRepository(docstore.NewMemory())
	ctx := context.Background()

	reply, err := repo.Create(ctx, alice, "res-1", &models.CaseReplyCreateRequest{Content: "original"})
	require.NoError(t, err)

	err = repo.Update(ctx, bob, reply.ID, &models.CaseReplyUpdateRequest{Content: strPtr("hijacked")})
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.ErrorIs(t, repo.Delete(ctx, bob, reply.ID), ErrPermissionDenied)

	require.NoError(t, repo.Update(ctx, alice, reply.ID, &models.CaseReplyUpdateRequest{Content: strPtr("edited")}))
	got, err := repo.FindByID(ctx, reply.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Content)

	require.NoError(t, repo.Delete(ctx, alice, reply.ID))
	_, err = repo.FindByID(ctx, reply.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
