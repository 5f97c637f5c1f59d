package repository

import (
	"context"
	"sort"
	"time"

	"github.com/templateworks/backend/internal/docstore"
	"github.com/templateworks/backend/internal/models"
	"golang.org/x/sync/errgroup"
)

// visibleOrder is the common listing order: newest-created first, ties
// broken by document id descending so repeated calls return identical
// sequences even at coarse timestamp resolution.
var visibleOrder = []docstore.Order{
	docstore.OrderBy("created_at", docstore.Descending),
	docstore.OrderBy(docstore.FieldID, docstore.Descending),
}

// listVisible computes "owned by the viewer OR public" for a collection.
// The store cannot express a disjunction in one query, so the two
// branches run as concurrent queries whose results are concatenated,
// deduplicated by id, and re-sorted centrally. With a nil viewer only
// the public branch runs.
func listVisible(ctx context.Context, store docstore.Store, collection string, viewer *models.Viewer) ([]docstore.Entry, error) {
	publicPreds := []docstore.Predicate{
		docstore.Where("is_private", docstore.OpEqual, false),
	}

	if viewer == nil {
		entries, err := store.Query(ctx, collection, publicPreds, visibleOrder)
		if err != nil {
			return nil, err
		}
		return finalizeVisible(entries), nil
	}

	ownedPreds := []docstore.Predicate{
		docstore.Where("owner_id", docstore.OpEqual, viewer.ID),
	}

	var owned, public []docstore.Entry
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		owned, err = store.Query(gctx, collection, ownedPreds, visibleOrder)
		return err
	})
	g.Go(func() error {
		var err error
		public, err = store.Query(gctx, collection, publicPreds, visibleOrder)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make([]docstore.Entry, 0, len(owned)+len(public))
	merged = append(merged, owned...)
	merged = append(merged, public...)
	return finalizeVisible(merged), nil
}

// finalizeVisible dedupes by id (a document owned by the viewer and
// public matches both branches but must appear once), drops collection
// placeholders, and restores the global ordering across the merged set.
func finalizeVisible(entries []docstore.Entry) []docstore.Entry {
	seen := make(map[string]bool, len(entries))
	out := make([]docstore.Entry, 0, len(entries))
	for _, e := range entries {
		if seen[e.ID] || isPlaceholder(e) {
			continue
		}
		seen[e.ID] = true
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ti := createdAt(out[i])
		tj := createdAt(out[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func createdAt(e docstore.Entry) time.Time {
	return docTime(e.Data, "created_at")
}
