package docstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryInsertAndGet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	id, err := m.Insert(ctx, "things", Document{"name": "one"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	doc, err := m.Get(ctx, "things", id)
	require.NoError(t, err)
	assert.Equal(t, "one", doc["name"])

	_, err = m.Get(ctx, "things", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryQueryPredicatesAndTogether(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.Insert(ctx, "things", Document{"kind": "a", "n": 1})
	require.NoError(t, err)
	_, err = m.Insert(ctx, "things", Document{"kind": "a", "n": 2})
	require.NoError(t, err)
	_, err = m.Insert(ctx, "things", Document{"kind": "b", "n": 2})
	require.NoError(t, err)

	entries, err := m.Query(ctx, "things", []Predicate{
		Where("kind", OpEqual, "a"),
		Where("n", OpEqual, 2),
	}, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].Data["kind"])
	assert.Equal(t, 2, entries[0].Data["n"])
}

func TestMemoryMissingFieldNeverMatches(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.Insert(ctx, "things", Document{"name": "no flag"})
	require.NoError(t, err)
	_, err = m.Insert(ctx, "things", Document{"name": "flagged", "flag": false})
	require.NoError(t, err)

	entries, err := m.Query(ctx, "things", []Predicate{
		Where("flag", OpEqual, false),
	}, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "flagged", entries[0].Data["name"])
}

func TestMemoryCompoundOrdering(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	idOld, err := m.Insert(ctx, "things", Document{"created_at": base.Add(-time.Hour)})
	require.NoError(t, err)
	idTieA, err := m.Insert(ctx, "things", Document{"created_at": base})
	require.NoError(t, err)
	idTieB, err := m.Insert(ctx, "things", Document{"created_at": base})
	require.NoError(t, err)

	entries, err := m.Query(ctx, "things", nil, []Order{
		OrderBy("created_at", Descending),
		OrderBy(FieldID, Descending),
	})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, idTieB, entries[0].ID)
	assert.Equal(t, idTieA, entries[1].ID)
	assert.Equal(t, idOld, entries[2].ID)
}

func TestMemoryStrictModeRequiresCompositeIndex(t *testing.T) {
	m := NewMemory()
	m.RequireCompositeIndexes()
	ctx := context.Background()

	_, err := m.Insert(ctx, "things", Document{"created_at": time.Now()})
	require.NoError(t, err)

	compound := []Order{
		OrderBy("created_at", Descending),
		OrderBy(FieldID, Descending),
	}

	_, err = m.Query(ctx, "things", nil, compound)
	assert.ErrorIs(t, err, ErrIndexRequired)

	// Single-field orderings never need an index.
	_, err = m.Query(ctx, "things", nil, []Order{OrderBy("created_at", Descending)})
	assert.NoError(t, err)

	m.AddIndex("things", "created_at", FieldID)
	_, err = m.Query(ctx, "things", nil, compound)
	assert.NoError(t, err)
}

func TestMemoryUpdateMergesPartial(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	id, err := m.Insert(ctx, "things", Document{"a": 1, "b": 2})
	require.NoError(t, err)

	require.NoError(t, m.Update(ctx, "things", id, Document{"b": 3}))

	doc, err := m.Get(ctx, "things", id)
	require.NoError(t, err)
	assert.Equal(t, 1, doc["a"])
	assert.Equal(t, 3, doc["b"])

	assert.ErrorIs(t, m.Update(ctx, "things", "missing", Document{"a": 1}), ErrNotFound)
}

func TestMemoryDelete(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	id, err := m.Insert(ctx, "things", Document{"a": 1})
	require.NoError(t, err)

	require.NoError(t, m.Delete(ctx, "things", id))
	_, err = m.Get(ctx, "things", id)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, m.Delete(ctx, "things", id), ErrNotFound)
}

func TestMemoryCloneIsolation(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	doc := Document{"tags": []string{"a"}}
	id, err := m.Insert(ctx, "things", doc)
	require.NoError(t, err)

	doc["tags"].([]string)[0] = "mutated"

	stored, err := m.Get(ctx, "things", id)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, stored["tags"])
}
