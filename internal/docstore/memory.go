package docstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Memory is an in-process Store used by tests. It enforces the same
// contract as the managed backend: predicates AND together, missing
// fields never match, and (optionally) compound orderings fail with
// ErrIndexRequired unless a matching composite index was registered.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
	indexes     map[string][][]string
	strict      bool
	nextID      uint64
}

func NewMemory() *Memory {
	return &Memory{
		collections: make(map[string]map[string]Document),
		indexes:     make(map[string][][]string),
	}
}

// RequireCompositeIndexes makes Query reject compound orderings for which
// no index was registered with AddIndex, mimicking a managed backend that
// needs provisioned composite indexes.
func (m *Memory) RequireCompositeIndexes() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.strict = true
}

func (m *Memory) AddIndex(collection string, fields ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.indexes[collection] = append(m.indexes[collection], fields)
}

func (m *Memory) Insert(ctx context.Context, collection string, doc Document) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := fmt.Sprintf("%020d", m.nextID)
	m.coll(collection)[id] = cloneDocument(doc)
	return id, nil
}

func (m *Memory) Set(ctx context.Context, collection, id string, doc Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.coll(collection)[id] = cloneDocument(doc)
	return nil
}

func (m *Memory) Get(ctx context.Context, collection, id string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.coll(collection)[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneDocument(doc), nil
}

func (m *Memory) Update(ctx context.Context, collection, id string, partial Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.coll(collection)[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range cloneDocument(partial) {
		doc[k] = v
	}
	return nil
}

func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.coll(collection)[id]; !ok {
		return ErrNotFound
	}
	delete(m.coll(collection), id)
	return nil
}

func (m *Memory) Query(ctx context.Context, collection string, predicates []Predicate, orderBy []Order) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.strict && len(orderBy) > 1 && !m.hasIndex(collection, orderBy) {
		fields := make([]string, len(orderBy))
		for i, o := range orderBy {
			fields[i] = o.Field
		}
		return nil, fmt.Errorf("query on %s ordered by (%s): %w",
			collection, strings.Join(fields, ", "), ErrIndexRequired)
	}

	var results []Entry
	for id, doc := range m.coll(collection) {
		if matchesAll(id, doc, predicates) {
			results = append(results, Entry{ID: id, Data: cloneDocument(doc)})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return entryLess(results[i], results[j], orderBy)
	})
	return results, nil
}

func (m *Memory) coll(name string) map[string]Document {
	c, ok := m.collections[name]
	if !ok {
		c = make(map[string]Document)
		m.collections[name] = c
	}
	return c
}

func (m *Memory) hasIndex(collection string, orderBy []Order) bool {
	for _, idx := range m.indexes[collection] {
		if len(idx) != len(orderBy) {
			continue
		}
		match := true
		for i, field := range idx {
			if field != orderBy[i].Field {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func matchesAll(id string, doc Document, predicates []Predicate) bool {
	for _, p := range predicates {
		var value interface{}
		if p.Field == FieldID {
			value = id
		} else {
			v, ok := doc[p.Field]
			if !ok {
				// Absent fields never satisfy a predicate.
				return false
			}
			value = v
		}
		if !matches(value, p.Op, p.Value) {
			return false
		}
	}
	return true
}

func matches(value interface{}, op Operator, want interface{}) bool {
	cmp, comparable := compareValues(value, want)
	switch op {
	case OpEqual:
		return comparable && cmp == 0
	case OpNotEqual:
		return !comparable || cmp != 0
	case OpLess:
		return comparable && cmp < 0
	case OpLessOrEqual:
		return comparable && cmp <= 0
	case OpGreater:
		return comparable && cmp > 0
	case OpGreaterOrEqual:
		return comparable && cmp >= 0
	}
	return false
}

func entryLess(a, b Entry, orderBy []Order) bool {
	for _, o := range orderBy {
		av := fieldValue(a, o.Field)
		bv := fieldValue(b, o.Field)
		cmp, ok := compareValues(av, bv)
		if !ok || cmp == 0 {
			continue
		}
		if o.Dir == Descending {
			return cmp > 0
		}
		return cmp < 0
	}
	return false
}

func fieldValue(e Entry, field string) interface{} {
	if field == FieldID {
		return e.ID
	}
	return e.Data[field]
}

func compareValues(a, b interface{}) (int, bool) {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(av, bv), true
	case bool:
		bv, ok := b.(bool)
		if !ok {
			return 0, false
		}
		if av == bv {
			return 0, true
		}
		if !av {
			return -1, true
		}
		return 1, true
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return av.Compare(bv), true
	case int:
		bv, ok := toFloat(b)
		if !ok {
			return 0, false
		}
		return compareFloat(float64(av), bv), true
	case int64:
		bv, ok := toFloat(b)
		if !ok {
			return 0, false
		}
		return compareFloat(float64(av), bv), true
	case float64:
		bv, ok := toFloat(b)
		if !ok {
			return 0, false
		}
		return compareFloat(av, bv), true
	}
	return 0, false
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cloneDocument(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch val := v.(type) {
	case Document:
		return cloneDocument(val)
	case map[string]interface{}:
		return map[string]interface{}(cloneDocument(val))
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	default:
		return v
	}
}
