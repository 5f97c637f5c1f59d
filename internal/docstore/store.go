// Package docstore defines the document database contract the template
// repositories are built on: schemaless collections queryable by flat
// AND-only predicate lists and orderable by field values. A single query
// cannot express OR across fields, and a compound ordering may require a
// server-side composite index; its absence surfaces as ErrIndexRequired so
// callers can tell "provision an index" apart from a transient failure.
package docstore

import (
	"context"
	"errors"
)

// FieldID is the reserved field name for ordering by document ID.
const FieldID = "_id"

var (
	// ErrNotFound is returned when an ID does not resolve to a document.
	ErrNotFound = errors.New("document not found")

	// ErrIndexRequired is returned when a query needs a composite index
	// that has not been provisioned on the backend.
	ErrIndexRequired = errors.New("composite index required")
)

type Operator string

const (
	OpEqual          Operator = "=="
	OpNotEqual       Operator = "!="
	OpLess           Operator = "<"
	OpLessOrEqual    Operator = "<="
	OpGreater        Operator = ">"
	OpGreaterOrEqual Operator = ">="
)

type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Predicate is a single field filter. Predicates in one query combine
// with AND; there is no disjunction.
type Predicate struct {
	Field string
	Op    Operator
	Value interface{}
}

type Order struct {
	Field string
	Dir   Direction
}

// Document is one stored record. Absent fields are distinct from empty
// ones: an equality predicate never matches a document that lacks the
// field entirely.
type Document map[string]interface{}

// Entry pairs a document with its store-assigned ID.
type Entry struct {
	ID   string
	Data Document
}

type Store interface {
	// Insert stores a new document and returns its generated ID.
	Insert(ctx context.Context, collection string, doc Document) (string, error)

	// Set stores a document under a caller-chosen ID, overwriting any
	// existing document with that ID.
	Set(ctx context.Context, collection, id string, doc Document) error

	// Query returns all documents matching every predicate, ordered by
	// orderBy. Use FieldID to order by document ID.
	Query(ctx context.Context, collection string, predicates []Predicate, orderBy []Order) ([]Entry, error)

	// Get returns the document with the given ID or ErrNotFound.
	Get(ctx context.Context, collection, id string) (Document, error)

	// Update merges partial into the stored document. Fields absent from
	// partial are left untouched.
	Update(ctx context.Context, collection, id string, partial Document) error

	// Delete removes the document. Deleting a missing document returns
	// ErrNotFound.
	Delete(ctx context.Context, collection, id string) error
}

func Where(field string, op Operator, value interface{}) Predicate {
	return Predicate{Field: field, Op: op, Value: value}
}

func OrderBy(field string, dir Direction) Order {
	return Order{Field: field, Dir: dir}
}
