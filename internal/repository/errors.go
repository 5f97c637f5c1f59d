package repository

import (
	"errors"
	"fmt"

	"github.com/templateworks/backend/internal/docstore"
)

// The error taxonomy every repository operation resolves to. Callers
// branch with errors.Is; the underlying store message is preserved in
// the wrapped text for diagnostics.
var (
	// ErrUnauthenticated: no viewer identity where one is required.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrPermissionDenied: the viewer is not the owner of the entity
	// being mutated.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound: the id does not resolve to a visible entity.
	ErrNotFound = errors.New("not found")

	// ErrIndexRequired: the store needs a composite index that has not
	// been provisioned. Actionable by an operator, not by retrying.
	ErrIndexRequired = errors.New("store index required")

	// ErrStoreRead / ErrStoreWrite wrap any other store failure.
	ErrStoreRead  = errors.New("store read failed")
	ErrStoreWrite = errors.New("store write failed")
)

func readError(entity, op string, err error) error {
	switch {
	case errors.Is(err, docstore.ErrNotFound):
		return fmt.Errorf("%w: %s %s", ErrNotFound, op, entity)
	case errors.Is(err, docstore.ErrIndexRequired):
		return fmt.Errorf("%w: %s %s: %v", ErrIndexRequired, op, entity, err)
	default:
		return fmt.Errorf("%w: %s %s: %v", ErrStoreRead, op, entity, err)
	}
}

func writeError(entity, op string, err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return fmt.Errorf("%w: %s %s", ErrNotFound, op, entity)
	}
	return fmt.Errorf("%w: %s %s: %v", ErrStoreWrite, op, entity, err)
}
