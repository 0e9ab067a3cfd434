// Package repogen provides a generic bun-backed repository.
//
// PgRepo covers the single-entity operations shared by the service's
// repositories: create, lookup by filter, listing, column-restricted update
// and delete. Domain repositories embed it and add their own error codes and
// filter functions.
package repogen

import (
	"context"
)

// Repo defines a generic repository for entities of type E with filter type F.
type Repo[E any, F any] interface {
	// Get retrieves a single entity matching the filters.
	// Fails with the repository's not-found code when nothing matches.
	Get(ctx context.Context, filters F) (*E, error)
	// List returns all entities matching the filters, never nil.
	List(ctx context.Context, filters F) ([]E, error)
	// Create inserts the entity and fills store-assigned columns.
	Create(ctx context.Context, entity *E) (*E, error)
	// UpdateColumns updates only the given columns of the entity identified by its primary key.
	// Fails with the not-found code when no row was affected.
	UpdateColumns(ctx context.Context, entity *E, columns ...string) (*E, error)
	// Delete removes the entity identified by its primary key.
	// Fails with the not-found code when no row was affected.
	Delete(ctx context.Context, entity *E) error
}
