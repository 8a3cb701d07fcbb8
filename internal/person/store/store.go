// Package store persists person records. Implementations report absence with
// sentinel.ErrNotFound; translation to coded errors happens in the service.
package store

import (
	"context"

	"peoplebook/internal/person/models"
	"peoplebook/pkg/domain"
)

// Store is the persistence contract for person records. The collection is
// flat: one document type, identifier lookup only.
//
// Execute runs fn against the current document while holding the store's
// per-document lock (mutex in memory, SELECT ... FOR UPDATE in Postgres), so
// a read-modify-write update is atomic against concurrent writers of the
// same record. Returning an error from fn abandons the mutation and the
// error is passed through unchanged. Cross-client updates remain
// last-write-wins; there is no version token.
type Store interface {
	List(ctx context.Context) ([]*models.Person, error)
	FindByID(ctx context.Context, id domain.PersonID) (*models.Person, error)
	Create(ctx context.Context, p *models.Person) error
	Execute(ctx context.Context, id domain.PersonID, fn func(*models.Person) error) (*models.Person, error)
	Delete(ctx context.Context, id domain.PersonID) error
}
