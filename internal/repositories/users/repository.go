// Package users persists the credential collection: one record per
// username, round-tripped as a whole document on every mutation.
package users

import (
	"context"

	"github.com/dmitrijs2005/guardbox/internal/models"
)

// Repository is the credential-store contract. Load returns an empty
// collection when no data has been persisted yet; a collection that exists
// but cannot be parsed yields common.ErrorStorageCorrupt. All mutation goes
// through load-modify-save, guarded by a single exclusive lock per store.
type Repository interface {
	Load(ctx context.Context) (map[string]models.User, error)
	Save(ctx context.Context, collection map[string]models.User) error

	// Find returns the record for username or common.ErrorNotFound.
	Find(ctx context.Context, username string) (*models.User, error)

	// Upsert inserts or replaces the record keyed by its username.
	Upsert(ctx context.Context, user *models.User) error

	// List returns all records ordered by username.
	List(ctx context.Context) ([]models.User, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)
}
