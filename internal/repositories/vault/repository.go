// Package vault persists the protected-data collection: per-user notes and
// metadata-only file references, round-tripped as a whole document.
package vault

import (
	"context"

	"github.com/dmitrijs2005/guardbox/internal/models"
)

// Repository is the protected-data store contract. It shares the
// load/save semantics of the credential store: absent file means an empty
// collection, unparseable content means common.ErrorStorageCorrupt. A
// user's record is created lazily on first write; listing for a user with
// no record yields an empty sequence, not an error.
type Repository interface {
	Load(ctx context.Context) (map[string]models.VaultRecord, error)
	Save(ctx context.Context, collection map[string]models.VaultRecord) error

	// AppendNote adds a note to the user's record, creating the record if
	// needed, and returns the stored note.
	AppendNote(ctx context.Context, username, content string) (models.Note, error)

	// ListNotes returns the user's notes in insertion order.
	ListNotes(ctx context.Context, username string) ([]models.Note, error)

	// AppendFileRef adds a file reference to the user's record, creating
	// the record if needed, and returns the stored reference.
	AppendFileRef(ctx context.Context, username, name string) (models.FileRef, error)

	// ListFileRefs returns the user's file references in insertion order.
	ListFileRefs(ctx context.Context, username string) ([]models.FileRef, error)
}
