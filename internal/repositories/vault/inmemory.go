package vault

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/guardbox/internal/models"
)

// InMemoryRepository keeps the protected-data collection in a map. It
// exists for tests and satisfies the same contract as the file-backed
// store.
type InMemoryRepository struct {
	mu      sync.Mutex
	records map[string]models.VaultRecord
	now     func() time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		records: map[string]models.VaultRecord{},
		now:     time.Now,
	}
}

func (r *InMemoryRepository) Load(ctx context.Context) (map[string]models.VaultRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]models.VaultRecord, len(r.records))
	for k, v := range r.records {
		out[k] = v
	}
	return out, nil
}

func (r *InMemoryRepository) Save(ctx context.Context, collection map[string]models.VaultRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = make(map[string]models.VaultRecord, len(collection))
	for k, v := range collection {
		r.records[k] = v
	}
	return nil
}

func (r *InMemoryRepository) AppendNote(ctx context.Context, username, content string) (models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record := recordFor(r.records, username)
	note := models.Note{Content: content, CreatedAt: r.now().UTC()}
	record.Notes = append(record.Notes, note)
	r.records[username] = record
	return note, nil
}

func (r *InMemoryRepository) ListNotes(ctx context.Context, username string) ([]models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[username]
	if !ok {
		return []models.Note{}, nil
	}
	out := make([]models.Note, len(record.Notes))
	copy(out, record.Notes)
	return out, nil
}

func (r *InMemoryRepository) AppendFileRef(ctx context.Context, username, name string) (models.FileRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record := recordFor(r.records, username)
	ref := models.FileRef{Name: name, AddedAt: r.now().UTC()}
	record.Files = append(record.Files, ref)
	r.records[username] = record
	return ref, nil
}

func (r *InMemoryRepository) ListFileRefs(ctx context.Context, username string) ([]models.FileRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[username]
	if !ok {
		return []models.FileRef{}, nil
	}
	out := make([]models.FileRef, len(record.Files))
	copy(out, record.Files)
	return out, nil
}
