package vault

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/guardbox/internal/common"
	"github.com/dmitrijs2005/guardbox/internal/filex"
	"github.com/dmitrijs2005/guardbox/internal/models"
)

// ProtectedDataFileName is the protected-data collection file inside the
// data dir.
const ProtectedDataFileName = "protected_data.json"

// JSONFileRepository stores the protected-data collection as one JSON
// document. A single mutex serializes the load-modify-save cycle.
type JSONFileRepository struct {
	mu   sync.Mutex
	path string

	// now is a test seam for entry timestamps.
	now func() time.Time
}

// NewJSONFileRepository returns a repository backed by protected_data.json
// inside dataDir.
func NewJSONFileRepository(dataDir string) *JSONFileRepository {
	return &JSONFileRepository{
		path: filepath.Join(dataDir, ProtectedDataFileName),
		now:  time.Now,
	}
}

func (r *JSONFileRepository) Load(ctx context.Context) (map[string]models.VaultRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadLocked()
}

func (r *JSONFileRepository) Save(ctx context.Context, collection map[string]models.VaultRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveLocked(collection)
}

func (r *JSONFileRepository) AppendNote(ctx context.Context, username, content string) (models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	collection, err := r.loadLocked()
	if err != nil {
		return models.Note{}, err
	}

	record := recordFor(collection, username)
	note := models.Note{Content: content, CreatedAt: r.now().UTC()}
	record.Notes = append(record.Notes, note)
	collection[username] = record

	if err := r.saveLocked(collection); err != nil {
		return models.Note{}, err
	}
	return note, nil
}

func (r *JSONFileRepository) ListNotes(ctx context.Context, username string) ([]models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	collection, err := r.loadLocked()
	if err != nil {
		return nil, err
	}

	record, ok := collection[username]
	if !ok {
		return []models.Note{}, nil
	}
	out := make([]models.Note, len(record.Notes))
	copy(out, record.Notes)
	return out, nil
}

func (r *JSONFileRepository) AppendFileRef(ctx context.Context, username, name string) (models.FileRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	collection, err := r.loadLocked()
	if err != nil {
		return models.FileRef{}, err
	}

	record := recordFor(collection, username)
	ref := models.FileRef{Name: name, AddedAt: r.now().UTC()}
	record.Files = append(record.Files, ref)
	collection[username] = record

	if err := r.saveLocked(collection); err != nil {
		return models.FileRef{}, err
	}
	return ref, nil
}

func (r *JSONFileRepository) ListFileRefs(ctx context.Context, username string) ([]models.FileRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	collection, err := r.loadLocked()
	if err != nil {
		return nil, err
	}

	record, ok := collection[username]
	if !ok {
		return []models.FileRef{}, nil
	}
	out := make([]models.FileRef, len(record.Files))
	copy(out, record.Files)
	return out, nil
}

// recordFor returns the user's record, creating it lazily.
func recordFor(collection map[string]models.VaultRecord, username string) models.VaultRecord {
	record, ok := collection[username]
	if !ok {
		record = models.VaultRecord{UserName: username}
	}
	return record
}

func (r *JSONFileRepository) loadLocked() (map[string]models.VaultRecord, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]models.VaultRecord{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", r.path, err)
	}

	collection := map[string]models.VaultRecord{}
	if err := json.Unmarshal(data, &collection); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", r.path, common.ErrorStorageCorrupt)
	}
	return collection, nil
}

func (r *JSONFileRepository) saveLocked(collection map[string]models.VaultRecord) error {
	data, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling protected data: %w", err)
	}

	if err := filex.WriteFileAtomic(r.path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", r.path, common.ErrorStorageWrite)
	}
	return nil
}
