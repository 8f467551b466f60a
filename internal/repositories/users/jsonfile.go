package users

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/dmitrijs2005/guardbox/internal/common"
	"github.com/dmitrijs2005/guardbox/internal/filex"
	"github.com/dmitrijs2005/guardbox/internal/models"
)

// UserDataFileName is the credential collection file inside the data dir.
const UserDataFileName = "user_data.json"

// JSONFileRepository stores the credential collection as one JSON document.
// A single mutex serializes the load-modify-save cycle.
type JSONFileRepository struct {
	mu   sync.Mutex
	path string
}

// NewJSONFileRepository returns a repository backed by user_data.json
// inside dataDir.
func NewJSONFileRepository(dataDir string) *JSONFileRepository {
	return &JSONFileRepository{path: filepath.Join(dataDir, UserDataFileName)}
}

func (r *JSONFileRepository) Load(ctx context.Context) (map[string]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadLocked()
}

func (r *JSONFileRepository) Save(ctx context.Context, collection map[string]models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveLocked(collection)
}

func (r *JSONFileRepository) Find(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	collection, err := r.loadLocked()
	if err != nil {
		return nil, err
	}

	user, ok := collection[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &user, nil
}

func (r *JSONFileRepository) Upsert(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	collection, err := r.loadLocked()
	if err != nil {
		return err
	}

	collection[user.UserName] = *user
	return r.saveLocked(collection)
}

func (r *JSONFileRepository) List(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	collection, err := r.loadLocked()
	if err != nil {
		return nil, err
	}

	list := make([]models.User, 0, len(collection))
	for _, u := range collection {
		list = append(list, u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].UserName < list[j].UserName })
	return list, nil
}

func (r *JSONFileRepository) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	collection, err := r.loadLocked()
	if err != nil {
		return 0, err
	}
	return len(collection), nil
}

// loadLocked reads the whole collection. An absent file is the first-run
// state and yields an empty collection, not an error.
func (r *JSONFileRepository) loadLocked() (map[string]models.User, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]models.User{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", r.path, err)
	}

	collection := map[string]models.User{}
	if err := json.Unmarshal(data, &collection); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", r.path, common.ErrorStorageCorrupt)
	}
	return collection, nil
}

func (r *JSONFileRepository) saveLocked(collection map[string]models.User) error {
	data, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling credentials: %w", err)
	}

	if err := filex.WriteFileAtomic(r.path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", r.path, common.ErrorStorageWrite)
	}
	return nil
}
