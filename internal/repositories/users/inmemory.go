package users

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/guardbox/internal/common"
	"github.com/dmitrijs2005/guardbox/internal/models"
)

// InMemoryRepository keeps the credential collection in a map. It exists
// for tests and satisfies the same contract as the file-backed store.
type InMemoryRepository struct {
	mu    sync.Mutex
	users map[string]models.User
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: map[string]models.User{}}
}

func (r *InMemoryRepository) Load(ctx context.Context) (map[string]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]models.User, len(r.users))
	for k, v := range r.users {
		out[k] = v
	}
	return out, nil
}

func (r *InMemoryRepository) Save(ctx context.Context, collection map[string]models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = make(map[string]models.User, len(collection))
	for k, v := range collection {
		r.users[k] = v
	}
	return nil
}

func (r *InMemoryRepository) Find(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &user, nil
}

func (r *InMemoryRepository) Upsert(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.UserName] = *user
	return nil
}

func (r *InMemoryRepository) List(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		list = append(list, u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].UserName < list[j].UserName })
	return list, nil
}

func (r *InMemoryRepository) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users), nil
}
