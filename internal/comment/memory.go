package comment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu   sync.RWMutex
	byID map[string]*Comment
}

// NewMemoryRepository creates an in-memory Repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{byID: make(map[string]*Comment)}
}

func (r *memoryRepository) Create(_ context.Context, c *Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.ID = uuid.NewString()
	c.CreatedAt = time.Now().UTC()

	stored := *c
	r.byID[c.ID] = &stored
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *memoryRepository) ListByItem(_ context.Context, itemID string) ([]*Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*Comment
	for _, c := range r.byID {
		if c.ItemID != itemID {
			continue
		}
		copied := *c
		matched = append(matched, &copied)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	return matched, nil
}
