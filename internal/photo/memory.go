package photo

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu   sync.RWMutex
	byID map[string]*Photo
}

// NewMemoryRepository creates an in-memory Repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{byID: make(map[string]*Photo)}
}

func (r *memoryRepository) Create(_ context.Context, p *Photo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *p
	r.byID[p.ID] = &stored
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*Photo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *memoryRepository) ListByItem(_ context.Context, itemID string) ([]*Photo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*Photo
	for _, p := range r.byID {
		if p.ItemID != itemID {
			continue
		}
		copied := *p
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

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
