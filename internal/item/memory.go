package item

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryRepository is a map-backed Repository used by tests and local
// development.
type memoryRepository struct {
	mu   sync.RWMutex
	byID map[string]*Item
}

// NewMemoryRepository creates an in-memory Repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{byID: make(map[string]*Item)}
}

func (r *memoryRepository) Create(_ context.Context, it *Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	it.ID = uuid.NewString()
	it.CreatedAt = now
	it.UpdatedAt = now

	stored := *it
	r.byID[it.ID] = &stored
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *it
	return &copied, nil
}

func (r *memoryRepository) ListByOwner(_ context.Context, filter Filter) ([]*Item, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*Item
	for _, it := range r.byID {
		if it.OwnerID != filter.OwnerID {
			continue
		}
		copied := *it
		matched = append(matched, &copied)
	}

	sortByCreatedDesc(matched)
	return paginate(matched, filter.Page, filter.PageSize)
}

func (r *memoryRepository) Search(_ context.Context, text string, page, pageSize int) ([]*Item, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(text)

	var matched []*Item
	for _, it := range r.byID {
		if !it.Available {
			continue
		}
		if !strings.Contains(strings.ToLower(it.Name), needle) &&
			!strings.Contains(strings.ToLower(it.Description), needle) {
			continue
		}
		copied := *it
		matched = append(matched, &copied)
	}

	sortByCreatedDesc(matched)
	return paginate(matched, page, pageSize)
}

func (r *memoryRepository) Update(_ context.Context, it *Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[it.ID]
	if !ok {
		return ErrNotFound
	}

	it.OwnerID = existing.OwnerID
	it.CreatedAt = existing.CreatedAt
	it.UpdatedAt = time.Now().UTC()

	stored := *it
	r.byID[it.ID] = &stored
	return nil
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

func sortByCreatedDesc(items []*Item) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func paginate(items []*Item, page, pageSize int) ([]*Item, int, error) {
	total := len(items)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	start := (page - 1) * pageSize
	if start >= total {
		return nil, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return items[start:end], total, nil
}
