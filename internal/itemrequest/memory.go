package itemrequest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu   sync.RWMutex
	byID map[string]*ItemRequest
}

// NewMemoryRepository creates an in-memory Repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{byID: make(map[string]*ItemRequest)}
}

func (r *memoryRepository) Create(_ context.Context, req *ItemRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	req.ID = uuid.NewString()
	req.CreatedAt = time.Now().UTC()

	stored := *req
	r.byID[req.ID] = &stored
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*ItemRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *req
	return &copied, nil
}

func (r *memoryRepository) ListByRequestor(_ context.Context, requestorID string, page, pageSize int) ([]*ItemRequest, int, error) {
	return r.list(func(req *ItemRequest) bool { return req.RequestorID == requestorID }, page, pageSize)
}

func (r *memoryRepository) ListOthers(_ context.Context, excludeRequestorID string, page, pageSize int) ([]*ItemRequest, int, error) {
	return r.list(func(req *ItemRequest) bool { return req.RequestorID != excludeRequestorID }, page, pageSize)
}

func (r *memoryRepository) list(match func(*ItemRequest) bool, page, pageSize int) ([]*ItemRequest, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*ItemRequest
	for _, req := range r.byID {
		if !match(req) {
			continue
		}
		copied := *req
		matched = append(matched, &copied)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
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
	return matched[start:end], total, nil
}
