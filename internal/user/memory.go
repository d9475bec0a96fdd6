package user

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryRepository is a map-backed Repository used by tests and local
// development. It enforces the same email uniqueness as the database.
type memoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*User
	byEmail map[string]string // email -> id
}

// NewMemoryRepository creates an in-memory Repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byID:    make(map[string]*User),
		byEmail: make(map[string]string),
	}
}

func (r *memoryRepository) Create(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, used := r.byEmail[u.Email]; used {
		return ErrEmailAlreadyUsed
	}

	now := time.Now().UTC()
	u.ID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now

	stored := *u
	r.byID[u.ID] = &stored
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memoryRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *r.byID[id]
	return &copied, nil
}

func (r *memoryRepository) Update(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[u.ID]
	if !ok {
		return ErrNotFound
	}
	if other, used := r.byEmail[u.Email]; used && other != u.ID {
		return ErrEmailAlreadyUsed
	}

	delete(r.byEmail, existing.Email)
	u.CreatedAt = existing.CreatedAt
	u.UpdatedAt = time.Now().UTC()

	stored := *u
	r.byID[u.ID] = &stored
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.byEmail, u.Email)
	delete(r.byID, id)
	return nil
}

func (r *memoryRepository) List(_ context.Context, filter Filter) ([]*User, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*User
	for _, u := range r.byID {
		if filter.Email != "" && u.Email != filter.Email {
			continue
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(u.Name), strings.ToLower(filter.Name)) {
			continue
		}
		copied := *u
		matched = append(matched, &copied)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return paginate(matched, filter.Page, filter.PageSize)
}

// paginate slices a pre-sorted result set according to page parameters.
func paginate(users []*User, page, pageSize int) ([]*User, int, error) {
	total := len(users)
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
	return users[start:end], total, nil
}
