package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryRepository is a map-backed ledger used by tests and local
// development. The mutex makes UpdateStatus a single atomic
// read-decide-write, matching the guarded UPDATE of the pgx ledger.
type memoryRepository struct {
	mu   sync.RWMutex
	byID map[string]*Booking
}

// NewMemoryRepository creates an in-memory Repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{byID: make(map[string]*Booking)}
}

func (r *memoryRepository) Create(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	b.ID = uuid.NewString()
	b.CreatedAt = now
	b.UpdatedAt = now

	stored := *b
	r.byID[b.ID] = &stored
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *memoryRepository) ListForBooker(_ context.Context, bookerID string, filter Filter) ([]*Booking, int, error) {
	return r.list(func(b *Booking) bool { return b.BookerID == bookerID }, filter)
}

func (r *memoryRepository) ListForOwner(_ context.Context, ownerID string, filter Filter) ([]*Booking, int, error) {
	return r.list(func(b *Booking) bool { return b.OwnerID == ownerID }, filter)
}

func (r *memoryRepository) list(role func(*Booking) bool, filter Filter) ([]*Booking, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*Booking
	for _, b := range r.byID {
		if !role(b) || !matchState(b, filter.State, filter.Now) {
			continue
		}
		copied := *b
		matched = append(matched, &copied)
	}

	// Most recent start first; the tiebreak keeps pagination stable.
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].StartTime.Equal(matched[j].StartTime) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].StartTime.After(matched[j].StartTime)
	})

	total := len(matched)
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
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

func matchState(b *Booking, state State, now time.Time) bool {
	switch state {
	case StateAll, "":
		return true
	case StateCurrent:
		return !b.StartTime.After(now) && !b.EndTime.Before(now)
	case StatePast:
		return b.EndTime.Before(now)
	case StateFuture:
		return b.StartTime.After(now)
	case StateWaiting:
		return b.Status == StatusWaiting
	case StateRejected:
		return b.Status == StatusRejected
	default:
		return false
	}
}

func (r *memoryRepository) ExistsCompleted(_ context.Context, itemID, bookerID string, now time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.byID {
		if b.ItemID == itemID && b.BookerID == bookerID &&
			b.Status == StatusApproved && b.EndTime.Before(now) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepository) UpdateStatus(_ context.Context, id string, from, to Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	if b.Status != from {
		return ErrAlreadyDecided
	}

	b.Status = to
	b.UpdatedAt = time.Now().UTC()
	return nil
}
