package item

import (
	"context"
	"errors"
	"strings"

	"github.com/peershare/item-sharing-backend/internal/user"
)

// CreateRequest holds the data needed to list a new item.
type CreateRequest struct {
	Name        string
	Description string
	Available   bool
	RequestID   *string
}

// UpdatePatch holds the optional fields of a partial item update.
// Only the owner may apply it; nil fields are left unchanged.
type UpdatePatch struct {
	Name        *string
	Description *string
	Available   *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest, ownerID string) (*Item, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	ListByOwner(ctx context.Context, ownerID string, page, pageSize int) ([]*Item, int, error)
	Search(ctx context.Context, text string, page, pageSize int) ([]*Item, int, error)
	Update(ctx context.Context, id string, patch UpdatePatch, actorID string) (*Item, error)
	Delete(ctx context.Context, id string, actorID string) error
}

type service struct {
	repo        Repository
	userService user.Service
}

func NewService(repo Repository, userService user.Service) Service {
	return &service{
		repo:        repo,
		userService: userService,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest, ownerID string) (*Item, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrDescRequired
	}

	// The owner must be a known user.
	owner, err := s.userService.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrOwnerMissing
		}
		return nil, err
	}

	it := &Item{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Available:   req.Available,
		OwnerID:     owner.ID,
		OwnerName:   owner.Name,
		RequestID:   req.RequestID,
	}

	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}

	return it, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByOwner(ctx context.Context, ownerID string, page, pageSize int) ([]*Item, int, error) {
	return s.repo.ListByOwner(ctx, Filter{
		OwnerID:  ownerID,
		Page:     page,
		PageSize: pageSize,
	})
}

func (s *service) Search(ctx context.Context, text string, page, pageSize int) ([]*Item, int, error) {
	// An empty query matches nothing rather than everything.
	if strings.TrimSpace(text) == "" {
		return nil, 0, nil
	}
	return s.repo.Search(ctx, strings.TrimSpace(text), page, pageSize)
}

func (s *service) Update(ctx context.Context, id string, patch UpdatePatch, actorID string) (*Item, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if it.OwnerID != actorID {
		return nil, ErrNotOwner
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, ErrNameRequired
		}
		it.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		if strings.TrimSpace(*patch.Description) == "" {
			return nil, ErrDescRequired
		}
		it.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Available != nil {
		it.Available = *patch.Available
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}

	return it, nil
}

func (s *service) Delete(ctx context.Context, id string, actorID string) error {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if it.OwnerID != actorID {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, id)
}
