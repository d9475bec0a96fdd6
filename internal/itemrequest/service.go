package itemrequest

import (
	"context"
	"strings"

	"github.com/peershare/item-sharing-backend/internal/user"
)

type Service interface {
	Create(ctx context.Context, description, requestorID string) (*ItemRequest, error)
	GetByID(ctx context.Context, id string) (*ItemRequest, error)
	ListByRequestor(ctx context.Context, requestorID string, page, pageSize int) ([]*ItemRequest, int, error)

	// ListOthers returns requests made by everyone except the viewer, so
	// owners can browse what people are looking for.
	ListOthers(ctx context.Context, viewerID string, page, pageSize int) ([]*ItemRequest, int, error)
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

func (s *service) Create(ctx context.Context, description, requestorID string) (*ItemRequest, error) {
	desc := strings.TrimSpace(description)
	if desc == "" {
		return nil, ErrDescRequired
	}

	requestor, err := s.userService.GetByID(ctx, requestorID)
	if err != nil {
		return nil, err
	}

	req := &ItemRequest{
		Description:   desc,
		RequestorID:   requestor.ID,
		RequestorName: requestor.Name,
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}

	return req, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*ItemRequest, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByRequestor(ctx context.Context, requestorID string, page, pageSize int) ([]*ItemRequest, int, error) {
	return s.repo.ListByRequestor(ctx, requestorID, page, pageSize)
}

func (s *service) ListOthers(ctx context.Context, viewerID string, page, pageSize int) ([]*ItemRequest, int, error) {
	return s.repo.ListOthers(ctx, viewerID, page, pageSize)
}
