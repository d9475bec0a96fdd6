package comment

import (
	"context"
	"errors"
	"strings"

	"github.com/peershare/item-sharing-backend/internal/booking"
	"github.com/peershare/item-sharing-backend/internal/item"
	"github.com/peershare/item-sharing-backend/internal/user"
)

type Service interface {
	// Create adds a comment on an item. The author must have an approved
	// booking of the item that has already ended.
	Create(ctx context.Context, itemID, authorID, text string) (*Comment, error)

	ListByItem(ctx context.Context, itemID string) ([]*Comment, error)
}

type service struct {
	repo           Repository
	itemService    item.Service
	userService    user.Service
	bookingService booking.Service
}

func NewService(repo Repository, itemService item.Service, userService user.Service, bookingService booking.Service) Service {
	return &service{
		repo:           repo,
		itemService:    itemService,
		userService:    userService,
		bookingService: bookingService,
	}
}

func (s *service) Create(ctx context.Context, itemID, authorID, text string) (*Comment, error) {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return nil, ErrTextRequired
	}

	it, err := s.itemService.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	author, err := s.userService.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrAuthorNotFound
		}
		return nil, err
	}

	completed, err := s.bookingService.HasCompletedBooking(ctx, it.ID, author.ID)
	if err != nil {
		return nil, err
	}
	if !completed {
		return nil, ErrNoPastBooking
	}

	c := &Comment{
		ItemID:     it.ID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Text:       clean,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *service) ListByItem(ctx context.Context, itemID string) ([]*Comment, error) {
	if _, err := s.itemService.GetByID(ctx, itemID); err != nil {
		if errors.Is(err, item.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return s.repo.ListByItem(ctx, itemID)
}
