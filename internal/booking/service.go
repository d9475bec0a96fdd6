package booking

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/peershare/item-sharing-backend/internal/item"
	"github.com/peershare/item-sharing-backend/internal/user"
)

// CreateRequest holds the data needed to request a booking.
type CreateRequest struct {
	ItemID    string
	StartTime time.Time
	EndTime   time.Time
}

// Service is the booking lifecycle manager. It resolves the actor and the
// target item, runs the eligibility checks, and mutates the ledger.
type Service interface {
	Create(ctx context.Context, req CreateRequest, actorID string) (*Booking, error)

	// Confirm decides a waiting booking: approve=true moves it to approved,
	// approve=false to rejected. Only the item owner may decide, and only
	// once; a second confirm fails with ErrAlreadyDecided.
	Confirm(ctx context.Context, bookingID, actorID string, approve bool) (*Booking, error)

	// Cancel withdraws a waiting booking. Only the booker may cancel.
	Cancel(ctx context.Context, bookingID, actorID string) (*Booking, error)

	// GetByID returns a booking, visible only to its booker or the item
	// owner.
	GetByID(ctx context.Context, bookingID, actorID string) (*Booking, error)

	ListForBooker(ctx context.Context, actorID string, filter Filter) ([]*Booking, int, error)
	ListForOwner(ctx context.Context, actorID string, filter Filter) ([]*Booking, int, error)

	// HasCompletedBooking reports whether the booker had an approved
	// booking of the item that has already ended.
	HasCompletedBooking(ctx context.Context, itemID, bookerID string) (bool, error)
}

type service struct {
	repo        Repository
	userService user.Service
	itemService item.Service
	logger      *zap.Logger

	now func() time.Time
}

func NewService(repo Repository, userService user.Service, itemService item.Service, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		repo:        repo,
		userService: userService,
		itemService: itemService,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest, actorID string) (*Booking, error) {
	actor, err := s.userService.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrActorNotFound
		}
		return nil, err
	}

	it, err := s.itemService.GetByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if err := CheckEligibility(req, actor.ID, it, s.now()); err != nil {
		return nil, err
	}

	b := &Booking{
		ItemID:     it.ID,
		ItemName:   it.Name,
		BookerID:   actor.ID,
		BookerName: actor.Name,
		OwnerID:    it.OwnerID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Status:     StatusWaiting,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.String("booking_id", b.ID),
		zap.String("item_id", b.ItemID),
		zap.String("booker_id", b.BookerID),
		zap.Time("start", b.StartTime),
		zap.Time("end", b.EndTime),
	)

	return b, nil
}

func (s *service) Confirm(ctx context.Context, bookingID, actorID string, approve bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.OwnerID != actorID {
		return nil, ErrNotOwner
	}

	target := StatusRejected
	if approve {
		target = StatusApproved
	}

	if !b.Status.CanTransitionTo(target) {
		return nil, ErrAlreadyDecided
	}

	// Guarded transition: a concurrent decision on the same booking makes
	// this fail with ErrAlreadyDecided instead of silently overwriting it.
	if err := s.repo.UpdateStatus(ctx, b.ID, StatusWaiting, target); err != nil {
		return nil, err
	}
	b.Status = target

	s.logger.Info("booking decided",
		zap.String("booking_id", b.ID),
		zap.String("owner_id", actorID),
		zap.String("status", b.Status.String()),
	)

	return b, nil
}

func (s *service) Cancel(ctx context.Context, bookingID, actorID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.BookerID != actorID {
		return nil, ErrNotBooker
	}

	if !b.Status.CanTransitionTo(StatusCanceled) {
		return nil, ErrAlreadyDecided
	}

	if err := s.repo.UpdateStatus(ctx, b.ID, StatusWaiting, StatusCanceled); err != nil {
		return nil, err
	}
	b.Status = StatusCanceled

	s.logger.Info("booking canceled",
		zap.String("booking_id", b.ID),
		zap.String("booker_id", actorID),
	)

	return b, nil
}

func (s *service) GetByID(ctx context.Context, bookingID, actorID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.BookerID != actorID && b.OwnerID != actorID {
		return nil, ErrAccessDenied
	}

	return b, nil
}

func (s *service) ListForBooker(ctx context.Context, actorID string, filter Filter) ([]*Booking, int, error) {
	if err := s.resolveActor(ctx, actorID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListForBooker(ctx, actorID, s.anchored(filter))
}

func (s *service) ListForOwner(ctx context.Context, actorID string, filter Filter) ([]*Booking, int, error) {
	if err := s.resolveActor(ctx, actorID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListForOwner(ctx, actorID, s.anchored(filter))
}

func (s *service) HasCompletedBooking(ctx context.Context, itemID, bookerID string) (bool, error) {
	return s.repo.ExistsCompleted(ctx, itemID, bookerID, s.now())
}

func (s *service) resolveActor(ctx context.Context, actorID string) error {
	if _, err := s.userService.GetByID(ctx, actorID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrActorNotFound
		}
		return err
	}
	return nil
}

// anchored pins the filter's clock so all partition checks within one
// listing share the same notion of now.
func (s *service) anchored(filter Filter) Filter {
	if filter.Now.IsZero() {
		filter.Now = s.now()
	}
	if filter.State == "" {
		filter.State = StateAll
	}
	return filter
}
