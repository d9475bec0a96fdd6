package booking

import (
	"net/http"
	"time"

	"github.com/peershare/item-sharing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "booking not found")
	ErrActorNotFound = apperror.New(http.StatusNotFound, "user not found")
	ErrItemNotFound  = apperror.New(http.StatusNotFound, "item not found")

	ErrItemUnavailable  = apperror.New(http.StatusBadRequest, "item is not available for booking")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrStartTimePast    = apperror.New(http.StatusBadRequest, "start time must be in the future")
	ErrSelfBooking      = apperror.New(http.StatusBadRequest, "owner cannot book their own item")
	ErrInvalidState     = apperror.New(http.StatusBadRequest, "invalid state filter")

	ErrAlreadyDecided = apperror.New(http.StatusConflict, "booking has already been decided")
	ErrNotOwner       = apperror.New(http.StatusForbidden, "only the item owner can decide a booking")
	ErrNotBooker      = apperror.New(http.StatusForbidden, "only the booker can cancel a booking")
	ErrAccessDenied   = apperror.New(http.StatusForbidden, "access denied")
)

// Booking is a time-bounded request by a booker to borrow another user's
// item. It is created in waiting state and moves through the state machine
// in status.go; it is never deleted, only superseded in status.
type Booking struct {
	ID         string
	ItemID     string
	ItemName   string
	BookerID   string
	BookerName string
	OwnerID    string // Owner of the item at booking time; decides approval
	StartTime  time.Time
	EndTime    time.Time
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Filter defines parameters for listing bookings. Now anchors the
// current/past/future partitions so that listings are deterministic
// under an injected clock.
type Filter struct {
	State    State
	Now      time.Time
	Page     int
	PageSize int
}
