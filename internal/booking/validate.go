package booking

import (
	"time"

	"github.com/peershare/item-sharing-backend/internal/item"
)

// CheckEligibility decides whether a booking request may be created.
// It is a pure function of its inputs and the supplied clock value;
// checks short-circuit on the first failure, in this order:
//
//  1. the item must be available,
//  2. start must be strictly before end,
//  3. start must be strictly in the future,
//  4. the actor must not own the item.
//
// It returns nil on acceptance or the specific rejection sentinel.
func CheckEligibility(req CreateRequest, actorID string, it *item.Item, now time.Time) error {
	if it == nil || !it.Available {
		return ErrItemUnavailable
	}
	if !req.StartTime.Before(req.EndTime) {
		return ErrInvalidTimeRange
	}
	if !req.StartTime.After(now) {
		return ErrStartTimePast
	}
	if actorID == it.OwnerID {
		return ErrSelfBooking
	}
	return nil
}
