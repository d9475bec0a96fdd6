package http

import (
	"time"

	"github.com/peershare/item-sharing-backend/internal/booking"
	itemHttp "github.com/peershare/item-sharing-backend/internal/item/http"
	"github.com/peershare/item-sharing-backend/internal/pkg/request"
	userHttp "github.com/peershare/item-sharing-backend/internal/user/http"
)

type CreateBookingRequest struct {
	ItemID    string    `json:"item_id" binding:"required,uuid"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	State string `form:"state" binding:"omitempty,oneof=all current past future waiting rejected"`
}

type BookingResponse struct {
	ID        string           `json:"id"`
	Item      itemHttp.ItemTag `json:"item"`
	Booker    userHttp.UserTag `json:"booker"`
	StartTime time.Time        `json:"start_time"`
	EndTime   time.Time        `json:"end_time"`
	Status    string           `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		Item:      itemHttp.ItemTag{ID: b.ItemID, Name: b.ItemName},
		Booker:    userHttp.UserTag{ID: b.BookerID, Name: b.BookerName},
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    b.Status.String(),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
