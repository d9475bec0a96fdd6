package item

import (
	"net/http"
	"time"

	"github.com/peershare/item-sharing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "item not found")
	ErrNotOwner     = apperror.New(http.StatusForbidden, "only the owner can modify this item")
	ErrNameRequired = apperror.New(http.StatusBadRequest, "item name is required")
	ErrDescRequired = apperror.New(http.StatusBadRequest, "item description is required")
	ErrOwnerMissing = apperror.New(http.StatusNotFound, "owner not found")
)

// Item is something a user has listed for sharing. An item always has
// exactly one owner, set at creation and never transferred. Available
// controls whether new bookings may be created for it.
type Item struct {
	ID          string
	Name        string
	Description string
	Available   bool
	OwnerID     string
	OwnerName   string
	RequestID   *string // Optional back-reference to the item request this listing fulfills
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter defines parameters for listing items.
type Filter struct {
	OwnerID  string
	Page     int
	PageSize int
}
