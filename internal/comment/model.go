package comment

import (
	"net/http"
	"time"

	"github.com/peershare/item-sharing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound       = apperror.New(http.StatusNotFound, "comment not found")
	ErrItemNotFound   = apperror.New(http.StatusNotFound, "item not found")
	ErrAuthorNotFound = apperror.New(http.StatusNotFound, "user not found")
	ErrTextRequired   = apperror.New(http.StatusBadRequest, "comment text is required")
	ErrNoPastBooking  = apperror.New(http.StatusBadRequest, "only users with a finished booking of the item can comment")
)

// Comment is feedback left on an item by a user whose approved booking of
// that item has already ended.
type Comment struct {
	ID         string
	ItemID     string
	AuthorID   string
	AuthorName string
	Text       string
	CreatedAt  time.Time
}
