package itemrequest

import (
	"net/http"
	"time"

	"github.com/peershare/item-sharing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "item request not found")
	ErrDescRequired = apperror.New(http.StatusBadRequest, "description is required")
)

// ItemRequest is an open wish for an item someone would like to borrow.
// Items may reference the request they fulfill; matching itself happens
// outside this service.
type ItemRequest struct {
	ID            string
	Description   string
	RequestorID   string
	RequestorName string
	CreatedAt     time.Time
}
