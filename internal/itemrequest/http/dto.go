package http

import (
	"time"

	"github.com/peershare/item-sharing-backend/internal/itemrequest"
	userHttp "github.com/peershare/item-sharing-backend/internal/user/http"
)

type CreateItemRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

type ItemRequestResponse struct {
	ID          string           `json:"id"`
	Description string           `json:"description"`
	Requestor   userHttp.UserTag `json:"requestor"`
	CreatedAt   time.Time        `json:"created_at"`
}

func NewItemRequestResponse(req *itemrequest.ItemRequest) ItemRequestResponse {
	return ItemRequestResponse{
		ID:          req.ID,
		Description: req.Description,
		Requestor:   userHttp.UserTag{ID: req.RequestorID, Name: req.RequestorName},
		CreatedAt:   req.CreatedAt,
	}
}
