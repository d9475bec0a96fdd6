package http

import (
	"time"

	"github.com/peershare/item-sharing-backend/internal/item"
	"github.com/peershare/item-sharing-backend/internal/pkg/request"
	userHttp "github.com/peershare/item-sharing-backend/internal/user/http"
)

type CreateItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Available   *bool   `json:"available" binding:"required"`
	RequestID   *string `json:"request_id" binding:"omitempty,uuid"`
}

type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// SearchItemsRequest defines query parameters for item search.
type SearchItemsRequest struct {
	request.ListParams
	Text string `form:"text"`
}

type ItemResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Available   bool             `json:"available"`
	Owner       userHttp.UserTag `json:"owner"`
	RequestID   *string          `json:"request_id,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ItemTag is the minimal item reference embedded in other responses.
type ItemTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewItemResponse(it *item.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		Owner:       userHttp.UserTag{ID: it.OwnerID, Name: it.OwnerName},
		RequestID:   it.RequestID,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}
