package http

import (
	"time"

	"github.com/peershare/item-sharing-backend/internal/comment"
	userHttp "github.com/peershare/item-sharing-backend/internal/user/http"
)

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type CommentResponse struct {
	ID        string           `json:"id"`
	ItemID    string           `json:"item_id"`
	Author    userHttp.UserTag `json:"author"`
	Text      string           `json:"text"`
	CreatedAt time.Time        `json:"created_at"`
}

func NewCommentResponse(c *comment.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		ItemID:    c.ItemID,
		Author:    userHttp.UserTag{ID: c.AuthorID, Name: c.AuthorName},
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}
