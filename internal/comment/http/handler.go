package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/peershare/item-sharing-backend/internal/auth"
	"github.com/peershare/item-sharing-backend/internal/comment"
	"github.com/peershare/item-sharing-backend/internal/pkg/response"
)

type Handler struct {
	service comment.Service
}

func NewHandler(service comment.Service) *Handler {
	return &Handler{service: service}
}

// Create adds a comment on an item. Only users whose booking of the item
// has finished may comment.
func (h *Handler) Create(c *gin.Context) {
	itemID := c.Param("id")
	if _, err := uuid.Parse(itemID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), itemID, auth.GetUserID(c), req.Text)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewCommentResponse(created))
}

// ListByItem returns an item's comments, oldest first.
func (h *Handler) ListByItem(c *gin.Context) {
	itemID := c.Param("id")
	if _, err := uuid.Parse(itemID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	comments, err := h.service.ListByItem(c.Request.Context(), itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := make([]CommentResponse, len(comments))
	for i, cm := range comments {
		resp[i] = NewCommentResponse(cm)
	}

	c.JSON(http.StatusOK, gin.H{"items": resp})
}
