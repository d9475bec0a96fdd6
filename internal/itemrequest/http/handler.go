package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/peershare/item-sharing-backend/internal/auth"
	"github.com/peershare/item-sharing-backend/internal/itemrequest"
	"github.com/peershare/item-sharing-backend/internal/pkg/response"
)

type Handler struct {
	service itemrequest.Service
}

func NewHandler(service itemrequest.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateItemRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), req.Description, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewItemRequestResponse(created))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	req, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemRequestResponse(req))
}

// ListMine returns the authenticated user's own item requests.
func (h *Handler) ListMine(c *gin.Context) {
	h.list(c, h.service.ListByRequestor)
}

// ListOthers returns everyone else's item requests, newest first.
func (h *Handler) ListOthers(c *gin.Context) {
	h.list(c, h.service.ListOthers)
}

func (h *Handler) list(c *gin.Context, fetch func(ctx context.Context, userID string, page, pageSize int) ([]*itemrequest.ItemRequest, int, error)) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	reqs, total, err := fetch(c.Request.Context(), auth.GetUserID(c), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := make([]ItemRequestResponse, len(reqs))
	for i, req := range reqs {
		resp[i] = NewItemRequestResponse(req)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(resp, page, pageSize, total))
}
