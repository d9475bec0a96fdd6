package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	items := g.Group("/items")
	items.Use(authMiddleware)
	{
		items.GET("/:id/comments", h.ListByItem)
		items.POST("/:id/comments", h.Create)
	}
}
