package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	items := g.Group("/items")
	items.Use(authMiddleware)
	{
		items.GET("/:id/photos", h.ListByItem)
		items.POST("/:id/photos", h.Upload)
	}

	photos := g.Group("/photos")
	{
		photos.GET("/:id", h.Serve)
		photos.GET("/:id/thumbnail", h.ServeThumbnail)
		photos.DELETE("/:id", authMiddleware, h.Delete)
	}
}
