package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers user CRUD routes.
// User endpoints carry no caller identity; the gateway exposes them directly.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/users")
	{
		group.POST("", h.Create)
		group.GET("", h.GetAll)
		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}
}
