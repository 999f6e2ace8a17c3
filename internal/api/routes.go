package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.GET("/health", h.health)
		api.POST("/kill/image", h.killImage)
		api.GET("/kill/:id/qr", h.killQR)
		api.GET("/item/:type", h.itemImage)
	}
}
