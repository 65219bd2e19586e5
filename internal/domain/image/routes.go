package image

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the image manager under the admin group.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	images := r.Group("/images")
	{
		images.POST("", h.Create)
		images.GET("", h.List)
		images.GET("/draft", h.Draft)
		images.DELETE("/draft", h.CancelDraft)
		images.PUT("/:id", h.Update)
		images.DELETE("/:id", h.Delete)
	}
}
