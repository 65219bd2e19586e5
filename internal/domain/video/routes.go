package video

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the video manager under the admin group.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	videos := r.Group("/videos")
	{
		videos.POST("", h.Create)
		videos.GET("", h.List)
		videos.GET("/draft", h.Draft)
		videos.DELETE("/draft", h.CancelDraft)
		videos.PUT("/:id", h.Update)
		videos.DELETE("/:id", h.Delete)
	}
}
