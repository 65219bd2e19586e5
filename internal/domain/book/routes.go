package book

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the PDF book manager under the admin group.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	books := r.Group("/books")
	{
		books.POST("", h.Create)
		books.GET("", h.List)
		books.GET("/draft", h.Draft)
		books.DELETE("/draft", h.CancelDraft)
		books.PUT("/:id", h.Update)
		books.DELETE("/:id", h.Delete)
	}
}
