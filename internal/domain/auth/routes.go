package auth

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts login on the public group and logout on the
// protected one.
func RegisterRoutes(public, protected *gin.RouterGroup, h *Handler) {
	public.POST("/auth/login", h.Login)
	protected.POST("/auth/logout", h.Logout)
}
