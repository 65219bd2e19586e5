package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mediaconsole/internal/pkg/response"
	"mediaconsole/internal/pkg/validator"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid fields", fields)
		return
	}

	tok, sess, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid username or password")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token":   tok,
		"session": sess,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	sess := MustSession(c)
	if sess == nil {
		return
	}
	h.service.Logout(sess.ID)
	response.Success(c, http.StatusOK, gin.H{"logged_out": true})
}

// MustSession fetches the session the middleware attached, failing the
// request when it is missing.
func MustSession(c *gin.Context) *Session {
	v, exists := c.Get("session")
	if !exists {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "no session")
		return nil
	}
	sess, ok := v.(*Session)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid session")
		return nil
	}
	return sess
}
