package video

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mediaconsole/internal/domain/content"
	"mediaconsole/internal/manager"
	"mediaconsole/internal/pkg/response"
	"mediaconsole/internal/pkg/validator"
)

type SubmitRequest struct {
	Title     string `json:"title" validate:"required"`
	SourceURL string `json:"source_url" validate:"required,url"`
}

type Handler struct {
	service *Service
	list    *manager.List[Video]
	session *manager.Session[SubmitRequest]
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
		list:    manager.NewList(func(v Video) string { return v.ID }),
		session: manager.NewSession[SubmitRequest](),
	}
}

func (h *Handler) bind(c *gin.Context) (*SubmitRequest, bool) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return nil, false
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid fields", fields)
		return nil, false
	}
	return &req, true
}

func (h *Handler) submit(c *gin.Context, req *SubmitRequest, op func() (*Video, error), status int) {
	if err := h.session.Edit(*req); err != nil {
		response.Error(c, http.StatusConflict, "SUBMISSION_IN_PROGRESS", err.Error())
		return
	}
	if _, err := h.session.Submit(); err != nil {
		response.Error(c, http.StatusConflict, "SUBMISSION_IN_PROGRESS", err.Error())
		return
	}

	v, err := op()
	if err != nil {
		h.session.Fail(err)
		h.respondError(c, err)
		return
	}

	h.session.Complete()
	h.list.Upsert(*v)
	response.Success(c, status, v)
}

func (h *Handler) Create(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	h.submit(c, req, func() (*Video, error) {
		return h.service.Create(c.Request.Context(), req.Title, req.SourceURL)
	}, http.StatusCreated)
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	req, ok := h.bind(c)
	if !ok {
		return
	}
	h.submit(c, req, func() (*Video, error) {
		return h.service.Update(c.Request.Context(), id, req.Title, req.SourceURL)
	}, http.StatusOK)
}

func (h *Handler) List(c *gin.Context) {
	videos, err := h.service.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.list.Replace(videos)
	response.Success(c, http.StatusOK, h.list.Items())
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	h.list.Remove(id)
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) Draft(c *gin.Context) {
	draft, ok := h.session.Draft()
	body := gin.H{
		"state": h.session.State().String(),
	}
	if ok {
		body["draft"] = draft
	}
	if err := h.session.LastErr(); err != nil {
		body["error"] = err.Error()
	}
	response.Success(c, http.StatusOK, body)
}

func (h *Handler) CancelDraft(c *gin.Context) {
	if err := h.session.Cancel(); err != nil {
		response.Error(c, http.StatusConflict, "SUBMISSION_IN_PROGRESS", err.Error())
		return
	}
	response.Success(c, http.StatusOK, gin.H{"state": h.session.State().String()})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidURL):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case content.IsTransient(err):
		response.Error(c, http.StatusBadGateway, "BACKEND_UNAVAILABLE", "storage backend unavailable, retry by resubmitting")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "operation failed")
	}
}
