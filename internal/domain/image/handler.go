package image

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mediaconsole/internal/domain/content"
	"mediaconsole/internal/manager"
	"mediaconsole/internal/pkg/response"
)

// Draft is what survives a failed submission: the descriptive fields of the
// form. The file itself must be re-attached on retry; multipart payloads are
// not held across requests.
type Draft struct {
	FileName string `json:"file_name"`
}

type Handler struct {
	service *Service
	list    *manager.List[Image]
	session *manager.Session[Draft]
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
		list:    manager.NewList(func(i Image) string { return i.ID }),
		session: manager.NewSession[Draft](),
	}
}

func (h *Handler) Create(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "no file provided")
		return
	}

	if err := h.session.Edit(Draft{FileName: fh.Filename}); err != nil {
		response.Error(c, http.StatusConflict, "SUBMISSION_IN_PROGRESS", err.Error())
		return
	}
	if _, err := h.session.Submit(); err != nil {
		response.Error(c, http.StatusConflict, "SUBMISSION_IN_PROGRESS", err.Error())
		return
	}

	img, err := h.service.Create(c.Request.Context(), fh)
	if err != nil {
		h.session.Fail(err)
		h.respondError(c, err)
		return
	}

	h.session.Complete()
	h.list.Upsert(*img)
	response.Success(c, http.StatusCreated, img)
}

func (h *Handler) List(c *gin.Context) {
	images, err := h.service.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.list.Replace(images)
	response.Success(c, http.StatusOK, h.list.Items())
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")

	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "no file provided")
		return
	}

	if err := h.session.Edit(Draft{FileName: fh.Filename}); err != nil {
		response.Error(c, http.StatusConflict, "SUBMISSION_IN_PROGRESS", err.Error())
		return
	}
	if _, err := h.session.Submit(); err != nil {
		response.Error(c, http.StatusConflict, "SUBMISSION_IN_PROGRESS", err.Error())
		return
	}

	img, err := h.service.Update(c.Request.Context(), id, fh)
	if err != nil {
		h.session.Fail(err)
		h.respondError(c, err)
		return
	}

	h.session.Complete()
	h.list.Upsert(*img)
	response.Success(c, http.StatusOK, img)
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

// Draft exposes the preserved draft and the last submission error, so the
// admin screen can offer retry-without-reentry.
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
	var partial *content.PartialFailure
	switch {
	case errors.Is(err, ErrEmptyFile), errors.Is(err, ErrInvalidType):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.As(err, &partial):
		response.ErrorWithDetails(c, http.StatusBadGateway, "PARTIAL_FAILURE", err.Error(), gin.H{
			"blob_failed":   partial.BlobErr != nil,
			"record_failed": partial.RecordErr != nil,
		})
	case content.IsTransient(err):
		response.Error(c, http.StatusBadGateway, "BACKEND_UNAVAILABLE", "storage backend unavailable, retry by resubmitting")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "operation failed")
	}
}
