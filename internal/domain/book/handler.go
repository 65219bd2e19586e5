package book

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mediaconsole/internal/domain/content"
	"mediaconsole/internal/manager"
	"mediaconsole/internal/pkg/response"
	"mediaconsole/internal/pkg/validator"
)

// Draft is the form state preserved across a failed submission. Files are
// not held server-side; the admin re-attaches them on retry.
type Draft struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	FileName    string `json:"file_name,omitempty"`
}

type Handler struct {
	service *Service
	list    *manager.List[Book]
	session *manager.Session[Draft]
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
		list:    manager.NewList(func(b Book) string { return b.ID }),
		session: manager.NewSession[Draft](),
	}
}

func (h *Handler) Create(c *gin.Context) {
	draft := Draft{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
	}
	if fields := validator.Validate(draft); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid fields", fields)
		return
	}

	pdf, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "no PDF file provided")
		return
	}
	draft.FileName = pdf.Filename

	cover, _ := c.FormFile("cover") // optional

	if err := h.session.Edit(draft); err != nil {
		response.Error(c, http.StatusConflict, "SUBMISSION_IN_PROGRESS", err.Error())
		return
	}
	if _, err := h.session.Submit(); err != nil {
		response.Error(c, http.StatusConflict, "SUBMISSION_IN_PROGRESS", err.Error())
		return
	}

	b, err := h.service.Create(c.Request.Context(), draft.Title, draft.Description, pdf, cover)
	if err != nil {
		h.session.Fail(err)
		h.respondError(c, err)
		return
	}

	h.session.Complete()
	h.list.Upsert(*b)
	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")

	draft := Draft{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
	}
	if fields := validator.Validate(draft); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid fields", fields)
		return
	}

	// both files optional on update: metadata-only edits are allowed
	pdf, _ := c.FormFile("file")
	cover, _ := c.FormFile("cover")
	if pdf != nil {
		draft.FileName = pdf.Filename
	}

	if err := h.session.Edit(draft); err != nil {
		response.Error(c, http.StatusConflict, "SUBMISSION_IN_PROGRESS", err.Error())
		return
	}
	if _, err := h.session.Submit(); err != nil {
		response.Error(c, http.StatusConflict, "SUBMISSION_IN_PROGRESS", err.Error())
		return
	}

	b, err := h.service.Update(c.Request.Context(), id, draft.Title, draft.Description, pdf, cover)
	if err != nil {
		h.session.Fail(err)
		h.respondError(c, err)
		return
	}

	h.session.Complete()
	h.list.Upsert(*b)
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) List(c *gin.Context) {
	books, err := h.service.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.list.Replace(books)
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
	var partial *content.PartialFailure
	switch {
	case errors.Is(err, ErrEmptyFile), errors.Is(err, ErrNotPDF), errors.Is(err, ErrCoverNotImage):
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
