package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mmoslabs/mmos-backend/internal/logger"
	"github.com/mmoslabs/mmos-backend/internal/services"
)

type ContentHandler struct {
	log            *logger.Logger
	contentService services.ContentService
}

func NewContentHandler(log *logger.Logger, contentService services.ContentService) *ContentHandler {
	return &ContentHandler{
		log:            log.With("handler", "ContentHandler"),
		contentService: contentService,
	}
}

// ListContent handles GET /api/content?project=&type=&status=
// type and status accept comma-separated lists.
func (h *ContentHandler) ListContent(c *gin.Context) {
	projectSlug := c.Query("project")
	contentTypes := splitCSV(c.Query("type"))
	statuses := splitCSV(c.Query("status"))

	records, err := h.contentService.List(c.Request.Context(), nil, projectSlug, contentTypes, statuses)
	if err != nil {
		h.log.Warn("ListContent failed", "error", err, "project", projectSlug)
		RespondError(c, statusFor(err), "list_content_failed", err)
		return
	}
	RespondOK(c, gin.H{"content": records})
}

func (h *ContentHandler) CreateContent(c *gin.Context) {
	var input services.CreateContentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	record, err := h.contentService.Create(c.Request.Context(), nil, input)
	if err != nil {
		h.log.Warn("CreateContent failed", "error", err, "project", input.ProjectSlug)
		RespondError(c, statusFor(err), "create_content_failed", err)
		return
	}
	RespondOK(c, gin.H{"content": record})
}

func (h *ContentHandler) UpdateContent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_content_id", err)
		return
	}

	var input services.UpdateContentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	record, err := h.contentService.Update(c.Request.Context(), nil, id, input)
	if err != nil {
		h.log.Warn("UpdateContent failed", "error", err, "content_id", id)
		RespondError(c, statusFor(err), "update_content_failed", err)
		return
	}
	RespondOK(c, gin.H{"content": record})
}

func (h *ContentHandler) DeleteContent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_content_id", err)
		return
	}

	if err := h.contentService.Delete(c.Request.Context(), nil, id); err != nil {
		h.log.Warn("DeleteContent failed", "error", err, "content_id", id)
		RespondError(c, statusFor(err), "delete_content_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
