package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mmoslabs/mmos-backend/internal/logger"
	"github.com/mmoslabs/mmos-backend/internal/services"
)

type PreviewHandler struct {
	log            *logger.Logger
	previewService services.DocumentPreviewService
}

func NewPreviewHandler(log *logger.Logger, previewService services.DocumentPreviewService) *PreviewHandler {
	return &PreviewHandler{
		log:            log.With("handler", "PreviewHandler"),
		previewService: previewService,
	}
}

// PreviewContent handles GET /api/content/:id/preview — render a stored
// document as a tree, or raw text with a warning when parsing fails.
func (h *PreviewHandler) PreviewContent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_content_id", err)
		return
	}

	result, err := h.previewService.Preview(c.Request.Context(), nil, id)
	if err != nil {
		h.log.Warn("PreviewContent failed", "error", err, "content_id", id)
		RespondError(c, statusFor(err), "preview_failed", err)
		return
	}
	RespondOK(c, result)
}

type previewBody struct {
	Content    string `json:"content" binding:"required"`
	SourceFile string `json:"source_file"`
}

// PreviewBody handles POST /api/preview — ad-hoc preview of an unsaved
// editor buffer.
func (h *PreviewHandler) PreviewBody(c *gin.Context) {
	var body previewBody
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	RespondOK(c, h.previewService.PreviewText(body.Content, body.SourceFile))
}
