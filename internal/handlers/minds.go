package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmoslabs/mmos-backend/internal/logger"
	"github.com/mmoslabs/mmos-backend/internal/services"
)

type MindHandler struct {
	log             *logger.Logger
	artifactService services.ArtifactService
}

func NewMindHandler(log *logger.Logger, artifactService services.ArtifactService) *MindHandler {
	return &MindHandler{
		log:             log.With("handler", "MindHandler"),
		artifactService: artifactService,
	}
}

// Artifacts handles GET /api/minds/:slug/artifacts?project=
func (h *MindHandler) Artifacts(c *gin.Context) {
	mindSlug := c.Param("slug")
	projectSlug := c.Query("project")
	if projectSlug == "" {
		RespondError(c, http.StatusBadRequest, "missing_project", nil)
		return
	}

	result, err := h.artifactService.MindProfile(c.Request.Context(), nil, projectSlug, mindSlug)
	if err != nil {
		h.log.Warn("Artifacts failed", "error", err, "mind", mindSlug)
		RespondError(c, statusFor(err), "load_artifacts_failed", err)
		return
	}
	RespondOK(c, result)
}
