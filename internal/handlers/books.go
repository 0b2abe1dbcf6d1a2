package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmoslabs/mmos-backend/internal/logger"
	"github.com/mmoslabs/mmos-backend/internal/services"
)

type BookAdminHandler struct {
	log         *logger.Logger
	bookService services.BookAdminService
}

func NewBookAdminHandler(log *logger.Logger, bookService services.BookAdminService) *BookAdminHandler {
	return &BookAdminHandler{
		log:         log.With("handler", "BookAdminHandler"),
		bookService: bookService,
	}
}

// Dashboard handles GET /api/admin/books?project=
func (h *BookAdminHandler) Dashboard(c *gin.Context) {
	projectSlug := c.Query("project")
	if projectSlug == "" {
		RespondError(c, http.StatusBadRequest, "missing_project", nil)
		return
	}

	result, err := h.bookService.Dashboard(c.Request.Context(), nil, projectSlug)
	if err != nil {
		h.log.Warn("Dashboard failed", "error", err, "project", projectSlug)
		RespondError(c, statusFor(err), "load_books_failed", err)
		return
	}
	RespondOK(c, result)
}
