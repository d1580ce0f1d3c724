package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Dashboard renders the chart overview page for the current filter.
func (h *Handlers) Dashboard(c *gin.Context) {
	view, _, ok := h.filteredView(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := h.renderer.RenderOverview(c.Writer, view); err != nil {
		// Headers are already written; the failure can only be logged.
		h.logger.WithError(err).Error("Dashboard rendering failed")
	}
}
