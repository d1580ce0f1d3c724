package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/frostdev-ops/sales-insights-go/pkg/version"
)

// Health is the liveness endpoint.
func (h *Handlers) Health(c *gin.Context) {
	rows := 0
	snap, loaded := h.store.Get()
	if loaded {
		rows = snap.RowCount()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"version":        version.GetVersion(),
		"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
		"dataset_loaded": loaded,
		"dataset_rows":   rows,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}
