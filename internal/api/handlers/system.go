package handlers

import (
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/frostdev-ops/sales-insights-go/pkg/utils"
	"github.com/frostdev-ops/sales-insights-go/pkg/version"
)

// GetSystemStatus reports service, host, and dataset state.
func (h *Handlers) GetSystemStatus(c *gin.Context) {
	datasetInfo := gin.H{"loaded": false}
	if snap, ok := h.store.Get(); ok {
		datasetInfo = gin.H{
			"loaded":    true,
			"source":    snap.Source(),
			"rows":      snap.RowCount(),
			"columns":   len(snap.Columns()),
			"loaded_at": snap.LoadedAt(),
		}
	}

	utils.SendSuccess(c, gin.H{
		"service": gin.H{
			"name":           "sales-insights",
			"version":        version.GetVersion(),
			"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
			"go_version":     runtime.Version(),
		},
		"host":    h.system.GetInfo(),
		"dataset": datasetInfo,
	})
}
