package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/frostdev-ops/sales-insights-go/pkg/errors"
	"github.com/frostdev-ops/sales-insights-go/pkg/utils"
)

// ExportCSV sends the filtered rows as a timestamped CSV download, optionally
// gzip-compressed.
func (h *Handlers) ExportCSV(c *gin.Context) {
	view, filter, ok := h.filteredView(c)
	if !ok {
		return
	}

	compress := h.cfg.Export.Compress
	if raw := c.Query("compress"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			utils.SendError(c, http.StatusBadRequest, "compress must be a boolean")
			return
		}
		compress = parsed
	}

	result, err := h.exporter.ExportCSV(view, filter, compress)
	if err != nil {
		h.logger.WithError(err).Error("Export failed")
		utils.SendAppError(c, errors.WithDetails(errors.ErrExportFailed, err.Error()))
		return
	}
	h.collector.RecordExport(compress, len(result.Data))

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

// GetExportHistory lists recent exports, newest first.
func (h *Handlers) GetExportHistory(c *gin.Context) {
	utils.SendSuccess(c, h.exporter.History())
}
