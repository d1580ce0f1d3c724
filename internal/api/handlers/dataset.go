package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/frostdev-ops/sales-insights-go/internal/core/dataset"
	"github.com/frostdev-ops/sales-insights-go/pkg/errors"
	"github.com/frostdev-ops/sales-insights-go/pkg/utils"
)

const maxPreviewRows = 100

// GetDatasetInfo describes the loaded dataset under the current filter.
func (h *Handlers) GetDatasetInfo(c *gin.Context) {
	snap, ok := h.store.Get()
	if !ok {
		utils.SendAppError(c, errors.ErrDatasetNotLoaded)
		return
	}

	filter := parseFilter(c)
	if err := validateFilter(snap.Capabilities(), filter); err != nil {
		utils.SendAppError(c, err)
		return
	}
	view := snap.All().Filter(filter)

	dateRange := "N/A"
	if from, to, found := view.DateRange(); found {
		dateRange = from.Format("2006-01-02") + " to " + to.Format("2006-01-02")
	}

	utils.SendSuccess(c, gin.H{
		"source":          snap.Source(),
		"loaded_at":       snap.LoadedAt(),
		"rows":            view.Len(),
		"total_rows":      snap.RowCount(),
		"columns":         len(snap.Columns()),
		"memory_usage_mb": view.MemoryFootprintMB(),
		"date_range":      dateRange,
	})
}

// GetColumns lists per-column type and null statistics.
func (h *Handlers) GetColumns(c *gin.Context) {
	snap, ok := h.store.Get()
	if !ok {
		utils.SendAppError(c, errors.ErrDatasetNotLoaded)
		return
	}
	utils.SendSuccess(c, snap.ColumnInfos())
}

// GetPreview returns the first rows of the filtered view as records.
func (h *Handlers) GetPreview(c *gin.Context) {
	view, _, ok := h.filteredView(c)
	if !ok {
		return
	}

	limit := h.cfg.Data.PreviewLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			utils.SendError(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	if limit > maxPreviewRows {
		limit = maxPreviewRows
	}

	utils.SendSuccessWithMeta(c, view.Records(limit), gin.H{
		"rows":  view.Len(),
		"limit": limit,
	})
}

// GetFilterOptions lists the selectable values for each filter dimension the
// dataset carries.
func (h *Handlers) GetFilterOptions(c *gin.Context) {
	snap, ok := h.store.Get()
	if !ok {
		utils.SendAppError(c, errors.ErrDatasetNotLoaded)
		return
	}
	caps := snap.Capabilities()
	view := snap.All()

	options := gin.H{}
	if caps.HasStatus {
		options["status"] = view.DistinctValues(dataset.ColStatus)
	}
	if caps.HasSalesChannel {
		options["sales_channel"] = view.DistinctValues(dataset.ColSalesChannel)
	}
	if caps.HasCategory {
		options["category"] = view.DistinctValues(dataset.ColCategory)
	}
	if caps.HasState {
		options["state"] = view.DistinctValues(dataset.ColShipState)
	}

	utils.SendSuccess(c, options)
}

// ReloadDataset re-reads the configured CSV and swaps the snapshot.
func (h *Handlers) ReloadDataset(c *gin.Context) {
	snap, err := dataset.Load(h.cfg.Data.Path, h.logger)
	if err != nil {
		h.logger.WithError(err).Error("Dataset reload failed")
		reloadErr := errors.New(http.StatusInternalServerError, "failed to reload dataset")
		utils.SendAppError(c, errors.WithDetails(reloadErr, err.Error()))
		return
	}

	h.store.Set(snap)
	h.collector.SetDatasetInfo(snap.RowCount(), len(snap.Columns()), snap.All().MemoryFootprintMB())

	utils.SendSuccess(c, gin.H{
		"source":  snap.Source(),
		"rows":    snap.RowCount(),
		"columns": len(snap.Columns()),
	})
}
