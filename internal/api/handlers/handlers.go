package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/frostdev-ops/sales-insights-go/internal/config"
	"github.com/frostdev-ops/sales-insights-go/internal/core/dashboard"
	"github.com/frostdev-ops/sales-insights-go/internal/core/dataset"
	"github.com/frostdev-ops/sales-insights-go/internal/core/export"
	"github.com/frostdev-ops/sales-insights-go/internal/core/insights"
	"github.com/frostdev-ops/sales-insights-go/internal/core/metrics"
	"github.com/frostdev-ops/sales-insights-go/internal/core/system"
	"github.com/frostdev-ops/sales-insights-go/pkg/errors"
	"github.com/frostdev-ops/sales-insights-go/pkg/utils"
)

// Handlers bundles the dependencies shared by all HTTP handlers.
type Handlers struct {
	cfg       *config.Config
	store     *dataset.Store
	engine    *insights.Engine
	exporter  export.Manager
	renderer  *dashboard.Renderer
	collector *metrics.Collector
	system    *system.Service
	logger    *logrus.Logger
	startedAt time.Time
}

// New creates the handler set.
func New(
	cfg *config.Config,
	store *dataset.Store,
	engine *insights.Engine,
	exporter export.Manager,
	renderer *dashboard.Renderer,
	collector *metrics.Collector,
	sys *system.Service,
	logger *logrus.Logger,
) *Handlers {
	return &Handlers{
		cfg:       cfg,
		store:     store,
		engine:    engine,
		exporter:  exporter,
		renderer:  renderer,
		collector: collector,
		system:    sys,
		logger:    logger,
		startedAt: time.Now(),
	}
}

// filteredView resolves the current snapshot and applies the request's filter
// parameters. It writes the error response itself and returns false when the
// dataset is missing or the filter is invalid.
func (h *Handlers) filteredView(c *gin.Context) (*dataset.View, dataset.Filter, bool) {
	snap, ok := h.store.Get()
	if !ok {
		utils.SendAppError(c, errors.ErrDatasetNotLoaded)
		return nil, dataset.Filter{}, false
	}

	filter := parseFilter(c)
	if err := validateFilter(snap.Capabilities(), filter); err != nil {
		utils.SendAppError(c, err)
		return nil, dataset.Filter{}, false
	}

	return snap.All().Filter(filter), filter, true
}

// insight runs one insight computation over the filtered view and sends the
// standard envelope with row metadata.
func (h *Handlers) insight(c *gin.Context, kind string, compute func(*dataset.View) insights.Metrics) {
	view, _, ok := h.filteredView(c)
	if !ok {
		return
	}

	start := time.Now()
	result := compute(view)
	h.collector.RecordInsight(kind, time.Since(start))

	utils.SendSuccessWithMeta(c, result, gin.H{"rows": view.Len()})
}

func parseFilter(c *gin.Context) dataset.Filter {
	return dataset.Filter{
		Status:       c.Query("status"),
		SalesChannel: c.Query("sales_channel"),
		Categories:   splitMulti(c.QueryArray("category")),
		States:       splitMulti(c.QueryArray("state")),
	}
}

// splitMulti flattens repeated query parameters and comma-separated lists.
func splitMulti(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func validateFilter(caps dataset.Capabilities, f dataset.Filter) *errors.AppError {
	var missing []string
	if f.Status != "" && !caps.HasStatus {
		missing = append(missing, dataset.ColStatus)
	}
	if f.SalesChannel != "" && !caps.HasSalesChannel {
		missing = append(missing, dataset.ColSalesChannel)
	}
	if len(f.Categories) > 0 && !caps.HasCategory {
		missing = append(missing, dataset.ColCategory)
	}
	if len(f.States) > 0 && !caps.HasState {
		missing = append(missing, dataset.ColShipState)
	}
	if len(missing) > 0 {
		msg := fmt.Sprintf("filter references columns the dataset does not have: %s", strings.Join(missing, ", "))
		return errors.New(http.StatusBadRequest, msg)
	}
	return nil
}
