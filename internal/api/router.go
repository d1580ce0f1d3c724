package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/frostdev-ops/sales-insights-go/internal/api/handlers"
	"github.com/frostdev-ops/sales-insights-go/internal/api/middleware"
	"github.com/frostdev-ops/sales-insights-go/internal/config"
	"github.com/frostdev-ops/sales-insights-go/internal/core/metrics"
	"github.com/frostdev-ops/sales-insights-go/pkg/utils"
)

// NewRouter wires the middleware chain and all routes.
func NewRouter(cfg *config.Config, h *handlers.Handlers, collector *metrics.Collector, logger *logrus.Logger) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()

	r.Use(middleware.ErrorHandlingMiddleware(logger))
	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.MetricsMiddleware(collector))

	r.GET("/health", h.Health)
	r.GET("/dashboard", h.Dashboard)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	v1 := r.Group("/api/v1")
	{
		in := v1.Group("/insights")
		{
			in.GET("/key-metrics", h.GetKeyMetrics)
			in.GET("/trends", h.GetSalesTrends)
			in.GET("/categories", h.GetCategoryAnalysis)
			in.GET("/shipping", h.GetShippingAnalysis)
			in.GET("/products", h.GetProductAnalysis)
			in.GET("/revenue", h.GetRevenueAnalysis)
			in.GET("/customers", h.GetCustomerInsights)
			in.GET("/advanced", h.GetAdvancedAnalytics)
			in.GET("/summary-report", h.GetSummaryReport)
			in.GET("/executive-summary", h.GetExecutiveSummary)
		}

		ds := v1.Group("/dataset")
		{
			ds.GET("/info", h.GetDatasetInfo)
			ds.GET("/columns", h.GetColumns)
			ds.GET("/preview", h.GetPreview)
			ds.GET("/filters", h.GetFilterOptions)
			ds.POST("/reload", h.ReloadDataset)
		}

		ex := v1.Group("/export")
		{
			ex.GET("/csv", h.ExportCSV)
			ex.GET("/history", h.GetExportHistory)
		}

		v1.GET("/system/status", h.GetSystemStatus)
	}

	r.NoRoute(func(c *gin.Context) {
		utils.SendError(c, http.StatusNotFound, "endpoint not found")
	})

	return r
}
