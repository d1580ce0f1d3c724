package handlers

import "github.com/gin-gonic/gin"

// GetKeyMetrics returns the top-line business metrics.
func (h *Handlers) GetKeyMetrics(c *gin.Context) {
	h.insight(c, "key_metrics", h.engine.KeyMetrics)
}

// GetSalesTrends returns daily and monthly aggregates plus the growth rate.
func (h *Handlers) GetSalesTrends(c *gin.Context) {
	h.insight(c, "sales_trends", h.engine.SalesTrends)
}

// GetCategoryAnalysis returns the category breakdown.
func (h *Handlers) GetCategoryAnalysis(c *gin.Context) {
	h.insight(c, "category_analysis", h.engine.CategoryAnalysis)
}

// GetShippingAnalysis returns fulfillment, courier, service level, and
// geography breakdowns.
func (h *Handlers) GetShippingAnalysis(c *gin.Context) {
	h.insight(c, "shipping_analysis", h.engine.ShippingAnalysis)
}

// GetProductAnalysis returns SKU, ASIN, style, and size breakdowns.
func (h *Handlers) GetProductAnalysis(c *gin.Context) {
	h.insight(c, "product_analysis", h.engine.ProductAnalysis)
}

// GetRevenueAnalysis returns order-value statistics and segmentation.
func (h *Handlers) GetRevenueAnalysis(c *gin.Context) {
	h.insight(c, "revenue_analysis", h.engine.RevenueAnalysis)
}

// GetCustomerInsights returns geographic distributions and concentrations.
func (h *Handlers) GetCustomerInsights(c *gin.Context) {
	h.insight(c, "customer_insights", h.engine.CustomerInsights)
}

// GetAdvancedAnalytics returns order sizing, channel, and diversity metrics.
func (h *Handlers) GetAdvancedAnalytics(c *gin.Context) {
	h.insight(c, "advanced_analytics", h.engine.AdvancedAnalytics)
}

// GetSummaryReport returns the composed summary report.
func (h *Handlers) GetSummaryReport(c *gin.Context) {
	h.insight(c, "summary_report", h.engine.SummaryReport)
}

// GetExecutiveSummary returns the narrative highlights.
func (h *Handlers) GetExecutiveSummary(c *gin.Context) {
	h.insight(c, "executive_summary", h.engine.ExecutiveSummary)
}
