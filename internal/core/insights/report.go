package insights

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/frostdev-ops/sales-insights-go/internal/core/dataset"
	"github.com/frostdev-ops/sales-insights-go/internal/core/stats"
)

// SummaryReport composes dataset metadata, business metrics, top performer
// truncations, revenue insights, and operational distributions into a single
// report. It introduces no computation of its own beyond the date range and
// memory estimate.
func (e *Engine) SummaryReport(v *dataset.View) Metrics {
	caps := v.Capabilities()

	dateRange := NotAvailable
	if from, to, ok := v.DateRange(); ok {
		dateRange = from.Format("2006-01-02") + " to " + to.Format("2006-01-02")
	}

	report := Metrics{
		"dataset_info": map[string]any{
			"total_records":   v.Len(),
			"total_columns":   len(v.Columns()),
			"date_range":      dateRange,
			"memory_usage_mb": Float(v.MemoryFootprintMB()),
		},
		"business_metrics": e.KeyMetrics(v),
	}

	topPerformers := map[string]any{}
	if caps.HasCategory {
		topPerformers["categories"] = topCountsMap(v.ValueCounts(dataset.ColCategory), 5)
	}
	if caps.HasState {
		topPerformers["states"] = topCountsMap(v.ValueCounts(dataset.ColShipState), 5)
	}
	if caps.HasSKU {
		topPerformers["skus"] = topCountsMap(v.ValueCounts(dataset.ColSKU), 5)
	}
	report["top_performers"] = topPerformers

	if caps.HasAmount {
		report["revenue_insights"] = e.RevenueAnalysis(v)
	}

	operational := map[string]any{}
	if caps.HasFulfilment {
		operational["fulfillment"] = countsToMap(v.ValueCounts(dataset.ColFulfilment))
	}
	if caps.HasCourier {
		operational["courier_status"] = countsToMap(v.ValueCounts(dataset.ColCourierStatus))
	}
	if caps.HasStatus {
		operational["order_status"] = countsToMap(v.ValueCounts(dataset.ColStatus))
	}
	report["operational_insights"] = operational

	e.log.WithField("records", v.Len()).Debug("Summary report generated")
	return report
}

// ExecutiveSummary builds the narrative highlight and growth opportunity
// strings for stakeholders. Underserved geographies are those whose order
// count falls below the 25th percentile of the state count distribution.
func (e *Engine) ExecutiveSummary(v *dataset.View) Metrics {
	caps := v.Capabilities()
	totalOrders := v.Len()

	highlights := []string{
		fmt.Sprintf("Processed %s orders", humanize.Comma(int64(totalOrders))),
	}

	if caps.HasAmount {
		amounts := v.ValidFloats(dataset.ColAmount)
		highlights = append(highlights,
			fmt.Sprintf("Generated $%s in total revenue", humanize.FormatFloat("#,###.##", stats.Sum(amounts))))
		if len(amounts) > 0 {
			highlights = append(highlights,
				fmt.Sprintf("Average order value: $%.2f", stats.Mean(amounts)))
		}
	}

	if caps.HasState {
		highlights = append(highlights,
			fmt.Sprintf("Served customers in %d states", v.UniqueCount(dataset.ColShipState)))
	}
	if caps.HasCity {
		highlights = append(highlights,
			fmt.Sprintf("Delivered to %d cities", v.UniqueCount(dataset.ColShipCity)))
	}
	if caps.HasCategory {
		highlights = append(highlights,
			fmt.Sprintf("Sold products across %d categories", v.UniqueCount(dataset.ColCategory)))
	}

	if caps.HasStatus && totalOrders > 0 {
		counts := v.ValueCounts(dataset.ColStatus)
		if shipped := countFor(counts, statusShipped); shipped > 0 {
			highlights = append(highlights,
				fmt.Sprintf("Achieved %.1f%% shipping rate", percentage(shipped, totalOrders)))
		}
	}

	opportunities := []string{}
	if caps.HasCategory && caps.HasAmount {
		if top, ok := topRevenueCategory(v); ok {
			opportunities = append(opportunities, fmt.Sprintf("Focus on expanding %s category", top))
		}
	}
	if caps.HasState {
		if n := underservedCount(v.ValueCounts(dataset.ColShipState)); n > 0 {
			opportunities = append(opportunities, fmt.Sprintf("Opportunity to expand in %d underserved states", n))
		}
	}

	return Metrics{
		"key_highlights":       highlights,
		"growth_opportunities": opportunities,
	}
}

func topRevenueCategory(v *dataset.View) (string, bool) {
	best := ""
	bestTotal := math.Inf(-1)
	for _, g := range v.GroupBy(dataset.ColCategory) {
		total := stats.Sum(g.Rows.ValidFloats(dataset.ColAmount))
		if total > bestTotal {
			best, bestTotal = g.Key, total
		}
	}
	return best, best != ""
}

func underservedCount(counts []dataset.ValueCount) int {
	if len(counts) == 0 {
		return 0
	}
	values := make([]float64, len(counts))
	for i, c := range counts {
		values[i] = float64(c.Count)
	}
	threshold := stats.Quantile(values, 0.25)
	n := 0
	for _, value := range values {
		if value < threshold {
			n++
		}
	}
	return n
}
