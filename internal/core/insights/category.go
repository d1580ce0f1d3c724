package insights

import (
	"sort"

	"github.com/frostdev-ops/sales-insights-go/internal/core/dataset"
	"github.com/frostdev-ops/sales-insights-go/internal/core/stats"
)

// CategoryAnalysis breaks the view down by product category: the frequency
// distribution, a top-10 truncation, and revenue/quantity aggregate tables
// where the numeric columns exist.
func (e *Engine) CategoryAnalysis(v *dataset.View) Metrics {
	m := Metrics{}
	caps := v.Capabilities()
	if !caps.HasCategory {
		return m
	}

	counts := v.ValueCounts(dataset.ColCategory)
	m["category_counts"] = countsToMap(counts)
	m["top_categories"] = topCountsMap(counts, 10)

	groups := v.GroupBy(dataset.ColCategory)

	if caps.HasAmount {
		rows := make([]CategoryRevenueRow, 0, len(groups))
		for _, g := range groups {
			amounts := g.Rows.ValidFloats(dataset.ColAmount)
			rows = append(rows, CategoryRevenueRow{
				Category:     g.Key,
				TotalRevenue: Float(stats.Sum(amounts)),
				AvgRevenue:   Float(stats.Mean(amounts)),
				OrderCount:   len(amounts),
			})
		}
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].TotalRevenue > rows[j].TotalRevenue })
		m["category_revenue"] = rows
	}

	if caps.HasQty {
		rows := make([]CategoryQuantityRow, 0, len(groups))
		for _, g := range groups {
			qty := g.Rows.ValidFloats(dataset.ColQty)
			rows = append(rows, CategoryQuantityRow{
				Category: g.Key,
				TotalQty: Float(stats.Sum(qty)),
				AvgQty:   Float(stats.Mean(qty)),
			})
		}
		m["category_quantity"] = rows
	}

	if caps.HasAmount && caps.HasQty {
		rows := make([]CategoryPerformanceRow, 0, len(groups))
		for _, g := range groups {
			amounts := g.Rows.ValidFloats(dataset.ColAmount)
			qty := g.Rows.ValidFloats(dataset.ColQty)
			totalRevenue := stats.Sum(amounts)
			totalQty := stats.Sum(qty)
			rows = append(rows, CategoryPerformanceRow{
				Category:       g.Key,
				TotalRevenue:   Float(totalRevenue),
				AvgRevenue:     Float(stats.Mean(amounts)),
				RevenueStd:     Float(stats.Std(amounts)),
				TotalQty:       Float(totalQty),
				AvgQty:         Float(stats.Mean(qty)),
				OrderCount:     g.Rows.Len(),
				RevenuePerUnit: Float(totalRevenue / totalQty),
			})
		}
		m["category_performance"] = rows
	}

	return m
}
