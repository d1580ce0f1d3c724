package insights

import (
	"math"
	"strconv"

	"github.com/frostdev-ops/sales-insights-go/internal/core/dataset"
	"github.com/frostdev-ops/sales-insights-go/internal/core/stats"
)

// AdvancedAnalytics covers order sizing, fulfillment rate, sales channel
// performance, category concentration, and size preferences.
func (e *Engine) AdvancedAnalytics(v *dataset.View) Metrics {
	m := Metrics{}
	caps := v.Capabilities()

	if caps.HasQty {
		m["avg_order_size"] = Float(stats.Mean(v.ValidFloats(dataset.ColQty)))
		m["order_size_distribution"] = orderSizeDistribution(v)

		bulk := 0
		all, _ := v.Floats(dataset.ColQty)
		for _, q := range all {
			if q > 1 {
				bulk++
			}
		}
		m["bulk_orders_count"] = bulk
		m["bulk_orders_percentage"] = Float(percentage(bulk, v.Len()))
	}

	if caps.HasStatus {
		counts := v.ValueCounts(dataset.ColStatus)
		m["status_distribution"] = countsToMap(counts)
		if shipped := countFor(counts, statusShipped); shipped > 0 {
			m["fulfillment_rate"] = Float(percentage(shipped, v.Len()))
		}
	}

	if caps.HasSalesChannel {
		m["channel_performance"] = channelPerformance(v, caps)
	}

	if caps.HasCategory {
		counts := v.ValueCounts(dataset.ColCategory)
		m["product_diversity"] = len(counts)
		m["top_3_categories_concentration"] = Float(concentration(counts, 3, v.Len()))
	}

	if caps.HasSize {
		counts := v.ValueCounts(dataset.ColSize)
		m["size_preferences"] = countsToMap(counts)
		m["most_popular_size"] = topValue(counts)
	}

	return m
}

// orderSizeDistribution counts orders per quantity. Keys are the canonical
// numeric text of the parsed value, so "2", " 2" and "2.0" land in one
// bucket; unparseable quantities are skipped.
func orderSizeDistribution(v *dataset.View) map[string]int {
	all, _ := v.Floats(dataset.ColQty)
	dist := make(map[string]int)
	for _, q := range all {
		if math.IsNaN(q) {
			continue
		}
		dist[strconv.FormatFloat(q, 'f', -1, 64)]++
	}
	return dist
}

// channelPerformance aggregates per sales channel, degrading its schema to
// whichever numeric columns exist. Order_Count counts parseable amounts when
// the amount column is present, plain rows otherwise.
func channelPerformance(v *dataset.View, caps dataset.Capabilities) []map[string]any {
	groups := v.GroupBy(dataset.ColSalesChannel)
	rows := make([]map[string]any, 0, len(groups))
	for _, g := range groups {
		row := map[string]any{"Sales_Channel": g.Key}
		if caps.HasAmount {
			amounts := g.Rows.ValidFloats(dataset.ColAmount)
			row["Total_Revenue"] = Float(stats.Sum(amounts))
			row["Avg_Revenue"] = Float(stats.Mean(amounts))
			row["Order_Count"] = len(amounts)
		} else {
			row["Order_Count"] = g.Rows.Len()
		}
		if caps.HasQty {
			qty := g.Rows.ValidFloats(dataset.ColQty)
			row["Total_Qty"] = Float(stats.Sum(qty))
			row["Avg_Qty"] = Float(stats.Mean(qty))
		}
		rows = append(rows, row)
	}
	return rows
}
