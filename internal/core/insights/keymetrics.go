package insights

import (
	"github.com/frostdev-ops/sales-insights-go/internal/core/dataset"
	"github.com/frostdev-ops/sales-insights-go/internal/core/stats"
)

// KeyMetrics computes the top-line business metrics for a view. Metrics whose
// source column is absent are left out; total_revenue, avg_order_value and
// total_quantity default to 0 instead.
func (e *Engine) KeyMetrics(v *dataset.View) Metrics {
	caps := v.Capabilities()
	m := Metrics{}

	m["total_orders"] = v.Len()

	if caps.HasAmount {
		amounts := v.ValidFloats(dataset.ColAmount)
		m["total_revenue"] = Float(stats.Sum(amounts))
		m["avg_order_value"] = Float(stats.Mean(amounts))
		m["revenue_std"] = Float(stats.Std(amounts))
		m["median_order_value"] = Float(stats.Median(amounts))
		m["max_order_value"] = Float(stats.Max(amounts))
		m["min_order_value"] = Float(stats.Min(amounts))
	} else {
		m["total_revenue"] = 0
		m["avg_order_value"] = 0
	}

	if caps.HasQty {
		m["total_quantity"] = Float(stats.Sum(v.ValidFloats(dataset.ColQty)))
	} else {
		m["total_quantity"] = 0
	}

	if caps.HasCategory {
		counts := v.ValueCounts(dataset.ColCategory)
		m["unique_categories"] = len(counts)
		m["top_category"] = topValue(counts)
	}

	if caps.HasState {
		counts := v.ValueCounts(dataset.ColShipState)
		m["unique_states"] = len(counts)
		m["top_state"] = topValue(counts)
	}

	if caps.HasCity {
		counts := v.ValueCounts(dataset.ColShipCity)
		m["unique_cities"] = len(counts)
		m["top_city"] = topValue(counts)
	}

	if caps.HasStatus {
		counts := v.ValueCounts(dataset.ColStatus)
		m["status_distribution"] = countsToMap(counts)
		m["shipped_percentage"] = Float(percentage(countFor(counts, statusShipped), v.Len()))
	}

	if caps.HasFulfilment {
		m["fulfillment_distribution"] = countsToMap(v.ValueCounts(dataset.ColFulfilment))
	}

	return m
}
