package insights

import (
	"github.com/frostdev-ops/sales-insights-go/internal/core/dataset"
	"github.com/frostdev-ops/sales-insights-go/internal/core/stats"
)

// RevenueAnalysis computes order-value statistics, quartiles, and the
// high/medium/low value segmentation. Segment boundaries are the view's own
// quantiles, recomputed per call, so segments are always relative to the
// current filtered view. Without an amount column it returns an empty
// mapping.
func (e *Engine) RevenueAnalysis(v *dataset.View) Metrics {
	m := Metrics{}
	caps := v.Capabilities()
	if !caps.HasAmount {
		return m
	}

	amounts := v.ValidFloats(dataset.ColAmount)
	m["total_revenue"] = Float(stats.Sum(amounts))
	m["avg_revenue"] = Float(stats.Mean(amounts))
	m["median_revenue"] = Float(stats.Median(amounts))
	m["revenue_std"] = Float(stats.Std(amounts))
	m["max_revenue"] = Float(stats.Max(amounts))
	m["min_revenue"] = Float(stats.Min(amounts))

	m["revenue_quartiles"] = map[string]Float{
		"0.25": Float(stats.Quantile(amounts, 0.25)),
		"0.5":  Float(stats.Quantile(amounts, 0.5)),
		"0.75": Float(stats.Quantile(amounts, 0.75)),
	}

	// Rows with an unparseable amount fail every comparison and land in no
	// segment, so the three counts partition only fully-valued data.
	q50 := stats.Quantile(amounts, 0.5)
	q90 := stats.Quantile(amounts, 0.9)
	all, _ := v.Floats(dataset.ColAmount)
	high, medium, low := 0, 0, 0
	for _, a := range all {
		switch {
		case a > q90:
			high++
		case a >= q50 && a <= q90:
			medium++
		case a < q50:
			low++
		}
	}
	m["high_value_orders"] = high
	m["medium_value_orders"] = medium
	m["low_value_orders"] = low

	if caps.HasCurrency {
		m["currency_revenue"] = e.revenueTable(v, dataset.ColCurrency, "Currency", false, 0)
	}

	return m
}
