package insights

import (
	"github.com/frostdev-ops/sales-insights-go/internal/core/dataset"
)

// ProductAnalysis breaks the view down by the product identity dimensions.
// SKU and ASIN revenue tables are ranked and truncated to the top 20; size
// revenue is ranked but kept whole.
func (e *Engine) ProductAnalysis(v *dataset.View) Metrics {
	m := Metrics{}
	caps := v.Capabilities()

	if caps.HasSKU {
		counts := v.ValueCounts(dataset.ColSKU)
		m["sku_distribution"] = countsToMap(counts)
		m["top_skus"] = topCountsMap(counts, 10)
		if caps.HasAmount {
			m["sku_revenue"] = e.revenueTable(v, dataset.ColSKU, "SKU", true, 20)
		}
	}

	if caps.HasASIN {
		counts := v.ValueCounts(dataset.ColASIN)
		m["asin_distribution"] = countsToMap(counts)
		m["top_asins"] = topCountsMap(counts, 10)
		if caps.HasAmount {
			m["asin_revenue"] = e.revenueTable(v, dataset.ColASIN, "ASIN", true, 20)
		}
	}

	if caps.HasStyle {
		counts := v.ValueCounts(dataset.ColStyle)
		m["style_distribution"] = countsToMap(counts)
		m["top_styles"] = topCountsMap(counts, 10)
	}

	if caps.HasSize {
		counts := v.ValueCounts(dataset.ColSize)
		m["size_distribution"] = countsToMap(counts)
		m["top_sizes"] = topCountsMap(counts, 10)
		if caps.HasAmount {
			m["size_revenue"] = e.revenueTable(v, dataset.ColSize, "Size", true, 0)
		}
	}

	return m
}
