package insights

import (
	"github.com/frostdev-ops/sales-insights-go/internal/core/dataset"
)

// CustomerInsights maps order volume across geography and computes the
// top-5-state and top-10-city concentration ratios.
func (e *Engine) CustomerInsights(v *dataset.View) Metrics {
	m := Metrics{}
	caps := v.Capabilities()
	totalOrders := v.Len()

	if caps.HasState {
		counts := v.ValueCounts(dataset.ColShipState)
		m["customers_by_state"] = countsToMap(counts)
		m["top_5_states_concentration"] = Float(concentration(counts, 5, totalOrders))
	}

	if caps.HasCity {
		counts := v.ValueCounts(dataset.ColShipCity)
		m["customers_by_city"] = countsToMap(counts)
		m["top_10_cities_concentration"] = Float(concentration(counts, 10, totalOrders))
	}

	if caps.HasPostal {
		m["customers_by_postal"] = topCountsMap(v.ValueCounts(dataset.ColShipPostal), 20)
	}

	if caps.HasCountry {
		m["customers_by_country"] = countsToMap(v.ValueCounts(dataset.ColShipCountry))
	}

	return m
}

// concentration returns the share of total orders captured by the k most
// frequent values, as a percentage. Zero total yields 0, not a panic.
func concentration(counts []dataset.ValueCount, k, total int) float64 {
	if total == 0 {
		return 0
	}
	if k > len(counts) {
		k = len(counts)
	}
	sum := 0
	for _, c := range counts[:k] {
		sum += c.Count
	}
	return float64(sum) / float64(total) * 100
}
