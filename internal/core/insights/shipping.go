package insights

import (
	"github.com/frostdev-ops/sales-insights-go/internal/core/dataset"
)

// ShippingAnalysis covers fulfillment channels, courier status, service
// levels, and destination geography. State revenue is ranked; fulfillment and
// service level tables keep group order.
func (e *Engine) ShippingAnalysis(v *dataset.View) Metrics {
	m := Metrics{}
	caps := v.Capabilities()

	if caps.HasFulfilment {
		m["fulfillment_distribution"] = countsToMap(v.ValueCounts(dataset.ColFulfilment))
		if caps.HasAmount {
			m["fulfillment_revenue"] = e.revenueTable(v, dataset.ColFulfilment, "Fulfilment", false, 0)
		}
	}

	if caps.HasCourier {
		m["courier_distribution"] = countsToMap(v.ValueCounts(dataset.ColCourierStatus))
	}

	if caps.HasServiceLevel {
		m["service_level_distribution"] = countsToMap(v.ValueCounts(dataset.ColServiceLevel))
		if caps.HasAmount {
			m["service_level_revenue"] = e.revenueTable(v, dataset.ColServiceLevel, "Service_Level", false, 0)
		}
	}

	if caps.HasState {
		counts := v.ValueCounts(dataset.ColShipState)
		m["state_distribution"] = countsToMap(counts)
		m["top_states"] = topCountsMap(counts, 10)
		if caps.HasAmount {
			m["state_revenue"] = e.revenueTable(v, dataset.ColShipState, "State", true, 0)
		}
	}

	if caps.HasCity {
		counts := v.ValueCounts(dataset.ColShipCity)
		m["city_distribution"] = countsToMap(counts)
		m["top_cities"] = topCountsMap(counts, 10)
	}

	return m
}
