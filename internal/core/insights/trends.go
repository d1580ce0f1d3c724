package insights

import (
	"github.com/frostdev-ops/sales-insights-go/internal/core/dataset"
	"github.com/frostdev-ops/sales-insights-go/internal/core/stats"
)

// SalesTrends derives daily and monthly aggregate tables from the detected
// date column. Without a date column it returns an empty mapping; when any
// date value in the view fails to parse it reports the failure under the
// "error" key and omits the tables, leaving other insight functions
// unaffected.
func (e *Engine) SalesTrends(v *dataset.View) Metrics {
	m := Metrics{}
	caps := v.Capabilities()
	if caps.DateColumn == "" {
		return m
	}

	daily, err := v.GroupByDay()
	if err != nil {
		e.log.WithError(err).Warn("Trend analysis skipped")
		m["error"] = err.Error()
		return m
	}
	monthly, err := v.GroupByMonth()
	if err != nil {
		m["error"] = err.Error()
		return m
	}

	m["daily_sales"] = trendRows(daily, caps)
	m["monthly_sales"] = trendRows(monthly, caps)

	if len(daily) > 1 {
		first := trendAmount(daily[0], caps)
		last := trendAmount(daily[len(daily)-1], caps)
		m["growth_rate"] = Float((last - first) / first * 100)
	}

	return m
}

// trendRows emits one row per bucket keyed by the date column's own name.
// Amount and Qty fall back to the bucket's row count when the column is
// absent.
func trendRows(groups []dataset.DateGroup, caps dataset.Capabilities) []map[string]any {
	rows := make([]map[string]any, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, map[string]any{
			caps.DateColumn: g.Label,
			"Amount":        Float(trendAmount(g, caps)),
			"Qty":           Float(trendQty(g, caps)),
		})
	}
	return rows
}

func trendAmount(g dataset.DateGroup, caps dataset.Capabilities) float64 {
	if caps.HasAmount {
		return stats.Sum(g.Rows.ValidFloats(dataset.ColAmount))
	}
	return float64(g.Rows.Len())
}

func trendQty(g dataset.DateGroup, caps dataset.Capabilities) float64 {
	if caps.HasQty {
		return stats.Sum(g.Rows.ValidFloats(dataset.ColQty))
	}
	return float64(g.Rows.Len())
}
