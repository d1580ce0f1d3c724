package insights

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/frostdev-ops/sales-insights-go/internal/core/dataset"
	"github.com/frostdev-ops/sales-insights-go/internal/core/stats"
)

const statusShipped = "Shipped"

// Engine computes derived metrics over dataset views. Every method is a pure
// function of its input view; the engine itself carries only a logger.
type Engine struct {
	log *logrus.Logger
}

// NewEngine creates an insights engine.
func NewEngine(log *logrus.Logger) *Engine {
	return &Engine{log: log}
}

// revenueTable builds the shared group-by-amount table, emitting the grouping
// dimension under keyName. Order_Count counts rows with a parseable amount.
// sortDesc orders rows by Total_Revenue descending; limit > 0 truncates the
// table after sorting.
func (e *Engine) revenueTable(v *dataset.View, groupCol, keyName string, sortDesc bool, limit int) []map[string]any {
	groups := v.GroupBy(groupCol)

	type entry struct {
		key   string
		total float64
		avg   float64
		count int
	}
	entries := make([]entry, 0, len(groups))
	for _, g := range groups {
		amounts := g.Rows.ValidFloats(dataset.ColAmount)
		entries = append(entries, entry{
			key:   g.Key,
			total: stats.Sum(amounts),
			avg:   stats.Mean(amounts),
			count: len(amounts),
		})
	}

	if sortDesc {
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].total > entries[j].total })
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	rows := make([]map[string]any, len(entries))
	for i, en := range entries {
		rows[i] = map[string]any{
			keyName:         en.key,
			"Total_Revenue": Float(en.total),
			"Avg_Revenue":   Float(en.avg),
			"Order_Count":   en.count,
		}
	}
	return rows
}

func countsToMap(counts []dataset.ValueCount) map[string]int {
	m := make(map[string]int, len(counts))
	for _, c := range counts {
		m[c.Value] = c.Count
	}
	return m
}

func topCountsMap(counts []dataset.ValueCount, n int) map[string]int {
	if len(counts) > n {
		counts = counts[:n]
	}
	return countsToMap(counts)
}

func topValue(counts []dataset.ValueCount) string {
	if len(counts) == 0 {
		return NotAvailable
	}
	return counts[0].Value
}

func countFor(counts []dataset.ValueCount, value string) int {
	for _, c := range counts {
		if c.Value == value {
			return c.Count
		}
	}
	return 0
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
