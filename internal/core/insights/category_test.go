package insights

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryAnalysis(t *testing.T) {
	e := testEngine()
	m := e.CategoryAnalysis(mustView(t, ordersCSV))

	assert.Equal(t, map[string]int{"Kurta": 3, "Set": 2, "Western Dress": 1}, m["category_counts"])
	assert.Equal(t, map[string]int{"Kurta": 3, "Set": 2, "Western Dress": 1}, m["top_categories"])

	revenue, ok := m["category_revenue"].([]CategoryRevenueRow)
	require.True(t, ok)
	require.Len(t, revenue, 3)

	// Ranked by total revenue, not frequency: Kurta 300, Western Dress 300,
	// Set 250. The tie keeps key order.
	assert.Equal(t, "Kurta", revenue[0].Category)
	assert.Equal(t, Float(300), revenue[0].TotalRevenue)
	assert.Equal(t, Float(100), revenue[0].AvgRevenue)
	assert.Equal(t, 3, revenue[0].OrderCount)
	assert.Equal(t, "Western Dress", revenue[1].Category)
	assert.Equal(t, "Set", revenue[2].Category)

	// Set has one blank amount, so only one order counts toward revenue.
	assert.Equal(t, 1, revenue[2].OrderCount)

	quantity, ok := m["category_quantity"].([]CategoryQuantityRow)
	require.True(t, ok)
	require.Len(t, quantity, 3)
	assert.Equal(t, "Kurta", quantity[0].Category)
	assert.Equal(t, Float(5), quantity[0].TotalQty)
	assert.Equal(t, "Set", quantity[1].Category)
	assert.Equal(t, Float(2), quantity[1].TotalQty)
}

func TestCategoryAnalysis_Performance(t *testing.T) {
	e := testEngine()
	m := e.CategoryAnalysis(mustView(t, ordersCSV))

	rows, ok := m["category_performance"].([]CategoryPerformanceRow)
	require.True(t, ok)
	require.Len(t, rows, 3)

	kurta := rows[0]
	assert.Equal(t, "Kurta", kurta.Category)
	assert.Equal(t, Float(300), kurta.TotalRevenue)
	assert.Equal(t, Float(100), kurta.AvgRevenue)
	assert.Equal(t, Float(5), kurta.TotalQty)
	assert.Equal(t, 3, kurta.OrderCount)
	assert.InDelta(t, 60.0, float64(kurta.RevenuePerUnit), 1e-9)

	// Order count reflects rows in the group even when an amount is blank.
	set := rows[1]
	assert.Equal(t, "Set", set.Category)
	assert.Equal(t, 2, set.OrderCount)
	assert.Equal(t, Float(250), set.TotalRevenue)
}

func TestCategoryAnalysis_ZeroQuantityMarshalsNull(t *testing.T) {
	e := testEngine()
	m := e.CategoryAnalysis(mustView(t, "Category,Qty,Amount\nFreebie,0,50\n"))

	rows, ok := m["category_performance"].([]CategoryPerformanceRow)
	require.True(t, ok)
	require.Len(t, rows, 1)

	data, err := json.Marshal(rows[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Revenue_per_Unit":null`)
}

func TestCategoryAnalysis_NoCategoryColumn(t *testing.T) {
	e := testEngine()
	m := e.CategoryAnalysis(mustView(t, "Order ID,Amount\n1,100\n"))
	assert.Empty(t, m)
}

func TestCategoryAnalysis_NoNumericColumns(t *testing.T) {
	e := testEngine()
	m := e.CategoryAnalysis(mustView(t, "Order ID,Category\n1,Kurta\n2,Set\n"))

	assert.Contains(t, m, "category_counts")
	assert.NotContains(t, m, "category_revenue")
	assert.NotContains(t, m, "category_quantity")
	assert.NotContains(t, m, "category_performance")
}
