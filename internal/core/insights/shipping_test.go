package insights

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShippingAnalysis(t *testing.T) {
	e := testEngine()
	m := e.ShippingAnalysis(mustView(t, ordersCSV))

	assert.Equal(t, map[string]int{"Amazon": 4, "Merchant": 2}, m["fulfillment_distribution"])
	assert.Equal(t, map[string]int{"MAHARASHTRA": 3, "KARNATAKA": 2, "DELHI": 1}, m["state_distribution"])
	assert.Equal(t, map[string]int{"MAHARASHTRA": 3, "KARNATAKA": 2, "DELHI": 1}, m["top_states"])

	rows, ok := m["state_revenue"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, rows, 3)

	// DELHI and MAHARASHTRA tie at 300; the tie keeps key order.
	assert.Equal(t, "DELHI", rows[0]["State"])
	assert.Equal(t, Float(300), rows[0]["Total_Revenue"])
	assert.Equal(t, "MAHARASHTRA", rows[1]["State"])
	assert.Equal(t, Float(300), rows[1]["Total_Revenue"])
	assert.Equal(t, 3, rows[1]["Order_Count"])
	assert.Equal(t, "KARNATAKA", rows[2]["State"])
	assert.Equal(t, Float(250), rows[2]["Total_Revenue"])

	// KARNATAKA has one blank amount, so only one order counts.
	assert.Equal(t, 1, rows[2]["Order_Count"])

	assert.NotContains(t, m, "courier_distribution")
	assert.NotContains(t, m, "service_level_distribution")
	assert.NotContains(t, m, "city_distribution")
}

func TestShippingAnalysis_ServiceLevelAndCourier(t *testing.T) {
	e := testEngine()
	view := mustView(t, "Order ID,ship-service-level,Courier Status,Amount\n"+
		"1,Expedited,Shipped,100\n2,Standard,Shipped,50\n3,Expedited,Unshipped,\n")

	m := e.ShippingAnalysis(view)

	assert.Equal(t, map[string]int{"Expedited": 2, "Standard": 1}, m["service_level_distribution"])
	assert.Equal(t, map[string]int{"Shipped": 2, "Unshipped": 1}, m["courier_distribution"])

	rows, ok := m["service_level_revenue"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, rows, 2)
	assert.Equal(t, "Expedited", rows[0]["Service_Level"])
	assert.Equal(t, Float(100), rows[0]["Total_Revenue"])
	assert.Equal(t, 1, rows[0]["Order_Count"])
	assert.Equal(t, "Standard", rows[1]["Service_Level"])
	assert.Equal(t, Float(50), rows[1]["Total_Revenue"])
}

func TestShippingAnalysis_TopCitiesTruncated(t *testing.T) {
	var b strings.Builder
	b.WriteString("Order ID,ship-city\n")
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&b, "%d,CITY-%02d\n", i, i)
	}
	m := testEngine().ShippingAnalysis(mustView(t, b.String()))

	city, ok := m["city_distribution"].(map[string]int)
	require.True(t, ok)
	assert.Len(t, city, 12)

	top, ok := m["top_cities"].(map[string]int)
	require.True(t, ok)
	assert.Len(t, top, 10)
}

func TestShippingAnalysis_WithoutAmountOmitsRevenueTables(t *testing.T) {
	m := testEngine().ShippingAnalysis(mustView(t, "Order ID,Fulfilment,ship-state\n1,Amazon,DELHI\n"))

	assert.Contains(t, m, "fulfillment_distribution")
	assert.Contains(t, m, "state_distribution")
	assert.NotContains(t, m, "fulfillment_revenue")
	assert.NotContains(t, m, "state_revenue")
}
