package insights

import (
	"encoding/json"
	"math"
)

// Metrics is the flat mapping every insight function returns. Values are
// scalars, distributions (map of value to count), or row-oriented tables.
// Functions omit keys whose source columns are absent rather than erroring.
type Metrics map[string]any

// NotAvailable is the sentinel returned for top-value metrics when there is
// nothing to rank.
const NotAvailable = "N/A"

// Float is a float64 that marshals NaN and ±Inf as JSON null. Undefined
// aggregates (means over empty groups, zero-denominator ratios, sample
// deviation of a single value) surface as null instead of failing to encode.
type Float float64

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// CategoryRevenueRow is one row of the per-category revenue table, ordered by
// total revenue descending.
type CategoryRevenueRow struct {
	Category     string `json:"Category"`
	TotalRevenue Float  `json:"Total_Revenue"`
	AvgRevenue   Float  `json:"Avg_Revenue"`
	OrderCount   int    `json:"Order_Count"`
}

// CategoryQuantityRow is one row of the per-category quantity table, ordered
// by category name.
type CategoryQuantityRow struct {
	Category string `json:"Category"`
	TotalQty Float  `json:"Total_Qty"`
	AvgQty   Float  `json:"Avg_Qty"`
}

// CategoryPerformanceRow combines revenue and quantity aggregates per
// category. RevenuePerUnit is null when the category sold zero units.
type CategoryPerformanceRow struct {
	Category       string `json:"Category"`
	TotalRevenue   Float  `json:"Total_Revenue"`
	AvgRevenue     Float  `json:"Avg_Revenue"`
	RevenueStd     Float  `json:"Revenue_Std"`
	TotalQty       Float  `json:"Total_Qty"`
	AvgQty         Float  `json:"Avg_Qty"`
	OrderCount     int    `json:"Order_Count"`
	RevenuePerUnit Float  `json:"Revenue_per_Unit"`
}
