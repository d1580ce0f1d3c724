package dataset

import "strings"

// Recognized column names in order-level sales exports. Header names are
// matched after surrounding whitespace has been stripped.
const (
	ColOrderID       = "Order ID"
	ColStatus        = "Status"
	ColFulfilment    = "Fulfilment"
	ColSalesChannel  = "Sales Channel"
	ColServiceLevel  = "ship-service-level"
	ColStyle         = "Style"
	ColSKU           = "SKU"
	ColCategory      = "Category"
	ColSize          = "Size"
	ColASIN          = "ASIN"
	ColCourierStatus = "Courier Status"
	ColQty           = "Qty"
	ColCurrency      = "currency"
	ColAmount        = "Amount"
	ColShipCity      = "ship-city"
	ColShipState     = "ship-state"
	ColShipPostal    = "ship-postal-code"
	ColShipCountry   = "ship-country"
)

// Capabilities records which analyzable columns a snapshot carries. It is
// resolved once at load time; insight functions consult it instead of
// re-probing the header.
type Capabilities struct {
	HasAmount       bool
	HasQty          bool
	HasCategory     bool
	HasStatus       bool
	HasFulfilment   bool
	HasSalesChannel bool
	HasCourier      bool
	HasServiceLevel bool
	HasStyle        bool
	HasSKU          bool
	HasASIN         bool
	HasSize         bool
	HasState        bool
	HasCity         bool
	HasPostal       bool
	HasCountry      bool
	HasCurrency     bool

	// DateColumn is the first column whose name contains "date" or "time"
	// (case-insensitive), or empty when no such column exists. When several
	// qualify, header order decides.
	DateColumn string
}

// ColumnInfo describes a single column for schema introspection endpoints.
type ColumnInfo struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	NonNull int    `json:"non_null"`
	Nulls   int    `json:"nulls"`
	Unique  int    `json:"unique"`
}

func resolveCapabilities(columns []string) Capabilities {
	present := make(map[string]bool, len(columns))
	for _, col := range columns {
		present[col] = true
	}

	return Capabilities{
		HasAmount:       present[ColAmount],
		HasQty:          present[ColQty],
		HasCategory:     present[ColCategory],
		HasStatus:       present[ColStatus],
		HasFulfilment:   present[ColFulfilment],
		HasSalesChannel: present[ColSalesChannel],
		HasCourier:      present[ColCourierStatus],
		HasServiceLevel: present[ColServiceLevel],
		HasStyle:        present[ColStyle],
		HasSKU:          present[ColSKU],
		HasASIN:         present[ColASIN],
		HasSize:         present[ColSize],
		HasState:        present[ColShipState],
		HasCity:         present[ColShipCity],
		HasPostal:       present[ColShipPostal],
		HasCountry:      present[ColShipCountry],
		HasCurrency:     present[ColCurrency],
		DateColumn:      detectDateColumn(columns),
	}
}

func detectDateColumn(columns []string) string {
	for _, col := range columns {
		lower := strings.ToLower(col)
		if strings.Contains(lower, "date") || strings.Contains(lower, "time") {
			return col
		}
	}
	return ""
}
