package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	snap := mustRead(t, ordersCSV)
	view := snap.All()

	tests := []struct {
		name     string
		filter   Filter
		expected []string // Order ID values of surviving rows
	}{
		{
			name:     "zero filter keeps everything",
			filter:   Filter{},
			expected: []string{"1", "2", "3", "4", "5", "6"},
		},
		{
			name:     "status",
			filter:   Filter{Status: "Shipped"},
			expected: []string{"1", "2", "4", "5"},
		},
		{
			name:     "single category",
			filter:   Filter{Categories: []string{"Kurta"}},
			expected: []string{"1", "3", "6"},
		},
		{
			name:     "multiple categories",
			filter:   Filter{Categories: []string{"Set", "Western Dress"}},
			expected: []string{"2", "4", "5"},
		},
		{
			name:     "states",
			filter:   Filter{States: []string{"KARNATAKA"}},
			expected: []string{"2", "5"},
		},
		{
			name:     "constraints combine with and",
			filter:   Filter{Status: "Shipped", Categories: []string{"Kurta"}},
			expected: []string{"1"},
		},
		{
			name:     "no match",
			filter:   Filter{Status: "Returned"},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := view.Filter(tt.filter)
			require.Equal(t, len(tt.expected), filtered.Len())
			for i, id := range tt.expected {
				assert.Equal(t, id, filtered.Value(ColOrderID, i))
			}
		})
	}
}

func TestFilter_MissingColumnMatchesNothing(t *testing.T) {
	snap := mustRead(t, "Order ID,Amount\n1,100\n2,200\n")
	filtered := snap.All().Filter(Filter{Status: "Shipped"})
	assert.Equal(t, 0, filtered.Len())
}

func TestFilter_PreservesSnapshotCapabilities(t *testing.T) {
	snap := mustRead(t, ordersCSV)
	filtered := snap.All().Filter(Filter{Status: "Shipped"})
	assert.True(t, filtered.Capabilities().HasAmount)
	assert.Equal(t, "Date", filtered.Capabilities().DateColumn)
}

func TestFilterIsZero(t *testing.T) {
	assert.True(t, Filter{}.IsZero())
	assert.False(t, Filter{Status: "Shipped"}.IsZero())
	assert.False(t, Filter{Categories: []string{"Kurta"}}.IsZero())
}
