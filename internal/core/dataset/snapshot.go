package dataset

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Snapshot is an immutable, column-oriented copy of a loaded dataset. All
// analysis runs against row-index views of a snapshot; the snapshot itself is
// never mutated after Load returns, so concurrent readers need no locking.
type Snapshot struct {
	source   string
	loadedAt time.Time

	columns  []string
	colIndex map[string]int
	cells    [][]string // cells[col][row]

	numeric map[string][]float64 // parsed numeric columns, NaN where unparseable
	dates   []time.Time          // parsed date column, zero where invalid
	dateOK  []bool

	caps Capabilities
	rows int
}

// Source returns the path the snapshot was loaded from.
func (s *Snapshot) Source() string { return s.source }

// LoadedAt returns the time the snapshot was created.
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }

// Columns returns the header names in file order.
func (s *Snapshot) Columns() []string {
	out := make([]string, len(s.columns))
	copy(out, s.columns)
	return out
}

// RowCount returns the number of data rows.
func (s *Snapshot) RowCount() int { return s.rows }

// Capabilities reports which recognized columns are present.
func (s *Snapshot) Capabilities() Capabilities { return s.caps }

// HasColumn reports whether the named column exists.
func (s *Snapshot) HasColumn(name string) bool {
	_, ok := s.colIndex[name]
	return ok
}

// All returns a view spanning every row.
func (s *Snapshot) All() *View {
	indices := make([]int, s.rows)
	for i := range indices {
		indices[i] = i
	}
	return &View{snap: s, indices: indices}
}

// ColumnInfos describes every column for schema introspection.
func (s *Snapshot) ColumnInfos() []ColumnInfo {
	infos := make([]ColumnInfo, 0, len(s.columns))
	for _, name := range s.columns {
		col := s.cells[s.colIndex[name]]

		nonNull := 0
		unique := make(map[string]struct{})
		for _, v := range col {
			if v == "" {
				continue
			}
			nonNull++
			unique[v] = struct{}{}
		}

		colType := "string"
		if _, ok := s.numeric[name]; ok {
			colType = "numeric"
		} else if name == s.caps.DateColumn {
			colType = "date"
		}

		infos = append(infos, ColumnInfo{
			Name:    name,
			Type:    colType,
			NonNull: nonNull,
			Nulls:   s.rows - nonNull,
			Unique:  len(unique),
		})
	}
	return infos
}

// View is an ordered set of row indices into a snapshot. Filtering and
// grouping produce new views; the underlying snapshot is shared and
// read-only.
type View struct {
	snap    *Snapshot
	indices []int
}

// Len returns the number of rows in the view.
func (v *View) Len() int { return len(v.indices) }

// Capabilities reports the column capabilities of the backing snapshot.
func (v *View) Capabilities() Capabilities { return v.snap.caps }

// HasColumn reports whether the named column exists in the backing snapshot.
func (v *View) HasColumn(name string) bool { return v.snap.HasColumn(name) }

// Columns returns the header names in file order.
func (v *View) Columns() []string { return v.snap.Columns() }

// Value returns the raw cell value at view position i, or "" when the column
// is unknown.
func (v *View) Value(col string, i int) string {
	ci, ok := v.snap.colIndex[col]
	if !ok {
		return ""
	}
	return v.snap.cells[ci][v.indices[i]]
}

// Row returns the raw cells of the row at view position i, in column order.
func (v *View) Row(i int) []string {
	row := make([]string, len(v.snap.columns))
	ri := v.indices[i]
	for ci := range v.snap.columns {
		row[ci] = v.snap.cells[ci][ri]
	}
	return row
}

// Records returns up to limit rows as column-keyed maps, preserving view
// order. A limit <= 0 returns all rows.
func (v *View) Records(limit int) []map[string]string {
	n := v.Len()
	if limit > 0 && limit < n {
		n = limit
	}
	records := make([]map[string]string, 0, n)
	for i := 0; i < n; i++ {
		record := make(map[string]string, len(v.snap.columns))
		for ci, name := range v.snap.columns {
			record[name] = v.snap.cells[ci][v.indices[i]]
		}
		records = append(records, record)
	}
	return records
}

// Floats returns the parsed numeric values of a column in view order, with
// NaN marking missing or unparseable cells. The second return is false when
// the column is not numeric.
func (v *View) Floats(col string) ([]float64, bool) {
	parsed, ok := v.snap.numeric[col]
	if !ok {
		return nil, false
	}
	out := make([]float64, len(v.indices))
	for i, ri := range v.indices {
		out[i] = parsed[ri]
	}
	return out, true
}

// ValidFloats returns only the parseable numeric values of a column in view
// order, the way aggregate statistics consume them.
func (v *View) ValidFloats(col string) []float64 {
	parsed, ok := v.snap.numeric[col]
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(v.indices))
	for _, ri := range v.indices {
		if !math.IsNaN(parsed[ri]) {
			out = append(out, parsed[ri])
		}
	}
	return out
}

// ValueCount is one entry of a frequency distribution.
type ValueCount struct {
	Value string
	Count int
}

// ValueCounts returns the frequency distribution of a column's non-empty
// values, ordered by count descending with ties kept in first-seen order.
func (v *View) ValueCounts(col string) []ValueCount {
	ci, ok := v.snap.colIndex[col]
	if !ok {
		return nil
	}

	counts := make(map[string]int)
	var order []string
	cells := v.snap.cells[ci]
	for _, ri := range v.indices {
		value := cells[ri]
		if value == "" {
			continue
		}
		if _, seen := counts[value]; !seen {
			order = append(order, value)
		}
		counts[value]++
	}

	result := make([]ValueCount, len(order))
	for i, value := range order {
		result[i] = ValueCount{Value: value, Count: counts[value]}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}

// DistinctValues returns the sorted distinct non-empty values of a column,
// for populating filter selectors.
func (v *View) DistinctValues(col string) []string {
	ci, ok := v.snap.colIndex[col]
	if !ok {
		return nil
	}

	seen := make(map[string]struct{})
	cells := v.snap.cells[ci]
	for _, ri := range v.indices {
		if value := cells[ri]; value != "" {
			seen[value] = struct{}{}
		}
	}

	values := make([]string, 0, len(seen))
	for value := range seen {
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}

// UniqueCount returns the number of distinct non-empty values in a column.
func (v *View) UniqueCount(col string) int {
	ci, ok := v.snap.colIndex[col]
	if !ok {
		return 0
	}
	seen := make(map[string]struct{})
	cells := v.snap.cells[ci]
	for _, ri := range v.indices {
		if value := cells[ri]; value != "" {
			seen[value] = struct{}{}
		}
	}
	return len(seen)
}

// Group is one bucket of a group-by over a categorical column.
type Group struct {
	Key  string
	Rows *View
}

// GroupBy buckets the view's rows by a column's values, dropping rows with
// empty keys. Groups are ordered by key ascending.
func (v *View) GroupBy(col string) []Group {
	ci, ok := v.snap.colIndex[col]
	if !ok {
		return nil
	}

	buckets := make(map[string][]int)
	cells := v.snap.cells[ci]
	for _, ri := range v.indices {
		key := cells[ri]
		if key == "" {
			continue
		}
		buckets[key] = append(buckets[key], ri)
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	groups := make([]Group, len(keys))
	for i, key := range keys {
		groups[i] = Group{Key: key, Rows: &View{snap: v.snap, indices: buckets[key]}}
	}
	return groups
}

// DateGroup is one bucket of a group-by over the detected date column.
type DateGroup struct {
	Label string
	Rows  *View
}

// GroupByDay buckets rows by calendar date, ordered ascending. It fails when
// no date column was detected or any row in the view has an unparseable date
// value.
func (v *View) GroupByDay() ([]DateGroup, error) {
	return v.groupByDateLabel("2006-01-02")
}

// GroupByMonth buckets rows by calendar month, ordered ascending, under the
// same failure rules as GroupByDay.
func (v *View) GroupByMonth() ([]DateGroup, error) {
	return v.groupByDateLabel("2006-01")
}

func (v *View) groupByDateLabel(layout string) ([]DateGroup, error) {
	col := v.snap.caps.DateColumn
	if col == "" {
		return nil, fmt.Errorf("no date column detected")
	}
	ci := v.snap.colIndex[col]

	buckets := make(map[string][]int)
	for _, ri := range v.indices {
		if !v.snap.dateOK[ri] {
			return nil, fmt.Errorf("cannot parse %q as a date in column %q", v.snap.cells[ci][ri], col)
		}
		label := v.snap.dates[ri].Format(layout)
		buckets[label] = append(buckets[label], ri)
	}

	labels := make([]string, 0, len(buckets))
	for label := range buckets {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	groups := make([]DateGroup, len(labels))
	for i, label := range labels {
		groups[i] = DateGroup{Label: label, Rows: &View{snap: v.snap, indices: buckets[label]}}
	}
	return groups, nil
}

// MemoryFootprintMB estimates the in-memory size of the view's rows in
// mebibytes, counting string payloads plus per-cell header overhead.
func (v *View) MemoryFootprintMB() float64 {
	bytes := 0
	for _, ri := range v.indices {
		for ci := range v.snap.cells {
			bytes += len(v.snap.cells[ci][ri]) + 16
		}
	}
	bytes += v.Len() * 8 * len(v.snap.numeric)
	if v.snap.dates != nil {
		bytes += v.Len() * 25
	}
	return float64(bytes) / (1024 * 1024)
}

// DateRange returns the earliest and latest parseable dates in the view. The
// boolean is false when no date column exists or no value parsed.
func (v *View) DateRange() (time.Time, time.Time, bool) {
	if v.snap.caps.DateColumn == "" {
		return time.Time{}, time.Time{}, false
	}

	var min, max time.Time
	found := false
	for _, ri := range v.indices {
		if !v.snap.dateOK[ri] {
			continue
		}
		t := v.snap.dates[ri]
		if !found {
			min, max = t, t
			found = true
			continue
		}
		if t.Before(min) {
			min = t
		}
		if t.After(max) {
			max = t
		}
	}
	return min, max, found
}
