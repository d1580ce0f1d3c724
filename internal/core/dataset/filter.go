package dataset

// Filter selects rows by exact match on the interactive filter dimensions.
// Zero-valued fields impose no constraint.
type Filter struct {
	Status       string   `json:"status,omitempty"`
	SalesChannel string   `json:"sales_channel,omitempty"`
	Categories   []string `json:"categories,omitempty"`
	States       []string `json:"states,omitempty"`
}

// IsZero reports whether the filter imposes no constraints.
func (f Filter) IsZero() bool {
	return f.Status == "" && f.SalesChannel == "" && len(f.Categories) == 0 && len(f.States) == 0
}

// Filter returns a new view holding only the rows matching every constraint
// set on f. A constraint on a column the snapshot lacks matches nothing.
func (v *View) Filter(f Filter) *View {
	if f.IsZero() {
		return v
	}

	categories := toSet(f.Categories)
	states := toSet(f.States)

	indices := make([]int, 0, len(v.indices))
	for i := range v.indices {
		if f.Status != "" && v.Value(ColStatus, i) != f.Status {
			continue
		}
		if f.SalesChannel != "" && v.Value(ColSalesChannel, i) != f.SalesChannel {
			continue
		}
		if categories != nil {
			if _, ok := categories[v.Value(ColCategory, i)]; !ok {
				continue
			}
		}
		if states != nil {
			if _, ok := states[v.Value(ColShipState, i)]; !ok {
				continue
			}
		}
		indices = append(indices, v.indices[i])
	}
	return &View{snap: v.snap, indices: indices}
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
