// Package aggregator provides the group-by reductions behind the dashboard
// views. Null cells are excluded from every reduction; a group-by is a
// partition of the input rows, so totals across groups always equal the
// ungrouped total.
package aggregator

import (
	"fmt"
	"sort"

	"tms-insights-go/internal/workbook"
)

type Reduction string

const (
	Sum  Reduction = "sum"
	Mean Reduction = "mean"
)

// Spec is one requested reduction: the source column and how to fold it.
type Spec struct {
	Column string
	Reduce Reduction
}

// Group is one output row: a distinct key value with each requested
// reduction applied to that key's rows.
type Group struct {
	Key    string
	Rows   int
	Values map[string]float64
}

// GroupBy partitions the table by the key column and applies each spec to
// every partition. Rows with an empty key are dropped, null cells are
// ignored in both sums and means. A mean over zero non-null cells is zero.
// Output order follows first appearance of each key; callers sort as needed.
func GroupBy(t *workbook.Table, key string, specs ...Spec) ([]Group, error) {
	keyIdx := t.ColumnIndex(key)
	if keyIdx < 0 {
		return nil, fmt.Errorf("group column %q not present", key)
	}
	type colSpec struct {
		Spec
		idx int
	}
	cols := make([]colSpec, 0, len(specs))
	for _, s := range specs {
		idx := t.ColumnIndex(s.Column)
		if idx < 0 {
			return nil, fmt.Errorf("reduce column %q not present", s.Column)
		}
		cols = append(cols, colSpec{Spec: s, idx: idx})
	}

	type acc struct {
		sum   map[string]float64
		count map[string]int
		rows  int
	}
	order := []string{}
	accs := map[string]*acc{}

	for _, row := range t.Rows {
		if keyIdx >= len(row) || row[keyIdx].IsEmpty() {
			continue
		}
		k := row[keyIdx].String()
		a, ok := accs[k]
		if !ok {
			a = &acc{sum: map[string]float64{}, count: map[string]int{}}
			accs[k] = a
			order = append(order, k)
		}
		a.rows++
		for _, c := range cols {
			if c.idx >= len(row) {
				continue
			}
			if v, ok := row[c.idx].Float(); ok {
				a.sum[c.Column] += v
				a.count[c.Column]++
			}
		}
	}

	out := make([]Group, 0, len(order))
	for _, k := range order {
		a := accs[k]
		g := Group{Key: k, Rows: a.rows, Values: map[string]float64{}}
		for _, c := range cols {
			switch c.Reduce {
			case Mean:
				if n := a.count[c.Column]; n > 0 {
					g.Values[c.Column] = a.sum[c.Column] / float64(n)
				}
			default:
				g.Values[c.Column] = a.sum[c.Column]
			}
		}
		out = append(out, g)
	}
	return out, nil
}

// KV is a labelled count, used for value distributions.
type KV struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// ValueCounts tallies the non-null values of a column, descending by count.
// Ties keep first-appearance order.
func ValueCounts(t *workbook.Table, column string) []KV {
	counts := map[string]int{}
	var order []string
	for _, c := range t.Column(column) {
		if c.IsEmpty() {
			continue
		}
		v := c.String()
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}
	out := make([]KV, 0, len(order))
	for _, k := range order {
		out = append(out, KV{Key: k, Count: counts[k]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// SumColumn sums a column's non-null numeric cells. A missing column sums
// to zero, matching the omission policy for absent data.
func SumColumn(t *workbook.Table, column string) float64 {
	total := 0.0
	for _, c := range t.Column(column) {
		if v, ok := c.Float(); ok {
			total += v
		}
	}
	return total
}

// NumericColumn collects the non-null numeric values of a column.
func NumericColumn(t *workbook.Table, column string) []float64 {
	var out []float64
	for _, c := range t.Column(column) {
		if v, ok := c.Float(); ok {
			out = append(out, v)
		}
	}
	return out
}
