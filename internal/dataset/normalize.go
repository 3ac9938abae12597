package dataset

import (
	"tms-insights-go/internal/workbook"
)

// Schema is an ordered list of positional column-name lists, one per known
// revision of a sheet. Each version is a prefix of the next, so selecting by
// length never changes the meaning of a column that exists in two revisions.
type Schema struct {
	Versions [][]string
}

// Apply renames a table's columns positionally: it picks the longest version
// whose length fits the actual column count, or failing that a prefix of the
// shortest version. Extra trailing raw columns are truncated, never kept
// under their original headers. Apply never fails on a short sheet.
func (s Schema) Apply(t *workbook.Table) *workbook.Table {
	ncols := len(t.Columns)
	var names []string
	for _, v := range s.Versions {
		if len(v) <= ncols && len(v) > len(names) {
			names = v
		}
	}
	if names == nil && len(s.Versions) > 0 {
		shortest := s.Versions[0]
		for _, v := range s.Versions[1:] {
			if len(v) < len(shortest) {
				shortest = v
			}
		}
		if ncols < len(shortest) {
			names = shortest[:ncols]
		} else {
			names = shortest
		}
	}

	out := &workbook.Table{Columns: append([]string(nil), names...)}
	for _, row := range t.Rows {
		if len(row) > len(names) {
			row = row[:len(names)]
		}
		out.Rows = append(out.Rows, append([]workbook.Cell(nil), row...))
	}
	return out
}

// NormalizeOTP reshapes the "OTP POD" sheet into its semantic columns and
// drops rows with no TMS order id.
func NormalizeOTP(s workbook.Sheet) *workbook.Table {
	t := otpSchema.Apply(workbook.TableOf(s))
	kept := t.Rows[:0]
	for _, row := range t.Rows {
		if len(row) > 0 && !row[0].IsEmpty() {
			kept = append(kept, row)
		}
	}
	t.Rows = kept
	return t
}

// NormalizeCostSales reshapes the "cost sales" sheet into as many of the 18
// reference columns as the revision carries and converts the order date.
func NormalizeCostSales(s workbook.Sheet) *workbook.Table {
	t := costSalesSchema.Apply(workbook.TableOf(s))
	if t.HasColumn("Order_Date") {
		t.SetColumn("Order_Date", NormalizeDates(t.Column("Order_Date")))
	}
	return t
}
