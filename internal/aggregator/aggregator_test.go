package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tms-insights-go/internal/workbook"
)

func financeTable() *workbook.Table {
	return &workbook.Table{
		Columns: []string{"PU_Country", "Net_Revenue", "Total_Cost", "Gross_Percent"},
		Rows: [][]workbook.Cell{
			{workbook.Text("NL"), workbook.Number(100), workbook.Number(60), workbook.Number(0.4)},
			{workbook.Text("NL"), workbook.Number(50), workbook.Number(40), workbook.Number(0.2)},
			{workbook.Text("DE"), workbook.Number(200), workbook.Number(150), workbook.Empty()},
			{workbook.Empty(), workbook.Number(999), workbook.Number(999), workbook.Number(0.9)},
			{workbook.Text("DE"), workbook.Empty(), workbook.Number(10), workbook.Number(0.1)},
		},
	}
}

func TestGroupBySumAndMean(t *testing.T) {
	groups, err := GroupBy(financeTable(), "PU_Country",
		Spec{Column: "Net_Revenue", Reduce: Sum},
		Spec{Column: "Gross_Percent", Reduce: Mean},
	)
	require.NoError(t, err)
	require.Len(t, groups, 2, "null keys are dropped")

	byKey := map[string]Group{}
	for _, g := range groups {
		byKey[g.Key] = g
	}

	nl := byKey["NL"]
	assert.Equal(t, 150.0, nl.Values["Net_Revenue"])
	assert.InDelta(t, 0.3, nl.Values["Gross_Percent"], 1e-9)
	assert.Equal(t, 2, nl.Rows)

	de := byKey["DE"]
	assert.Equal(t, 200.0, de.Values["Net_Revenue"], "null revenue excluded from sum")
	assert.InDelta(t, 0.1, de.Values["Gross_Percent"], 1e-9, "null excluded from mean")
}

func TestGroupByIsAPartition(t *testing.T) {
	tbl := financeTable()
	groups, err := GroupBy(tbl, "PU_Country", Spec{Column: "Net_Revenue", Reduce: Sum})
	require.NoError(t, err)

	grouped := 0.0
	for _, g := range groups {
		grouped += g.Values["Net_Revenue"]
	}

	// ungrouped total over the same rows (those with a non-null key)
	ungrouped := 0.0
	for _, row := range tbl.Rows {
		if row[0].IsEmpty() {
			continue
		}
		if v, ok := row[1].Float(); ok {
			ungrouped += v
		}
	}
	assert.Equal(t, ungrouped, grouped, "no double counting, no loss")
}

func TestGroupByMissingColumns(t *testing.T) {
	_, err := GroupBy(financeTable(), "Nope")
	assert.Error(t, err)

	_, err = GroupBy(financeTable(), "PU_Country", Spec{Column: "Nope", Reduce: Sum})
	assert.Error(t, err)
}

func TestValueCountsSortedDescending(t *testing.T) {
	tbl := &workbook.Table{
		Columns: []string{"Status"},
		Rows: [][]workbook.Cell{
			{workbook.Text("ON TIME")},
			{workbook.Text("LATE")},
			{workbook.Text("ON TIME")},
			{workbook.Empty()},
			{workbook.Text("ON TIME")},
		},
	}
	counts := ValueCounts(tbl, "Status")
	require.Len(t, counts, 2)
	assert.Equal(t, KV{Key: "ON TIME", Count: 3}, counts[0])
	assert.Equal(t, KV{Key: "LATE", Count: 1}, counts[1])
}

func TestSumColumnIgnoresNullsAndText(t *testing.T) {
	tbl := &workbook.Table{
		Columns: []string{"V"},
		Rows: [][]workbook.Cell{
			{workbook.Number(1)},
			{workbook.Empty()},
			{workbook.Text("n/a")},
			{workbook.Number(2.5)},
		},
	}
	assert.Equal(t, 3.5, SumColumn(tbl, "V"))
	assert.Equal(t, 0.0, SumColumn(tbl, "missing"))
	assert.Equal(t, []float64{1, 2.5}, NumericColumn(tbl, "V"))
}
