package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tms-insights-go/internal/workbook"
)

func headerRow(n int) []workbook.Cell {
	row := make([]workbook.Cell, n)
	for i := range row {
		row[i] = workbook.Text("raw header")
	}
	return row
}

func TestSchemaPicksLongestFittingVersion(t *testing.T) {
	sheet := workbook.Sheet{
		headerRow(6),
		{workbook.Text("T1"), workbook.Number(45000), workbook.Number(45001), workbook.Number(1), workbook.Text("LATE"), workbook.Text("Customs")},
	}
	tbl := otpSchema.Apply(workbook.TableOf(sheet))
	assert.Equal(t, []string{"TMS_Order", "QDT", "POD_DateTime", "Time_Diff", "Status", "QC_Name"}, tbl.Columns)
}

func TestSchemaFiveColumnRevision(t *testing.T) {
	sheet := workbook.Sheet{
		headerRow(5),
		{workbook.Text("T1"), workbook.Number(45000), workbook.Number(45001), workbook.Number(1), workbook.Text("LATE")},
	}
	tbl := otpSchema.Apply(workbook.TableOf(sheet))
	assert.Equal(t, []string{"TMS_Order", "QDT", "POD_DateTime", "Time_Diff", "Status"}, tbl.Columns)
	assert.False(t, tbl.HasColumn("QC_Name"))
}

func TestSchemaTruncatesExtraTrailingColumns(t *testing.T) {
	// an 11-column revision still maps to the 6 known names
	row := make([]workbook.Cell, 11)
	for i := range row {
		row[i] = workbook.Number(float64(i))
	}
	row[0] = workbook.Text("T1")
	sheet := workbook.Sheet{headerRow(11), row}

	tbl := otpSchema.Apply(workbook.TableOf(sheet))
	require.Len(t, tbl.Columns, 6)
	for _, r := range tbl.Rows {
		assert.LessOrEqual(t, len(r), 6)
	}
}

func TestCostSalesSchemaNeverFailsOnShortSheet(t *testing.T) {
	for ncols := 1; ncols <= 20; ncols++ {
		sheet := workbook.Sheet{headerRow(ncols)}
		tbl := costSalesSchema.Apply(workbook.TableOf(sheet))
		want := ncols
		if want > 18 {
			want = 18
		}
		assert.Len(t, tbl.Columns, want, "ncols=%d", ncols)
	}
}

func TestNormalizeOTPDropsRowsWithoutOrderID(t *testing.T) {
	sheet := workbook.Sheet{
		headerRow(5),
		{workbook.Text("T1"), workbook.Number(45000), workbook.Number(45001), workbook.Number(1), workbook.Text("LATE")},
		{workbook.Empty(), workbook.Number(45000), workbook.Number(45001), workbook.Number(0), workbook.Text("ON TIME")},
		{workbook.Text("T2"), workbook.Number(45000), workbook.Number(45000), workbook.Number(0), workbook.Text("ON TIME")},
	}
	tbl := NormalizeOTP(sheet)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "T1", tbl.Rows[0][0].String())
	assert.Equal(t, "T2", tbl.Rows[1][0].String())
}

func TestNormalizeCostSalesConvertsOrderDate(t *testing.T) {
	row := make([]workbook.Cell, 18)
	for i := range row {
		row[i] = workbook.Text("x")
	}
	row[0] = workbook.Number(1) // serial 1 = 1899-12-31
	sheet := workbook.Sheet{headerRow(18), row}

	tbl := NormalizeCostSales(sheet)
	require.True(t, tbl.HasColumn("Order_Date"))
	col := tbl.Column("Order_Date")
	require.Len(t, col, 1)
	assert.Equal(t, workbook.KindDate, col[0].Kind)
	assert.Equal(t, "1899-12-31", col[0].Date.Format("2006-01-02"))
}
