package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tms-insights-go/internal/workbook"
)

func TestSerialEpochRoundTrip(t *testing.T) {
	// The legacy epoch double-counts 1900 as a leap year; serial 0 is
	// defined as 1899-12-30 and serial 1 as 1899-12-31.
	assert.Equal(t, "1899-12-30", FromSerial(0).Format("2006-01-02"))
	assert.Equal(t, "1899-12-31", FromSerial(1).Format("2006-01-02"))
	assert.Equal(t, "2023-03-15", FromSerial(45000).Format("2006-01-02"))
}

func TestFromSerialFractionalDays(t *testing.T) {
	got := FromSerial(1.5)
	assert.Equal(t, "1899-12-31T12:00:00Z", got.Format(time.RFC3339))
}

func TestNormalizeDatesNumericColumn(t *testing.T) {
	col := []workbook.Cell{
		workbook.Number(45000),
		workbook.Empty(),
		workbook.Number(1),
	}
	out := NormalizeDates(col)
	require.Len(t, out, 3)
	assert.Equal(t, workbook.KindDate, out[0].Kind)
	assert.True(t, out[1].IsEmpty())
	assert.Equal(t, "1899-12-31", out[2].Date.Format("2006-01-02"))
}

func TestNormalizeDatesStringColumn(t *testing.T) {
	col := []workbook.Cell{
		workbook.Text("2024-01-02"),
		workbook.Text("not a date"),
		workbook.Text("2024-01-02 13:45:00"),
	}
	out := NormalizeDates(col)
	assert.Equal(t, workbook.KindDate, out[0].Kind)
	assert.Equal(t, "2024-01-02", out[0].Date.Format("2006-01-02"))
	assert.True(t, out[1].IsEmpty(), "unparseable value becomes null, not an error")
	assert.Equal(t, 13, out[2].Date.Hour())
}

func TestNormalizeDatesIdempotent(t *testing.T) {
	col := []workbook.Cell{
		workbook.Number(45000),
		workbook.Text("2024-01-02"),
		workbook.Empty(),
	}
	once := NormalizeDates(col)
	twice := NormalizeDates(once)
	assert.Equal(t, once, twice)
}

func TestNormalizeDatesNeverFails(t *testing.T) {
	assert.Empty(t, NormalizeDates(nil))

	out := NormalizeDates([]workbook.Cell{workbook.Empty(), workbook.Empty()})
	for _, c := range out {
		assert.True(t, c.IsEmpty())
	}
}
