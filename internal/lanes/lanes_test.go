package lanes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tms-insights-go/internal/workbook"
)

func fixtureMatrix() *Matrix {
	tbl := &workbook.Table{
		Columns: []string{"Origin", "NL", "DE", "FR"},
		Rows: [][]workbook.Cell{
			{workbook.Text("NL"), workbook.Number(0), workbook.Number(5), workbook.Number(2)},
			{workbook.Text("DE"), workbook.Number(3), workbook.Empty(), workbook.Text("-")},
			{workbook.Empty(), workbook.Number(9)},
		},
	}
	return FromTable(tbl)
}

func TestFromTable(t *testing.T) {
	m := fixtureMatrix()
	assert.Equal(t, []string{"NL", "DE", "FR"}, m.Destinations)
	// the row without an origin label is dropped
	require.Equal(t, []string{"NL", "DE"}, m.Origins)
	// blanks and stray text count as no traffic
	assert.Equal(t, []float64{3, 0, 0}, m.Counts[1])
}

func TestOriginTotalsDescending(t *testing.T) {
	totals := fixtureMatrix().OriginTotals()
	require.Len(t, totals, 2)
	assert.Equal(t, Total{Code: "NL", Count: 7}, totals[0])
	assert.Equal(t, Total{Code: "DE", Count: 3}, totals[1])
}

func TestDestinationTotalsOmitIdleLanes(t *testing.T) {
	totals := fixtureMatrix().DestinationTotals()
	require.Len(t, totals, 3)
	assert.Equal(t, Total{Code: "DE", Count: 5}, totals[0])
	assert.Equal(t, Total{Code: "NL", Count: 3}, totals[1])
	assert.Equal(t, Total{Code: "FR", Count: 2}, totals[2])
}

func TestNetworkStats(t *testing.T) {
	s := fixtureMatrix().NetworkStats()
	assert.Equal(t, 10.0, s.TotalShipments)
	assert.Equal(t, 3, s.ActiveLanes)
	assert.Equal(t, 2, s.OriginCount)
	assert.Equal(t, 3, s.DestinationCount)
	assert.InDelta(t, 10.0/3.0, s.AveragePerLane, 1e-9)
}

func TestNetworkStatsEmptyMatrix(t *testing.T) {
	m := FromTable(&workbook.Table{})
	s := m.NetworkStats()
	assert.Zero(t, s.TotalShipments)
	assert.Zero(t, s.ActiveLanes)
	assert.Zero(t, s.AveragePerLane)
}
