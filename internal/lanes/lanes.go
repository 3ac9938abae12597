// Package lanes models the origin-destination shipment matrix from the
// "Lane usage " sheet.
package lanes

import (
	"sort"

	"tms-insights-go/internal/workbook"
)

// Matrix is the lane network: rows are origin countries, columns are
// destination countries, cells are shipment counts. Zero means no traffic.
type Matrix struct {
	Origins      []string    `json:"origins"`
	Destinations []string    `json:"destinations"`
	Counts       [][]float64 `json:"counts"`
}

// Total is one country's shipment total on one side of the network.
type Total struct {
	Code  string  `json:"code"`
	Count float64 `json:"count"`
}

// Stats summarizes the whole network.
type Stats struct {
	TotalShipments   float64 `json:"total_shipments"`
	ActiveLanes      int     `json:"active_lanes"`
	OriginCount      int     `json:"origin_countries"`
	DestinationCount int     `json:"destination_countries"`
	AveragePerLane   float64 `json:"average_per_lane"`
}

// FromTable builds a matrix from the normalized lane sheet: the header row
// names the destinations (first header cell is the origin label column),
// each data row is one origin. Blank or non-numeric cells count as zero.
func FromTable(t *workbook.Table) *Matrix {
	m := &Matrix{}
	if len(t.Columns) > 1 {
		m.Destinations = append(m.Destinations, t.Columns[1:]...)
	}
	for _, row := range t.Rows {
		if len(row) == 0 || row[0].IsEmpty() {
			continue
		}
		m.Origins = append(m.Origins, row[0].String())
		counts := make([]float64, len(m.Destinations))
		for i := range m.Destinations {
			if i+1 < len(row) {
				if v, ok := row[i+1].Float(); ok {
					counts[i] = v
				}
			}
		}
		m.Counts = append(m.Counts, counts)
	}
	return m
}

// OriginTotals returns outbound traffic per origin, descending, omitting
// origins with no traffic.
func (m *Matrix) OriginTotals() []Total {
	var out []Total
	for i, origin := range m.Origins {
		sum := 0.0
		for _, v := range m.Counts[i] {
			sum += v
		}
		if sum > 0 {
			out = append(out, Total{Code: origin, Count: sum})
		}
	}
	sortTotals(out)
	return out
}

// DestinationTotals returns inbound traffic per destination, descending,
// omitting destinations with no traffic.
func (m *Matrix) DestinationTotals() []Total {
	var out []Total
	for j, dest := range m.Destinations {
		sum := 0.0
		for i := range m.Counts {
			if j < len(m.Counts[i]) {
				sum += m.Counts[i][j]
			}
		}
		if sum > 0 {
			out = append(out, Total{Code: dest, Count: sum})
		}
	}
	sortTotals(out)
	return out
}

func sortTotals(ts []Total) {
	sort.SliceStable(ts, func(i, j int) bool { return ts[i].Count > ts[j].Count })
}

// NetworkStats computes the aggregate view of the network.
func (m *Matrix) NetworkStats() Stats {
	s := Stats{
		OriginCount:      len(m.Origins),
		DestinationCount: len(m.Destinations),
	}
	for _, row := range m.Counts {
		for _, v := range row {
			s.TotalShipments += v
			if v > 0 {
				s.ActiveLanes++
			}
		}
	}
	if s.ActiveLanes > 0 {
		s.AveragePerLane = s.TotalShipments / float64(s.ActiveLanes)
	}
	return s
}
