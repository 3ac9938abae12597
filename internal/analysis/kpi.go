package analysis

import (
	"sort"

	"github.com/montanaflynn/stats"

	"tms-insights-go/internal/aggregator"
	"tms-insights-go/internal/lanes"
	"tms-insights-go/internal/types"
	"tms-insights-go/internal/workbook"
)

const (
	statusOnTime = "ON TIME"
	topQCReasons = 15
	topLanes     = 10
)

func overview(d *types.Datasets) types.Overview {
	var o types.Overview
	for _, v := range d.ServiceVolumes {
		o.TotalVolume += v
	}
	if d.OTP != nil {
		total, onTime := otpCounts(d.OTP)
		o.TotalOrders = total
		if total > 0 {
			o.OTPRate = float64(onTime) / float64(total) * 100
		}
	}
	if d.CostSales != nil {
		o.TotalRevenue = aggregator.SumColumn(d.CostSales, "Net_Revenue")
		o.TotalCost = aggregator.SumColumn(d.CostSales, "Total_Cost")
		o.Profit = o.TotalRevenue - o.TotalCost
		if o.TotalRevenue > 0 {
			o.MarginPct = o.Profit / o.TotalRevenue * 100
		}
	}
	return o
}

// otpCounts tallies rows with a non-null status and how many are on time.
func otpCounts(t *workbook.Table) (total, onTime int) {
	for _, c := range t.Column("Status") {
		if c.IsEmpty() {
			continue
		}
		total++
		if c.String() == statusOnTime {
			onTime++
		}
	}
	return total, onTime
}

func otpAnalysis(t *workbook.Table) *types.OTPAnalysis {
	total, onTime := otpCounts(t)
	a := &types.OTPAnalysis{
		TotalOrders:  total,
		OnTime:       onTime,
		Late:         total - onTime,
		StatusCounts: aggregator.ValueCounts(t, "Status"),
	}
	if total > 0 {
		a.RatePct = float64(onTime) / float64(total) * 100
	}

	if t.HasColumn("QC_Name") {
		reasons := aggregator.ValueCounts(t, "QC_Name")
		if len(reasons) > topQCReasons {
			reasons = reasons[:topQCReasons]
		}
		a.QCReasons = reasons
	}

	diffs := aggregator.NumericColumn(t, "Time_Diff")
	if len(diffs) > 0 {
		a.TimeDiffBins = binCounts(diffs, timeDiffBins)
		a.TimeDiffStats = timeDiffStats(diffs)
	}
	return a
}

func timeDiffStats(diffs []float64) *types.TimeDiffStats {
	mean, _ := stats.Mean(diffs)
	median, _ := stats.Median(diffs)
	sd, _ := stats.StandardDeviationSample(diffs)
	min, _ := stats.Min(diffs)
	max, _ := stats.Max(diffs)
	return &types.TimeDiffStats{Mean: mean, Median: median, StdDev: sd, Min: min, Max: max}
}

// bin is a right-closed interval (prev upper bound, Upper].
type bin struct {
	Upper float64
	Label string
}

// Bin edges and labels match the source report exactly, including the odd
// "On Time" bucket covering (0, 0.5] days.
var timeDiffBins = []bin{
	{-1, "Early >1d"},
	{-0.5, "Early 0.5-1d"},
	{0, "Early <0.5d"},
	{0.5, "On Time"},
	{1, "Late 0.5-1d"},
}

var marginBins = []bin{
	{0, "Loss"},
	{0.1, "0-10%"},
	{0.2, "10-20%"},
	{0.3, "20-30%"},
}

var binOverflow = map[string]string{
	"Late 0.5-1d": "Late >1d",
	"20-30%":      "30%+",
}

func binCounts(values []float64, bins []bin) []aggregator.KV {
	last := bins[len(bins)-1]
	labels := make([]string, 0, len(bins)+1)
	counts := map[string]int{}
	for _, b := range bins {
		labels = append(labels, b.Label)
	}
	labels = append(labels, binOverflow[last.Label])

	for _, v := range values {
		placed := false
		for _, b := range bins {
			if v <= b.Upper {
				counts[b.Label]++
				placed = true
				break
			}
		}
		if !placed {
			counts[binOverflow[last.Label]]++
		}
	}

	out := make([]aggregator.KV, 0, len(labels))
	for _, l := range labels {
		out = append(out, aggregator.KV{Key: l, Count: counts[l]})
	}
	return out
}

var costComponents = map[string]string{
	"PU_Cost":   "PU",
	"Ship_Cost": "Ship",
	"Man_Cost":  "Man",
	"Del_Cost":  "Del",
}

func financialAnalysis(t *workbook.Table) *types.FinancialAnalysis {
	f := &types.FinancialAnalysis{
		TotalRevenue: aggregator.SumColumn(t, "Net_Revenue"),
		TotalCost:    aggregator.SumColumn(t, "Total_Cost"),
	}
	f.Profit = f.TotalRevenue - f.TotalCost
	if f.TotalRevenue > 0 {
		f.MarginPct = f.Profit / f.TotalRevenue * 100
	}

	components := map[string]float64{}
	for column, name := range costComponents {
		if !t.HasColumn(column) {
			continue
		}
		if sum := aggregator.SumColumn(t, column); sum > 0 {
			components[name] = sum
		}
	}
	if len(components) > 0 {
		f.CostComponents = components
	}

	if margins := aggregator.NumericColumn(t, "Gross_Percent"); len(margins) > 0 {
		f.MarginBins = binCounts(margins, marginBins)
	}

	f.ByCountry = financialsByCountry(t)
	return f
}

// financialsByCountry groups transactions by pickup country. Profit is
// derived after the reductions; margin means ignore rows with a null gross
// percent. Sorted by revenue descending.
func financialsByCountry(t *workbook.Table) []types.CountryFinancials {
	groups, err := aggregator.GroupBy(t, "PU_Country",
		aggregator.Spec{Column: "Net_Revenue", Reduce: aggregator.Sum},
		aggregator.Spec{Column: "Total_Cost", Reduce: aggregator.Sum},
		aggregator.Spec{Column: "Gross_Percent", Reduce: aggregator.Mean},
	)
	if err != nil {
		// Short cost/sales revisions may lack the country column; the
		// per-country view is then simply omitted.
		return nil
	}
	out := make([]types.CountryFinancials, 0, len(groups))
	for _, g := range groups {
		cf := types.CountryFinancials{
			Country:      g.Key,
			Revenue:      g.Values["Net_Revenue"],
			Cost:         g.Values["Total_Cost"],
			GrossPercent: g.Values["Gross_Percent"],
		}
		cf.Profit = cf.Revenue - cf.Cost
		out = append(out, cf)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	return out
}

func shares(volumes map[string]float64) []types.Share {
	if len(volumes) == 0 {
		return nil
	}
	total := 0.0
	codes := make([]string, 0, len(volumes))
	for code, v := range volumes {
		total += v
		codes = append(codes, code)
	}
	sort.Strings(codes)

	out := make([]types.Share, 0, len(codes))
	for _, code := range codes {
		s := types.Share{Code: code, Volume: volumes[code]}
		if total > 0 {
			s.SharePct = volumes[code] / total * 100
		}
		out = append(out, s)
	}
	return out
}

func networkAnalysis(m *lanes.Matrix) *types.NetworkAnalysis {
	n := &types.NetworkAnalysis{
		Stats:           m.NetworkStats(),
		TopOrigins:      m.OriginTotals(),
		TopDestinations: m.DestinationTotals(),
	}
	if len(n.TopOrigins) > topLanes {
		n.TopOrigins = n.TopOrigins[:topLanes]
	}
	if len(n.TopDestinations) > topLanes {
		n.TopDestinations = n.TopDestinations[:topLanes]
	}
	return n
}
