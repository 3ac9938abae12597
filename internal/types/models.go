package types

import (
	"tms-insights-go/internal/aggregator"
	"tms-insights-go/internal/lanes"
	"tms-insights-go/internal/workbook"
)

// Datasets is the contract between the analysis core and whatever renders
// it: a mapping from logical dataset name to its normalized table or map.
// A nil field means the source sheet was absent from the upload.
type Datasets struct {
	RawData        *workbook.Table    `json:"raw_data,omitempty"`
	OTP            *workbook.Table    `json:"otp,omitempty"`
	ServiceVolumes map[string]float64 `json:"service_volumes,omitempty"`
	CountryVolumes map[string]float64 `json:"country_volumes,omitempty"`
	Lanes          *lanes.Matrix      `json:"lanes,omitempty"`
	CostSales      *workbook.Table    `json:"cost_sales,omitempty"`
}

// Map flattens the datasets to their logical names, omitting absent ones.
func (d Datasets) Map() map[string]any {
	out := map[string]any{}
	if d.RawData != nil {
		out["raw_data"] = d.RawData
	}
	if d.OTP != nil {
		out["otp"] = d.OTP
	}
	if d.ServiceVolumes != nil {
		out["service_volumes"] = d.ServiceVolumes
	}
	if d.CountryVolumes != nil {
		out["country_volumes"] = d.CountryVolumes
	}
	if d.Lanes != nil {
		out["lanes"] = d.Lanes
	}
	if d.CostSales != nil {
		out["cost_sales"] = d.CostSales
	}
	return out
}

// Overview is the executive KPI block.
type Overview struct {
	TotalVolume  float64 `json:"total_volume"`
	TotalOrders  int     `json:"total_orders"`
	OTPRate      float64 `json:"otp_rate_percent"`
	TotalRevenue float64 `json:"total_revenue"`
	TotalCost    float64 `json:"total_cost"`
	Profit       float64 `json:"profit"`
	MarginPct    float64 `json:"margin_percent"`
}

// TimeDiffStats summarizes the signed quoted-vs-actual delivery gap in days.
type TimeDiffStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// OTPAnalysis is the on-time-performance deep dive.
type OTPAnalysis struct {
	TotalOrders   int             `json:"total_orders"`
	OnTime        int             `json:"on_time"`
	Late          int             `json:"late"`
	RatePct       float64         `json:"rate_percent"`
	StatusCounts  []aggregator.KV `json:"status_counts"`
	QCReasons     []aggregator.KV `json:"qc_reasons,omitempty"`
	TimeDiffBins  []aggregator.KV `json:"time_diff_distribution,omitempty"`
	TimeDiffStats *TimeDiffStats  `json:"time_diff_stats,omitempty"`
}

// CountryFinancials is one pickup country's aggregated financial row.
// Profit and margin are derived after the reductions, not per row.
type CountryFinancials struct {
	Country      string  `json:"country"`
	Revenue      float64 `json:"revenue"`
	Cost         float64 `json:"cost"`
	Profit       float64 `json:"profit"`
	GrossPercent float64 `json:"gross_percent"`
}

// FinancialAnalysis is the cost/revenue/margin view.
type FinancialAnalysis struct {
	TotalRevenue   float64             `json:"total_revenue"`
	TotalCost      float64             `json:"total_cost"`
	Profit         float64             `json:"profit"`
	MarginPct      float64             `json:"margin_percent"`
	CostComponents map[string]float64  `json:"cost_components,omitempty"`
	MarginBins     []aggregator.KV     `json:"margin_distribution,omitempty"`
	ByCountry      []CountryFinancials `json:"by_country,omitempty"`
}

// Share is one code's slice of a volume total.
type Share struct {
	Code     string  `json:"code"`
	Volume   float64 `json:"volume"`
	SharePct float64 `json:"share_percent"`
}

// VolumeAnalysis is the volume view with per-code shares.
type VolumeAnalysis struct {
	ServiceShares []Share `json:"service_shares,omitempty"`
	CountryShares []Share `json:"country_shares,omitempty"`
}

// NetworkAnalysis is the lane network view.
type NetworkAnalysis struct {
	Stats           lanes.Stats   `json:"stats"`
	TopOrigins      []lanes.Total `json:"top_origins,omitempty"`
	TopDestinations []lanes.Total `json:"top_destinations,omitempty"`
}

// Result is everything one workbook load produces. Views whose source sheet
// was absent are nil.
type Result struct {
	Datasets  Datasets           `json:"datasets"`
	Overview  Overview           `json:"overview"`
	OTP       *OTPAnalysis       `json:"otp_analysis,omitempty"`
	Financial *FinancialAnalysis `json:"financial_analysis,omitempty"`
	Volumes   *VolumeAnalysis    `json:"volume_analysis,omitempty"`
	Network   *NetworkAnalysis   `json:"network_analysis,omitempty"`
}
