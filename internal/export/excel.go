// Package export renders an analysis result back out as a compact xlsx
// summary workbook, one sheet per dashboard view.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"tms-insights-go/internal/types"
)

// Summary writes the KPI summary workbook for an analysis result.
func Summary(res *types.Result) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})

	writeOverview(f, headerStyle, res)
	if res.Volumes != nil {
		writeVolumes(f, headerStyle, res.Volumes)
	}
	if res.OTP != nil {
		writeOTP(f, headerStyle, res.OTP)
	}
	if res.Financial != nil {
		writeFinancials(f, headerStyle, res.Financial)
	}

	f.DeleteSheet("Sheet1")

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write summary workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeOverview(f *excelize.File, style int, res *types.Result) {
	const sheet = "Overview"
	f.NewSheet(sheet)
	setHeader(f, sheet, style, 1, "Metric", "Value")

	rows := [][]any{
		{"Total Volume (pieces)", res.Overview.TotalVolume},
		{"Total Orders", res.Overview.TotalOrders},
		{"OTP Rate (%)", res.Overview.OTPRate},
		{"Revenue", res.Overview.TotalRevenue},
		{"Cost", res.Overview.TotalCost},
		{"Profit", res.Overview.Profit},
		{"Margin (%)", res.Overview.MarginPct},
	}
	writeRows(f, sheet, 2, rows)
}

func writeVolumes(f *excelize.File, style int, v *types.VolumeAnalysis) {
	const sheet = "Volumes"
	f.NewSheet(sheet)
	setHeader(f, sheet, style, 1, "Code", "Volume", "Share %")

	row := 2
	for _, s := range v.ServiceShares {
		writeRows(f, sheet, row, [][]any{{s.Code, s.Volume, s.SharePct}})
		row++
	}
	for _, s := range v.CountryShares {
		writeRows(f, sheet, row, [][]any{{s.Code, s.Volume, s.SharePct}})
		row++
	}
}

func writeOTP(f *excelize.File, style int, a *types.OTPAnalysis) {
	const sheet = "OTP"
	f.NewSheet(sheet)
	setHeader(f, sheet, style, 1, "Metric", "Value")
	writeRows(f, sheet, 2, [][]any{
		{"Total Orders", a.TotalOrders},
		{"On Time", a.OnTime},
		{"Late", a.Late},
		{"OTP Rate (%)", a.RatePct},
	})

	row := 7
	setHeader(f, sheet, style, row, "QC Reason", "Count")
	row++
	for _, kv := range a.QCReasons {
		writeRows(f, sheet, row, [][]any{{kv.Key, kv.Count}})
		row++
	}
}

func writeFinancials(f *excelize.File, style int, fin *types.FinancialAnalysis) {
	const sheet = "Financials"
	f.NewSheet(sheet)
	setHeader(f, sheet, style, 1, "Country", "Revenue", "Cost", "Profit", "Margin")

	row := 2
	for _, c := range fin.ByCountry {
		writeRows(f, sheet, row, [][]any{{c.Country, c.Revenue, c.Cost, c.Profit, c.GrossPercent}})
		row++
	}
}

func setHeader(f *excelize.File, sheet string, style, row int, names ...string) {
	for i, name := range names {
		cell := cellAddr(i, row)
		f.SetCellValue(sheet, cell, name)
		f.SetCellStyle(sheet, cell, cell, style)
	}
}

func writeRows(f *excelize.File, sheet string, start int, rows [][]any) {
	for r, row := range rows {
		for c, v := range row {
			f.SetCellValue(sheet, cellAddr(c, start+r), v)
		}
	}
}

func cellAddr(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col+1, row)
	return name
}
