package dataset

import (
	"strings"
	"time"

	"tms-insights-go/internal/workbook"
)

// serialEpoch is the legacy spreadsheet day-count origin. It sits one day
// before 1900-01-01 because the original tool counts 1900 as a leap year;
// serial 0 is 1899-12-30 and serial 1 is 1899-12-31. Downstream reports rely
// on matching the source tool bit for bit, so this is not corrected here.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006 15:04",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"Jan 2, 2006",
	time.RFC3339,
}

// FromSerial converts a spreadsheet day-count into a calendar timestamp.
// Fractional days become time of day.
func FromSerial(serial float64) time.Time {
	return serialEpoch.Add(time.Duration(serial * float64(24*time.Hour)))
}

// NormalizeDates converts a column of date-like cells into calendar dates.
// Numeric cells are read as day-counts from the legacy epoch, text cells go
// through layout parsing, cells that are already dates pass through
// unchanged (the conversion is idempotent). A cell that cannot be converted
// becomes empty; the function itself never fails.
func NormalizeDates(col []workbook.Cell) []workbook.Cell {
	out := make([]workbook.Cell, len(col))
	for i, c := range col {
		switch c.Kind {
		case workbook.KindNumber:
			out[i] = workbook.Date(FromSerial(c.Number))
		case workbook.KindText:
			if t, ok := parseDateString(c.Text); ok {
				out[i] = workbook.Date(t)
			} else {
				out[i] = workbook.Empty()
			}
		default:
			out[i] = c
		}
	}
	return out
}

func parseDateString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
