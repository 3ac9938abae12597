package workbook

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Kind tags the native type of a spreadsheet cell.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindNumber
	KindText
	KindDate
)

// Cell is one spreadsheet cell with its native type preserved:
// numbers stay numeric, blanks stay empty, dates stay dates.
type Cell struct {
	Kind   Kind
	Number float64
	Text   string
	Date   time.Time
}

func Empty() Cell           { return Cell{Kind: KindEmpty} }
func Number(v float64) Cell { return Cell{Kind: KindNumber, Number: v} }
func Text(s string) Cell    { return Cell{Kind: KindText, Text: s} }
func Date(t time.Time) Cell { return Cell{Kind: KindDate, Date: t} }

func (c Cell) IsEmpty() bool { return c.Kind == KindEmpty }

// Float returns the cell's numeric value and whether it has one.
func (c Cell) Float() (float64, bool) {
	if c.Kind != KindNumber {
		return 0, false
	}
	return c.Number, true
}

// String renders the cell the way the raw report shows it.
func (c Cell) String() string {
	switch c.Kind {
	case KindNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case KindText:
		return c.Text
	case KindDate:
		return c.Date.Format("2006-01-02")
	default:
		return ""
	}
}

func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case KindNumber:
		return json.Marshal(c.Number)
	case KindText:
		return json.Marshal(c.Text)
	case KindDate:
		return json.Marshal(c.Date.Format(time.RFC3339))
	default:
		return []byte("null"), nil
	}
}

// classify turns a raw cell string into a typed Cell. Blank strings become
// empty cells, anything that parses as a float stays numeric.
func classify(raw string) Cell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Empty()
	}
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Number(v)
	}
	return Text(raw)
}

// Sheet is the raw 2-D contents of one workbook sheet.
type Sheet [][]Cell

// Workbook is an ordered mapping from sheet name to raw contents.
type Workbook struct {
	names  []string
	sheets map[string]Sheet
}

func newWorkbook() *Workbook {
	return &Workbook{sheets: make(map[string]Sheet)}
}

func (w *Workbook) add(name string, s Sheet) {
	if _, ok := w.sheets[name]; !ok {
		w.names = append(w.names, name)
	}
	w.sheets[name] = s
}

// Names returns sheet names in workbook order.
func (w *Workbook) Names() []string { return w.names }

// Sheet returns the named sheet's raw contents, if present.
func (w *Workbook) Sheet(name string) (Sheet, bool) {
	s, ok := w.sheets[name]
	return s, ok
}

// Table is a sheet reshaped into tabular form: the first row becomes the
// column names, the rest become data rows.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]Cell `json:"rows"`
}

// TableOf consumes the first row of a sheet as its header. Sheets shorter
// than one row produce an empty table.
func TableOf(s Sheet) *Table {
	t := &Table{}
	if len(s) == 0 {
		return t
	}
	for _, c := range s[0] {
		t.Columns = append(t.Columns, strings.TrimSpace(c.String()))
	}
	t.Rows = s[1:]
	return t
}

// ColumnIndex returns the position of a named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool { return t.ColumnIndex(name) >= 0 }

// Column collects the named column's cells, padding short rows with empties.
func (t *Table) Column(name string) []Cell {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	out := make([]Cell, 0, len(t.Rows))
	for _, row := range t.Rows {
		if idx < len(row) {
			out = append(out, row[idx])
		} else {
			out = append(out, Empty())
		}
	}
	return out
}

// SetColumn replaces the named column's cells in place.
func (t *Table) SetColumn(name string, cells []Cell) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return
	}
	for i := range t.Rows {
		if i < len(cells) && idx < len(t.Rows[i]) {
			t.Rows[i][idx] = cells[i]
		}
	}
}

// Len is the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }
