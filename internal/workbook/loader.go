package workbook

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"

	"tms-insights-go/internal/logger"
)

// ErrFileFormat means the uploaded bytes are not a spreadsheet container we
// can open. It is the only user-visible load failure; everything finer
// grained degrades to omission instead.
var ErrFileFormat = errors.New("unsupported spreadsheet format")

// Open parses uploaded bytes as a workbook. It tries the xlsx container
// first, then the legacy BIFF .xls container the TMS export tool still
// produces for older reports.
func Open(data []byte) (*Workbook, error) {
	log := logger.New().WithField("component", "workbook.loader")

	if wb, err := openXLSX(data); err == nil {
		log.WithField("sheets", len(wb.Names())).Debug("opened xlsx workbook")
		return wb, nil
	}

	wb, err := openXLS(data)
	if err != nil {
		log.WithField("bytes", len(data)).Warn("bytes are neither xlsx nor xls")
		return nil, fmt.Errorf("%w: %v", ErrFileFormat, err)
	}
	log.WithField("sheets", len(wb.Names())).Debug("opened legacy xls workbook")
	return wb, nil
}

func openXLSX(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	wb := newWorkbook()
	for _, name := range f.GetSheetList() {
		// Raw values keep numbers and date serials numeric instead of
		// applying the sheet's display format.
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		sheet := make(Sheet, 0, len(rows))
		for _, row := range rows {
			cells := make([]Cell, len(row))
			for i, raw := range row {
				cells[i] = classify(raw)
			}
			sheet = append(sheet, cells)
		}
		wb.add(name, sheet)
	}
	return wb, nil
}

func openXLS(data []byte) (*Workbook, error) {
	book, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xls: %w", err)
	}

	wb := newWorkbook()
	for _, s := range book.GetSheets() {
		sheet := Sheet{}
		for _, row := range s.GetRows() {
			var cells []Cell
			for _, col := range row.GetCols() {
				if col == nil {
					cells = append(cells, Empty())
					continue
				}
				cells = append(cells, classify(col.GetString()))
			}
			sheet = append(sheet, cells)
		}
		wb.add(s.GetName(), sheet)
	}
	return wb, nil
}
