// Package export writes rendered reports as spreadsheets.
package export

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"amparo/internal/reporting/models"
)

// ContentTypeXLSX is the media type of WriteXLSX output.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	maxSheetName = 31
	minColWidth  = 8.0
	maxColWidth  = 60.0
)

// WriteXLSX writes t as a single-sheet workbook: the title on the first row,
// the column labels on the second and one row per record below.
func WriteXLSX(w io.Writer, t *models.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(t.Name)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return fmt.Errorf("create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := f.SetCellValue(sheet, "A1", t.Title); err != nil {
		return fmt.Errorf("set title: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", titleStyle); err != nil {
		return fmt.Errorf("style title: %w", err)
	}

	widths := make([]float64, len(t.Columns))
	header := make([]any, len(t.Columns))
	for i, label := range t.Columns {
		header[i] = label
		widths[i] = width(label)
	}
	if err := f.SetSheetRow(sheet, "A2", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if len(t.Columns) > 0 {
		last, err := excelize.CoordinatesToCellName(len(t.Columns), 2)
		if err != nil {
			return fmt.Errorf("header range: %w", err)
		}
		if err := f.SetCellStyle(sheet, "A2", last, headerStyle); err != nil {
			return fmt.Errorf("style header: %w", err)
		}
	}

	for r, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+3)
		if err != nil {
			return fmt.Errorf("row %d: %w", r, err)
		}
		values := make([]any, len(row))
		for i, v := range row {
			values[i] = v
			if i < len(widths) {
				widths[i] = max(widths[i], width(v))
			}
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", r, err)
		}
	}

	for i, wd := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
		if err := f.SetColWidth(sheet, col, col, wd); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// FileName is the download name of a report.
func FileName(t *models.Table) string {
	return "amparo-" + t.Name + ".xlsx"
}

func sheetName(name string) string {
	if name == "" {
		return "Report"
	}
	if len(name) > maxSheetName {
		return name[:maxSheetName]
	}
	return name
}

func width(s string) float64 {
	return min(maxColWidth, max(minColWidth, float64(utf8.RuneCountInString(s))+2))
}
