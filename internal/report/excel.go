// Package report renders styled xlsx expense reports: a highlighted header,
// banded data rows, a currency-formatted amount column, a trailing TOTAL row,
// and a bar chart of spending by category.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"spendlens/internal/analyze"
	"spendlens/internal/core"
	"spendlens/internal/store"
)

// ErrExportFailed marks any failure to produce the report file. The
// destination is never left with a partially written workbook.
var ErrExportFailed = errors.New("export failed")

const SheetName = "Expense Summary"

var header = []string{"Date", "Category", "Amount", "Notes"}

type ExcelExporter struct {
	analyzer *analyze.Analyzer
}

func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{analyzer: analyze.New()}
}

// Export writes the report for the given snapshot to dest, finalizing via a
// temp file so failures cannot corrupt an existing report.
func (x *ExcelExporter) Export(ctx context.Context, expenses []core.Expense, dest string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := x.render(f, expenses); err != nil {
		slog.ErrorContext(ctx, "report render failed", "dest", dest, "error", err)
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	if dir := filepath.Dir(dest); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: create directory %s: %v", ErrExportFailed, dir, err)
		}
	}
	// Temp name keeps the .xlsx extension; excelize rejects unknown
	// workbook extensions on SaveAs.
	tmp := dest + ".tmp.xlsx"
	if err := f.SaveAs(tmp); err != nil {
		slog.ErrorContext(ctx, "report export failed", "dest", dest, "error", err)
		return fmt.Errorf("%w: write %s: %v", ErrExportFailed, tmp, err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: finalize %s: %v", ErrExportFailed, dest, err)
	}

	slog.InfoContext(ctx, "report exported", "dest", dest, "expenses", len(expenses))
	return nil
}

func (x *ExcelExporter) render(f *excelize.File, expenses []core.Expense) error {
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	for col, title := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(SheetName, cell, title); err != nil {
			return err
		}
	}
	for i, e := range expenses {
		row := i + 2
		values := []any{e.Date.String(), string(e.Category), e.Amount.Dollars(), e.Notes}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return err
			}
		}
	}

	totalRow := len(expenses) + 2
	total := x.analyzer.TotalSpending(expenses)
	if err := f.SetCellValue(SheetName, fmt.Sprintf("B%d", totalRow), store.TotalMarker); err != nil {
		return err
	}
	if err := f.SetCellValue(SheetName, fmt.Sprintf("C%d", totalRow), total.Dollars()); err != nil {
		return err
	}

	if err := x.applyStyles(f, totalRow); err != nil {
		return err
	}
	if len(expenses) > 0 {
		if err := x.addCategoryChart(f, expenses, totalRow); err != nil {
			return err
		}
	}
	return x.sizeColumns(f, expenses)
}

func (x *ExcelExporter) applyStyles(f *excelize.File, totalRow int) error {
	borders := []excelize.Border{
		{Type: "left", Style: 1, Color: "CCCCCC"},
		{Type: "right", Style: 1, Color: "CCCCCC"},
		{Type: "top", Style: 1, Color: "CCCCCC"},
		{Type: "bottom", Style: 1, Color: "CCCCCC"},
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 12},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"1F4E78"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    borders,
	})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", "D1", headerStyle); err != nil {
		return err
	}

	currencyFmt := `"$"#,##0.00`
	plainStyle, err := f.NewStyle(&excelize.Style{Border: borders})
	if err != nil {
		return err
	}
	bandStyle, err := f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"F2F2F2"}, Pattern: 1},
		Border: borders,
	})
	if err != nil {
		return err
	}
	currencyStyle, err := f.NewStyle(&excelize.Style{
		CustomNumFmt: &currencyFmt,
		Border:       borders,
	})
	if err != nil {
		return err
	}
	bandCurrencyStyle, err := f.NewStyle(&excelize.Style{
		CustomNumFmt: &currencyFmt,
		Fill:         excelize.Fill{Type: "pattern", Color: []string{"F2F2F2"}, Pattern: 1},
		Border:       borders,
	})
	if err != nil {
		return err
	}

	for row := 2; row < totalRow; row++ {
		rowStyle, amountStyle := plainStyle, currencyStyle
		if row%2 == 0 {
			rowStyle, amountStyle = bandStyle, bandCurrencyStyle
		}
		if err := f.SetCellStyle(SheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), rowStyle); err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetName, fmt.Sprintf("C%d", row), fmt.Sprintf("C%d", row), amountStyle); err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetName, fmt.Sprintf("D%d", row), fmt.Sprintf("D%d", row), rowStyle); err != nil {
			return err
		}
	}

	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: &currencyFmt,
		Border:       borders,
	})
	if err != nil {
		return err
	}
	return f.SetCellStyle(SheetName, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("D%d", totalRow), totalStyle)
}

// addCategoryChart writes a small category/total block beneath the table and
// charts it as a column chart.
func (x *ExcelExporter) addCategoryChart(f *excelize.File, expenses []core.Expense, totalRow int) error {
	totals := x.analyzer.TotalsByCategory(expenses)

	blockStart := totalRow + 2
	if err := f.SetCellValue(SheetName, fmt.Sprintf("A%d", blockStart), "Category"); err != nil {
		return err
	}
	if err := f.SetCellValue(SheetName, fmt.Sprintf("B%d", blockStart), "Total"); err != nil {
		return err
	}
	for i, ct := range totals {
		row := blockStart + 1 + i
		if err := f.SetCellValue(SheetName, fmt.Sprintf("A%d", row), string(ct.Category)); err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, fmt.Sprintf("B%d", row), ct.Total.Dollars()); err != nil {
			return err
		}
	}

	first, last := blockStart+1, blockStart+len(totals)
	return f.AddChart(SheetName, fmt.Sprintf("D%d", blockStart), &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$B$%d", SheetName, blockStart),
			Categories: fmt.Sprintf("'%s'!$A$%d:$A$%d", SheetName, first, last),
			Values:     fmt.Sprintf("'%s'!$B$%d:$B$%d", SheetName, first, last),
		}},
		Title: []excelize.RichTextRun{{Text: "Spending by Category"}},
		XAxis: excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Category"}}},
		YAxis: excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Amount ($)"}}},
	})
}

func (x *ExcelExporter) sizeColumns(f *excelize.File, expenses []core.Expense) error {
	widths := make([]int, len(header))
	for i, title := range header {
		widths[i] = len(title)
	}
	for _, e := range expenses {
		cells := []string{e.Date.String(), string(e.Category), e.Amount.String(), e.Notes}
		for i, cell := range cells {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetName, col, col, float64(w+4)); err != nil {
			return err
		}
	}
	return nil
}
