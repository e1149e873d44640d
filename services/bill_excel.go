package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateBillExcel renders the running-account bill as an Excel workbook
// mirroring the PDF's 10-column layout, and returns the file bytes.
func GenerateBillExcel(data BillData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Materials Bill"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// Columns A-J; the wide one is "Items of work".
	widths := []float64{10, 10, 10, 12, 60, 12, 10, 14, 14, 10}
	for i, w := range widths {
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(sheetName, colName, colName, w); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", colName, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	// Built-in number format 2 is "0.00".
	numberStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return nil, fmt.Errorf("create number style: %w", err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10},
	})
	if err != nil {
		return nil, fmt.Errorf("create bold style: %w", err)
	}

	headers := []any{
		"", "", "",
		"Quantity",
		"Items of work (Item No + Description)",
		"Rate",
		"Unit",
		"Amount (Col 8)",
		"Amount (Col 9)",
		"",
	}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "J1", headerStyle); err != nil {
		return nil, fmt.Errorf("style header row: %w", err)
	}

	rowNum := 2
	for _, r := range data.Rows {
		itemNo := r.BOQItemNo
		itemLabel := "Item"
		if itemNo != "" {
			itemLabel = fmt.Sprintf("Item No. %s", itemNo)
		}
		itemText := itemLabel
		if r.Description != "" {
			itemText = fmt.Sprintf("%s - %s", itemLabel, r.Description)
		}

		cells := []any{
			"", "", "",
			r.Quantity,
			itemText,
			r.BaseRate,
			r.Unit,
			r.Amount,
			r.Amount,
			"",
		}
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", rowNum), &cells); err != nil {
			return nil, fmt.Errorf("write row %d: %w", rowNum, err)
		}
		rowNum++
	}

	// Totals block, same shape as the PDF footer.
	rowNum++
	totalRows := []struct {
		label string
		value float64
		bold  bool
	}{
		{"A)", data.Totals.Subtotal, true},
		{"(-)", 0, false},
		{"", data.Totals.Subtotal, false},
		{"18% GST", data.Totals.GSTAmount, false},
		{"Total", data.Totals.GrandTotal, true},
		{"Price Escallation", 0, false},
		{"Grand Total", data.Totals.GrandTotal, true},
	}
	for _, tr := range totalRows {
		cells := []any{"", "", "", "", tr.label, "", "", tr.value, tr.value, ""}
		addr := fmt.Sprintf("A%d", rowNum)
		if err := f.SetSheetRow(sheetName, addr, &cells); err != nil {
			return nil, fmt.Errorf("write totals row %d: %w", rowNum, err)
		}
		if tr.bold {
			if err := f.SetCellStyle(sheetName, fmt.Sprintf("E%d", rowNum), fmt.Sprintf("E%d", rowNum), boldStyle); err != nil {
				return nil, fmt.Errorf("style totals row %d: %w", rowNum, err)
			}
		}
		rowNum++
	}

	// Amount in words beneath the totals.
	wordsAddr := fmt.Sprintf("E%d", rowNum)
	if err := f.SetCellValue(sheetName, wordsAddr, "Grand Total (in words): "+AmountToWords(data.Totals.GrandTotal)); err != nil {
		return nil, fmt.Errorf("write amount in words: %w", err)
	}

	// 0.00 format on the numeric columns (Quantity, Rate, both Amounts).
	lastRow := rowNum - 1
	for _, colRange := range [][2]string{{"D2", fmt.Sprintf("D%d", lastRow)}, {"F2", fmt.Sprintf("F%d", lastRow)}, {"H2", fmt.Sprintf("I%d", lastRow)}} {
		if err := f.SetCellStyle(sheetName, colRange[0], colRange[1], numberStyle); err != nil {
			return nil, fmt.Errorf("apply number format: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}
