package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateMeasurementExcel renders an item measurement sheet as an Excel
// workbook: the item description and resolved item numbers on top, then one
// row per measurement entry with the No × L × B × D quantity.
func GenerateMeasurementExcel(sheet MeasurementSheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Material Measurement"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	if err := f.SetCellValue(sheetName, "A1", "Item Description:"); err != nil {
		return nil, fmt.Errorf("write description label: %w", err)
	}
	if err := f.SetCellValue(sheetName, "B1", sheet.Description); err != nil {
		return nil, fmt.Errorf("write description: %w", err)
	}

	ssrLabel := sheet.SSRItemNo
	if sheet.NonSSR {
		ssrLabel = "NON SSR ITEM"
	}
	if err := f.SetCellValue(sheetName, "A2", "SSR Item No:"); err != nil {
		return nil, fmt.Errorf("write SSR label: %w", err)
	}
	if err := f.SetCellValue(sheetName, "B2", ssrLabel); err != nil {
		return nil, fmt.Errorf("write SSR item no: %w", err)
	}

	headers := []any{"Sr. No.", "Pile Description", "No", "Length", "Breadth", "Depth", "Quantity"}
	const headerRow = 4
	if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", headerRow), &headers); err != nil {
		return nil, fmt.Errorf("write table header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetCellStyle(sheetName, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("G%d", headerRow), headerStyle); err != nil {
		return nil, fmt.Errorf("style table header: %w", err)
	}

	rowNum := headerRow + 1
	for i, e := range sheet.Entries {
		cells := []any{
			i + 1,
			e.PileDescription,
			e.NoOfItems,
			e.Length,
			e.Breadth,
			e.Depth,
			e.EntryQuantity(),
		}
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", rowNum), &cells); err != nil {
			return nil, fmt.Errorf("write entry row %d: %w", rowNum, err)
		}
		rowNum++
	}

	if err := f.SetCellValue(sheetName, fmt.Sprintf("F%d", rowNum), "Total Quantity:"); err != nil {
		return nil, fmt.Errorf("write total label: %w", err)
	}
	if err := f.SetCellValue(sheetName, fmt.Sprintf("G%d", rowNum), sheet.TotalQty); err != nil {
		return nil, fmt.Errorf("write total quantity: %w", err)
	}

	for col := 1; col <= 7; col++ {
		colName, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return nil, fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(sheetName, colName, colName, 18); err != nil {
			return nil, fmt.Errorf("set col width: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}
