package services

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DatasetImportResult reports how a workbook import went. Rows without a
// description are skipped rather than failing the import.
type DatasetImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Workbook header aliases per canonical dataset field, compared after
// lowercasing and trimming. Source workbooks come from several departments
// and disagree on header spellings.
var ssrHeaderAliases = map[string][]string{
	"ssr_item_no":              {"ssr item no.", "ssr item no", "ssr_item_no", "item no"},
	"reference_no":             {"reference no.", "reference no", "reference_no"},
	"description":              {"description of the item", "description", "description of work"},
	"additional_specification": {"additional specification", "additional_specification"},
	"unit":                     {"unit"},
	"rate":                     {"rate", "completed rate", "completed rate for 2022-23 excluding gst in rs."},
}

var boqHeaderAliases = map[string][]string{
	"boq_item_no": {"boq_item_no.", "boq item no", "boq_item_no", "item no. from boq"},
	"description": {"description of work", "description_of_work", "description"},
	"boq_ref_page": {
		"boq_reference_page no", "boq_reference_page_no", "boq reference page no",
		"ssr page number for that item",
	},
	"quantity": {"quantity"},
}

// ImportSSRWorkbook parses an SSR rate-schedule workbook and replaces the
// JSON dataset in dataDir. The caller is responsible for invalidating any
// Store reading from that directory.
func ImportSSRWorkbook(r io.Reader, dataDir string) (DatasetImportResult, error) {
	records, result, err := parseWorkbook(r, ssrHeaderAliases, []string{"rate"})
	if err != nil {
		return DatasetImportResult{}, fmt.Errorf("SSR workbook: %w", err)
	}
	if err := writeDataset(filepath.Join(dataDir, SSRDatasetFile), records); err != nil {
		return DatasetImportResult{}, err
	}
	return result, nil
}

// ImportBOQWorkbook parses a BOQ workbook and replaces the JSON dataset in
// dataDir.
func ImportBOQWorkbook(r io.Reader, dataDir string) (DatasetImportResult, error) {
	records, result, err := parseWorkbook(r, boqHeaderAliases, []string{"quantity"})
	if err != nil {
		return DatasetImportResult{}, fmt.Errorf("BOQ workbook: %w", err)
	}
	if err := writeDataset(filepath.Join(dataDir, BOQDatasetFile), records); err != nil {
		return DatasetImportResult{}, err
	}
	return result, nil
}

// parseWorkbook reads the first sheet of an xlsx file, maps headers to
// canonical field keys via the alias table, and returns one record per data
// row with a non-empty description. Fields listed in numericFields are
// converted to float64 where they parse; unparsable values are left out so
// the dataset loader defaults them.
func parseWorkbook(r io.Reader, aliases map[string][]string, numericFields []string) ([]map[string]any, DatasetImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, DatasetImportResult{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, DatasetImportResult{}, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, DatasetImportResult{}, fmt.Errorf("workbook must contain a header row and at least one data row")
	}

	fieldByColumn := mapWorkbookHeaders(rows[0], aliases)

	numeric := make(map[string]bool, len(numericFields))
	for _, fld := range numericFields {
		numeric[fld] = true
	}

	var records []map[string]any
	var result DatasetImportResult

	for _, row := range rows[1:] {
		rec := make(map[string]any)
		for col, field := range fieldByColumn {
			if field == "" || col >= len(row) {
				continue
			}
			val := strings.TrimSpace(row[col])
			if val == "" {
				continue
			}
			if numeric[field] {
				if n, err := strconv.ParseFloat(val, 64); err == nil {
					rec[field] = n
				}
				continue
			}
			rec[field] = val
		}

		if desc, _ := rec["description"].(string); desc == "" {
			result.Skipped++
			continue
		}
		records = append(records, rec)
		result.Imported++
	}

	return records, result, nil
}

// mapWorkbookHeaders resolves each header cell to a canonical field key, or
// "" for unrecognized columns. The first column claiming a field wins.
func mapWorkbookHeaders(headers []string, aliases map[string][]string) []string {
	aliasToField := make(map[string]string)
	for field, names := range aliases {
		for _, name := range names {
			aliasToField[name] = field
		}
	}

	claimed := make(map[string]bool, len(aliases))
	mapped := make([]string, len(headers))
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		field, ok := aliasToField[norm]
		if !ok || claimed[field] {
			continue
		}
		claimed[field] = true
		mapped[i] = field
	}
	return mapped
}

func writeDataset(path string, records []map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write dataset %s: %w", path, err)
	}
	return nil
}
