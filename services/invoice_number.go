package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
)

// GetFiscalYear returns the Indian fiscal year string for a given date.
// Indian fiscal year runs April to March.
// Jan 2026 → "25-26", May 2026 → "26-27"
func GetFiscalYear(t time.Time) string {
	year := t.Year()
	month := t.Month()

	var startYear int
	if month >= time.April {
		startYear = year
	} else {
		startYear = year - 1
	}
	endYear := startYear + 1

	return fmt.Sprintf("%02d-%02d", startYear%100, endYear%100)
}

// formatInvoiceNumber constructs the invoice number string from components.
func formatInvoiceNumber(fiscalYear string, sequence int) string {
	return fmt.Sprintf("INV-%s-%03d", fiscalYear, sequence)
}

// GenerateInvoiceNumber creates the next invoice number.
// Format: INV-{fiscal_year}-{sequence}
// - fiscal_year: Indian fiscal year (Apr-Mar), e.g., "25-26"
// - sequence: 3-digit zero-padded, restarting each fiscal year
func GenerateInvoiceNumber(app *pocketbase.PocketBase, now time.Time) string {
	fiscalYear := GetFiscalYear(now)
	prefix := fmt.Sprintf("INV-%s-", fiscalYear)

	existing, err := app.FindRecordsByFilter(
		"invoices",
		"invoice_number ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{"prefix": prefix + "%"},
	)
	if err != nil {
		// Collection missing or no records: start at 1.
		existing = nil
	}

	return formatInvoiceNumber(fiscalYear, len(existing)+1)
}
