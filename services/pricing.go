// Package services implements the rate-resolution engine and billing
// document generation for the construction billing backend.
package services

import "math"

// GST rates. Per-item GST applies to each SSR-priced material; the bill GST
// applies once to the aggregated pre-tax total of a rendered bill. The two
// must never be conflated.
const (
	ItemGSTRate = 0.05
	BillGSTRate = 0.18
)

// Round2 rounds half away from zero to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ItemPricing holds the derived amounts for a single priced material.
type ItemPricing struct {
	BaseRate    float64
	GSTAmount   float64
	FinalRate   float64
	TotalAmount float64
}

// PriceItem derives GST, final rate and total amount from a base rate and
// quantity. Rounding is staged: each derived value is rounded to 2 decimals
// before the next is computed, so totals reproduce exactly.
func PriceItem(baseRate, qty float64) ItemPricing {
	gst := Round2(baseRate * ItemGSTRate)
	final := Round2(baseRate + gst)
	total := Round2(final * qty)
	return ItemPricing{
		BaseRate:    baseRate,
		GSTAmount:   gst,
		FinalRate:   final,
		TotalAmount: total,
	}
}

// BillTotals holds the aggregate footer of a running-account bill.
type BillTotals struct {
	Subtotal   float64
	GSTAmount  float64
	GrandTotal float64
}

// CalcBillTotals sums the per-item amounts and applies the document-level
// 18% GST on the aggregate.
func CalcBillTotals(amounts []float64) BillTotals {
	var subtotal float64
	for _, a := range amounts {
		subtotal += a
	}
	gst := Round2(subtotal * BillGSTRate)
	return BillTotals{
		Subtotal:   subtotal,
		GSTAmount:  gst,
		GrandTotal: Round2(subtotal + gst),
	}
}
