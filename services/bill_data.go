package services

// BillRow is one material line in the running-account bill.
type BillRow struct {
	BOQItemNo   string
	Description string
	Quantity    float64
	BaseRate    float64
	Unit        string
	Amount      float64
}

// BillData holds everything the bill renderers need: ordered rows plus the
// aggregate footer with the document-level 18% GST.
type BillData struct {
	Rows          []BillRow
	Totals        BillTotals
	GeneratedDate string
}

// BuildBillData assembles BillData from material rows, computing the
// footer totals over the per-row amounts.
func BuildBillData(rows []BillRow, generatedDate string) BillData {
	amounts := make([]float64, len(rows))
	for i, r := range rows {
		amounts[i] = r.Amount
	}
	return BillData{
		Rows:          rows,
		Totals:        CalcBillTotals(amounts),
		GeneratedDate: generatedDate,
	}
}
