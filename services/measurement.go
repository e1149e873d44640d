package services

// MeasurementEntry is one measurement row for a single material:
// No × L × B × D = Quantity. An explicitly supplied quantity wins over the
// computed product.
type MeasurementEntry struct {
	PileDescription string   `json:"pile_description"`
	NoOfItems       float64  `json:"no_of_items"`
	Length          float64  `json:"length"`
	Breadth         float64  `json:"breadth"`
	Depth           float64  `json:"depth"`
	Quantity        *float64 `json:"quantity"`
}

// EntryQuantity returns the entry's effective quantity: the explicit value
// when present, otherwise No × L × B × D.
func (e MeasurementEntry) EntryQuantity() float64 {
	if e.Quantity != nil {
		return *e.Quantity
	}
	return e.NoOfItems * e.Length * e.Breadth * e.Depth
}

// TotalQuantity sums the effective quantities of all entries.
func TotalQuantity(entries []MeasurementEntry) float64 {
	var total float64
	for _, e := range entries {
		total += e.EntryQuantity()
	}
	return total
}

// MeasurementSheet holds everything the measurement-sheet renderers need.
// NonSSR marks an item the rate schedule does not price; its unit is left
// blank on the sheet.
type MeasurementSheet struct {
	Description string
	SSRItemNo   string
	BOQItemNo   string
	Unit        string
	NonSSR      bool
	Entries     []MeasurementEntry
	TotalQty    float64
}

// BuildMeasurementSheet resolves the item description and assembles the
// sheet. A zero total quantity or a failed SSR match marks the item
// non-SSR; the BOQ item number is attached independently when the BOQ
// knows the description.
func BuildMeasurementSheet(resolver *Resolver, description string, entries []MeasurementEntry) (MeasurementSheet, error) {
	sheet := MeasurementSheet{
		Description: description,
		Entries:     entries,
		TotalQty:    TotalQuantity(entries),
	}

	if sheet.TotalQty > 0 {
		res, err := resolver.Resolve(description, sheet.TotalQty)
		if err != nil {
			return MeasurementSheet{}, err
		}
		if res.Status == StatusMatch {
			sheet.SSRItemNo = res.SSRItemNo
			sheet.Unit = res.Unit
		} else {
			sheet.NonSSR = true
		}
	} else {
		sheet.NonSSR = true
	}

	if itemNo, ok := resolver.LookupBOQItemNo(description); ok {
		sheet.BOQItemNo = itemNo
	}

	return sheet, nil
}
