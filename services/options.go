package services

// UnitOptions is the list of Unit of Measurement options offered by the
// material entry form. SSR matches override the unit; non-SSR items pick
// from this list.
var UnitOptions = []string{
	"Nos",
	"Sqm",
	"Sqft",
	"Rmt",
	"Cum",
	"Kg",
	"MT",
	"Lot",
	"Set",
	"Lumpsum",
	"Ltr",
	"Pair",
	"Bag",
	"Box",
	"Roll",
	"Bundle",
	"Trip",
	"Day",
	"Month",
	"Hour",
}

// InvoiceTypeOptions is the list of invoice categories accepted by the
// invoices collection.
var InvoiceTypeOptions = []string{"general", "materials", "ssr_boq"}
