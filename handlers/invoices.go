package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"constructionbilling/services"
)

// InvoiceItemRequest references a material by id with a billed quantity.
type InvoiceItemRequest struct {
	MaterialID string  `json:"material_id"`
	Quantity   float64 `json:"quantity"`
}

// InvoiceRequest is the body of POST /invoices.
type InvoiceRequest struct {
	ClientName  string               `json:"client_name"`
	SiteName    string               `json:"site_name"`
	InvoiceType string               `json:"invoice_type"`
	Items       []InvoiceItemRequest `json:"items"`
}

func invoiceJSON(app *pocketbase.PocketBase, rec *core.Record) map[string]any {
	items, err := app.FindRecordsByFilter("invoice_items", "invoice = {:invoice}", "created", 0, 0, map[string]any{"invoice": rec.Id})
	if err != nil {
		log.Printf("invoices: could not load items of invoice %s: %v", rec.Id, err)
	}

	itemList := make([]map[string]any, 0, len(items))
	for _, it := range items {
		itemList = append(itemList, map[string]any{
			"id":          it.Id,
			"material_id": it.GetString("material"),
			"quantity":    it.GetFloat("quantity"),
			"rate":        it.GetFloat("rate"),
			"amount":      it.GetFloat("amount"),
		})
	}

	return map[string]any{
		"id":             rec.Id,
		"invoice_number": rec.GetString("invoice_number"),
		"client_name":    rec.GetString("client_name"),
		"site_name":      rec.GetString("site_name"),
		"invoice_type":   rec.GetString("invoice_type"),
		"created":        rec.GetString("created"),
		"items":          itemList,
	}
}

// HandleInvoiceCreate saves an invoice with its line items. The rate of
// each item is the referenced material's final (GST-inclusive) rate; the
// amount is rate times the billed quantity. Items referencing unknown
// materials are skipped.
func HandleInvoiceCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req InvoiceRequest
		if err := e.BindBody(&req); err != nil {
			log.Printf("invoices: could not parse body: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}
		if req.ClientName == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Client name is required"})
		}
		if req.InvoiceType == "" {
			req.InvoiceType = "general"
		}

		invoicesCol, err := app.FindCollectionByNameOrId("invoices")
		if err != nil {
			log.Printf("invoices: could not find invoices collection: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}
		itemsCol, err := app.FindCollectionByNameOrId("invoice_items")
		if err != nil {
			log.Printf("invoices: could not find invoice_items collection: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		invoice := core.NewRecord(invoicesCol)
		invoice.Set("invoice_number", services.GenerateInvoiceNumber(app, time.Now()))
		invoice.Set("client_name", req.ClientName)
		invoice.Set("site_name", req.SiteName)
		invoice.Set("invoice_type", req.InvoiceType)
		if err := app.Save(invoice); err != nil {
			log.Printf("invoices: could not save invoice: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		for _, item := range req.Items {
			material, err := app.FindRecordById("materials", item.MaterialID)
			if err != nil {
				log.Printf("invoices: material %s not found, skipping item", item.MaterialID)
				continue
			}

			rate := material.GetFloat("final_rate")
			rec := core.NewRecord(itemsCol)
			rec.Set("invoice", invoice.Id)
			rec.Set("material", material.Id)
			rec.Set("quantity", item.Quantity)
			rec.Set("rate", rate)
			rec.Set("amount", services.Round2(rate*item.Quantity))
			if err := app.Save(rec); err != nil {
				log.Printf("invoices: could not save invoice item: %v", err)
			}
		}

		return e.JSON(http.StatusOK, invoiceJSON(app, invoice))
	}
}

// HandleInvoiceList returns invoices, newest first.
func HandleInvoiceList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("invoices", "", "-created", 0, 0, nil)
		if err != nil {
			log.Printf("invoices: could not list invoices: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		out := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			out = append(out, invoiceJSON(app, rec))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleInvoiceView returns one invoice with its items.
func HandleInvoiceView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		rec, err := app.FindRecordById("invoices", id)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Invoice not found"})
		}

		return e.JSON(http.StatusOK, invoiceJSON(app, rec))
	}
}
