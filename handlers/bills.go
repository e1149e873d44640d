package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"constructionbilling/services"
)

// MeasurementRequest is the body of the single-material bill endpoints:
// the item description plus its measurement rows.
type MeasurementRequest struct {
	Description string                      `json:"description"`
	Entries     []services.MeasurementEntry `json:"entries"`
}

// billRows loads all materials and maps them onto bill rows.
func billRows(app *pocketbase.PocketBase) ([]services.BillRow, error) {
	records, err := app.FindRecordsByFilter("materials", "", "created", 0, 0, nil)
	if err != nil {
		return nil, err
	}

	rows := make([]services.BillRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, services.BillRow{
			BOQItemNo:   rec.GetString("boq_item_no"),
			Description: rec.GetString("description"),
			Quantity:    rec.GetFloat("quantity"),
			BaseRate:    rec.GetFloat("base_rate"),
			Unit:        rec.GetString("unit"),
			Amount:      rec.GetFloat("total_amount"),
		})
	}
	return rows, nil
}

func serveFile(e *core.RequestEvent, contentType, filename string, body []byte) error {
	e.Response.Header().Set("Content-Type", contentType)
	e.Response.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	e.Response.WriteHeader(http.StatusOK)
	_, err := e.Response.Write(body)
	return err
}

// HandleBillPDF renders the running-account bill over all materials as PDF.
func HandleBillPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rows, err := billRows(app)
		if err != nil {
			log.Printf("bills: could not load materials: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}
		if len(rows) == 0 {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "No materials to include in bill"})
		}

		data := services.BuildBillData(rows, time.Now().Format("2006-01-02"))
		pdf, err := services.GenerateBillPDF(data)
		if err != nil {
			log.Printf("bills: could not generate bill PDF: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		return serveFile(e, "application/pdf", "materials_bill.pdf", pdf)
	}
}

// HandleBillExcel renders the running-account bill over all materials as an
// Excel workbook.
func HandleBillExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rows, err := billRows(app)
		if err != nil {
			log.Printf("bills: could not load materials: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}
		if len(rows) == 0 {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "No materials to include in bill"})
		}

		data := services.BuildBillData(rows, time.Now().Format("2006-01-02"))
		xlsx, err := services.GenerateBillExcel(data)
		if err != nil {
			log.Printf("bills: could not generate bill Excel: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		return serveFile(e,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			"materials_bill.xlsx", xlsx)
	}
}

// HandleMeasurementPDF renders the measurement sheet for a single item as
// PDF. The SSR/BOQ item numbers are resolved from the description.
func HandleMeasurementPDF(app *pocketbase.PocketBase, resolver *services.Resolver) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req MeasurementRequest
		if err := e.BindBody(&req); err != nil {
			log.Printf("bills: could not parse measurement body: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}
		if len(req.Entries) == 0 {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "No measurement entries provided"})
		}

		sheet, err := services.BuildMeasurementSheet(resolver, req.Description, req.Entries)
		if err != nil {
			log.Printf("bills: reference data unavailable: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Reference data unavailable"})
		}

		pdf, err := services.GenerateMeasurementPDF(sheet)
		if err != nil {
			log.Printf("bills: could not generate measurement PDF: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		return serveFile(e, "application/pdf", "material_measurement_sheet.pdf", pdf)
	}
}

// HandleMeasurementExcel renders the measurement sheet for a single item as
// an Excel workbook.
func HandleMeasurementExcel(app *pocketbase.PocketBase, resolver *services.Resolver) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req MeasurementRequest
		if err := e.BindBody(&req); err != nil {
			log.Printf("bills: could not parse measurement body: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}
		if len(req.Entries) == 0 {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "No measurement entries provided"})
		}

		sheet, err := services.BuildMeasurementSheet(resolver, req.Description, req.Entries)
		if err != nil {
			log.Printf("bills: reference data unavailable: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Reference data unavailable"})
		}

		xlsx, err := services.GenerateMeasurementExcel(sheet)
		if err != nil {
			log.Printf("bills: could not generate measurement Excel: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		return serveFile(e,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			"single_material_bill.xlsx", xlsx)
	}
}
