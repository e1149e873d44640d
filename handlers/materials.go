package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// MaterialRequest is the body of POST /materials. The pricing fields are
// whatever the rate preview returned (or manual entry for non-SSR items).
type MaterialRequest struct {
	Description string  `json:"description"`
	SSRItemNo   string  `json:"ssr_item_no"`
	BOQItemNo   string  `json:"boq_item_no"`
	Unit        string  `json:"unit"`
	Quantity    float64 `json:"quantity"`
	BaseRate    float64 `json:"base_rate"`
	GSTRate     float64 `json:"gst_rate"`
	FinalRate   float64 `json:"final_rate"`
	TotalAmount float64 `json:"total_amount"`
	IsNonSSR    bool    `json:"is_non_ssr"`
}

// materialJSON renders a material record for API responses.
func materialJSON(rec *core.Record) map[string]any {
	return map[string]any{
		"id":           rec.Id,
		"description":  rec.GetString("description"),
		"ssr_item_no":  rec.GetString("ssr_item_no"),
		"boq_item_no":  rec.GetString("boq_item_no"),
		"unit":         rec.GetString("unit"),
		"quantity":     rec.GetFloat("quantity"),
		"base_rate":    rec.GetFloat("base_rate"),
		"gst_rate":     rec.GetFloat("gst_rate"),
		"final_rate":   rec.GetFloat("final_rate"),
		"total_amount": rec.GetFloat("total_amount"),
		"is_non_ssr":   rec.GetBool("is_non_ssr"),
	}
}

// HandleMaterialList returns all materials in creation order.
func HandleMaterialList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("materials", "", "created", 0, 0, nil)
		if err != nil {
			log.Printf("materials: could not list materials: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		out := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			out = append(out, materialJSON(rec))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleMaterialCreate saves a new material. The quantity arriving here is
// already the summed total from the measurement entries.
func HandleMaterialCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req MaterialRequest
		if err := e.BindBody(&req); err != nil {
			log.Printf("materials: could not parse body: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}
		if req.Description == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Description is required"})
		}

		col, err := app.FindCollectionByNameOrId("materials")
		if err != nil {
			log.Printf("materials: could not find materials collection: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		rec := core.NewRecord(col)
		rec.Set("description", req.Description)
		rec.Set("ssr_item_no", req.SSRItemNo)
		rec.Set("boq_item_no", req.BOQItemNo)
		rec.Set("unit", req.Unit)
		rec.Set("quantity", req.Quantity)
		rec.Set("base_rate", req.BaseRate)
		rec.Set("gst_rate", req.GSTRate)
		rec.Set("final_rate", req.FinalRate)
		rec.Set("total_amount", req.TotalAmount)
		rec.Set("is_non_ssr", req.IsNonSSR)

		if err := app.Save(rec); err != nil {
			log.Printf("materials: could not save material: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		return e.JSON(http.StatusOK, materialJSON(rec))
	}
}

// HandleMaterialDelete removes a material by id.
func HandleMaterialDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		rec, err := app.FindRecordById("materials", id)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Material not found"})
		}

		if err := app.Delete(rec); err != nil {
			log.Printf("materials: could not delete material %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		}

		return e.JSON(http.StatusOK, map[string]bool{"success": true})
	}
}
