// Package handlers wires the construction billing API onto PocketBase
// request events.
package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"constructionbilling/services"
)

// RateRequest is the body of POST /ssr/rate.
type RateRequest struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
}

// RateResponse is the rate preview returned to the material form. NonSSR
// items keep the historical "NON SSR ITEM" item-number text the frontend
// displays verbatim.
type RateResponse struct {
	SSRItemNo   string  `json:"ssr_item_no"`
	Unit        string  `json:"unit"`
	BaseRate    float64 `json:"base_rate"`
	GSTRate     float64 `json:"gst_rate"`
	FinalRate   float64 `json:"final_rate"`
	TotalAmount float64 `json:"total_amount"`
	BOQItemNo   string  `json:"boq_item_no"`
	NonSSR      bool    `json:"non_ssr"`
}

// HandleRatePreview returns a handler answering rate lookups for the
// material entry form: a priced SSR match, a non-SSR-but-tracked signal, or
// a 404 when neither schedule knows the description.
func HandleRatePreview(app *pocketbase.PocketBase, resolver *services.Resolver) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req RateRequest
		if err := e.BindBody(&req); err != nil {
			log.Printf("rate_preview: could not parse body: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}
		if req.Quantity == 0 {
			req.Quantity = 1.0
		}

		res, err := resolver.Resolve(req.Description, req.Quantity)
		if err != nil {
			log.Printf("rate_preview: reference data unavailable: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Reference data unavailable"})
		}

		switch res.Status {
		case services.StatusMatch:
			return e.JSON(http.StatusOK, RateResponse{
				SSRItemNo:   res.SSRItemNo,
				Unit:        res.Unit,
				BaseRate:    res.BaseRate,
				GSTRate:     res.GSTAmount,
				FinalRate:   res.FinalRate,
				TotalAmount: res.TotalAmount,
				BOQItemNo:   res.BOQItemNo,
			})
		case services.StatusNonSSR:
			return e.JSON(http.StatusOK, RateResponse{
				SSRItemNo: "NON SSR ITEM",
				BOQItemNo: res.BOQItemNo,
				NonSSR:    true,
			})
		default:
			return e.JSON(http.StatusNotFound, map[string]string{
				"error": "Item not found in SSR or BOQ for this description",
			})
		}
	}
}
