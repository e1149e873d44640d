package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"constructionbilling/services"
)

// HandleOptions returns the static option lists the material and invoice
// forms render as dropdowns.
func HandleOptions() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, map[string]any{
			"units":         services.UnitOptions,
			"invoice_types": services.InvoiceTypeOptions,
		})
	}
}
