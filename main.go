package main

import (
	"log"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"constructionbilling/collections"
	"constructionbilling/handlers"
	"constructionbilling/services"
)

func main() {
	app := pocketbase.New()

	dataDir := os.Getenv("BILLING_DATA_DIR")
	if dataDir == "" {
		dataDir = "./sample_data"
	}

	store := services.NewStore(dataDir)
	resolver := services.NewResolver(store)

	// Create collections on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.JSON(http.StatusOK, map[string]string{"message": "Construction Billing API is running"})
		})

		// ── SSR rate preview (for the rate popup in the material form) ──
		se.Router.POST("/ssr/rate", handlers.HandleRatePreview(app, resolver))

		// ── Form dropdown options ────────────────────────────────
		se.Router.GET("/options", handlers.HandleOptions())

		// ── Materials CRUD ───────────────────────────────────────
		se.Router.GET("/materials", handlers.HandleMaterialList(app))
		se.Router.POST("/materials", handlers.HandleMaterialCreate(app))
		se.Router.DELETE("/materials/{id}", handlers.HandleMaterialDelete(app))

		// ── Full materials bill (all items) ──────────────────────
		se.Router.GET("/materials/bill/pdf", handlers.HandleBillPDF(app))
		se.Router.GET("/materials/bill/excel", handlers.HandleBillExcel(app))

		// ── Single material measurement sheet ────────────────────
		se.Router.POST("/materials/single-bill/pdf", handlers.HandleMeasurementPDF(app, resolver))
		se.Router.POST("/materials/single-bill/excel", handlers.HandleMeasurementExcel(app, resolver))

		// ── Invoices ─────────────────────────────────────────────
		se.Router.GET("/invoices", handlers.HandleInvoiceList(app))
		se.Router.POST("/invoices", handlers.HandleInvoiceCreate(app))
		se.Router.GET("/invoices/{id}", handlers.HandleInvoiceView(app))

		// ── Reference dataset uploads ────────────────────────────
		se.Router.POST("/datasets/ssr", handlers.HandleSSRDatasetUpload(store, dataDir))
		se.Router.POST("/datasets/boq", handlers.HandleBOQDatasetUpload(store, dataDir))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
