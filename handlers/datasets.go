package handlers

import (
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"constructionbilling/services"
)

// datasetImporter converts an uploaded workbook into a JSON dataset file.
type datasetImporter func(r io.Reader, dataDir string) (services.DatasetImportResult, error)

// HandleSSRDatasetUpload replaces the SSR rate schedule from an uploaded
// xlsx workbook and invalidates the reference data cache.
func HandleSSRDatasetUpload(store *services.Store, dataDir string) func(*core.RequestEvent) error {
	return handleDatasetUpload("ssr", services.ImportSSRWorkbook, store, dataDir)
}

// HandleBOQDatasetUpload replaces the BOQ quantity schedule from an
// uploaded xlsx workbook and invalidates the reference data cache.
func HandleBOQDatasetUpload(store *services.Store, dataDir string) func(*core.RequestEvent) error {
	return handleDatasetUpload("boq", services.ImportBOQWorkbook, store, dataDir)
}

func handleDatasetUpload(name string, importFn datasetImporter, store *services.Store, dataDir string) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing file upload"})
		}
		defer file.Close()

		if !strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx") {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Only .xlsx files are allowed"})
		}

		result, err := importFn(file, dataDir)
		if err != nil {
			log.Printf("datasets: %s import failed: %v", name, err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		store.Invalidate()
		log.Printf("datasets: %s dataset replaced (%d imported, %d skipped)", name, result.Imported, result.Skipped)

		return e.JSON(http.StatusOK, result)
	}
}
