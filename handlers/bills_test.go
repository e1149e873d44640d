package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"constructionbilling/services"
	"constructionbilling/testhelpers"
)

func TestHandleBillPDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestMaterial(t, app, "Excavation in Soil", 10, 500)
	handler := HandleBillPDF(app)

	req := httptest.NewRequest(http.MethodGet, "/materials/bill/pdf", nil)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "materials_bill.pdf") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Error("body is not a PDF document")
	}
}

func TestHandleBillPDF_NoMaterials(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleBillPDF(app)

	req := httptest.NewRequest(http.MethodGet, "/materials/bill/pdf", nil)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No materials") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestHandleBillExcel(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestMaterial(t, app, "Excavation in Soil", 10, 500)
	handler := HandleBillExcel(app)

	req := httptest.NewRequest(http.MethodGet, "/materials/bill/excel", nil)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("Content-Type = %q", ct)
	}
	// xlsx files are zip archives.
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Error("body is not an xlsx workbook")
	}
}

func TestHandleBillExcel_NoMaterials(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleBillExcel(app)

	req := httptest.NewRequest(http.MethodGet, "/materials/bill/excel", nil)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func newMeasurementResolver(t *testing.T) *services.Resolver {
	t.Helper()
	return services.NewResolver(services.NewStore(testhelpers.NewDataDir(t)))
}

func TestHandleMeasurementPDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleMeasurementPDF(app, newMeasurementResolver(t))

	body := `{
		"description": "Excavation in Soil",
		"entries": [
			{"pile_description": "P1", "no_of_items": 2, "length": 5, "breadth": 1, "depth": 1}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/materials/single-bill/pdf", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Error("body is not a PDF document")
	}
}

func TestHandleMeasurementPDF_NoEntries(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleMeasurementPDF(app, newMeasurementResolver(t))

	req := httptest.NewRequest(http.MethodPost, "/materials/single-bill/pdf",
		strings.NewReader(`{"description": "Excavation in Soil", "entries": []}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No measurement entries") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestHandleMeasurementExcel(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleMeasurementExcel(app, newMeasurementResolver(t))

	body := `{
		"description": "Dewatering of foundation pit",
		"entries": [
			{"pile_description": "Pit", "quantity": 3.5}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/materials/single-bill/excel", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Error("body is not an xlsx workbook")
	}
}
