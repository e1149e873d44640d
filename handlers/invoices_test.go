package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"constructionbilling/testhelpers"
)

func TestHandleInvoiceCreate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	material := testhelpers.CreateTestMaterial(t, app, "Excavation in Soil", 10, 500)
	handler := HandleInvoiceCreate(app)

	body := `{
		"client_name": "BMC Ward K-West",
		"site_name": "Andheri Pumping Station",
		"invoice_type": "materials",
		"items": [
			{"material_id": "` + material.Id + `", "quantity": 4},
			{"material_id": "nonexistent", "quantity": 1}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if out["client_name"] != "BMC Ward K-West" {
		t.Errorf("client_name = %v", out["client_name"])
	}
	if out["invoice_type"] != "materials" {
		t.Errorf("invoice_type = %v", out["invoice_type"])
	}
	if num, _ := out["invoice_number"].(string); !strings.HasPrefix(num, "INV-") || !strings.HasSuffix(num, "-001") {
		t.Errorf("invoice_number = %q, want INV-{fy}-001", out["invoice_number"])
	}

	// The unknown material is skipped; one line item remains, priced at the
	// material's final rate.
	items := out["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected 1 invoice item, got %d", len(items))
	}
	item := items[0].(map[string]any)
	if item["rate"].(float64) != 525 {
		t.Errorf("rate = %v, want 525", item["rate"])
	}
	if item["amount"].(float64) != 2100 {
		t.Errorf("amount = %v, want 2100", item["amount"])
	}
}

func TestHandleInvoiceCreate_MissingClientName(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleInvoiceCreate(app)

	req := httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(`{"site_name": "Somewhere"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleInvoiceCreate_DefaultType(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleInvoiceCreate(app)

	req := httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(`{"client_name": "Acme"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if out["invoice_type"] != "general" {
		t.Errorf("invoice_type = %v, want general", out["invoice_type"])
	}
}

func TestHandleInvoiceListAndView(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	material := testhelpers.CreateTestMaterial(t, app, "Excavation in Soil", 10, 500)

	create := HandleInvoiceCreate(app)
	body := `{"client_name": "Acme", "items": [{"material_id": "` + material.Id + `", "quantity": 2}]}`
	req := httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	if err := create(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("create handler returned error: %v", err)
	}
	var created map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid create response: %v", err)
	}
	invoiceID := created["id"].(string)

	list := HandleInvoiceList(app)
	req = httptest.NewRequest(http.MethodGet, "/invoices", nil)
	rec = httptest.NewRecorder()
	if err := list(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("list handler returned error: %v", err)
	}
	var invoices []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &invoices); err != nil {
		t.Fatalf("invalid list response: %v", err)
	}
	if len(invoices) != 1 || invoices[0]["id"] != invoiceID {
		t.Errorf("list = %v", invoices)
	}

	view := HandleInvoiceView(app)
	req = httptest.NewRequest(http.MethodGet, "/invoices/"+invoiceID, nil)
	req.SetPathValue("id", invoiceID)
	rec = httptest.NewRecorder()
	if err := view(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("view handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var viewed map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &viewed); err != nil {
		t.Fatalf("invalid view response: %v", err)
	}
	if len(viewed["items"].([]any)) != 1 {
		t.Errorf("viewed items = %v", viewed["items"])
	}
}

func TestHandleInvoiceView_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleInvoiceView(app)

	req := httptest.NewRequest(http.MethodGet, "/invoices/nonexistent", nil)
	req.SetPathValue("id", "nonexistent")
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}
