package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"constructionbilling/services"
	"constructionbilling/testhelpers"
)

func postRate(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	app := testhelpers.NewTestApp(t)
	resolver := services.NewResolver(services.NewStore(testhelpers.NewDataDir(t)))
	handler := HandleRatePreview(app, resolver)

	req := httptest.NewRequest(http.MethodPost, "/ssr/rate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestHandleRatePreview_Match(t *testing.T) {
	rec := postRate(t, `{"description": "excavation in soil", "quantity": 10}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp RateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.SSRItemNo != "23.01" || resp.Unit != "Cum" {
		t.Errorf("item fields = %q/%q, want 23.01/Cum", resp.SSRItemNo, resp.Unit)
	}
	if resp.BaseRate != 500 || resp.GSTRate != 25 || resp.FinalRate != 525 || resp.TotalAmount != 5250 {
		t.Errorf("pricing = %+v, want 500/25/525/5250", resp)
	}
	if resp.BOQItemNo != "B-1" {
		t.Errorf("BOQItemNo = %q, want B-1", resp.BOQItemNo)
	}
	if resp.NonSSR {
		t.Error("matched item flagged non-SSR")
	}
}

func TestHandleRatePreview_DefaultQuantity(t *testing.T) {
	rec := postRate(t, `{"description": "Excavation in Soil"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var resp RateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	// Quantity defaults to 1, so total equals the final rate.
	if resp.TotalAmount != 525 {
		t.Errorf("TotalAmount = %v, want 525", resp.TotalAmount)
	}
}

func TestHandleRatePreview_NonSSR(t *testing.T) {
	rec := postRate(t, `{"description": "Dewatering of foundation pit", "quantity": 2}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var resp RateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.SSRItemNo != "NON SSR ITEM" {
		t.Errorf("SSRItemNo = %q, want NON SSR ITEM", resp.SSRItemNo)
	}
	if !resp.NonSSR {
		t.Error("non_ssr flag not set")
	}
	if resp.BOQItemNo != "B-7" {
		t.Errorf("BOQItemNo = %q, want B-7", resp.BOQItemNo)
	}
	if resp.BaseRate != 0 || resp.TotalAmount != 0 {
		t.Errorf("non-SSR response carries pricing: %+v", resp)
	}
}

func TestHandleRatePreview_NotFound(t *testing.T) {
	rec := postRate(t, `{"description": "Aluminium composite panel cladding"}`)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not found in SSR or BOQ") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestHandleRatePreview_MissingDataset(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	resolver := services.NewResolver(services.NewStore(t.TempDir()))
	handler := HandleRatePreview(app, resolver)

	req := httptest.NewRequest(http.MethodPost, "/ssr/rate", strings.NewReader(`{"description": "anything"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rec.Code)
	}
}
