// Package testhelpers provides utilities for testing PocketBase-based
// applications.
package testhelpers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"constructionbilling/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestMaterial creates a priced material record and returns it.
func CreateTestMaterial(t *testing.T, app *pocketbase.PocketBase, description string, qty, baseRate float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		t.Fatalf("failed to find materials collection: %v", err)
	}

	gst := baseRate * 0.05
	final := baseRate + gst

	record := core.NewRecord(col)
	record.Set("description", description)
	record.Set("ssr_item_no", "23.01")
	record.Set("boq_item_no", "B-1")
	record.Set("unit", "Cum")
	record.Set("quantity", qty)
	record.Set("base_rate", baseRate)
	record.Set("gst_rate", gst)
	record.Set("final_rate", final)
	record.Set("total_amount", final*qty)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test material: %v", err)
	}

	return record
}

// WriteDataset writes raw JSON dataset content under dir with the given
// file name.
func WriteDataset(t *testing.T, dir, name, content string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write dataset %s: %v", name, err)
	}
}

// NewDataDir creates a temporary data directory populated with small SSR
// and BOQ datasets suitable for rate-resolution tests.
func NewDataDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	WriteDataset(t, dir, "ssr_data.json", `[
		{"ssr_item_no": "23.01", "description": "Excavation in Soil", "additional_specification": "Page 101", "unit": "Cum", "rate": 500},
		{"ssr_item_no": "23.02", "description": "Providing and laying cement concrete", "unit": "Cum", "rate": 4500},
		{"ssr_item_no": "99.01", "description": "Placeholder item without rate", "unit": "Nos", "rate": 0}
	]`)
	WriteDataset(t, dir, "BOQ.json", `[
		{"BOQ_Item_No.": "B-1", "Description of Work": "Excavation in Soil", "BOQ_Reference_Page No": "Page 101", "Quantity": 120},
		{"BOQ_Item_No.": "B-7", "Description of Work": "Dewatering of foundation pit", "Quantity": 1}
	]`)
	return dir
}
