package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// Dataset file names inside the data directory. These are the external data
// contract shared with the workbook import (see dataset_import.go).
const (
	SSRDatasetFile = "ssr_data.json"
	BOQDatasetFile = "BOQ.json"
)

// SSRItem is one row of the standardized schedule of rates. Loaded once,
// never mutated. Items with Rate <= 0 are placeholder rows and are never
// eligible for matching.
type SSRItem struct {
	ItemNo         string
	ReferenceNo    string
	Description    string
	AdditionalSpec string
	Unit           string
	Rate           float64

	normDesc string
	normSpec string
}

// BOQItem is one row of the project bill of quantities. The quantity is
// carried through for callers; the matching logic never reads it.
type BOQItem struct {
	ItemNo      string
	Description string
	RefPage     string
	Quantity    float64

	normDesc    string
	normRefPage string
}

// Ordered key aliases per logical field. Source workbooks and hand-edited
// JSON disagree on spellings; the first present, non-empty key wins.
var (
	ssrItemNoKeys      = []string{"ssr_item_no", "SSR Item No.", "SSR_Item_No"}
	ssrReferenceKeys   = []string{"reference_no", "Reference No."}
	ssrDescriptionKeys = []string{"description", "Description of the item", "Description"}
	ssrAddSpecKeys     = []string{"additional_specification", "Additional Specification"}
	ssrUnitKeys        = []string{"unit", "Unit"}
	ssrRateKeys        = []string{"rate", "Rate", "Completed Rate"}

	boqItemNoKeys      = []string{"BOQ_Item_No.", "BOQ Item No", "BOQ_Item_No", "boq_item_no"}
	boqDescriptionKeys = []string{"Description of Work", "Description_of_Work", "Description", "description"}
	boqRefPageKeys     = []string{"BOQ_Reference_Page No", "BOQ_Reference_Page_No", "boq_ref_page"}
	boqQuantityKeys    = []string{"Quantity", "quantity"}
)

// Store loads and caches the SSR and BOQ reference datasets from a data
// directory. Both datasets are read lazily on first access and held as
// immutable in-memory snapshots; Invalidate drops them after an upload.
//
// The SSR dataset is mandatory: a missing or unparsable file is a
// configuration error returned on every access. The BOQ dataset is optional
// and degrades to an empty snapshot.
type Store struct {
	ssrPath string
	boqPath string

	mu        sync.RWMutex
	ssrLoaded bool
	ssrItems  []SSRItem
	ssrErr    error
	boqLoaded bool
	boqItems  []BOQItem
}

// NewStore returns a Store reading datasets from dataDir.
func NewStore(dataDir string) *Store {
	return &Store{
		ssrPath: filepath.Join(dataDir, SSRDatasetFile),
		boqPath: filepath.Join(dataDir, BOQDatasetFile),
	}
}

// SSRItems returns the cached SSR snapshot, loading it on first call.
func (s *Store) SSRItems() ([]SSRItem, error) {
	s.mu.RLock()
	if s.ssrLoaded {
		items, err := s.ssrItems, s.ssrErr
		s.mu.RUnlock()
		return items, err
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ssrLoaded {
		s.ssrItems, s.ssrErr = loadSSRFile(s.ssrPath)
		s.ssrLoaded = true
	}
	return s.ssrItems, s.ssrErr
}

// BOQItems returns the cached BOQ snapshot, loading it on first call.
// A missing or unreadable file yields an empty snapshot, never an error.
func (s *Store) BOQItems() []BOQItem {
	s.mu.RLock()
	if s.boqLoaded {
		items := s.boqItems
		s.mu.RUnlock()
		return items
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.boqLoaded {
		s.boqItems = loadBOQFile(s.boqPath)
		s.boqLoaded = true
	}
	return s.boqItems
}

// Invalidate drops both cached snapshots so the next access re-reads the
// dataset files.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ssrLoaded = false
	s.ssrItems = nil
	s.ssrErr = nil
	s.boqLoaded = false
	s.boqItems = nil
}

func loadSSRFile(path string) ([]SSRItem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("SSR dataset %s: %w", path, err)
	}

	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("SSR dataset %s: %w", path, err)
	}

	items := make([]SSRItem, 0, len(records))
	for _, rec := range records {
		desc := firstString(rec, ssrDescriptionKeys)
		addSpec := firstString(rec, ssrAddSpecKeys)
		items = append(items, SSRItem{
			ItemNo:         strings.TrimSpace(firstString(rec, ssrItemNoKeys)),
			ReferenceNo:    strings.TrimSpace(firstString(rec, ssrReferenceKeys)),
			Description:    desc,
			AdditionalSpec: addSpec,
			Unit:           strings.TrimSpace(firstString(rec, ssrUnitKeys)),
			Rate:           firstNumber(rec, ssrRateKeys),
			normDesc:       Normalize(desc),
			normSpec:       Normalize(addSpec),
		})
	}

	log.Printf("refdata: loaded %d SSR items from %s", len(items), path)
	return items, nil
}

func loadBOQFile(path string) []BOQItem {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Printf("refdata: BOQ dataset unavailable (%v), cross-referencing disabled", err)
		return nil
	}

	records, err := decodeBOQRecords(raw)
	if err != nil {
		log.Printf("refdata: BOQ dataset %s unparsable (%v), cross-referencing disabled", path, err)
		return nil
	}

	items := make([]BOQItem, 0, len(records))
	for _, rec := range records {
		desc := firstString(rec, boqDescriptionKeys)
		refPage := firstString(rec, boqRefPageKeys)
		items = append(items, BOQItem{
			ItemNo:      strings.TrimSpace(firstString(rec, boqItemNoKeys)),
			Description: desc,
			RefPage:     refPage,
			Quantity:    firstNumber(rec, boqQuantityKeys),
			normDesc:    Normalize(desc),
			normRefPage: Normalize(refPage),
		})
	}

	log.Printf("refdata: loaded %d BOQ items from %s", len(items), path)
	return items
}

// decodeBOQRecords accepts either a bare JSON array of rows or an object
// wrapping the rows under "rows" or "data".
func decodeBOQRecords(raw []byte) ([]map[string]any, error) {
	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err == nil {
		return records, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, err
	}
	for _, key := range []string{"rows", "data"} {
		if inner, ok := wrapper[key]; ok {
			if err := json.Unmarshal(inner, &records); err == nil {
				return records, nil
			}
		}
	}
	return nil, fmt.Errorf("no row array found")
}

// firstString returns the value of the first key present with a non-empty
// string form.
func firstString(rec map[string]any, keys []string) string {
	for _, key := range keys {
		v, ok := rec[key]
		if !ok || v == nil {
			continue
		}
		var s string
		switch val := v.(type) {
		case string:
			s = val
		case float64:
			s = strconv.FormatFloat(val, 'f', -1, 64)
		default:
			s = fmt.Sprintf("%v", val)
		}
		if s != "" {
			return s
		}
	}
	return ""
}

// firstNumber returns the numeric value of the first key that parses.
// Missing or unparsable values default to 0 so a single bad row never fails
// the whole load; zero-rated rows are simply excluded from matching.
func firstNumber(rec map[string]any, keys []string) float64 {
	for _, key := range keys {
		v, ok := rec[key]
		if !ok || v == nil {
			continue
		}
		switch val := v.(type) {
		case float64:
			return val
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
				return f
			}
		}
	}
	return 0
}
