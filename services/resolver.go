package services

import "log"

// ResolutionStatus tags the three outcomes of a rate lookup. Callers branch
// on the status; it is never encoded as a sentinel string in the result.
type ResolutionStatus int

const (
	// StatusMatch means an SSR entry was found and priced.
	StatusMatch ResolutionStatus = iota
	// StatusNonSSR means no SSR entry matched but the description exists in
	// the BOQ; the caller collects rate and unit manually.
	StatusNonSSR
	// StatusNotFound means neither the SSR nor the BOQ knows the description.
	StatusNotFound
)

// fuzzyThreshold is the minimum similarity ratio for a fuzzy SSR match.
// Scores strictly below are treated as no match.
const fuzzyThreshold = 0.80

// Resolution is the result of a single rate lookup. On StatusMatch all
// fields are populated. On StatusNonSSR the pricing fields are zero, the
// unit is empty and only BOQItemNo may be set. On StatusNotFound every
// field is zero.
type Resolution struct {
	Status      ResolutionStatus
	SSRItemNo   string
	Unit        string
	BaseRate    float64
	GSTAmount   float64
	FinalRate   float64
	TotalAmount float64
	BOQItemNo   string
}

// Resolver answers rate lookups against the reference data snapshots owned
// by a Store. It is stateless between calls and safe for concurrent use.
type Resolver struct {
	store *Store
}

// NewResolver returns a Resolver backed by store.
func NewResolver(store *Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve looks up description against the SSR schedule and prices it at
// the given quantity.
//
// Matching is exact-first on the normalized description (store order, first
// loaded wins), then fuzzy with a hard 0.80 similarity cutoff. Entries with
// a non-positive rate are invisible to both stages. When no SSR entry
// qualifies, the BOQ is consulted directly by description: a hit classifies
// the item as non-SSR, a miss as not found.
//
// The only possible error is a configuration error from the mandatory SSR
// dataset failing to load.
func (r *Resolver) Resolve(description string, quantity float64) (Resolution, error) {
	ssr, err := r.store.SSRItems()
	if err != nil {
		return Resolution{}, err
	}

	query := Normalize(description)
	if query == "" {
		return Resolution{Status: StatusNotFound}, nil
	}

	best := exactMatch(ssr, query)
	if best == nil {
		best = fuzzyMatch(ssr, query)
	}

	if best == nil {
		if itemNo, ok := r.lookupBOQ(query); ok {
			return Resolution{Status: StatusNonSSR, BOQItemNo: itemNo}, nil
		}
		return Resolution{Status: StatusNotFound}, nil
	}

	pricing := PriceItem(best.Rate, quantity)
	return Resolution{
		Status:      StatusMatch,
		SSRItemNo:   best.ItemNo,
		Unit:        best.Unit,
		BaseRate:    pricing.BaseRate,
		GSTAmount:   pricing.GSTAmount,
		FinalRate:   pricing.FinalRate,
		TotalAmount: pricing.TotalAmount,
		BOQItemNo:   crossReference(best, r.store.BOQItems()),
	}, nil
}

// LookupBOQItemNo finds a BOQ item number by description alone, using the
// same normalized exact-match rule as resolution (first match wins, no
// fuzzy fallback). The second return reports whether a match exists.
func (r *Resolver) LookupBOQItemNo(description string) (string, bool) {
	query := Normalize(description)
	if query == "" {
		return "", false
	}
	return r.lookupBOQ(query)
}

func (r *Resolver) lookupBOQ(normQuery string) (string, bool) {
	for _, b := range r.store.BOQItems() {
		if b.normDesc == normQuery {
			return b.ItemNo, true
		}
	}
	return "", false
}

// exactMatch returns the first rate-eligible SSR item whose normalized
// description equals the query, or nil.
func exactMatch(ssr []SSRItem, query string) *SSRItem {
	for i := range ssr {
		if ssr[i].Rate > 0 && ssr[i].normDesc == query {
			return &ssr[i]
		}
	}
	return nil
}

// fuzzyMatch scans every rate-eligible SSR item and returns the one with
// the highest similarity to the query, or nil when the best score falls
// below the threshold. Ties keep the first-loaded item.
func fuzzyMatch(ssr []SSRItem, query string) *SSRItem {
	var best *SSRItem
	bestScore := 0.0

	for i := range ssr {
		if ssr[i].Rate <= 0 {
			continue
		}
		if s := Ratio(ssr[i].normDesc, query); s > bestScore {
			bestScore = s
			best = &ssr[i]
		}
	}

	if best == nil || bestScore < fuzzyThreshold {
		return nil
	}

	log.Printf("resolver: fuzzy match (score=%.3f) item %s", bestScore, best.ItemNo)
	return best
}
