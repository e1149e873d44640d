package services

// crossReference finds the BOQ item number for a matched SSR item.
//
// Candidates are BOQ items sharing the SSR item's normalized description.
// A single candidate wins unconditionally. With several, the SSR item's
// normalized additional specification is compared against each candidate's
// normalized reference page: the first exact hit wins, otherwise the
// first-loaded candidate does. Returns "" when there are no candidates.
func crossReference(matched *SSRItem, boq []BOQItem) string {
	var candidates []*BOQItem
	for i := range boq {
		if boq[i].normDesc == matched.normDesc {
			candidates = append(candidates, &boq[i])
		}
	}

	switch {
	case len(candidates) == 0:
		return ""
	case len(candidates) == 1:
		return candidates[0].ItemNo
	}

	if matched.normSpec != "" {
		for _, c := range candidates {
			if c.normRefPage == matched.normSpec {
				return c.ItemNo
			}
		}
	}
	return candidates[0].ItemNo
}
