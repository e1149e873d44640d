package services

import "testing"

func ssrFixture(desc, spec string) *SSRItem {
	return &SSRItem{
		Description:    desc,
		AdditionalSpec: spec,
		normDesc:       Normalize(desc),
		normSpec:       Normalize(spec),
	}
}

func boqFixture(itemNo, desc, refPage string) BOQItem {
	return BOQItem{
		ItemNo:      itemNo,
		Description: desc,
		RefPage:     refPage,
		normDesc:    Normalize(desc),
		normRefPage: Normalize(refPage),
	}
}

func TestCrossReference(t *testing.T) {
	boq := []BOQItem{
		boqFixture("B-1", "Excavation in Soil", "Page 101"),
		boqFixture("B-2", "Excavation in Soil", "Page 102"),
		boqFixture("B-3", "Brick Masonry", ""),
	}

	tests := []struct {
		name string
		ssr  *SSRItem
		boq  []BOQItem
		want string
	}{
		{
			name: "no candidates",
			ssr:  ssrFixture("Plastering 12mm", ""),
			boq:  boq,
			want: "",
		},
		{
			name: "single candidate wins regardless of spec",
			ssr:  ssrFixture("Brick Masonry", "Page 999"),
			boq:  boq,
			want: "B-3",
		},
		{
			name: "ambiguous resolved by reference page",
			ssr:  ssrFixture("Excavation in Soil", "page  102"),
			boq:  boq,
			want: "B-2",
		},
		{
			name: "ambiguous with no spec falls back to first",
			ssr:  ssrFixture("Excavation in Soil", ""),
			boq:  boq,
			want: "B-1",
		},
		{
			name: "ambiguous with unmatched spec falls back to first",
			ssr:  ssrFixture("Excavation in Soil", "Page 700"),
			boq:  boq,
			want: "B-1",
		},
		{
			name: "case and whitespace insensitive candidates",
			ssr:  ssrFixture("  EXCAVATION  in soil", "PAGE 101"),
			boq:  boq,
			want: "B-1",
		},
		{
			name: "empty BOQ",
			ssr:  ssrFixture("Excavation in Soil", "Page 101"),
			boq:  nil,
			want: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := crossReference(tc.ssr, tc.boq); got != tc.want {
				t.Errorf("crossReference() = %q, want %q", got, tc.want)
			}
		})
	}
}
