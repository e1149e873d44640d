package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateMeasurementPDF renders an item measurement sheet as a portrait A4
// PDF: header with the resolved SSR/BOQ item numbers, one row per
// measurement entry, and the summed total quantity.
func GenerateMeasurementPDF(sheet MeasurementSheet) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		Build()

	m := maroto.New(cfg)

	addMeasurementHeader(m, sheet)
	addMeasurementTableHeader(m)
	for i, e := range sheet.Entries {
		addMeasurementRow(m, i+1, e, sheet)
	}
	addMeasurementTotal(m, sheet.TotalQty)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate measurement PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addMeasurementHeader(m core.Maroto, sheet MeasurementSheet) {
	m.AddRows(
		row.New(10).Add(
			col.New(12).Add(
				text.New("Item Measurement Sheet", props.Text{
					Size:  13,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
		),
		row.New(8).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Item Description (from SSR / BOQ): %s", sheet.Description), props.Text{
					Size:  9,
					Align: align.Left,
				}),
			),
		),
	)

	ssrLabel := sheet.SSRItemNo
	if sheet.NonSSR {
		ssrLabel = "NON SSR ITEM"
	} else if ssrLabel == "" {
		ssrLabel = "-"
	}
	boqLabel := sheet.BOQItemNo
	if boqLabel == "" {
		boqLabel = "-"
	}

	labelText := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left}
	m.AddRows(
		row.New(5).Add(
			col.New(12).Add(text.New(fmt.Sprintf("SSR Item No: %s", ssrLabel), labelText)),
		),
		row.New(5).Add(
			col.New(12).Add(text.New(fmt.Sprintf("BOQ Item No: %s", boqLabel), labelText)),
		),
		row.New(3),
	)
}

func addMeasurementTableHeader(m core.Maroto) {
	headerText := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center}
	headerLeft := headerText
	headerLeft.Align = align.Left

	headerBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(7).Add(
			col.New(1).Add(text.New("Sr.", headerText)).WithStyle(&headerCell),
			col.New(4).Add(text.New("Pile Description", headerLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("No", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("B", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("D", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("L", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Unit", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Quantity", headerText)).WithStyle(&headerCell),
		),
	)
}

func addMeasurementRow(m core.Maroto, sr int, e MeasurementEntry, sheet MeasurementSheet) {
	cell := props.Text{Size: 8, Align: align.Right}
	leftCell := props.Text{Size: 8, Align: align.Left}
	centerCell := props.Text{Size: 8, Align: align.Center}

	pileDesc := e.PileDescription
	if len(pileDesc) > 38 {
		pileDesc = pileDesc[:38] + "..."
	}

	unit := sheet.Unit
	if sheet.NonSSR {
		unit = ""
	}

	m.AddRows(
		row.New(6).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", sr), centerCell)),
			col.New(4).Add(text.New(pileDesc, leftCell)),
			col.New(1).Add(text.New(FormatQty(e.NoOfItems), cell)),
			col.New(1).Add(text.New(FormatQty(e.Breadth), cell)),
			col.New(1).Add(text.New(FormatQty(e.Depth), cell)),
			col.New(1).Add(text.New(FormatQty(e.Length), cell)),
			col.New(1).Add(text.New(unit, centerCell)),
			col.New(2).Add(text.New(FormatQty(e.EntryQuantity()), cell)),
		),
	)
}

func addMeasurementTotal(m core.Maroto, totalQty float64) {
	m.AddRows(
		row.New(4),
		row.New(6).Add(
			col.New(8),
			col.New(2).Add(text.New("Total Quantity:", props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: align.Right,
			})),
			col.New(2).Add(text.New(FormatQty(totalQty), props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: align.Right,
			})),
		),
	)
}
