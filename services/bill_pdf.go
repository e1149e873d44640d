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
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateBillPDF renders the full running-account bill ("Part I - Account
// of work executed") as a landscape A4 PDF using maroto/v2. The table
// follows the departmental 10-column measurement-bill form; the footer
// carries the 18% GST block, the grand total in words and the signature
// block.
func GenerateBillPDF(data BillData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addBillHeader(m, data)
	addBillTableHeader(m)
	for _, r := range data.Rows {
		addBillRow(m, r)
	}
	addBillTotals(m, data.Totals)
	addBillSignatures(m)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate bill PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addBillHeader(m core.Maroto, data BillData) {
	m.AddRows(
		row.New(10).Add(
			col.New(12).Add(
				text.New("Part I - Account of work executed", props.Text{
					Size:  13,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	if data.GeneratedDate != "" {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(
					text.New(fmt.Sprintf("Date: %s", data.GeneratedDate), props.Text{
						Size:  8,
						Align: align.Right,
						Color: &props.Color{Red: 80, Green: 80, Blue: 80},
					}),
				),
			),
		)
	}

	m.AddRows(row.New(3))
}

// billColumns maps the departmental form's ten columns onto maroto's
// 12-column grid. "Items of work" takes three grid columns, the rest one.
var billColumns = []struct {
	width int
	title string
}{
	{1, "Total as per previous bill"},
	{1, "Since previous bill"},
	{1, "Total up-to-date"},
	{1, "Quantity executed up-to date as per measurement book"},
	{3, "Items of work (Grouped Under Sub-heads or Sub-works of estimate)"},
	{1, "Rate"},
	{1, "Unit"},
	{1, "Up-to-date"},
	{1, "Since previous bill"},
	{1, "Remarks"},
}

func addBillTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  6,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerCell := props.Cell{BackgroundColor: headerBg}

	cols := make([]core.Col, 0, len(billColumns))
	for _, c := range billColumns {
		cols = append(cols, col.New(c.width).Add(text.New(c.title, headerText)).WithStyle(&headerCell))
	}
	m.AddRows(row.New(14).Add(cols...))

	// Column numbers 1..10, as on the printed form.
	numText := props.Text{Size: 6, Align: align.Center, Color: &props.Color{Red: 100, Green: 100, Blue: 100}}
	numCols := make([]core.Col, 0, len(billColumns))
	for i, c := range billColumns {
		numCols = append(numCols, col.New(c.width).Add(text.New(fmt.Sprintf("%d", i+1), numText)))
	}
	m.AddRows(row.New(4).Add(numCols...))
}

func addBillRow(m core.Maroto, r BillRow) {
	cell := props.Text{Size: 7, Align: align.Right}
	leftCell := props.Text{Size: 7, Align: align.Left}

	itemNo := r.BOQItemNo
	if itemNo == "" {
		itemNo = "-"
	}
	itemText := fmt.Sprintf("Item No. %s - %s", itemNo, r.Description)

	// Row height grows with the wrapped description length.
	height := 8.0 + float64(len(itemText)/70)*3.0

	m.AddRows(
		row.New(height).Add(
			col.New(1),
			col.New(1),
			col.New(1),
			col.New(1).Add(text.New(FormatQty(r.Quantity), cell)),
			col.New(3).Add(text.New(itemText, leftCell)),
			col.New(1).Add(text.New(FormatAmount(r.BaseRate), cell)),
			col.New(1).Add(text.New(r.Unit, leftCell)),
			col.New(1).Add(text.New(FormatAmount(r.Amount), cell)),
			col.New(1).Add(text.New(FormatAmount(r.Amount), cell)),
			col.New(1),
		),
	)
}

func addBillTotals(m core.Maroto, totals BillTotals) {
	m.AddRows(row.New(4))

	addTotalRow := func(label string, v float64, bold bool) {
		style := fontstyle.Normal
		if bold {
			style = fontstyle.Bold
		}
		labelText := props.Text{Size: 8, Style: style, Align: align.Left}
		amountText := props.Text{Size: 8, Style: style, Align: align.Right}
		m.AddRows(
			row.New(5).Add(
				col.New(4),
				col.New(3).Add(text.New(label, labelText)),
				col.New(2),
				col.New(1).Add(text.New(FormatAmount(v), amountText)),
				col.New(1).Add(text.New(FormatAmount(v), amountText)),
				col.New(1),
			),
		)
	}

	addTotalRow("A)", totals.Subtotal, true)
	addTotalRow("(-)", 0, false)
	addTotalRow("", totals.Subtotal, false)
	addTotalRow("18% GST", totals.GSTAmount, false)
	addTotalRow("Total", totals.GrandTotal, true)
	addTotalRow("Price Escallation", 0, false)
	addTotalRow("Grand Total", totals.GrandTotal, true)

	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Grand Total (in words): %s", AmountToWords(totals.GrandTotal)), props.Text{
					Size:  8,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
		),
	)
}

func addBillSignatures(m core.Maroto) {
	m.AddRows(row.New(12))

	sigText := props.Text{Size: 8, Align: align.Left}
	sigRight := props.Text{Size: 8, Align: align.Right}

	m.AddRows(
		row.New(4).Add(
			col.New(6).Add(text.New("Deputy Engineer,", sigText)),
			col.New(6).Add(text.New("Executive Engineer,", sigRight)),
		),
		row.New(4).Add(
			col.New(6).Add(text.New("Bandra (P.W.) Project Sub Division No. 2", sigText)),
			col.New(6).Add(text.New("North Mumbai Division,", sigRight)),
		),
		row.New(4).Add(
			col.New(6).Add(text.New("Bandra", sigText)),
			col.New(6).Add(text.New("Andheri, Mumbai.", sigRight)),
		),
	)
}
