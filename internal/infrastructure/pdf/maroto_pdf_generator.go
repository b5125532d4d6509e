// Package pdf genera los documentos imprimibles del restaurante (faturas y pedidos de compra).
//
// Layout A4 común:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Zola Pizza + título      │  Número + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PARTES: cliente / fornecedor                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Qtd | Item | Preço unit. | Subtotal                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES                                                     │
//	│  FOOTER: QR con el número + observaciones                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/zola-inventory-api/internal/application/billing"
	"github.com/jhoicas/zola-inventory-api/internal/application/purchasing"
	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
	"github.com/jhoicas/zola-inventory-api/pkg/money"
)

const (
	restaurantName = "Zola Pizza"
	dateLayout     = "02/01/2006"
)

var (
	_ billing.InvoicePDFGenerator          = (*MarotoPDFGenerator)(nil)
	_ purchasing.PurchaseOrderPDFGenerator = (*MarotoPDFGenerator)(nil)
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 178, Green: 34, Blue: 34}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var poStatusLabels = map[string]string{
	entity.POStatusPending:   "Pendente",
	entity.POStatusInTransit: "Em trânsito",
	entity.POStatusDelivered: "Entregue",
	entity.POStatusCancelled: "Cancelado",
}

// tableLine fila genérica de la tabla de ítems.
type tableLine struct {
	Quantity  int
	Name      string
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa los generadores de PDF de facturación y compras con Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera la fatura con sus líneas. supplier puede ser nil.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(_ context.Context, inv *entity.Invoice, supplier *entity.Supplier) ([]byte, error) {
	m := newDocument("Fatura " + inv.InvoiceNumber)

	m.AddRows(headerRow("FATURA", inv.InvoiceNumber, inv.CreatedAt.Format(dateLayout)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partyRow("CLIENTE", inv.CustomerName, labelled("Tel", inv.PhoneNumber)))
	if supplier != nil {
		m.AddRows(partyRow("FORNECEDOR", supplier.Name, supplierDetails(supplier)))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	lines := make([]tableLine, 0, len(inv.Items))
	for _, it := range inv.Items {
		lines = append(lines, tableLine{Quantity: it.Quantity, Name: it.ItemName, UnitPrice: it.PricePerItem, Subtotal: it.Subtotal})
	}
	m.AddRows(tableHeaderRow("Item"))
	m.AddRows(tableRows(lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(
		[][2]string{
			{"Subtotal:", money.FormatBRL(inv.Subtotal)},
			{"Frete:", money.FormatBRL(inv.ShippingPrice)},
			{"Impostos:", money.FormatBRL(inv.TaxAmount)},
		},
		money.FormatBRL(inv.Total),
	))
	m.AddRows(footerRows(inv.InvoiceNumber, inv.Notes)...)

	return generate(m)
}

// GeneratePurchaseOrderPDF genera el pedido de compra para enviar al proveedor. supplier puede ser nil
// (proveedor eliminado); en ese caso se usa el nombre copiado en el pedido.
func (g *MarotoPDFGenerator) GeneratePurchaseOrderPDF(_ context.Context, o *entity.PurchaseOrder, supplier *entity.Supplier) ([]byte, error) {
	m := newDocument("Pedido de compra " + o.OrderNumber)

	m.AddRows(headerRow("PEDIDO DE COMPRA", o.OrderNumber, o.OrderDate.Format(dateLayout)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	details := ""
	if supplier != nil {
		details = supplierDetails(supplier)
	}
	m.AddRows(partyRow("FORNECEDOR", o.SupplierName, details))

	delivery := "—"
	if o.ExpectedDelivery != nil {
		delivery = o.ExpectedDelivery.Format(dateLayout)
	}
	m.AddRows(partyRow("ENTREGA",
		"Status: "+nonEmpty(poStatusLabels[o.Status], o.Status),
		"Previsão de entrega: "+delivery,
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	lines := make([]tableLine, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, tableLine{Quantity: it.Quantity, Name: it.ProductName, UnitPrice: it.UnitPrice, Subtotal: it.Subtotal()})
	}
	m.AddRows(tableHeaderRow("Produto"))
	m.AddRows(tableRows(lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(nil, money.FormatBRL(o.TotalValue)))
	m.AddRows(footerRows(o.OrderNumber, o.Notes)...)

	return generate(m)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(restaurantName, true).
		Build()
	return maroto.New(cfg)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre del restaurante (izq) y título + número + fecha (der).
func headerRow(title, number, date string) core.Row {
	return row.New(18).Add(
		col.New(6).Add(
			text.New(restaurantName, props.Text{
				Style: fontstyle.Bold, Size: 16, Color: colorPrimary, Top: 1,
			}),
			text.New("Padaria · Restaurante · Bar", props.Text{
				Size: 8, Top: 10, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(number, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
			text.New("Data: "+date, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func partyRow(label, name, details string) core.Row {
	return row.New(15).Add(
		col.New(12).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(name, "—"), props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
			text.New(details, props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func supplierDetails(s *entity.Supplier) string {
	return fmt.Sprintf("CNPJ: %s   |   Tel: %s   |   Email: %s",
		nonEmpty(s.TaxID, "—"), nonEmpty(s.Phone, "—"), nonEmpty(s.Email, "—"))
}

func tableHeaderRow(itemLabel string) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qtd", 1, align.Center),
		h(itemLabel, 6, align.Left),
		h("Preço unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func tableRows(lines []tableLine) []core.Row {
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		out = append(out, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(l.Name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(money.FormatBRL(l.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(money.FormatBRL(l.Subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

// totalsRow: pares etiqueta/valor seguidos del TOTAL destacado.
func totalsRow(pairs [][2]string, total string) core.Row {
	labels := col.New(3)
	values := col.New(3)
	top := 0.0
	for _, p := range pairs {
		labels.Add(text.New(p[0], props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top}))
		values.Add(text.New(p[1], props.Text{Size: 9, Align: align.Right, Right: 1, Top: top}))
		top += 5
	}
	labels.Add(text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: top}))
	values.Add(text.New(total, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: top}))

	return row.New(top+8).Add(col.New(6), labels, values)
}

// footerRows: QR con el número del documento y observaciones.
func footerRows(number, notes string) []core.Row {
	rows := []core.Row{
		row.New(3),
		line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}),
		row.New(30).Add(
			col.New(3).Add(code.NewQr(number, props.Rect{Percent: 90, Center: true})),
			col.New(9).Add(
				text.New("Observações", props.Text{Style: fontstyle.Bold, Size: 8, Top: 2, Left: 3, Color: colorPrimary}),
				text.New(nonEmpty(notes, "—"), props.Text{Size: 8, Top: 8, Left: 3, Color: colorGray}),
			),
		),
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func labelled(label, value string) string {
	return label + ": " + nonEmpty(value, "—")
}
