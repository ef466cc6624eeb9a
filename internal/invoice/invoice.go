// Package invoice renders a sale into a PDF document and files it in the
// object store.
package invoice

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/sphenegem/gem-inventory-api/internal/domain"
	"github.com/sphenegem/gem-inventory-api/internal/storage"
)

const contentType = "application/pdf"

// Key is where the invoice for saleID is stored.
func Key(saleID uint) string {
	return "invoices/" + FileName(saleID)
}

func FileName(saleID uint) string {
	return fmt.Sprintf("invoice_%d.pdf", saleID)
}

type PDFRenderer struct {
	company  string
	currency string
}

func NewPDFRenderer(company, currency string) *PDFRenderer {
	return &PDFRenderer{
		company:  company,
		currency: currency,
	}
}

func (r *PDFRenderer) Render(sale domain.Sale) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(fmt.Sprintf("Invoice %d", sale.ID), true)
	pdf.SetCreator(r.company, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(r.company), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Invoice #%d", sale.ID), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	money := func(v decimal.Decimal) string {
		return v.StringFixed(2) + " " + r.currency
	}

	rows := [][2]string{
		{"Date", sale.SoldAt.Format("2006-01-02 15:04")},
		{"Code", sale.Code},
		{"Name", sale.Name},
		{"Quantity", fmt.Sprintf("%d", sale.Quantity)},
		{"Carat sold", sale.CaratSold.StringFixed(3) + " ct"},
		{"Price per carat", money(sale.SellingPrice)},
		{"Marking price", money(sale.MarkingPrice)},
		{"Remark", sale.Remark},
	}

	pdf.SetFont("Helvetica", "", 11)
	for _, row := range rows {
		pdf.CellFormat(50, 8, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, tr(row[1]), "1", 1, "L", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(50, 10, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(0, 10, money(sale.TotalAmount), "1", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf.Output -> %w", err)
	}

	return buf.Bytes(), nil
}

// Emitter renders invoices and stores them; the returned handle is the
// object key.
type Emitter struct {
	renderer *PDFRenderer
	store    storage.ObjectStore
}

func NewEmitter(renderer *PDFRenderer, store storage.ObjectStore) *Emitter {
	return &Emitter{
		renderer: renderer,
		store:    store,
	}
}

func (e *Emitter) Render(sale domain.Sale) ([]byte, error) {
	return e.renderer.Render(sale)
}

func (e *Emitter) Emit(ctx context.Context, sale domain.Sale) (string, error) {
	doc, err := e.renderer.Render(sale)
	if err != nil {
		return "", err
	}

	key := Key(sale.ID)
	if err := e.store.Put(ctx, key, bytes.NewReader(doc), int64(len(doc)), contentType); err != nil {
		return "", fmt.Errorf("e.store.Put -> %w", err)
	}

	return key, nil
}
