package notifications

import (
	"fmt"
	"io"
	"time"

	"toyblox/internal/models"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

var (
	// ShippingFee is charged once per delivered order.
	ShippingFee = decimal.NewFromInt(50)
	// TaxRate applies to the subtotal.
	TaxRate = decimal.RequireFromString("0.12")
)

// ReceiptLine is one priced line of a receipt.
type ReceiptLine struct {
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

// Receipt is the billing summary sent with the delivered email.
type Receipt struct {
	OrderID      string
	CustomerName string
	Email        string
	Address      string
	IssuedAt     time.Time
	Lines        []ReceiptLine
	Subtotal     decimal.Decimal
	Shipping     decimal.Decimal
	Tax          decimal.Decimal
	Total        decimal.Decimal
}

// BuildReceipt prices an order from the captured line prices:
// total = subtotal + shipping + tax, tax = 12% of subtotal.
func BuildReceipt(d *models.OrderDetails, issuedAt time.Time) Receipt {
	r := Receipt{
		OrderID:      d.Order.ID,
		CustomerName: d.User.FirstName + " " + d.User.LastName,
		Email:        d.User.Email,
		Address:      formatAddress(d.Customer),
		IssuedAt:     issuedAt,
		Subtotal:     decimal.Zero,
		Shipping:     ShippingFee,
	}
	for _, l := range d.Lines {
		price := decimal.NewFromFloat(l.PriceAtOrder)
		amount := price.Mul(decimal.NewFromInt(int64(l.Quantity)))
		r.Lines = append(r.Lines, ReceiptLine{
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   price.Round(2),
			Amount:      amount.Round(2),
		})
		r.Subtotal = r.Subtotal.Add(amount)
	}
	r.Subtotal = r.Subtotal.Round(2)
	r.Tax = r.Subtotal.Mul(TaxRate).Round(2)
	r.Total = r.Subtotal.Add(r.Shipping).Add(r.Tax)
	return r
}

func formatAddress(c models.Customer) string {
	out := c.Address
	for _, part := range []string{c.PostalCode, c.Country} {
		if part == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += part
	}
	return out
}

// WritePDF renders the receipt as a single-page PDF.
func (r Receipt) WritePDF(w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Receipt "+r.OrderID, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "ToyBlox Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr("Order #"+r.OrderID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Date: "+r.IssuedAt.Format("January 2, 2006"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr("Customer: "+r.CustomerName+" <"+r.Email+">"), "", 1, "L", false, 0, "")
	if r.Address != "" {
		pdf.CellFormat(0, 6, tr("Ship to: "+r.Address), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(95, 8, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 8, "Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, l := range r.Lines {
		pdf.CellFormat(95, 8, tr(l.Description), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%d", l.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, l.UnitPrice.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, l.Amount.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	for _, row := range []struct {
		label string
		value decimal.Decimal
	}{
		{"Subtotal", r.Subtotal},
		{"Shipping", r.Shipping},
		{"Tax (12%)", r.Tax},
		{"Total", r.Total},
	} {
		if row.label == "Total" {
			pdf.SetFont("Helvetica", "B", 12)
		}
		pdf.CellFormat(155, 7, row.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, row.value.StringFixed(2), "", 1, "R", false, 0, "")
	}

	return pdf.Output(w)
}
