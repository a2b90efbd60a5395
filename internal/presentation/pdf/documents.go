// Package pdf renders payment plans and payment receipts as PDF documents.
package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/sigecred/sgcred/internal/application/dto"
)

const (
	pageLeft   = 20.0
	pageRight  = 190.0
	lineHeight = 7.0
	pageBottom = 280.0
)

// PlanDocument renders the full payment plan of a loan.
func PlanDocument(plan dto.PaymentPlanResponse) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; UTF-8 input has to be translated.
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 20)
	title := "Plan de Pago"
	doc.Text(105-doc.GetStringWidth(title)/2, 20, title)

	doc.SetFont("Helvetica", "", 12)
	doc.Text(pageLeft, 35, tr("Cliente: "+clientLabel(plan.Client)))
	doc.Text(pageLeft, 42, tr("Monto del Préstamo: "+formatGs(plan.Loan.Principal)))
	doc.Text(pageLeft, 49, tr(fmt.Sprintf("Cuotas: %d de %s",
		plan.Loan.InstallmentCount, formatGs(plan.Loan.InstallmentAmount))))

	y := 60.0
	doc.SetFont("Helvetica", "B", 10)
	planHeader(doc, tr, y)
	y += lineHeight

	doc.SetFont("Helvetica", "", 10)
	for _, line := range plan.Installments {
		if y > pageBottom {
			doc.AddPage()
			y = 20.0
			doc.SetFont("Helvetica", "B", 10)
			planHeader(doc, tr, y)
			y += lineHeight
			doc.SetFont("Helvetica", "", 10)
		}

		doc.Text(20, y, fmt.Sprintf("%d", line.Number))
		doc.Text(50, y, formatDate(line.DueDate))
		doc.Text(80, y, formatOptionalDate(line.PaymentDate))
		doc.Text(110, y, formatGs(line.DueAmount))
		doc.Text(140, y, formatOptionalGs(line.AmountPaid))
		doc.Text(170, y, line.Status)
		y += lineHeight
	}

	return output(doc)
}

// ReceiptDocument renders a payment receipt listing only the paid lines.
// A late payment date and a partial amount are printed bold and underlined.
func ReceiptDocument(plan dto.PaymentPlanResponse) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 20)
	title := "RECIBO DE PAGO"
	doc.Text(105-doc.GetStringWidth(title)/2, 20, title)
	doc.SetLineWidth(0.5)
	doc.Line(pageLeft, 25, pageRight, 25)

	doc.SetFont("Helvetica", "", 12)
	doc.Text(pageLeft, 35, tr("Cliente: "+clientLabel(plan.Client)))
	doc.Line(pageLeft, 40, pageRight, 40)

	y := 50.0
	doc.SetFont("Helvetica", "", 10)
	for _, line := range plan.Installments {
		if y > pageBottom {
			doc.AddPage()
			y = 20.0
		}

		doc.Text(20, y, tr(fmt.Sprintf("Cuota N°: %d", line.Number)))
		doc.Text(60, y, "Vencimiento: "+formatDate(line.DueDate))

		emphasized(doc, 110, y, formatOptionalDate(line.PaymentDate), line.Late)
		emphasized(doc, 150, y, formatOptionalGs(line.AmountPaid), line.Partial)

		y += lineHeight
	}

	return output(doc)
}

// ---------------------------------------------------------------------------
// internal helpers
// ---------------------------------------------------------------------------

func planHeader(doc *fpdf.Fpdf, tr func(string) string, y float64) {
	doc.Text(20, y, tr("N° Cuota"))
	doc.Text(50, y, "Vencimiento")
	doc.Text(80, y, "Fecha de Pago")
	doc.Text(110, y, "Monto")
	doc.Text(140, y, "Monto Pagado")
	doc.Text(170, y, "Estado")
}

func emphasized(doc *fpdf.Fpdf, x, y float64, text string, highlight bool) {
	if !highlight {
		doc.Text(x, y, text)
		return
	}
	doc.SetFont("Helvetica", "B", 10)
	doc.Text(x, y, text)
	doc.Line(x, y+1, x+doc.GetStringWidth(text), y+1)
	doc.SetFont("Helvetica", "", 10)
}

func clientLabel(c dto.ClientResponse) string {
	if c.DisplayName == "" {
		return "Cliente no encontrado"
	}
	return c.DisplayName
}

func formatDate(d time.Time) string {
	return d.Format("02/01/2006")
}

func formatOptionalDate(d *time.Time) string {
	if d == nil {
		return "-"
	}
	return formatDate(*d)
}

// formatGs renders an amount as guaraníes with dot thousand separators.
func formatGs(amount decimal.Decimal) string {
	s := amount.Round(0).String()
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	if negative {
		return "Gs. -" + b.String()
	}
	return "Gs. " + b.String()
}

func formatOptionalGs(amount *decimal.Decimal) string {
	if amount == nil {
		return "-"
	}
	return formatGs(*amount)
}

func output(doc *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
