package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"

	"lexcaribe/ms_fiscal_core/internal/core/invoice"
	"lexcaribe/ms_fiscal_core/internal/core/ncf"
)

// MIMEPDF is the content type of rendered invoice documents.
const MIMEPDF = "application/pdf"

// CompanyInfo is the issuer block printed at the top of every invoice.
type CompanyInfo struct {
	Name    string
	RNC     string
	Address string
	Phone   string
	Email   string
}

// Document is a rendered invoice ready for the download boundary.
type Document struct {
	Name    string
	MIME    string
	Content []byte
}

// verificationPayload is the structured content of the e-CF QR code,
// shaped after the fields the DGII consultation page expects.
type verificationPayload struct {
	RNCEmisor       string `json:"rncEmisor"`
	RNCComprador    string `json:"rncComprador,omitempty"`
	ENCF            string `json:"encf"`
	FechaEmision    string `json:"fechaEmision"`
	MontoTotal      string `json:"montoTotal"`
	MontoITBIS      string `json:"montoItbis"`
	CodigoSeguridad string `json:"codigoSeguridad"`
	FechaFirma      string `json:"fechaFirma"`
}

// Renderer produces the paginated invoice document. Rendering is a pure
// transform over a fully computed invoice; no state is kept beyond the
// issuer block.
type Renderer struct {
	company CompanyInfo
}

// NewRenderer creates a renderer for the given issuer. Empty issuer fields
// fall back to placeholder values so a partially configured install still
// produces a coherent document.
func NewRenderer(company CompanyInfo) *Renderer {
	if company.Name == "" {
		company.Name = "Mi Empresa Legal, SRL"
	}
	if company.RNC == "" {
		company.RNC = "000-00000-0"
	}
	if company.Address == "" {
		company.Address = "Santo Domingo, República Dominicana"
	}
	return &Renderer{company: company}
}

// Filename builds the download name: e-CF documents use the eCF prefix,
// paper comprobantes keep the Factura prefix. The NCF is preferred over the
// internal invoice number when present.
func Filename(inv invoice.Invoice) string {
	prefix := "Factura"
	if ncf.IsElectronic(inv.NCFType) {
		prefix = "eCF"
	}
	number := inv.NCF
	if number == "" {
		number = inv.InvoiceNumber
	}
	return fmt.Sprintf("%s_%s_%s.pdf", prefix, number, inv.IssueDate.Format("20060102"))
}

// Render produces the invoice PDF. Electronic NCF types additionally get a
// scannable verification QR and the stub security code.
func (r *Renderer) Render(inv invoice.Invoice, now time.Time) (Document, error) {
	electronic := ncf.IsElectronic(inv.NCFType)

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()
	const margin = 20.0
	y := 20.0

	// Header
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(25, 91, 166)
	title := "FACTURA"
	subtitle := "Comprobante Fiscal"
	if electronic {
		title = "FACTURA ELECTRÓNICA"
		subtitle = "Comprobante Fiscal Electrónico (e-CF)"
	}
	pdf.Text(centerX(pdf, pageW, tr(title)), y, tr(title))
	y += 8
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.Text(centerX(pdf, pageW, tr(subtitle)), y, tr(subtitle))
	y += 5
	pdf.SetDrawColor(25, 91, 166)
	pdf.SetLineWidth(0.5)
	pdf.Line(margin, y, pageW-margin, y)

	// Issuer block
	y += 12
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(margin, y, tr(r.company.Name))
	y += 5
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(60, 60, 60)
	pdf.Text(margin, y, tr("RNC: "+r.company.RNC))
	y += 4
	pdf.Text(margin, y, tr(r.company.Address))
	y += 4
	pdf.Text(margin, y, tr(fmt.Sprintf("Tel: %s | Email: %s", r.company.Phone, r.company.Email)))

	// NCF box
	y += 10
	boxW, boxH := 80.0, 22.0
	if electronic {
		boxH = 27
	}
	boxX := pageW - margin - boxW
	pdf.SetFillColor(245, 247, 250)
	pdf.SetDrawColor(25, 91, 166)
	pdf.SetLineWidth(0.3)
	pdf.RoundedRect(boxX, y-5, boxW, boxH, 2, "1234", "FD")
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(25, 91, 166)
	boxTitle := "COMPROBANTE FISCAL"
	pdf.Text(boxX+boxW/2-pdf.GetStringWidth(boxTitle)/2, y, boxTitle)
	y += 5
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(0, 0, 0)
	ncfLine := "NCF: " + orNA(inv.NCF)
	pdf.Text(boxX+boxW/2-pdf.GetStringWidth(ncfLine)/2, y, ncfLine)
	y += 5
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(100, 100, 100)
	typeLine := tr(fmt.Sprintf("Tipo: %s - %s", inv.NCFType, typeLabel(inv.NCFType)))
	pdf.Text(boxX+boxW/2-pdf.GetStringWidth(typeLine)/2, y, typeLine)

	securityCode := ""
	if electronic {
		securityCode = SecurityCode(inv.NCF, inv.IssueDate, inv.TotalAmount)
		y += 5
		secLine := "Código de Seguridad: " + securityCode
		pdf.Text(boxX+boxW/2-pdf.GetStringWidth(tr(secLine))/2, y, tr(secLine))
	}

	// Invoice metadata, left of the NCF box
	dataY := y - 15.0
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(margin, dataY, "Factura No:")
	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(margin+25, dataY, inv.InvoiceNumber)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.Text(margin, dataY+5, tr("Fecha de Emisión:"))
	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(margin+38, dataY+5, inv.IssueDate.Format("02/01/2006"))
	if inv.DueDate != nil {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.Text(margin, dataY+10, "Fecha de Vencimiento:")
		pdf.SetFont("Helvetica", "", 9)
		pdf.Text(margin+45, dataY+10, inv.DueDate.Format("02/01/2006"))
	}

	// Buyer block
	y += 18
	pdf.SetFillColor(240, 242, 245)
	pdf.Rect(margin, y, pageW-2*margin, 22, "F")
	y += 6
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(25, 91, 166)
	pdf.Text(margin+3, y, "DATOS DEL CLIENTE")
	y += 5
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(margin+3, y, "Cliente:")
	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(margin+20, y, tr(orNA(clientName(inv))))
	y += 5
	pdf.SetFont("Helvetica", "B", 9)
	pdf.Text(margin+3, y, tr("RNC/Cédula:"))
	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(margin+28, y, orNA(inv.BuyerDocument()))

	// Detail table with the single concept line
	y += 15
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(25, 91, 166)
	pdf.Text(margin, y, "DETALLE DE SERVICIOS")
	y += 5
	pdf.SetFillColor(25, 91, 166)
	pdf.Rect(margin, y, pageW-2*margin, 8, "F")
	y += 5
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(255, 255, 255)
	pdf.Text(margin+3, y, tr("DESCRIPCIÓN"))
	monto := "MONTO"
	pdf.Text(pageW-margin-3-pdf.GetStringWidth(monto), y, monto)
	y += 7
	pdf.SetFillColor(250, 250, 250)
	pdf.Rect(margin, y-4, pageW-2*margin, 12, "F")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	concept := inv.Concept
	if pdf.GetStringWidth(tr(concept)) > pageW-2*margin-40 {
		concept = truncateToWidth(pdf, tr, concept, pageW-2*margin-40)
	}
	pdf.Text(margin+3, y+2, tr(concept))
	amountStr := formatMoney(inv.Amount, inv.Currency)
	pdf.Text(pageW-margin-3-pdf.GetStringWidth(amountStr), y+2, amountStr)

	// Totals
	y += 20
	summaryX := pageW - margin - 70
	pdf.SetFont("Helvetica", "", 9)
	writeSummaryLine(pdf, summaryX, pageW-margin, y, "Subtotal:", formatMoney(inv.Amount, inv.Currency))
	y += 6
	itbisLabel := fmt.Sprintf("ITBIS (%s%%):", inv.TaxRate.StringFixed(0))
	writeSummaryLine(pdf, summaryX, pageW-margin, y, itbisLabel, formatMoney(inv.ITBIS(), inv.Currency))
	if inv.ISRRetentionAmount.IsPositive() {
		y += 6
		isrLabel := fmt.Sprintf("Ret. ISR (%s%%):", inv.ISRRetentionRate.StringFixed(0))
		writeSummaryLine(pdf, summaryX, pageW-margin, y, isrLabel, "-"+formatMoney(inv.ISRRetentionAmount, inv.Currency))
	}
	y += 4
	pdf.SetDrawColor(25, 91, 166)
	pdf.SetLineWidth(0.5)
	pdf.Line(summaryX, y, pageW-margin, y)
	y += 7
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(25, 91, 166)
	writeSummaryLine(pdf, summaryX, pageW-margin, y, "TOTAL:", formatMoney(inv.TotalAmount, inv.Currency))

	one := decimal.NewFromInt(1)
	if inv.Currency == invoice.CurrencyUSD && inv.ExchangeRate.GreaterThan(one) {
		y += 6
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(100, 100, 100)
		equivalent := inv.TotalAmount.Mul(inv.ExchangeRate).Round(2)
		line := fmt.Sprintf("Equivalente: %s (Tasa: %s)", formatMoney(equivalent, invoice.CurrencyDOP), inv.ExchangeRate.String())
		pdf.Text(pageW-margin-pdf.GetStringWidth(tr(line)), y, tr(line))
	}

	// Notes
	if inv.Notes != "" {
		y += 15
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetTextColor(0, 0, 0)
		pdf.Text(margin, y, "Notas:")
		y += 5
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(60, 60, 60)
		pdf.SetXY(margin, y-4)
		pdf.MultiCell(pageW-2*margin, 4, tr(inv.Notes), "", "L", false)
		y = pdf.GetY() + 2
	}

	// Status badge
	y += 15
	label, cr, cg, cb := statusBadge(inv.Status)
	pdf.SetFillColor(cr, cg, cb)
	pdf.RoundedRect(margin, y, 50, 8, 2, "1234", "F")
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(255, 255, 255)
	pdf.Text(margin+25-pdf.GetStringWidth(label)/2, y+5.5, label)
	if inv.Status == invoice.StatusPaid && inv.PaidDate != nil {
		pdf.SetTextColor(39, 174, 96)
		pdf.Text(margin+55, y+5.5, "Fecha de pago: "+inv.PaidDate.Format("02/01/2006"))
	}

	// Verification QR for e-CF types
	if electronic {
		payload := verificationPayload{
			RNCEmisor:       invoice.NormalizeTaxID(r.company.RNC),
			RNCComprador:    invoice.NormalizeTaxID(inv.BuyerDocument()),
			ENCF:            inv.NCF,
			FechaEmision:    inv.IssueDate.Format("02-01-2006"),
			MontoTotal:      inv.TotalAmount.StringFixed(2),
			MontoITBIS:      inv.ITBIS().StringFixed(2),
			CodigoSeguridad: securityCode,
			FechaFirma:      inv.IssueDate.Format("02-01-2006"),
		}
		if err := embedQR(pdf, payload, pageW-margin-30, pageH-62); err != nil {
			return Document{}, fmt.Errorf("render verification code: %w", err)
		}
		pdf.SetFont("Helvetica", "", 6)
		pdf.SetTextColor(130, 130, 130)
		caption := tr("Código generado localmente; no constituye firma digital DGII")
		pdf.Text(pageW-margin-30, pageH-30, caption)
	}

	// Footer
	footerY := pageH - 25
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(margin, footerY, pageW-margin, footerY)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(100, 100, 100)
	foot1 := tr("Comprobante emitido conforme a la normativa de la DGII")
	pdf.Text(centerX(pdf, pageW, foot1), footerY+5, foot1)
	foot2 := tr("Dirección General de Impuestos Internos - República Dominicana")
	pdf.Text(centerX(pdf, pageW, foot2), footerY+9, foot2)
	pdf.SetFont("Helvetica", "", 7)
	foot3 := "Generado el: " + now.Format("02/01/2006 15:04")
	pdf.Text(centerX(pdf, pageW, foot3), footerY+14, foot3)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return Document{}, fmt.Errorf("render invoice document: %w", err)
	}

	return Document{
		Name:    Filename(inv),
		MIME:    MIMEPDF,
		Content: buf.Bytes(),
	}, nil
}

func embedQR(pdf *fpdf.Fpdf, payload verificationPayload, x, y float64) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	png, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return err
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("ecf-qr", opts, bytes.NewReader(png))
	pdf.ImageOptions("ecf-qr", x, y, 30, 30, false, opts, 0, "")
	return pdf.Error()
}

func writeSummaryLine(pdf *fpdf.Fpdf, x, right, y float64, label, value string) {
	pdf.Text(x, y, label)
	pdf.Text(right-pdf.GetStringWidth(value), y, value)
}

func centerX(pdf *fpdf.Fpdf, pageW float64, s string) float64 {
	return pageW/2 - pdf.GetStringWidth(s)/2
}

func typeLabel(t ncf.Type) string {
	if info, ok := ncf.Lookup(t); ok {
		return info.Label
	}
	return string(t)
}

func clientName(inv invoice.Invoice) string {
	if inv.Client != nil {
		return inv.Client.Name
	}
	return ""
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func statusBadge(s invoice.Status) (label string, r, g, b int) {
	switch s {
	case invoice.StatusPaid:
		return "PAGADA", 39, 174, 96
	case invoice.StatusOverdue:
		return "VENCIDA", 192, 57, 43
	case invoice.StatusCancelled:
		return "ANULADA", 127, 140, 141
	default:
		return "PENDIENTE DE PAGO", 230, 126, 34
	}
}

func truncateToWidth(pdf *fpdf.Fpdf, tr func(string) string, s string, maxW float64) string {
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(tr(string(runes)+"...")) > maxW {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// formatMoney renders an amount with the Dominican currency prefix and
// thousands separators, e.g. "RD$ 1,130.00".
func formatMoney(amount decimal.Decimal, currency invoice.Currency) string {
	symbol := "RD$"
	if currency == invoice.CurrencyUSD {
		symbol = "US$"
	}
	return symbol + " " + groupThousands(amount.StringFixed(2))
}

func groupThousands(fixed string) string {
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}
	intPart, fracPart, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	return sign + b.String() + "." + fracPart
}
