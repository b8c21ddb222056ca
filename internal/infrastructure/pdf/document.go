// Package pdf renders invoice documents to PDF with headless Chrome.
package pdf

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/sangkips/backoffice-api/internal/config"
	"github.com/sangkips/backoffice-api/internal/domain/entity"
	"github.com/sangkips/backoffice-api/internal/domain/enum"
	"github.com/sangkips/backoffice-api/internal/domain/invoicing"
	"github.com/sangkips/backoffice-api/pkg/timeutil"
	"github.com/sangkips/backoffice-api/pkg/utils"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

var invoiceTemplate = template.Must(template.ParseFS(templateFS, "templates/invoice.html"))

// Issuer is the legal entity printed in the document header.
type Issuer struct {
	Name    string
	Address string
	GSTIN   string
}

// IssuerFor picks the entity that issues invoices of type t.
func IssuerFor(t enum.InvoiceType, c config.CompanyConfig) Issuer {
	if t == enum.InvoiceTypeIndia {
		return Issuer{Name: c.IndiaName, Address: c.IndiaAddress, GSTIN: c.IndiaGSTIN}
	}
	return Issuer{Name: c.GlobalName, Address: c.GlobalAddress}
}

// DocumentLine is one rendered task row.
type DocumentLine struct {
	No          int
	TaskName    string
	Hours       string
	RatePerHour string
	Amount      string
}

// InvoiceDocument is the view model executed against the invoice template.
type InvoiceDocument struct {
	Issuer        Issuer
	InvoiceNumber string
	InvoiceDate   string
	DueDate       string
	ClientName    string
	ClientAddress string
	ClientEmail   string
	ClientGSTIN   string
	ClientCountry string
	ProjectName   string
	Currency      string
	Lines         []DocumentLine
	Total         string
	AmountInWords string
	Status        string
	Received      string
	Pending       string
	Notes         string
}

// NewInvoiceDocument formats inv for printing. The total printed is the
// stored invoice amount.
func NewInvoiceDocument(inv *entity.Invoice, company config.CompanyConfig) InvoiceDocument {
	doc := InvoiceDocument{
		Issuer:        IssuerFor(inv.InvoiceType, company),
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   timeutil.FormatDate(&inv.InvoiceDate),
		DueDate:       timeutil.FormatDate(inv.DueDate),
		ClientName:    inv.ClientName,
		ClientAddress: deref(inv.ClientAddress),
		ClientEmail:   deref(inv.ClientEmail),
		ClientGSTIN:   deref(inv.ClientGSTIN),
		ClientCountry: deref(inv.ClientCountry),
		ProjectName:   deref(inv.ProjectName),
		Currency:      inv.Currency,
		Total:         inv.InvoiceAmount.StringFixed(2),
		AmountInWords: utils.AmountInWords(inv.InvoiceAmount, inv.Currency),
		Status:        inv.Status.Label(),
		Notes:         deref(inv.Notes),
	}

	for i, t := range inv.Tasks {
		line := invoicing.TaskLine{Hours: t.Hours, RatePerHour: t.RatePerHour}
		doc.Lines = append(doc.Lines, DocumentLine{
			No:          i + 1,
			TaskName:    t.TaskName,
			Hours:       t.Hours.String(),
			RatePerHour: t.RatePerHour.StringFixed(2),
			Amount:      line.LineAmount().StringFixed(2),
		})
	}

	if inv.Status.IsPaid() {
		doc.Received = fixed(inv.AmountReceived)
		doc.Pending = fixed(inv.PendingAmount)
	}
	return doc
}

// HTML executes the invoice template.
func (d InvoiceDocument) HTML() (string, error) {
	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("render invoice template: %w", err)
	}
	return buf.String(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func fixed(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}
