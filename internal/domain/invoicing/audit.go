package invoicing

import (
	"fmt"
	"strings"
	"time"

	"github.com/sangkips/backoffice-api/internal/domain/entity"
	"github.com/sangkips/backoffice-api/pkg/timeutil"
	"github.com/shopspring/decimal"
)

// FieldChange is one changed invoice field, rendered as display strings.
type FieldChange struct {
	Field    string
	OldValue string
	NewValue string
}

type fieldReader struct {
	name string
	read func(*entity.Invoice) string
}

var auditedFields = []fieldReader{
	{"invoice_number", func(i *entity.Invoice) string { return i.InvoiceNumber }},
	{"invoice_type", func(i *entity.Invoice) string { return i.InvoiceType.String() }},
	{"invoice_date", func(i *entity.Invoice) string { return dateString(&i.InvoiceDate) }},
	{"due_date", func(i *entity.Invoice) string { return dateString(i.DueDate) }},
	{"client_name", func(i *entity.Invoice) string { return i.ClientName }},
	{"client_address", func(i *entity.Invoice) string { return deref(i.ClientAddress) }},
	{"client_email", func(i *entity.Invoice) string { return deref(i.ClientEmail) }},
	{"client_gstin", func(i *entity.Invoice) string { return deref(i.ClientGSTIN) }},
	{"client_country", func(i *entity.Invoice) string { return deref(i.ClientCountry) }},
	{"project_name", func(i *entity.Invoice) string { return deref(i.ProjectName) }},
	{"finance_poc", func(i *entity.Invoice) string { return deref(i.FinancePOC) }},
	{"currency", func(i *entity.Invoice) string { return i.Currency }},
	{"invoice_amount", func(i *entity.Invoice) string { return i.InvoiceAmount.StringFixed(2) }},
	{"status", func(i *entity.Invoice) string { return i.Status.String() }},
	{"amount_received", func(i *entity.Invoice) string { return decimalString(i.AmountReceived) }},
	{"pending_amount", func(i *entity.Invoice) string { return decimalString(i.PendingAmount) }},
	{"payment_receive_date", func(i *entity.Invoice) string { return dateString(i.PaymentReceiveDate) }},
	{"notes", func(i *entity.Invoice) string { return deref(i.Notes) }},
}

// Diff lists the fields that differ between before and after. A changed task
// list is reported once under "tasks".
func Diff(before, after *entity.Invoice) []FieldChange {
	var changes []FieldChange
	for _, f := range auditedFields {
		oldV, newV := f.read(before), f.read(after)
		if oldV != newV {
			changes = append(changes, FieldChange{Field: f.name, OldValue: oldV, NewValue: newV})
		}
	}

	oldTasks, newTasks := TaskSummary(before.Tasks), TaskSummary(after.Tasks)
	if oldTasks != newTasks {
		changes = append(changes, FieldChange{Field: "tasks", OldValue: oldTasks, NewValue: newTasks})
	}
	return changes
}

// TaskSummary renders tasks as "name (hours x rate)" joined by "; ".
func TaskSummary(tasks []entity.InvoiceTask) string {
	parts := make([]string, 0, len(tasks))
	for _, t := range tasks {
		parts = append(parts, fmt.Sprintf("%s (%s x %s)", t.TaskName, t.Hours.String(), t.RatePerHour.StringFixed(2)))
	}
	return strings.Join(parts, "; ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func decimalString(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}

func dateString(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.In(timeutil.IST).Format(timeutil.DateLayout)
}
