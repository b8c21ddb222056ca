package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatusTotal aggregates invoices sharing a status and currency.
type InvoiceStatusTotal struct {
	Status   string
	Currency string
	Count    int64
	Amount   decimal.Decimal
	Received decimal.Decimal
	Pending  decimal.Decimal
}

// BillingTotal aggregates billing records sharing a currency.
type BillingTotal struct {
	Currency      string
	Records       int64
	ContractValue decimal.Decimal
	BilledToDate  decimal.Decimal
	Remaining     decimal.Decimal
}

// MonthlyInvoiced is the invoiced amount for one IST calendar month.
type MonthlyInvoiced struct {
	Year     int
	Month    int
	Currency string
	Amount   decimal.Decimal
}

// SummaryRepository defines aggregation queries behind the finance dashboard
type SummaryRepository interface {
	InvoiceTotalsByStatus(ctx context.Context) ([]InvoiceStatusTotal, error)
	// CountPastDue counts unpaid invoices whose due date is before asOf.
	CountPastDue(ctx context.Context, asOf time.Time) (int64, error)
	BillingTotals(ctx context.Context) ([]BillingTotal, error)
	// MonthlyInvoiced returns invoiced amounts for the months starting at since.
	MonthlyInvoiced(ctx context.Context, since time.Time) ([]MonthlyInvoiced, error)
}
