package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/sangkips/backoffice-api/internal/domain/enum"
	"github.com/sangkips/backoffice-api/internal/domain/repository"
	"github.com/sangkips/backoffice-api/pkg/timeutil"
	"github.com/shopspring/decimal"
)

// trendMonths is how many months, current included, the invoiced trend covers.
const trendMonths = 6

// DashboardService provides finance dashboard statistics
type DashboardService struct {
	summaryRepo repository.SummaryRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(summaryRepo repository.SummaryRepository) *DashboardService {
	return &DashboardService{summaryRepo: summaryRepo}
}

// DashboardStats represents dashboard statistics. Amounts are grouped by
// currency and never summed across currencies.
type DashboardStats struct {
	InvoicesByStatus []StatusBreakdown    `json:"invoices_by_status"`
	Totals           []CurrencyTotals     `json:"totals"`
	PastDueCount     int64                `json:"past_due_count"`
	Billing          []BillingBreakdown   `json:"billing"`
	MonthlyInvoiced  []MonthlyInvoicedRow `json:"monthly_invoiced"`
}

// StatusBreakdown is the invoice count and value for one status and currency
type StatusBreakdown struct {
	Status   enum.InvoiceStatus `json:"status"`
	Label    string             `json:"label"`
	Currency string             `json:"currency"`
	Count    int64              `json:"count"`
	Amount   decimal.Decimal    `json:"amount"`
}

// CurrencyTotals sums invoices in one currency. Outstanding counts the full
// amount of unpaid invoices and the recorded pending amount of paid ones.
type CurrencyTotals struct {
	Currency    string          `json:"currency"`
	Invoices    int64           `json:"invoices"`
	Invoiced    decimal.Decimal `json:"invoiced"`
	Received    decimal.Decimal `json:"received"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// BillingBreakdown summarizes billing records in one currency
type BillingBreakdown struct {
	Currency      string          `json:"currency"`
	Records       int64           `json:"records"`
	ContractValue decimal.Decimal `json:"contract_value"`
	BilledToDate  decimal.Decimal `json:"billed_to_date"`
	Remaining     decimal.Decimal `json:"remaining"`
}

// MonthlyInvoicedRow is the invoiced amount for a month and currency
type MonthlyInvoicedRow struct {
	Month    string          `json:"month"` // YYYY-MM
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

// GetDashboardStats returns dashboard statistics
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{
		InvoicesByStatus: []StatusBreakdown{},
		Totals:           []CurrencyTotals{},
		Billing:          []BillingBreakdown{},
		MonthlyInvoiced:  []MonthlyInvoicedRow{},
	}

	statusTotals, err := s.summaryRepo.InvoiceTotalsByStatus(ctx)
	if err != nil {
		return nil, err
	}

	byCurrency := make(map[string]*CurrencyTotals)
	for _, row := range statusTotals {
		status := enum.InvoiceStatus(row.Status)
		stats.InvoicesByStatus = append(stats.InvoicesByStatus, StatusBreakdown{
			Status:   status,
			Label:    status.Label(),
			Currency: row.Currency,
			Count:    row.Count,
			Amount:   row.Amount.Round(2),
		})

		t, ok := byCurrency[row.Currency]
		if !ok {
			t = &CurrencyTotals{Currency: row.Currency}
			byCurrency[row.Currency] = t
		}
		t.Invoices += row.Count
		t.Invoiced = t.Invoiced.Add(row.Amount)
		t.Received = t.Received.Add(row.Received)
		if status.IsPaid() {
			t.Outstanding = t.Outstanding.Add(row.Pending)
		} else {
			t.Outstanding = t.Outstanding.Add(row.Amount)
		}
	}
	for _, t := range byCurrency {
		t.Invoiced = t.Invoiced.Round(2)
		t.Received = t.Received.Round(2)
		t.Outstanding = t.Outstanding.Round(2)
		stats.Totals = append(stats.Totals, *t)
	}
	sort.Slice(stats.Totals, func(i, j int) bool { return stats.Totals[i].Currency < stats.Totals[j].Currency })

	today := timeutil.Today()
	stats.PastDueCount, err = s.summaryRepo.CountPastDue(ctx, today)
	if err != nil {
		return nil, err
	}

	billing, err := s.summaryRepo.BillingTotals(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range billing {
		stats.Billing = append(stats.Billing, BillingBreakdown{
			Currency:      b.Currency,
			Records:       b.Records,
			ContractValue: b.ContractValue.Round(2),
			BilledToDate:  b.BilledToDate.Round(2),
			Remaining:     b.Remaining.Round(2),
		})
	}

	since, _ := timeutil.MonthRange(today.Year(), today.Month())
	since = since.AddDate(0, -(trendMonths - 1), 0)
	monthly, err := s.summaryRepo.MonthlyInvoiced(ctx, since)
	if err != nil {
		return nil, err
	}
	for _, m := range monthly {
		stats.MonthlyInvoiced = append(stats.MonthlyInvoiced, MonthlyInvoicedRow{
			Month:    monthKey(m.Year, m.Month),
			Currency: m.Currency,
			Amount:   m.Amount.Round(2),
		})
	}

	return stats, nil
}

func monthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}
