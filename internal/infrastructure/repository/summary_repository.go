package repository

import (
	"context"
	"time"

	domainRepo "github.com/sangkips/backoffice-api/internal/domain/repository"
	"gorm.io/gorm"
)

type summaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a new finance summary repository
func NewSummaryRepository(db *gorm.DB) domainRepo.SummaryRepository {
	return &summaryRepository{db: db}
}

func (r *summaryRepository) InvoiceTotalsByStatus(ctx context.Context) ([]domainRepo.InvoiceStatusTotal, error) {
	var results []domainRepo.InvoiceStatusTotal

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			status,
			currency,
			COUNT(*) AS count,
			COALESCE(SUM(invoice_amount), 0) AS amount,
			COALESCE(SUM(amount_received), 0) AS received,
			COALESCE(SUM(pending_amount), 0) AS pending
		FROM invoices
		GROUP BY status, currency
		ORDER BY status, currency
	`).Scan(&results).Error

	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *summaryRepository) CountPastDue(ctx context.Context, asOf time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM invoices
		WHERE due_date IS NOT NULL
			AND due_date < ?
			AND status <> 'paid'
	`, asOf).Scan(&count).Error
	return count, err
}

func (r *summaryRepository) BillingTotals(ctx context.Context) ([]domainRepo.BillingTotal, error) {
	var results []domainRepo.BillingTotal

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			currency,
			COUNT(*) AS records,
			COALESCE(SUM(contract_value), 0) AS contract_value,
			COALESCE(SUM(billed_to_date), 0) AS billed_to_date,
			COALESCE(SUM(remaining_amount), 0) AS remaining
		FROM billing_records
		WHERE deleted_at IS NULL
		GROUP BY currency
		ORDER BY currency
	`).Scan(&results).Error

	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *summaryRepository) MonthlyInvoiced(ctx context.Context, since time.Time) ([]domainRepo.MonthlyInvoiced, error) {
	var results []domainRepo.MonthlyInvoiced

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			number_year AS year,
			number_month AS month,
			currency,
			COALESCE(SUM(invoice_amount), 0) AS amount
		FROM invoices
		WHERE invoice_date >= ?
		GROUP BY number_year, number_month, currency
		ORDER BY number_year, number_month, currency
	`, since).Scan(&results).Error

	if err != nil {
		return nil, err
	}
	return results, nil
}
