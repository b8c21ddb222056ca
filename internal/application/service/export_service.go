package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sangkips/backoffice-api/internal/domain/repository"
	"github.com/sangkips/backoffice-api/pkg/export"
	"github.com/sangkips/backoffice-api/pkg/timeutil"
	"github.com/shopspring/decimal"
)

var (
	invoiceExportHeader = []string{
		"Invoice Number", "Invoice Type", "Invoice Date", "Due Date", "Client", "Project", "Currency",
		"Amount", "Status", "Amount Received", "Pending Amount", "Payment Date", "Finance POC",
	}
	billingExportHeader = []string{
		"Client", "Project", "Contract Value", "Billed To Date", "Remaining", "Billing Cycle",
		"Next Billing Date", "Currency",
	}
	payrollExportHeader = []string{
		"Employee Code", "Employee", "Department", "Month", "Basic", "HRA", "Allowances", "Bonus",
		"Overtime Pay", "Gross", "Tax", "PF", "ESI", "Professional Tax", "Other Deductions",
		"Total Deductions", "Attendance Ratio", "Net Pay", "Adjusted",
	}
)

// ExportService builds downloadable tables of the filtered list pages
type ExportService struct {
	invoiceRepo    repository.InvoiceRepository
	billingRepo    repository.BillingRecordRepository
	payrollService *PayrollService
}

// NewExportService creates a new export service
func NewExportService(
	invoiceRepo repository.InvoiceRepository,
	billingRepo repository.BillingRecordRepository,
	payrollService *PayrollService,
) *ExportService {
	return &ExportService{
		invoiceRepo:    invoiceRepo,
		billingRepo:    billingRepo,
		payrollService: payrollService,
	}
}

// ExportInvoices returns one row per invoice matching the filters.
func (s *ExportService) ExportInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*export.Table, error) {
	invoices, err := s.invoiceRepo.ListAll(ctx, params)
	if err != nil {
		return nil, err
	}

	table := &export.Table{Name: "invoices", Header: invoiceExportHeader}
	for _, inv := range invoices {
		table.AddRow(
			inv.InvoiceNumber,
			inv.InvoiceType.Label(),
			timeutil.FormatDate(&inv.InvoiceDate),
			timeutil.FormatDate(inv.DueDate),
			inv.ClientName,
			deref(inv.ProjectName),
			inv.Currency,
			inv.InvoiceAmount.StringFixed(2),
			inv.Status.Label(),
			money(inv.AmountReceived),
			money(inv.PendingAmount),
			timeutil.FormatDate(inv.PaymentReceiveDate),
			deref(inv.FinancePOC),
		)
	}
	return table, nil
}

// ExportBillingRecords returns one row per billing record matching the filters.
func (s *ExportService) ExportBillingRecords(ctx context.Context, params *repository.BillingFilterParams) (*export.Table, error) {
	records, err := s.billingRepo.ListAll(ctx, params)
	if err != nil {
		return nil, err
	}

	table := &export.Table{Name: "billing-records", Header: billingExportHeader}
	for _, r := range records {
		table.AddRow(
			r.ClientName,
			deref(r.ProjectName),
			r.ContractValue.StringFixed(2),
			r.BilledToDate.StringFixed(2),
			r.RemainingAmount.StringFixed(2),
			r.BillingCycle.Label(),
			timeutil.FormatDate(r.NextBillingDate),
			r.Currency,
		)
	}
	return table, nil
}

// ExportPayroll returns the adjusted payroll of every active employee.
func (s *ExportService) ExportPayroll(ctx context.Context, q *PayrollQuery) (*export.Table, error) {
	records, err := s.payrollService.ListPayroll(ctx, q)
	if err != nil {
		return nil, err
	}

	month := time.Date(q.Year, time.Month(q.Month), 1, 0, 0, 0, 0, timeutil.IST).Format("Jan 2006")
	table := &export.Table{
		Name:   fmt.Sprintf("payroll-%04d-%02d", q.Year, q.Month),
		Header: payrollExportHeader,
	}
	for _, rec := range records {
		p := rec.Adjusted
		adjusted := "No"
		if rec.IsAdjusted() {
			adjusted = "Yes"
		}
		table.AddRow(
			rec.EmployeeCode,
			rec.FullName,
			rec.Department,
			month,
			p.BasicSalary.StringFixed(2),
			p.HRA.StringFixed(2),
			p.Allowances.StringFixed(2),
			p.Bonus.StringFixed(2),
			p.OvertimePay.StringFixed(2),
			p.GrossPay.StringFixed(2),
			p.Tax.StringFixed(2),
			p.PF.StringFixed(2),
			p.ESI.StringFixed(2),
			p.ProfessionalTax.StringFixed(2),
			p.OtherDeductions.StringFixed(2),
			p.TotalDeductions.StringFixed(2),
			p.AttendanceRatio.StringFixed(4),
			p.NetPay.StringFixed(2),
			adjusted,
		)
	}
	return table, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func money(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}
