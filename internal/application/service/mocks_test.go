package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/backoffice-api/internal/domain/entity"
	"github.com/sangkips/backoffice-api/internal/domain/enum"
	"github.com/sangkips/backoffice-api/internal/domain/repository"
	"github.com/sangkips/backoffice-api/internal/infrastructure/lock"
	"github.com/sangkips/backoffice-api/pkg/pagination"
	"github.com/stretchr/testify/mock"
)

type mockInvoiceRepo struct {
	mock.Mock
}

func (m *mockInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice, audit []entity.InvoiceAuditLog) error {
	return m.Called(ctx, invoice, audit).Error(0)
}

func (m *mockInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	args := m.Called(ctx, id)
	if inv := args.Get(0); inv != nil {
		return inv.(*entity.Invoice), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice, audit []entity.InvoiceAuditLog) error {
	return m.Called(ctx, invoice, audit).Error(0)
}

func (m *mockInvoiceRepo) Delete(ctx context.Context, id uuid.UUID, audit []entity.InvoiceAuditLog) error {
	return m.Called(ctx, id, audit).Error(0)
}

func (m *mockInvoiceRepo) List(ctx context.Context, params *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]entity.Invoice), args.Get(1).(int64), args.Error(2)
}

func (m *mockInvoiceRepo) ListAll(ctx context.Context, params *repository.InvoiceFilterParams) ([]entity.Invoice, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]entity.Invoice), args.Error(1)
}

func (m *mockInvoiceRepo) ListInScope(ctx context.Context, invoiceType enum.InvoiceType, year, month int) ([]entity.Invoice, error) {
	args := m.Called(ctx, invoiceType, year, month)
	return args.Get(0).([]entity.Invoice), args.Error(1)
}

func (m *mockInvoiceRepo) SetPDFURL(ctx context.Context, id uuid.UUID, url string) error {
	return m.Called(ctx, id, url).Error(0)
}

type mockAuditRepo struct {
	mock.Mock
}

func (m *mockAuditRepo) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]entity.InvoiceAuditLog, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).([]entity.InvoiceAuditLog), args.Error(1)
}

type mockClientRepo struct {
	mock.Mock
}

func (m *mockClientRepo) Create(ctx context.Context, client *entity.Client) error {
	return m.Called(ctx, client).Error(0)
}

func (m *mockClientRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*entity.Client), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockClientRepo) GetByName(ctx context.Context, name string) (*entity.Client, error) {
	args := m.Called(ctx, name)
	if c := args.Get(0); c != nil {
		return c.(*entity.Client), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockClientRepo) Update(ctx context.Context, client *entity.Client) error {
	return m.Called(ctx, client).Error(0)
}

func (m *mockClientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockClientRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Client, int64, error) {
	args := m.Called(ctx, params, search)
	return args.Get(0).([]entity.Client), args.Get(1).(int64), args.Error(2)
}

type mockBillingRepo struct {
	mock.Mock
}

func (m *mockBillingRepo) Create(ctx context.Context, record *entity.BillingRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *mockBillingRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.BillingRecord, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*entity.BillingRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBillingRepo) Update(ctx context.Context, record *entity.BillingRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *mockBillingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBillingRepo) List(ctx context.Context, params *repository.BillingFilterParams) ([]entity.BillingRecord, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]entity.BillingRecord), args.Get(1).(int64), args.Error(2)
}

func (m *mockBillingRepo) ListAll(ctx context.Context, params *repository.BillingFilterParams) ([]entity.BillingRecord, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]entity.BillingRecord), args.Error(1)
}

type mockEmployeeRepo struct {
	mock.Mock
}

func (m *mockEmployeeRepo) Create(ctx context.Context, employee *entity.Employee) error {
	return m.Called(ctx, employee).Error(0)
}

func (m *mockEmployeeRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	args := m.Called(ctx, id)
	if e := args.Get(0); e != nil {
		return e.(*entity.Employee), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEmployeeRepo) GetByCode(ctx context.Context, code string) (*entity.Employee, error) {
	args := m.Called(ctx, code)
	if e := args.Get(0); e != nil {
		return e.(*entity.Employee), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEmployeeRepo) Update(ctx context.Context, employee *entity.Employee) error {
	return m.Called(ctx, employee).Error(0)
}

func (m *mockEmployeeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockEmployeeRepo) List(ctx context.Context, params *repository.EmployeeFilterParams) ([]entity.Employee, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]entity.Employee), args.Get(1).(int64), args.Error(2)
}

func (m *mockEmployeeRepo) ListActive(ctx context.Context, department string) ([]entity.Employee, error) {
	args := m.Called(ctx, department)
	return args.Get(0).([]entity.Employee), args.Error(1)
}

type mockAttendanceRepo struct {
	mock.Mock
}

func (m *mockAttendanceRepo) Upsert(ctx context.Context, summary *entity.AttendanceSummary) error {
	return m.Called(ctx, summary).Error(0)
}

func (m *mockAttendanceRepo) Get(ctx context.Context, employeeID uuid.UUID, year, month int) (*entity.AttendanceSummary, error) {
	args := m.Called(ctx, employeeID, year, month)
	if s := args.Get(0); s != nil {
		return s.(*entity.AttendanceSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAttendanceRepo) ListByPeriod(ctx context.Context, year, month int) ([]entity.AttendanceSummary, error) {
	args := m.Called(ctx, year, month)
	return args.Get(0).([]entity.AttendanceSummary), args.Error(1)
}

type mockAdjustmentRepo struct {
	mock.Mock
}

func (m *mockAdjustmentRepo) Create(ctx context.Context, adjustment *entity.PayrollAdjustment) error {
	return m.Called(ctx, adjustment).Error(0)
}

func (m *mockAdjustmentRepo) List(ctx context.Context, employeeID *uuid.UUID, year, month int) ([]entity.PayrollAdjustment, error) {
	args := m.Called(ctx, employeeID, year, month)
	return args.Get(0).([]entity.PayrollAdjustment), args.Error(1)
}

type mockSummaryRepo struct {
	mock.Mock
}

func (m *mockSummaryRepo) InvoiceTotalsByStatus(ctx context.Context) ([]repository.InvoiceStatusTotal, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repository.InvoiceStatusTotal), args.Error(1)
}

func (m *mockSummaryRepo) CountPastDue(ctx context.Context, asOf time.Time) (int64, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSummaryRepo) BillingTotals(ctx context.Context) ([]repository.BillingTotal, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repository.BillingTotal), args.Error(1)
}

func (m *mockSummaryRepo) MonthlyInvoiced(ctx context.Context, since time.Time) ([]repository.MonthlyInvoiced, error) {
	args := m.Called(ctx, since)
	return args.Get(0).([]repository.MonthlyInvoiced), args.Error(1)
}

type mockLocker struct {
	mock.Mock
	released int
}

func (m *mockLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (lock.ReleaseFunc, error) {
	args := m.Called(ctx, key, ttl)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return func(context.Context) error {
		m.released++
		return nil
	}, nil
}

type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	args := m.Called(ctx, html)
	if b := args.Get(0); b != nil {
		return b.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	args := m.Called(ctx, key, contentType, body)
	return args.String(0), args.Error(1)
}
