package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/backoffice-api/internal/config"
	"github.com/sangkips/backoffice-api/internal/domain/entity"
	"github.com/sangkips/backoffice-api/internal/domain/enum"
	"github.com/sangkips/backoffice-api/internal/domain/repository"
	"github.com/sangkips/backoffice-api/internal/infrastructure/lock"
	"github.com/sangkips/backoffice-api/pkg/apperror"
	"github.com/sangkips/backoffice-api/pkg/timeutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type invoiceFixture struct {
	svc     *InvoiceService
	repo    *mockInvoiceRepo
	audit   *mockAuditRepo
	clients *mockClientRepo
	locker  *mockLocker
}

func newInvoiceFixture(t *testing.T) *invoiceFixture {
	f := &invoiceFixture{
		repo:    new(mockInvoiceRepo),
		audit:   new(mockAuditRepo),
		clients: new(mockClientRepo),
		locker:  new(mockLocker),
	}
	cfg := config.InvoiceConfig{LockTTL: 5 * time.Second, AllocateRetries: 3}
	f.svc = NewInvoiceService(f.repo, f.audit, f.clients, f.locker, cfg, zaptest.NewLogger(t))
	return f
}

func assertAppError(t *testing.T, err error, code int) *apperror.AppError {
	t.Helper()
	require.Error(t, err)
	require.True(t, apperror.IsAppError(err), "expected AppError, got %v", err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func istDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, timeutil.IST)
}

func baseInvoiceInput() *InvoiceInput {
	return &InvoiceInput{
		Actor:       "finance@example.com",
		InvoiceType: enum.InvoiceTypeIndia,
		InvoiceDate: istDay(2025, time.December, 10),
		ClientName:  "Acme",
	}
}

func TestInvoiceService_CreateInvoice_AllocatesNextNumber(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()

	f.locker.On("Obtain", mock.Anything, "invoice-number:india:2025-12", 5*time.Second).Return(nil)
	f.clients.On("GetByName", mock.Anything, "Acme").Return(&entity.Client{
		ClientName: "Acme",
		Address:    strPtr("12 MG Road, Pune"),
		GSTIN:      strPtr("27AAAAA0000A1Z5"),
	}, nil)
	f.repo.On("ListInScope", mock.Anything, enum.InvoiceTypeIndia, 2025, 12).Return([]entity.Invoice{
		{InvoiceNumber: "MT/DEC001", InvoiceType: enum.InvoiceTypeIndia, InvoiceDate: istDay(2025, time.December, 1)},
		{InvoiceNumber: "MT/DEC004", InvoiceType: enum.InvoiceTypeIndia, InvoiceDate: istDay(2025, time.December, 3)},
	}, nil)

	var audit []entity.InvoiceAuditLog
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Invoice"), mock.Anything).
		Run(func(args mock.Arguments) { audit = args.Get(2).([]entity.InvoiceAuditLog) }).
		Return(nil)

	input := baseInvoiceInput()
	input.Tasks = []TaskInput{
		{TaskName: "Design", Hours: dec("10"), RatePerHour: dec("25")},
		{TaskName: "Build", Hours: dec("2.5"), RatePerHour: dec("100")},
	}
	input.InvoiceAmount = decPtr("1") // ignored while tasks exist

	invoice, err := f.svc.CreateInvoice(ctx, input)
	require.NoError(t, err)

	assert.Equal(t, "MT/DEC005", invoice.InvoiceNumber)
	assert.Equal(t, 2025, invoice.NumberYear)
	assert.Equal(t, 12, invoice.NumberMonth)
	assert.Equal(t, "500.00", invoice.InvoiceAmount.StringFixed(2))
	assert.Equal(t, enum.InvoiceStatusInProgress, invoice.Status)
	assert.Equal(t, "INR", invoice.Currency)
	require.Len(t, invoice.Tasks, 2)
	assert.Equal(t, "250.00", invoice.Tasks[1].Amount.StringFixed(2))
	assert.Equal(t, 1, invoice.Tasks[1].DisplayOrder)
	assert.Nil(t, invoice.AmountReceived)
	assert.Nil(t, invoice.PendingAmount)

	require.NotNil(t, invoice.ClientAddress)
	assert.Equal(t, "12 MG Road, Pune", *invoice.ClientAddress)
	assert.Equal(t, "27AAAAA0000A1Z5", *invoice.ClientGSTIN)

	require.Len(t, audit, 1)
	assert.Equal(t, entity.AuditActionCreated, audit[0].Action)
	assert.Equal(t, "MT/DEC005", *audit[0].NewValue)
	assert.Equal(t, "finance@example.com", audit[0].ChangedBy)
	assert.Equal(t, 1, f.locker.released)
}

func TestInvoiceService_CreateInvoice_RetriesCollidingNumber(t *testing.T) {
	f := newInvoiceFixture(t)

	f.locker.On("Obtain", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.clients.On("GetByName", mock.Anything, "Acme").Return(nil, nil)
	f.repo.On("ListInScope", mock.Anything, enum.InvoiceTypeIndia, 2025, 12).Return([]entity.Invoice{}, nil).Once()
	f.repo.On("ListInScope", mock.Anything, enum.InvoiceTypeIndia, 2025, 12).Return([]entity.Invoice{
		{InvoiceNumber: "MT/DEC001", InvoiceType: enum.InvoiceTypeIndia, InvoiceDate: istDay(2025, time.December, 9)},
	}, nil).Once()
	f.repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(repository.ErrDuplicate).Once()
	f.repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	invoice, err := f.svc.CreateInvoice(context.Background(), baseInvoiceInput())
	require.NoError(t, err)

	assert.Equal(t, "MT/DEC002", invoice.InvoiceNumber)
	f.repo.AssertNumberOfCalls(t, "Create", 2)
	assert.Equal(t, 1, f.locker.released)
}

func TestInvoiceService_CreateInvoice_GivesUpAfterRetries(t *testing.T) {
	f := newInvoiceFixture(t)

	f.locker.On("Obtain", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.clients.On("GetByName", mock.Anything, mock.Anything).Return(nil, nil)
	f.repo.On("ListInScope", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]entity.Invoice{}, nil)
	f.repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	_, err := f.svc.CreateInvoice(context.Background(), baseInvoiceInput())

	assertAppError(t, err, http.StatusConflict)
	f.repo.AssertNumberOfCalls(t, "Create", 3)
}

func TestInvoiceService_CreateInvoice_ExplicitNumberConflict(t *testing.T) {
	f := newInvoiceFixture(t)

	f.locker.On("Obtain", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.clients.On("GetByName", mock.Anything, mock.Anything).Return(nil, nil)
	f.repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	input := baseInvoiceInput()
	input.InvoiceNumber = " MT/DEC007 "

	_, err := f.svc.CreateInvoice(context.Background(), input)

	appErr := assertAppError(t, err, http.StatusConflict)
	assert.Contains(t, appErr.Message, "MT/DEC007")
	f.repo.AssertNotCalled(t, "ListInScope", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestInvoiceService_CreateInvoice_LockBusy(t *testing.T) {
	f := newInvoiceFixture(t)

	f.clients.On("GetByName", mock.Anything, mock.Anything).Return(nil, nil)
	f.locker.On("Obtain", mock.Anything, mock.Anything, mock.Anything).Return(lock.ErrNotObtained)

	_, err := f.svc.CreateInvoice(context.Background(), baseInvoiceInput())

	assertAppError(t, err, http.StatusServiceUnavailable)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceService_CreateInvoice_Validation(t *testing.T) {
	f := newInvoiceFixture(t)

	input := &InvoiceInput{
		InvoiceType: "domestic",
		Status:      "cancelled",
		Tasks:       []TaskInput{{TaskName: " ", Hours: dec("0"), RatePerHour: dec("10")}},
	}

	_, err := f.svc.CreateInvoice(context.Background(), input)

	appErr := assertAppError(t, err, http.StatusUnprocessableEntity)
	fields := make([]string, 0, len(appErr.Errors))
	for _, fe := range appErr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{
		"invoice_type", "invoice_date", "client_name", "status", "tasks[0].task_name", "tasks[0].hours",
	}, fields)
	f.locker.AssertNotCalled(t, "Obtain", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceService_CreateInvoice_PaidComputesPending(t *testing.T) {
	f := newInvoiceFixture(t)

	f.locker.On("Obtain", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.clients.On("GetByName", mock.Anything, mock.Anything).Return(nil, nil)
	f.repo.On("ListInScope", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]entity.Invoice{}, nil)
	f.repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	received := istDay(2026, time.January, 5)
	input := baseInvoiceInput()
	input.InvoiceType = enum.InvoiceTypeGlobal
	input.Currency = "usd"
	input.InvoiceAmount = decPtr("1200")
	input.Status = enum.InvoiceStatusPaid
	input.AmountReceived = decPtr("1500")
	input.PaymentReceiveDate = &received

	invoice, err := f.svc.CreateInvoice(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "MECH/DEC001", invoice.InvoiceNumber)
	assert.Equal(t, "USD", invoice.Currency)
	assert.Equal(t, "1200.00", invoice.InvoiceAmount.StringFixed(2))
	require.NotNil(t, invoice.PendingAmount)
	assert.True(t, invoice.PendingAmount.IsZero())
	require.NotNil(t, invoice.PaymentReceiveDate)
	assert.Equal(t, received, *invoice.PaymentReceiveDate)
}

func TestInvoiceService_UpdateInvoice_AuditsChangedFields(t *testing.T) {
	f := newInvoiceFixture(t)
	id := uuid.New()

	existing := &entity.Invoice{
		ID:            id,
		InvoiceNumber: "MT/DEC001",
		InvoiceType:   enum.InvoiceTypeIndia,
		NumberYear:    2025,
		NumberMonth:   12,
		InvoiceDate:   istDay(2025, time.December, 10),
		ClientName:    "Acme",
		Currency:      "INR",
		InvoiceAmount: dec("100"),
		Status:        enum.InvoiceStatusInProgress,
		Tasks: []entity.InvoiceTask{
			{TaskName: "Support", Hours: dec("1"), RatePerHour: dec("100"), Amount: dec("100")},
		},
	}
	f.repo.On("GetByID", mock.Anything, id).Return(existing, nil)
	f.clients.On("GetByName", mock.Anything, "Acme").Return(nil, nil)

	var audit []entity.InvoiceAuditLog
	f.repo.On("Update", mock.Anything, mock.AnythingOfType("*entity.Invoice"), mock.Anything).
		Run(func(args mock.Arguments) { audit = args.Get(2).([]entity.InvoiceAuditLog) }).
		Return(nil)

	input := baseInvoiceInput()
	input.Actor = "auditor@example.com"
	input.Status = enum.InvoiceStatusPaid
	input.AmountReceived = decPtr("60")
	input.Tasks = []TaskInput{{TaskName: "Support", Hours: dec("2"), RatePerHour: dec("100")}}

	invoice, err := f.svc.UpdateInvoice(context.Background(), id, input)
	require.NoError(t, err)

	assert.Equal(t, "MT/DEC001", invoice.InvoiceNumber)
	assert.Equal(t, "200.00", invoice.InvoiceAmount.StringFixed(2))
	assert.Equal(t, "140.00", invoice.PendingAmount.StringFixed(2))
	assert.Equal(t, "auditor@example.com", invoice.UpdatedBy)

	changed := map[string][2]string{}
	for _, a := range audit {
		assert.Equal(t, entity.AuditActionUpdated, a.Action)
		assert.Equal(t, "auditor@example.com", a.ChangedBy)
		changed[*a.Field] = [2]string{*a.OldValue, *a.NewValue}
	}
	assert.Equal(t, [2]string{"100.00", "200.00"}, changed["invoice_amount"])
	assert.Equal(t, [2]string{"in_progress", "paid"}, changed["status"])
	assert.Equal(t, [2]string{"", "60.00"}, changed["amount_received"])
	assert.Equal(t, [2]string{"", "140.00"}, changed["pending_amount"])
	assert.Contains(t, changed, "tasks")
	assert.Len(t, changed, 5)
}

func TestInvoiceService_UpdateInvoice_UnpaidClearsPayment(t *testing.T) {
	f := newInvoiceFixture(t)
	id := uuid.New()
	paidOn := istDay(2025, time.December, 20)

	f.repo.On("GetByID", mock.Anything, id).Return(&entity.Invoice{
		ID:                 id,
		InvoiceNumber:      "MT/DEC001",
		InvoiceType:        enum.InvoiceTypeIndia,
		InvoiceDate:        istDay(2025, time.December, 10),
		ClientName:         "Acme",
		Currency:           "INR",
		InvoiceAmount:      dec("100"),
		Status:             enum.InvoiceStatusPaid,
		AmountReceived:     decPtr("100"),
		PendingAmount:      decPtr("0"),
		PaymentReceiveDate: &paidOn,
	}, nil)
	f.clients.On("GetByName", mock.Anything, mock.Anything).Return(nil, nil)
	f.repo.On("Update", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	input := baseInvoiceInput()
	input.InvoiceAmount = decPtr("100")
	input.Status = enum.InvoiceStatusOverdue
	input.AmountReceived = decPtr("100")

	invoice, err := f.svc.UpdateInvoice(context.Background(), id, input)
	require.NoError(t, err)

	assert.Nil(t, invoice.AmountReceived)
	assert.Nil(t, invoice.PendingAmount)
	assert.Nil(t, invoice.PaymentReceiveDate)
}

func TestInvoiceService_UpdateInvoice_NotFound(t *testing.T) {
	f := newInvoiceFixture(t)
	id := uuid.New()
	f.repo.On("GetByID", mock.Anything, id).Return(nil, nil)

	_, err := f.svc.UpdateInvoice(context.Background(), id, baseInvoiceInput())

	assertAppError(t, err, http.StatusNotFound)
}

func TestInvoiceService_DeleteInvoice_WritesAudit(t *testing.T) {
	f := newInvoiceFixture(t)
	id := uuid.New()

	f.repo.On("GetByID", mock.Anything, id).Return(&entity.Invoice{ID: id, InvoiceNumber: "MECH/NOV003"}, nil)
	f.repo.On("Delete", mock.Anything, id, mock.MatchedBy(func(audit []entity.InvoiceAuditLog) bool {
		return len(audit) == 1 &&
			audit[0].Action == entity.AuditActionDeleted &&
			*audit[0].OldValue == "MECH/NOV003" &&
			audit[0].ChangedBy == "admin@example.com"
	})).Return(nil)

	require.NoError(t, f.svc.DeleteInvoice(context.Background(), id, "admin@example.com"))
	f.repo.AssertExpectations(t)
}

func TestInvoiceService_ListAuditLogs_Empty(t *testing.T) {
	f := newInvoiceFixture(t)
	id := uuid.New()
	f.audit.On("ListByInvoice", mock.Anything, id).Return([]entity.InvoiceAuditLog(nil), nil)

	logs, err := f.svc.ListAuditLogs(context.Background(), id)
	require.NoError(t, err)
	assert.NotNil(t, logs)
	assert.Empty(t, logs)
}

func TestInvoiceService_PreviewTotals(t *testing.T) {
	f := newInvoiceFixture(t)

	t.Run("tasks win over manual amount", func(t *testing.T) {
		preview, err := f.svc.PreviewTotals(
			[]TaskInput{{TaskName: "Audit", Hours: dec("3"), RatePerHour: dec("33.33")}},
			decPtr("5000"), enum.InvoiceStatusSent, nil)
		require.NoError(t, err)
		assert.True(t, preview.Computed)
		assert.Equal(t, "99.99", preview.InvoiceAmount.StringFixed(2))
		assert.Nil(t, preview.PendingAmount)
	})

	t.Run("manual amount when paid", func(t *testing.T) {
		preview, err := f.svc.PreviewTotals(nil, decPtr("800"), enum.InvoiceStatusPaid, decPtr("300"))
		require.NoError(t, err)
		assert.False(t, preview.Computed)
		require.NotNil(t, preview.PendingAmount)
		assert.Equal(t, "500.00", preview.PendingAmount.StringFixed(2))
	})

	t.Run("invalid task", func(t *testing.T) {
		_, err := f.svc.PreviewTotals([]TaskInput{{TaskName: "x", Hours: dec("1"), RatePerHour: dec("-1")}}, nil, "", nil)
		assertAppError(t, err, http.StatusUnprocessableEntity)
	})
}

func TestInvoiceService_PreviewNextNumber(t *testing.T) {
	f := newInvoiceFixture(t)
	f.repo.On("ListInScope", mock.Anything, enum.InvoiceTypeGlobal, 2026, 1).Return([]entity.Invoice{
		{InvoiceNumber: "MECH/JAN009", InvoiceType: enum.InvoiceTypeGlobal, InvoiceDate: istDay(2026, time.January, 2)},
		{InvoiceNumber: "MECH/JAN-special", InvoiceType: enum.InvoiceTypeGlobal, InvoiceDate: istDay(2026, time.January, 2)},
	}, nil)

	number, err := f.svc.PreviewNextNumber(context.Background(), enum.InvoiceTypeGlobal, istDay(2026, time.January, 15))
	require.NoError(t, err)
	assert.Equal(t, "MECH/JAN010", number)

	_, err = f.svc.PreviewNextNumber(context.Background(), "domestic", istDay(2026, time.January, 15))
	assertAppError(t, err, http.StatusUnprocessableEntity)
}

func TestInvoiceService_CreateInvoice_RepositoryError(t *testing.T) {
	f := newInvoiceFixture(t)

	f.locker.On("Obtain", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.clients.On("GetByName", mock.Anything, mock.Anything).Return(nil, nil)
	f.repo.On("ListInScope", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]entity.Invoice{}, nil)
	dbErr := errors.New("connection reset")
	f.repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(dbErr)

	_, err := f.svc.CreateInvoice(context.Background(), baseInvoiceInput())

	assert.ErrorIs(t, err, dbErr)
	assert.Equal(t, 1, f.locker.released)
}

func TestInvoiceService_CreateInvoice_LineAmountsAddUpToTotal(t *testing.T) {
	f := newInvoiceFixture(t)

	f.locker.On("Obtain", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.clients.On("GetByName", mock.Anything, mock.Anything).Return(nil, nil)
	f.repo.On("ListInScope", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]entity.Invoice{}, nil)
	f.repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	input := baseInvoiceInput()
	input.Tasks = []TaskInput{
		{TaskName: "Review", Hours: dec("1.5"), RatePerHour: dec("33.33")},
		{TaskName: "Fixes", Hours: dec("1.504"), RatePerHour: dec("33.33")},
	}

	invoice, err := f.svc.CreateInvoice(context.Background(), input)
	require.NoError(t, err)

	sum := decimal.Zero
	for _, task := range invoice.Tasks {
		assert.Equal(t, "50.00", task.Amount.StringFixed(2))
		sum = sum.Add(task.Amount)
	}
	assert.Equal(t, "1.5", invoice.Tasks[1].Hours.String())
	assert.True(t, invoice.InvoiceAmount.Equal(sum), "total %s, lines %s", invoice.InvoiceAmount, sum)
	assert.Equal(t, "100.00", invoice.InvoiceAmount.StringFixed(2))
}

func TestInvoiceService_PreviewTotals_HoursBelowStoredScale(t *testing.T) {
	f := newInvoiceFixture(t)

	_, err := f.svc.PreviewTotals([]TaskInput{{TaskName: "Call", Hours: dec("0.004"), RatePerHour: dec("100")}}, nil, "", nil)

	appErr := assertAppError(t, err, http.StatusUnprocessableEntity)
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "tasks[0].hours", appErr.Errors[0].Field)
}
