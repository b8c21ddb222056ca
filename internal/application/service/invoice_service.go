package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/backoffice-api/internal/config"
	"github.com/sangkips/backoffice-api/internal/domain/entity"
	"github.com/sangkips/backoffice-api/internal/domain/enum"
	"github.com/sangkips/backoffice-api/internal/domain/invoicing"
	"github.com/sangkips/backoffice-api/internal/domain/repository"
	"github.com/sangkips/backoffice-api/internal/infrastructure/lock"
	"github.com/sangkips/backoffice-api/pkg/apperror"
	"github.com/sangkips/backoffice-api/pkg/pagination"
	"github.com/sangkips/backoffice-api/pkg/timeutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Locker serializes invoice number allocation per numbering scope.
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (lock.ReleaseFunc, error)
}

// InvoiceService handles invoice-related operations
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	auditRepo   repository.InvoiceAuditLogRepository
	clientRepo  repository.ClientRepository
	locker      Locker
	lockTTL     time.Duration
	retries     int
	logger      *zap.Logger
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	auditRepo repository.InvoiceAuditLogRepository,
	clientRepo repository.ClientRepository,
	locker Locker,
	cfg config.InvoiceConfig,
	logger *zap.Logger,
) *InvoiceService {
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 10 * time.Second
	}
	if cfg.AllocateRetries < 1 {
		cfg.AllocateRetries = 1
	}
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		auditRepo:   auditRepo,
		clientRepo:  clientRepo,
		locker:      locker,
		lockTTL:     cfg.LockTTL,
		retries:     cfg.AllocateRetries,
		logger:      logger,
	}
}

// TaskInput is one line item as submitted by the form
type TaskInput struct {
	TaskName    string
	Hours       decimal.Decimal
	RatePerHour decimal.Decimal
}

// InvoiceInput carries every editable invoice field. Create and update both
// submit the whole form; tasks replace the stored list.
type InvoiceInput struct {
	Actor string
	// InvoiceNumber is optional on create; blank means allocate. On update a
	// blank value keeps the current number.
	InvoiceNumber      string
	InvoiceType        enum.InvoiceType
	InvoiceDate        time.Time
	DueDate            *time.Time
	ClientName         string
	ClientAddress      *string
	ClientEmail        *string
	ClientGSTIN        *string
	ClientCountry      *string
	ProjectName        *string
	FinancePOC         *string
	Currency           string
	InvoiceAmount      *decimal.Decimal
	Status             enum.InvoiceStatus
	AmountReceived     *decimal.Decimal
	PaymentReceiveDate *time.Time
	Notes              *string
	Tasks              []TaskInput
}

// TotalsPreview is the reactive recompute shown while editing the form
type TotalsPreview struct {
	InvoiceAmount decimal.Decimal  `json:"invoice_amount"`
	PendingAmount *decimal.Decimal `json:"pending_amount,omitempty"`
	Computed      bool             `json:"computed"`
}

// PreviewTotals applies the amount policy to a draft without saving it.
func (s *InvoiceService) PreviewTotals(tasks []TaskInput, manual *decimal.Decimal, status enum.InvoiceStatus, received *decimal.Decimal) (*TotalsPreview, error) {
	if fieldErrs := validateTasks(tasks); len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	lines := taskLines(tasks)
	preview := &TotalsPreview{
		InvoiceAmount: invoicing.ResolveAmount(lines, manual),
		Computed:      len(lines) > 0,
	}
	if status.IsPaid() {
		pending := invoicing.ComputePending(preview.InvoiceAmount, valueOrZero(received))
		preview.PendingAmount = &pending
	}
	return preview, nil
}

// PreviewNextNumber returns the number a new invoice would receive right now.
// It takes no lock; the value may be gone by the time the form is submitted.
func (s *InvoiceService) PreviewNextNumber(ctx context.Context, invoiceType enum.InvoiceType, invoiceDate time.Time) (string, error) {
	if !invoiceType.IsValid() {
		return "", apperror.NewFieldError("invoice_type", "must be one of india, global")
	}
	return s.nextNumber(ctx, invoicing.ScopeOf(invoiceType, invoiceDate), invoiceDate)
}

func (s *InvoiceService) nextNumber(ctx context.Context, scope invoicing.Scope, invoiceDate time.Time) (string, error) {
	existing, err := s.invoiceRepo.ListInScope(ctx, scope.Type, scope.Year, scope.Month)
	if err != nil {
		return "", err
	}

	numbered := make([]invoicing.NumberedInvoice, len(existing))
	for i, inv := range existing {
		numbered[i] = invoicing.NumberedInvoice{
			InvoiceNumber: inv.InvoiceNumber,
			InvoiceType:   inv.InvoiceType,
			InvoiceDate:   inv.InvoiceDate,
		}
	}
	return invoicing.Allocate(invoiceDate, scope.Type, numbered), nil
}

// CreateInvoice saves a new invoice. Allocation and insert run under a lock
// on the numbering scope; an allocated number that still collides is
// re-allocated, an explicit one is reported as a conflict.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *InvoiceInput) (*entity.Invoice, error) {
	if err := validateInvoiceInput(input); err != nil {
		return nil, err
	}

	invoice := &entity.Invoice{CreatedBy: input.Actor}
	s.apply(invoice, input)
	if err := s.autofillClient(ctx, invoice); err != nil {
		return nil, err
	}

	scope := invoicing.ScopeOf(invoice.InvoiceType, invoice.InvoiceDate)
	release, err := s.locker.Obtain(ctx, "invoice-number:"+scope.Key(), s.lockTTL)
	if err != nil {
		if errors.Is(err, lock.ErrNotObtained) {
			s.logger.Warn("invoice numbering lock busy", zap.String("scope", scope.Key()))
			return nil, apperror.NewServiceUnavailableError("Invoice numbering is busy, please retry")
		}
		return nil, fmt.Errorf("lock invoice numbering: %w", err)
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn("failed to release invoice numbering lock", zap.String("scope", scope.Key()), zap.Error(err))
		}
	}()

	explicit := strings.TrimSpace(input.InvoiceNumber) != ""
	for attempt := 1; ; attempt++ {
		if !explicit {
			number, err := s.nextNumber(ctx, scope, invoice.InvoiceDate)
			if err != nil {
				return nil, err
			}
			invoice.InvoiceNumber = number
		}

		audit := []entity.InvoiceAuditLog{{
			Action:    entity.AuditActionCreated,
			NewValue:  strPtr(invoice.InvoiceNumber),
			ChangedBy: input.Actor,
		}}

		err := s.invoiceRepo.Create(ctx, invoice, audit)
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, err
		}
		if explicit {
			return nil, apperror.NewConflictError(fmt.Sprintf("Invoice number %s already exists", invoice.InvoiceNumber))
		}
		if attempt >= s.retries {
			s.logger.Error("invoice number allocation exhausted retries",
				zap.String("scope", scope.Key()), zap.String("last_number", invoice.InvoiceNumber))
			return nil, apperror.NewConflictError("Could not allocate an invoice number, please retry")
		}
		s.logger.Warn("allocated invoice number collided, retrying",
			zap.String("scope", scope.Key()), zap.String("number", invoice.InvoiceNumber), zap.Int("attempt", attempt))
	}

	s.logger.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("actor", input.Actor))
	return invoice, nil
}

// GetInvoice retrieves an invoice with its tasks
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists invoices with filters
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.Paginate(invoices, params.Pagination, total), nil
}

// UpdateInvoice replaces the invoice fields and tasks and records one audit
// entry per changed field.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id uuid.UUID, input *InvoiceInput) (*entity.Invoice, error) {
	if err := validateInvoiceInput(input); err != nil {
		return nil, err
	}

	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	before := *invoice
	before.Tasks = append([]entity.InvoiceTask(nil), invoice.Tasks...)

	number := invoice.InvoiceNumber
	s.apply(invoice, input)
	if strings.TrimSpace(input.InvoiceNumber) == "" {
		invoice.InvoiceNumber = number
	}
	invoice.UpdatedBy = input.Actor
	if err := s.autofillClient(ctx, invoice); err != nil {
		return nil, err
	}

	changes := invoicing.Diff(&before, invoice)
	audit := make([]entity.InvoiceAuditLog, 0, len(changes))
	for _, c := range changes {
		audit = append(audit, entity.InvoiceAuditLog{
			Action:    entity.AuditActionUpdated,
			Field:     strPtr(c.Field),
			OldValue:  strPtr(c.OldValue),
			NewValue:  strPtr(c.NewValue),
			ChangedBy: input.Actor,
		})
	}

	if err := s.invoiceRepo.Update(ctx, invoice, audit); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflictError(fmt.Sprintf("Invoice number %s already exists", invoice.InvoiceNumber))
		}
		return nil, err
	}

	s.logger.Info("invoice updated",
		zap.String("invoice_id", invoice.ID.String()),
		zap.Int("changed_fields", len(changes)),
		zap.String("actor", input.Actor))
	return invoice, nil
}

// DeleteInvoice removes an invoice and its tasks. The audit trail is kept.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID, actor string) error {
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return err
	}

	audit := []entity.InvoiceAuditLog{{
		Action:    entity.AuditActionDeleted,
		Field:     strPtr("invoice_number"),
		OldValue:  strPtr(invoice.InvoiceNumber),
		ChangedBy: actor,
	}}
	if err := s.invoiceRepo.Delete(ctx, id, audit); err != nil {
		return err
	}

	s.logger.Info("invoice deleted",
		zap.String("invoice_id", id.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("actor", actor))
	return nil
}

// ListAuditLogs returns an invoice's change trail, oldest first. Entries of
// deleted invoices remain readable.
func (s *InvoiceService) ListAuditLogs(ctx context.Context, id uuid.UUID) ([]entity.InvoiceAuditLog, error) {
	logs, err := s.auditRepo.ListByInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []entity.InvoiceAuditLog{}
	}
	return logs, nil
}

// apply copies the form onto invoice and derives amount, payment fields and
// the numbering scope.
func (s *InvoiceService) apply(invoice *entity.Invoice, input *InvoiceInput) {
	invoiceDate := timeutil.ToIST(input.InvoiceDate)
	scope := invoicing.ScopeOf(input.InvoiceType, invoiceDate)

	invoice.InvoiceNumber = strings.TrimSpace(input.InvoiceNumber)
	invoice.InvoiceType = input.InvoiceType
	invoice.NumberYear = scope.Year
	invoice.NumberMonth = scope.Month
	invoice.InvoiceDate = invoiceDate
	invoice.DueDate = istDate(input.DueDate)
	invoice.ClientName = strings.TrimSpace(input.ClientName)
	invoice.ClientAddress = input.ClientAddress
	invoice.ClientEmail = input.ClientEmail
	invoice.ClientGSTIN = input.ClientGSTIN
	invoice.ClientCountry = input.ClientCountry
	invoice.ProjectName = input.ProjectName
	invoice.FinancePOC = input.FinancePOC
	invoice.Currency = normalizeCurrency(input.Currency)
	invoice.Notes = input.Notes

	invoice.Status = input.Status
	if invoice.Status == "" {
		invoice.Status = enum.InvoiceStatusInProgress
	}

	invoice.Tasks = make([]entity.InvoiceTask, len(input.Tasks))
	for i, t := range input.Tasks {
		line := invoicing.TaskLine{Hours: t.Hours, RatePerHour: t.RatePerHour}
		stored := line.Normalize()
		invoice.Tasks[i] = entity.InvoiceTask{
			TaskName:     strings.TrimSpace(t.TaskName),
			Hours:        stored.Hours,
			RatePerHour:  stored.RatePerHour,
			Amount:       line.LineAmount(),
			DisplayOrder: i,
		}
	}
	invoice.InvoiceAmount = invoicing.ResolveAmount(taskLines(input.Tasks), input.InvoiceAmount).Round(2)

	if !invoice.Status.IsPaid() {
		invoice.ClearPayment()
		return
	}
	received := valueOrZero(input.AmountReceived).Round(2)
	pending := invoicing.ComputePending(invoice.InvoiceAmount, received)
	invoice.AmountReceived = &received
	invoice.PendingAmount = &pending
	invoice.PaymentReceiveDate = istDate(input.PaymentReceiveDate)
}

// autofillClient copies ClientMaster details into blank address fields when
// the client name matches a master record exactly.
func (s *InvoiceService) autofillClient(ctx context.Context, invoice *entity.Invoice) error {
	if s.clientRepo == nil || invoice.ClientName == "" {
		return nil
	}
	client, err := s.clientRepo.GetByName(ctx, invoice.ClientName)
	if err != nil {
		return err
	}
	if client == nil {
		return nil
	}

	invoice.ClientAddress = fillBlank(invoice.ClientAddress, client.Address)
	invoice.ClientEmail = fillBlank(invoice.ClientEmail, client.Email)
	invoice.ClientGSTIN = fillBlank(invoice.ClientGSTIN, client.GSTIN)
	invoice.ClientCountry = fillBlank(invoice.ClientCountry, client.Country)
	return nil
}

func validateInvoiceInput(input *InvoiceInput) error {
	var fieldErrs []apperror.FieldError
	if !input.InvoiceType.IsValid() {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "invoice_type", Message: "must be one of india, global"})
	}
	if input.InvoiceDate.IsZero() {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "invoice_date", Message: "is required"})
	}
	if strings.TrimSpace(input.ClientName) == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "client_name", Message: "is required"})
	}
	if input.Status != "" && !input.Status.IsValid() {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "status", Message: "is not a valid invoice status"})
	}
	if input.InvoiceAmount != nil && input.InvoiceAmount.IsNegative() {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "invoice_amount", Message: "must not be negative"})
	}
	if input.AmountReceived != nil && input.AmountReceived.IsNegative() {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "amount_received", Message: "must not be negative"})
	}
	fieldErrs = append(fieldErrs, validateTasks(input.Tasks)...)

	if len(fieldErrs) > 0 {
		return apperror.NewValidationError(fieldErrs)
	}
	return nil
}

func validateTasks(tasks []TaskInput) []apperror.FieldError {
	var fieldErrs []apperror.FieldError
	for i, t := range tasks {
		prefix := fmt.Sprintf("tasks[%d].", i)
		if strings.TrimSpace(t.TaskName) == "" {
			fieldErrs = append(fieldErrs, apperror.FieldError{Field: prefix + "task_name", Message: "is required"})
		}
		line := invoicing.TaskLine{Hours: t.Hours, RatePerHour: t.RatePerHour}.Normalize()
		if !line.Hours.IsPositive() {
			fieldErrs = append(fieldErrs, apperror.FieldError{Field: prefix + "hours", Message: "must be at least 0.01"})
		}
		if !line.RatePerHour.IsPositive() {
			fieldErrs = append(fieldErrs, apperror.FieldError{Field: prefix + "rate_per_hour", Message: "must be at least 0.01"})
		}
	}
	return fieldErrs
}

func taskLines(tasks []TaskInput) []invoicing.TaskLine {
	lines := make([]invoicing.TaskLine, len(tasks))
	for i, t := range tasks {
		lines[i] = invoicing.TaskLine{Hours: t.Hours, RatePerHour: t.RatePerHour}
	}
	return lines
}
