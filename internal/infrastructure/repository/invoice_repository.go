package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/backoffice-api/internal/domain/entity"
	"github.com/sangkips/backoffice-api/internal/domain/enum"
	domainRepo "github.com/sangkips/backoffice-api/internal/domain/repository"
	"gorm.io/gorm"
)

var invoiceSortColumns = map[string]bool{
	"invoice_date":   true,
	"invoice_number": true,
	"client_name":    true,
	"invoice_amount": true,
	"due_date":       true,
	"status":         true,
	"created_at":     true,
}

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice, audit []entity.InvoiceAuditLog) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tasks").Create(invoice).Error; err != nil {
			return err
		}
		if err := createTasks(tx, invoice.ID, invoice.Tasks); err != nil {
			return err
		}
		return createAudit(tx, invoice.ID, audit)
	})
	return translateError(err)
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Tasks", orderedTasks).
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice, audit []entity.InvoiceAuditLog) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tasks").Save(invoice).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&entity.InvoiceTask{}).Error; err != nil {
			return err
		}
		if err := createTasks(tx, invoice.ID, invoice.Tasks); err != nil {
			return err
		}
		return createAudit(tx, invoice.ID, audit)
	})
	return translateError(err)
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID, audit []entity.InvoiceAuditLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&entity.InvoiceTask{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&entity.Invoice{}, "id = ?", id).Error; err != nil {
			return err
		}
		return createAudit(tx, id, audit)
	})
}

func (r *invoiceRepository) filtered(ctx context.Context, params *domainRepo.InvoiceFilterParams) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Scopes(SearchScope(params.Search, "invoice_number", "client_name", "project_name", "finance_poc"))

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.InvoiceType != nil {
		query = query.Where("invoice_type = ?", *params.InvoiceType)
	}
	if params.ClientName != "" {
		query = query.Where("client_name = ?", params.ClientName)
	}
	if params.Currency != "" {
		query = query.Where("currency = ?", params.Currency)
	}
	return query.Scopes(DateRangeScope("invoice_date", params.DateFrom, params.DateTo))
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	if err := r.filtered(ctx, params).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.filtered(ctx, params).
		Scopes(
			OrderScope(params.SortBy, params.SortOrder, invoiceSortColumns, "invoice_date"),
			PaginateScope(params.Pagination),
		).
		Preload("Tasks", orderedTasks).
		Find(&invoices).Error

	return invoices, total, err
}

func (r *invoiceRepository) ListAll(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := r.filtered(ctx, params).
		Scopes(OrderScope(params.SortBy, params.SortOrder, invoiceSortColumns, "invoice_date")).
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) ListInScope(ctx context.Context, invoiceType enum.InvoiceType, year, month int) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := r.db.WithContext(ctx).
		Select("id", "invoice_number", "invoice_type", "invoice_date").
		Where("invoice_type = ? AND number_year = ? AND number_month = ?", invoiceType, year, month).
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) SetPDFURL(ctx context.Context, id uuid.UUID, url string) error {
	return r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Where("id = ?", id).
		Update("pdf_url", url).Error
}

func orderedTasks(db *gorm.DB) *gorm.DB {
	return db.Order("display_order ASC")
}

func createTasks(tx *gorm.DB, invoiceID uuid.UUID, tasks []entity.InvoiceTask) error {
	if len(tasks) == 0 {
		return nil
	}
	for i := range tasks {
		tasks[i].ID = uuid.Nil
		tasks[i].InvoiceID = invoiceID
		tasks[i].DisplayOrder = i
	}
	return tx.Create(&tasks).Error
}

func createAudit(tx *gorm.DB, invoiceID uuid.UUID, audit []entity.InvoiceAuditLog) error {
	if len(audit) == 0 {
		return nil
	}
	for i := range audit {
		audit[i].InvoiceID = invoiceID
	}
	return tx.Create(&audit).Error
}

type invoiceAuditLogRepository struct {
	db *gorm.DB
}

// NewInvoiceAuditLogRepository creates a new invoice audit log repository
func NewInvoiceAuditLogRepository(db *gorm.DB) domainRepo.InvoiceAuditLogRepository {
	return &invoiceAuditLogRepository{db: db}
}

func (r *invoiceAuditLogRepository) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]entity.InvoiceAuditLog, error) {
	var logs []entity.InvoiceAuditLog
	err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("changed_at ASC").
		Find(&logs).Error
	return logs, err
}
