package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/backoffice-api/internal/domain/entity"
	"github.com/sangkips/backoffice-api/internal/domain/enum"
	"github.com/sangkips/backoffice-api/pkg/pagination"
)

// InvoiceRepository defines the interface for invoice data operations.
// Writes persist the invoice, its tasks and the given audit entries atomically.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice, audit []entity.InvoiceAuditLog) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	// Update saves the invoice and replaces its task list wholesale.
	Update(ctx context.Context, invoice *entity.Invoice, audit []entity.InvoiceAuditLog) error
	Delete(ctx context.Context, id uuid.UUID, audit []entity.InvoiceAuditLog) error
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	// ListAll returns every invoice matching the filters, tasks excluded.
	ListAll(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, error)
	// ListInScope returns the invoices numbered in a (type, year, month) window.
	ListInScope(ctx context.Context, invoiceType enum.InvoiceType, year, month int) ([]entity.Invoice, error)
	SetPDFURL(ctx context.Context, id uuid.UUID, url string) error
}

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination  *pagination.PaginationParams
	Search      string
	Status      *enum.InvoiceStatus
	InvoiceType *enum.InvoiceType
	ClientName  string
	Currency    string
	DateFrom    *time.Time
	DateTo      *time.Time
	SortBy      string
	SortOrder   string
}

// InvoiceAuditLogRepository reads the invoice change trail.
type InvoiceAuditLogRepository interface {
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]entity.InvoiceAuditLog, error)
}
