package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/backoffice-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice is a client invoice issued by one of the two legal entities.
// InvoiceNumber is unique within (InvoiceType, NumberYear, NumberMonth).
type Invoice struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNumber      string             `gorm:"size:50;not null;uniqueIndex:idx_invoice_number_scope,priority:4" json:"invoice_number"`
	InvoiceType        enum.InvoiceType   `gorm:"size:20;not null;uniqueIndex:idx_invoice_number_scope,priority:1" json:"invoice_type"`
	NumberYear         int                `gorm:"not null;uniqueIndex:idx_invoice_number_scope,priority:2" json:"-"`
	NumberMonth        int                `gorm:"not null;uniqueIndex:idx_invoice_number_scope,priority:3" json:"-"`
	InvoiceDate        time.Time          `gorm:"type:date;not null;index" json:"invoice_date"`
	DueDate            *time.Time         `gorm:"type:date;index" json:"due_date,omitempty"`
	ClientName         string             `gorm:"size:255;not null;index" json:"client_name"`
	ClientAddress      *string            `gorm:"type:text" json:"client_address,omitempty"`
	ClientEmail        *string            `gorm:"size:255" json:"client_email,omitempty"`
	ClientGSTIN        *string            `gorm:"size:50;column:client_gstin" json:"client_gstin,omitempty"`
	ClientCountry      *string            `gorm:"size:100" json:"client_country,omitempty"`
	ProjectName        *string            `gorm:"size:255" json:"project_name,omitempty"`
	FinancePOC         *string            `gorm:"size:255;column:finance_poc" json:"finance_poc,omitempty"`
	Currency           string             `gorm:"size:3;not null;default:'INR'" json:"currency"`
	InvoiceAmount      decimal.Decimal    `gorm:"type:decimal(15,2);not null" json:"invoice_amount"`
	Status             enum.InvoiceStatus `gorm:"size:20;not null;default:'in_progress';index" json:"status"`
	AmountReceived     *decimal.Decimal   `gorm:"type:decimal(15,2)" json:"amount_received,omitempty"`
	PendingAmount      *decimal.Decimal   `gorm:"type:decimal(15,2)" json:"pending_amount,omitempty"`
	PaymentReceiveDate *time.Time         `gorm:"type:date" json:"payment_receive_date,omitempty"`
	Notes              *string            `gorm:"type:text" json:"notes,omitempty"`
	PDFURL             *string            `gorm:"size:1024;column:pdf_url" json:"pdf_url,omitempty"`
	CreatedBy          string             `gorm:"size:255" json:"created_by"`
	UpdatedBy          string             `gorm:"size:255" json:"updated_by"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`

	// Relationships
	Tasks []InvoiceTask `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"tasks"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// ClearPayment drops the payment fields, which only apply to paid invoices.
func (i *Invoice) ClearPayment() {
	i.AmountReceived = nil
	i.PendingAmount = nil
	i.PaymentReceiveDate = nil
}

// InvoiceTask is a billable line item. Amount is Hours × RatePerHour.
type InvoiceTask struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	TaskName     string          `gorm:"size:255;not null" json:"task_name"`
	Hours        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"hours"`
	RatePerHour  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"rate_per_hour"`
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	DisplayOrder int             `gorm:"not null;default:0" json:"display_order"`
	CreatedAt    time.Time       `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new invoice task
func (t *InvoiceTask) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceTask model
func (InvoiceTask) TableName() string {
	return "invoice_tasks"
}
