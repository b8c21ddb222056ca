package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditAction string

const (
	AuditActionCreated AuditAction = "created"
	AuditActionUpdated AuditAction = "updated"
	AuditActionDeleted AuditAction = "deleted"
)

// InvoiceAuditLog records a change to an invoice. InvoiceID carries no foreign
// key so the trail survives deletion of the invoice.
type InvoiceAuditLog struct {
	ID        uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID   `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Action    AuditAction `gorm:"size:20;not null" json:"action"`
	Field     *string     `gorm:"size:100" json:"field,omitempty"`
	OldValue  *string     `gorm:"type:text" json:"old_value,omitempty"`
	NewValue  *string     `gorm:"type:text" json:"new_value,omitempty"`
	ChangedBy string      `gorm:"size:255" json:"changed_by"`
	ChangedAt time.Time   `gorm:"not null;index" json:"changed_at"`
}

func (a *InvoiceAuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.ChangedAt.IsZero() {
		a.ChangedAt = time.Now()
	}
	return nil
}

func (InvoiceAuditLog) TableName() string {
	return "invoice_audit_logs"
}
