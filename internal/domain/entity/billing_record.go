package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/backoffice-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BillingRecord tracks a client contract and how much of it has been billed.
// It is independent of invoices.
type BillingRecord struct {
	ID              uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	ClientName      string            `gorm:"size:255;not null;index" json:"client_name"`
	ProjectName     *string           `gorm:"size:255" json:"project_name,omitempty"`
	ContractValue   decimal.Decimal   `gorm:"type:decimal(15,2);not null" json:"contract_value"`
	BilledToDate    decimal.Decimal   `gorm:"type:decimal(15,2);not null" json:"billed_to_date"`
	RemainingAmount decimal.Decimal   `gorm:"type:decimal(15,2);not null" json:"remaining_amount"`
	BillingCycle    enum.BillingCycle `gorm:"not null;default:0" json:"billing_cycle"`
	NextBillingDate *time.Time        `gorm:"type:date" json:"next_billing_date,omitempty"`
	Currency        string            `gorm:"size:3;not null;default:'INR'" json:"currency"`
	Notes           *string           `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	DeletedAt       gorm.DeletedAt    `gorm:"index" json:"-"`
}

// BeforeSave keeps RemainingAmount in step with the contract. It is not
// clamped: over-billing shows as a negative remainder.
func (b *BillingRecord) BeforeSave(tx *gorm.DB) error {
	b.RecomputeRemaining()
	return nil
}

// BeforeCreate generates a UUID before creating a new billing record
func (b *BillingRecord) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (b *BillingRecord) RecomputeRemaining() {
	b.RemainingAmount = b.ContractValue.Sub(b.BilledToDate)
}

func (BillingRecord) TableName() string {
	return "billing_records"
}
