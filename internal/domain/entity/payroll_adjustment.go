package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PayrollAdjustment is an append-only override of one employee's payroll
// inputs for a month. Nil fields leave the baseline value untouched.
type PayrollAdjustment struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	EmployeeID      uuid.UUID        `gorm:"type:uuid;not null;index:idx_adjustment_period,priority:1" json:"employee_id"`
	Year            int              `gorm:"not null;index:idx_adjustment_period,priority:2" json:"year"`
	Month           int              `gorm:"not null;index:idx_adjustment_period,priority:3" json:"month"`
	BasicSalary     *decimal.Decimal `gorm:"type:decimal(15,2)" json:"basic_salary,omitempty"`
	Allowances      *decimal.Decimal `gorm:"type:decimal(15,2)" json:"allowances,omitempty"`
	OtherDeductions *decimal.Decimal `gorm:"type:decimal(15,2)" json:"other_deductions,omitempty"`
	Bonus           *decimal.Decimal `gorm:"type:decimal(15,2)" json:"bonus,omitempty"`
	OvertimeHours   *decimal.Decimal `gorm:"type:decimal(7,2)" json:"overtime_hours,omitempty"`
	Reason          string           `gorm:"type:text;not null" json:"reason"`
	CreatedBy       string           `gorm:"size:255;not null" json:"created_by"`
	CreatedAt       time.Time        `gorm:"index" json:"created_at"`

	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

func (p *PayrollAdjustment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (PayrollAdjustment) TableName() string {
	return "payroll_adjustments"
}
