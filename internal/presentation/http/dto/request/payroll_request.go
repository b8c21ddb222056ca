package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayrollQueryRequest selects a payroll month
type PayrollQueryRequest struct {
	Year       int    `form:"year" binding:"required,min=2000,max=9999"`
	Month      int    `form:"month" binding:"required,min=1,max=12"`
	Department string `form:"department"`
	Format     string `form:"format"`
}

// CreateAdjustmentRequest overrides payroll inputs for one employee and month
type CreateAdjustmentRequest struct {
	EmployeeID      uuid.UUID        `json:"employee_id" binding:"required"`
	Year            int              `json:"year" binding:"required,min=2000,max=9999"`
	Month           int              `json:"month" binding:"required,min=1,max=12"`
	BasicSalary     *decimal.Decimal `json:"basic_salary" binding:"omitempty,gte=0"`
	Allowances      *decimal.Decimal `json:"allowances" binding:"omitempty,gte=0"`
	OtherDeductions *decimal.Decimal `json:"other_deductions" binding:"omitempty,gte=0"`
	Bonus           *decimal.Decimal `json:"bonus" binding:"omitempty,gte=0"`
	OvertimeHours   *decimal.Decimal `json:"overtime_hours" binding:"omitempty,gte=0"`
	Reason          string           `json:"reason" binding:"required,max=1000"`
}

// AdjustmentFilterRequest lists adjustments for a month
type AdjustmentFilterRequest struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Year       int    `form:"year" binding:"required,min=2000,max=9999"`
	Month      int    `form:"month" binding:"required,min=1,max=12"`
}
