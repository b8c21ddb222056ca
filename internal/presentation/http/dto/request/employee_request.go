package request

import "github.com/shopspring/decimal"

// EmployeeRequest represents the employee form
type EmployeeRequest struct {
	EmployeeCode string          `json:"employee_code" binding:"required,max=50"`
	FullName     string          `json:"full_name" binding:"required,max=255"`
	Email        *string         `json:"email" binding:"omitempty,email"`
	Department   *string         `json:"department" binding:"omitempty,max=100"`
	Designation  *string         `json:"designation" binding:"omitempty,max=100"`
	BasicSalary  decimal.Decimal `json:"basic_salary" binding:"gte=0"`
	Allowances   decimal.Decimal `json:"allowances" binding:"gte=0"`
	JoiningDate  string          `json:"joining_date" binding:"omitempty,datetime=2006-01-02"`
	IsActive     *bool           `json:"is_active"`
}

// EmployeeFilterRequest represents employee list filters
type EmployeeFilterRequest struct {
	Search     string `form:"search"`
	Department string `form:"department"`
	IsActive   *bool  `form:"is_active"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// AttendanceRequest is one employee's attendance summary for a month
type AttendanceRequest struct {
	TotalWorkingDays  int             `json:"total_working_days" binding:"required,min=1,max=31"`
	DaysPresent       decimal.Decimal `json:"days_present" binding:"gte=0"`
	ApprovedLeaveDays decimal.Decimal `json:"approved_leave_days" binding:"gte=0"`
}
