package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Employee carries the salary baseline payroll is computed from.
type Employee struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	EmployeeCode string          `gorm:"size:50;not null;uniqueIndex" json:"employee_code"`
	FullName     string          `gorm:"size:255;not null" json:"full_name"`
	Email        *string         `gorm:"size:255" json:"email,omitempty"`
	Department   *string         `gorm:"size:100;index" json:"department,omitempty"`
	Designation  *string         `gorm:"size:100" json:"designation,omitempty"`
	BasicSalary  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"basic_salary"`
	Allowances   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"allowances"`
	JoiningDate  *time.Time      `gorm:"type:date" json:"joining_date,omitempty"`
	IsActive     bool            `gorm:"not null" json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new employee
func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (Employee) TableName() string {
	return "employees"
}

// AttendanceSummary is the monthly attendance an employee's pay is prorated by.
type AttendanceSummary struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	EmployeeID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_period,priority:1" json:"employee_id"`
	Year              int             `gorm:"not null;uniqueIndex:idx_attendance_period,priority:2" json:"year"`
	Month             int             `gorm:"not null;uniqueIndex:idx_attendance_period,priority:3" json:"month"`
	TotalWorkingDays  int             `gorm:"not null" json:"total_working_days"`
	DaysPresent       decimal.Decimal `gorm:"type:decimal(5,1);not null" json:"days_present"`
	ApprovedLeaveDays decimal.Decimal `gorm:"type:decimal(5,1);not null" json:"approved_leave_days"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func (a *AttendanceSummary) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (AttendanceSummary) TableName() string {
	return "attendance_summaries"
}
