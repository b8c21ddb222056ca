package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/backoffice-api/internal/domain/entity"
	"github.com/sangkips/backoffice-api/internal/domain/repository"
	"github.com/sangkips/backoffice-api/pkg/apperror"
	"github.com/sangkips/backoffice-api/pkg/pagination"
	"github.com/sangkips/backoffice-api/pkg/timeutil"
	"github.com/shopspring/decimal"
)

// EmployeeService handles employee master data and monthly attendance
type EmployeeService struct {
	employeeRepo   repository.EmployeeRepository
	attendanceRepo repository.AttendanceRepository
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(employeeRepo repository.EmployeeRepository, attendanceRepo repository.AttendanceRepository) *EmployeeService {
	return &EmployeeService{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
	}
}

// EmployeeInput represents the create and update employee input
type EmployeeInput struct {
	EmployeeCode string
	FullName     string
	Email        *string
	Department   *string
	Designation  *string
	BasicSalary  decimal.Decimal
	Allowances   decimal.Decimal
	JoiningDate  *time.Time
	IsActive     *bool
}

func (in *EmployeeInput) validate() error {
	var fieldErrs []apperror.FieldError
	if strings.TrimSpace(in.EmployeeCode) == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "employee_code", Message: "is required"})
	}
	if strings.TrimSpace(in.FullName) == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "full_name", Message: "is required"})
	}
	if in.BasicSalary.IsNegative() {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "basic_salary", Message: "must not be negative"})
	}
	if in.Allowances.IsNegative() {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "allowances", Message: "must not be negative"})
	}
	if len(fieldErrs) > 0 {
		return apperror.NewValidationError(fieldErrs)
	}
	return nil
}

func (in *EmployeeInput) applyTo(e *entity.Employee) {
	e.EmployeeCode = strings.TrimSpace(in.EmployeeCode)
	e.FullName = strings.TrimSpace(in.FullName)
	e.Email = trimmed(in.Email)
	e.Department = trimmed(in.Department)
	e.Designation = trimmed(in.Designation)
	e.BasicSalary = in.BasicSalary.Round(2)
	e.Allowances = in.Allowances.Round(2)
	e.JoiningDate = istDate(in.JoiningDate)
	if in.IsActive != nil {
		e.IsActive = *in.IsActive
	}
}

// CreateEmployee creates a new employee. Employees start active unless the
// input says otherwise.
func (s *EmployeeService) CreateEmployee(ctx context.Context, input *EmployeeInput) (*entity.Employee, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	employee := &entity.Employee{IsActive: true}
	input.applyTo(employee)

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflictError("Employee code " + employee.EmployeeCode + " already exists")
		}
		return nil, err
	}
	return employee, nil
}

// GetEmployee retrieves an employee by ID
func (s *EmployeeService) GetEmployee(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}
	return employee, nil
}

// ListEmployees lists employees with filters
func (s *EmployeeService) ListEmployees(ctx context.Context, params *repository.EmployeeFilterParams) (*pagination.PaginatedResult[entity.Employee], error) {
	employees, total, err := s.employeeRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.Paginate(employees, params.Pagination, total), nil
}

// UpdateEmployee updates an employee
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id uuid.UUID, input *EmployeeInput) (*entity.Employee, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	employee, err := s.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	input.applyTo(employee)

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflictError("Employee code " + employee.EmployeeCode + " already exists")
		}
		return nil, err
	}
	return employee, nil
}

// DeleteEmployee deletes an employee
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetEmployee(ctx, id); err != nil {
		return err
	}
	return s.employeeRepo.Delete(ctx, id)
}

// AttendanceInput is one employee's attendance for a month
type AttendanceInput struct {
	TotalWorkingDays  int
	DaysPresent       decimal.Decimal
	ApprovedLeaveDays decimal.Decimal
}

var halfDay = decimal.RequireFromString("0.5")

// RecordAttendance stores or replaces the attendance summary for a month.
func (s *EmployeeService) RecordAttendance(ctx context.Context, employeeID uuid.UUID, year, month int, input *AttendanceInput) (*entity.AttendanceSummary, error) {
	if !timeutil.ValidMonth(year, month) {
		return nil, apperror.NewBadRequestError("Invalid year or month")
	}

	var fieldErrs []apperror.FieldError
	if input.TotalWorkingDays < 1 || input.TotalWorkingDays > 31 {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "total_working_days", Message: "must be between 1 and 31"})
	}
	total := decimal.NewFromInt(int64(input.TotalWorkingDays))
	for _, f := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"days_present", input.DaysPresent},
		{"approved_leave_days", input.ApprovedLeaveDays},
	} {
		switch {
		case f.value.IsNegative():
			fieldErrs = append(fieldErrs, apperror.FieldError{Field: f.name, Message: "must not be negative"})
		case f.value.GreaterThan(total):
			fieldErrs = append(fieldErrs, apperror.FieldError{Field: f.name, Message: "must not exceed total working days"})
		case !f.value.Mod(halfDay).IsZero():
			fieldErrs = append(fieldErrs, apperror.FieldError{Field: f.name, Message: "must be in whole or half days"})
		}
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	if _, err := s.GetEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	summary := &entity.AttendanceSummary{
		EmployeeID:        employeeID,
		Year:              year,
		Month:             month,
		TotalWorkingDays:  input.TotalWorkingDays,
		DaysPresent:       input.DaysPresent,
		ApprovedLeaveDays: input.ApprovedLeaveDays,
	}
	if err := s.attendanceRepo.Upsert(ctx, summary); err != nil {
		return nil, err
	}
	return summary, nil
}
