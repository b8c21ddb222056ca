package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/backoffice-api/internal/domain/entity"
	"github.com/sangkips/backoffice-api/internal/domain/payroll"
	"github.com/sangkips/backoffice-api/internal/domain/repository"
	"github.com/sangkips/backoffice-api/pkg/apperror"
	"github.com/sangkips/backoffice-api/pkg/timeutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PayrollService derives monthly payroll from employees, attendance and
// adjustments. Nothing it computes is persisted.
type PayrollService struct {
	employeeRepo   repository.EmployeeRepository
	attendanceRepo repository.AttendanceRepository
	adjustmentRepo repository.PayrollAdjustmentRepository
	logger         *zap.Logger
}

// NewPayrollService creates a new payroll service
func NewPayrollService(
	employeeRepo repository.EmployeeRepository,
	attendanceRepo repository.AttendanceRepository,
	adjustmentRepo repository.PayrollAdjustmentRepository,
	logger *zap.Logger,
) *PayrollService {
	return &PayrollService{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		adjustmentRepo: adjustmentRepo,
		logger:         logger,
	}
}

// PayrollRecord is one employee's computed month. Baseline ignores
// adjustments; Adjusted applies them.
type PayrollRecord struct {
	EmployeeID        uuid.UUID                  `json:"employee_id"`
	EmployeeCode      string                     `json:"employee_code"`
	FullName          string                     `json:"full_name"`
	Department        string                     `json:"department,omitempty"`
	Year              int                        `json:"year"`
	Month             int                        `json:"month"`
	TotalWorkingDays  int                        `json:"total_working_days"`
	AttendanceRatio   decimal.Decimal            `json:"attendance_ratio"`
	AttendanceMissing bool                       `json:"attendance_missing"`
	Baseline          payroll.Result             `json:"baseline"`
	Adjusted          payroll.Result             `json:"adjusted"`
	AdjustmentCount   int                        `json:"adjustment_count"`
	Adjustments       []entity.PayrollAdjustment `json:"adjustments,omitempty"`
}

// IsAdjusted reports whether any adjustment applies to the month.
func (r *PayrollRecord) IsAdjusted() bool {
	return r.AdjustmentCount > 0
}

// PayrollQuery selects a payroll month
type PayrollQuery struct {
	Year       int
	Month      int
	Department string
}

// ListPayroll computes the month for every active employee.
func (s *PayrollService) ListPayroll(ctx context.Context, q *PayrollQuery) ([]PayrollRecord, error) {
	if !timeutil.ValidMonth(q.Year, q.Month) {
		return nil, apperror.NewBadRequestError("Invalid year or month")
	}

	employees, err := s.employeeRepo.ListActive(ctx, q.Department)
	if err != nil {
		return nil, err
	}
	summaries, err := s.attendanceRepo.ListByPeriod(ctx, q.Year, q.Month)
	if err != nil {
		return nil, err
	}
	adjustments, err := s.adjustmentRepo.List(ctx, nil, q.Year, q.Month)
	if err != nil {
		return nil, err
	}

	attendanceByEmployee := make(map[uuid.UUID]*entity.AttendanceSummary, len(summaries))
	for i := range summaries {
		attendanceByEmployee[summaries[i].EmployeeID] = &summaries[i]
	}
	adjustmentsByEmployee := make(map[uuid.UUID][]entity.PayrollAdjustment)
	for _, a := range adjustments {
		adjustmentsByEmployee[a.EmployeeID] = append(adjustmentsByEmployee[a.EmployeeID], a)
	}

	records := make([]PayrollRecord, 0, len(employees))
	missing := 0
	for i := range employees {
		e := &employees[i]
		rec := computeRecord(e, q.Year, q.Month, attendanceByEmployee[e.ID], adjustmentsByEmployee[e.ID])
		if rec.AttendanceMissing {
			missing++
		}
		records = append(records, rec)
	}

	if missing > 0 {
		s.logger.Debug("payroll computed without attendance",
			zap.Int("year", q.Year), zap.Int("month", q.Month), zap.Int("employees", missing))
	}
	return records, nil
}

// GetPayroll computes one employee's month and includes its adjustments.
func (s *PayrollService) GetPayroll(ctx context.Context, employeeID uuid.UUID, year, month int) (*PayrollRecord, error) {
	if !timeutil.ValidMonth(year, month) {
		return nil, apperror.NewBadRequestError("Invalid year or month")
	}

	employee, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}

	summary, err := s.attendanceRepo.Get(ctx, employeeID, year, month)
	if err != nil {
		return nil, err
	}
	adjustments, err := s.adjustmentRepo.List(ctx, &employeeID, year, month)
	if err != nil {
		return nil, err
	}

	rec := computeRecord(employee, year, month, summary, adjustments)
	rec.Adjustments = adjustments
	return &rec, nil
}

func computeRecord(e *entity.Employee, year, month int, summary *entity.AttendanceSummary, adjustments []entity.PayrollAdjustment) PayrollRecord {
	var attendance *payroll.Attendance
	workingDays := 0
	if summary != nil {
		workingDays = summary.TotalWorkingDays
		attendance = &payroll.Attendance{
			TotalWorkingDays:  summary.TotalWorkingDays,
			DaysPresent:       summary.DaysPresent,
			ApprovedLeaveDays: summary.ApprovedLeaveDays,
		}
	}
	ratio, missing := payroll.Ratio(attendance)

	overrides := make([]payroll.Overrides, len(adjustments))
	for i, a := range adjustments {
		overrides[i] = adjustmentOverrides(&a)
	}

	base := payroll.Baseline{BasicSalary: e.BasicSalary, Allowances: e.Allowances}
	department := ""
	if e.Department != nil {
		department = *e.Department
	}

	return PayrollRecord{
		EmployeeID:        e.ID,
		EmployeeCode:      e.EmployeeCode,
		FullName:          e.FullName,
		Department:        department,
		Year:              year,
		Month:             month,
		TotalWorkingDays:  workingDays,
		AttendanceRatio:   ratio.Round(4),
		AttendanceMissing: missing,
		Baseline:          payroll.Compute(base, ratio, workingDays, payroll.Overrides{}),
		Adjusted:          payroll.Compute(base, ratio, workingDays, payroll.Fold(overrides)),
		AdjustmentCount:   len(adjustments),
	}
}

func adjustmentOverrides(a *entity.PayrollAdjustment) payroll.Overrides {
	return payroll.Overrides{
		BasicSalary:     a.BasicSalary,
		Allowances:      a.Allowances,
		OtherDeductions: a.OtherDeductions,
		Bonus:           a.Bonus,
		OvertimeHours:   a.OvertimeHours,
	}
}

// AdjustmentInput overrides payroll inputs for one employee and month
type AdjustmentInput struct {
	Actor           string
	EmployeeID      uuid.UUID
	Year            int
	Month           int
	BasicSalary     *decimal.Decimal
	Allowances      *decimal.Decimal
	OtherDeductions *decimal.Decimal
	Bonus           *decimal.Decimal
	OvertimeHours   *decimal.Decimal
	Reason          string
}

// CreateAdjustment appends an adjustment. A reason is mandatory and at least
// one input must be overridden. The employee record is never modified.
func (s *PayrollService) CreateAdjustment(ctx context.Context, input *AdjustmentInput) (*entity.PayrollAdjustment, error) {
	var fieldErrs []apperror.FieldError
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "reason", Message: "is required"})
	}
	if !timeutil.ValidMonth(input.Year, input.Month) {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "month", Message: "must be a valid year and month"})
	}

	overrides := payroll.Overrides{
		BasicSalary:     input.BasicSalary,
		Allowances:      input.Allowances,
		OtherDeductions: input.OtherDeductions,
		Bonus:           input.Bonus,
		OvertimeHours:   input.OvertimeHours,
	}
	if overrides.IsEmpty() {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "overrides", Message: "at least one value must be adjusted"})
	}
	for _, f := range []struct {
		name  string
		value *decimal.Decimal
	}{
		{"basic_salary", input.BasicSalary},
		{"allowances", input.Allowances},
		{"other_deductions", input.OtherDeductions},
		{"bonus", input.Bonus},
		{"overtime_hours", input.OvertimeHours},
	} {
		if f.value != nil && f.value.IsNegative() {
			fieldErrs = append(fieldErrs, apperror.FieldError{Field: f.name, Message: "must not be negative"})
		}
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	employee, err := s.employeeRepo.GetByID(ctx, input.EmployeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}

	adjustment := &entity.PayrollAdjustment{
		EmployeeID:      input.EmployeeID,
		Year:            input.Year,
		Month:           input.Month,
		BasicSalary:     input.BasicSalary,
		Allowances:      input.Allowances,
		OtherDeductions: input.OtherDeductions,
		Bonus:           input.Bonus,
		OvertimeHours:   input.OvertimeHours,
		Reason:          reason,
		CreatedBy:       input.Actor,
	}
	if err := s.adjustmentRepo.Create(ctx, adjustment); err != nil {
		return nil, err
	}

	s.logger.Info("payroll adjusted",
		zap.String("employee_code", employee.EmployeeCode),
		zap.Int("year", input.Year),
		zap.Int("month", input.Month),
		zap.String("actor", input.Actor))
	return adjustment, nil
}

// ListAdjustments returns adjustments for a month in creation order. A nil
// employeeID lists every employee.
func (s *PayrollService) ListAdjustments(ctx context.Context, employeeID *uuid.UUID, year, month int) ([]entity.PayrollAdjustment, error) {
	if !timeutil.ValidMonth(year, month) {
		return nil, apperror.NewBadRequestError("Invalid year or month")
	}
	adjustments, err := s.adjustmentRepo.List(ctx, employeeID, year, month)
	if err != nil {
		return nil, err
	}
	if adjustments == nil {
		adjustments = []entity.PayrollAdjustment{}
	}
	return adjustments, nil
}
