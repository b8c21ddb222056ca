package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/backoffice-api/internal/domain/entity"
	domainRepo "github.com/sangkips/backoffice-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) domainRepo.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, employee *entity.Employee) error {
	return translateError(r.db.WithContext(ctx).Create(employee).Error)
}

func (r *employeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	var employee entity.Employee
	err := r.db.WithContext(ctx).First(&employee, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) GetByCode(ctx context.Context, code string) (*entity.Employee, error) {
	var employee entity.Employee
	err := r.db.WithContext(ctx).First(&employee, "employee_code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) Update(ctx context.Context, employee *entity.Employee) error {
	return translateError(r.db.WithContext(ctx).Save(employee).Error)
}

func (r *employeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Employee{}, "id = ?", id).Error
}

func (r *employeeRepository) List(ctx context.Context, params *domainRepo.EmployeeFilterParams) ([]entity.Employee, int64, error) {
	var employees []entity.Employee
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Employee{}).
		Scopes(SearchScope(params.Search, "employee_code", "full_name", "email", "designation"))

	if params.Department != "" {
		query = query.Where("department = ?", params.Department)
	}
	if params.IsActive != nil {
		query = query.Where("is_active = ?", *params.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(PaginateScope(params.Pagination)).
		Order("employee_code ASC").
		Find(&employees).Error

	return employees, total, err
}

func (r *employeeRepository) ListActive(ctx context.Context, department string) ([]entity.Employee, error) {
	var employees []entity.Employee
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if department != "" {
		query = query.Where("department = ?", department)
	}
	err := query.Order("employee_code ASC").Find(&employees).Error
	return employees, err
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new attendance summary repository
func NewAttendanceRepository(db *gorm.DB) domainRepo.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Upsert(ctx context.Context, summary *entity.AttendanceSummary) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_id"}, {Name: "year"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"total_working_days", "days_present", "approved_leave_days", "updated_at"}),
	}).Create(summary).Error
}

func (r *attendanceRepository) Get(ctx context.Context, employeeID uuid.UUID, year, month int) (*entity.AttendanceSummary, error) {
	var summary entity.AttendanceSummary
	err := r.db.WithContext(ctx).
		First(&summary, "employee_id = ? AND year = ? AND month = ?", employeeID, year, month).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *attendanceRepository) ListByPeriod(ctx context.Context, year, month int) ([]entity.AttendanceSummary, error) {
	var summaries []entity.AttendanceSummary
	err := r.db.WithContext(ctx).
		Where("year = ? AND month = ?", year, month).
		Find(&summaries).Error
	return summaries, err
}

type payrollAdjustmentRepository struct {
	db *gorm.DB
}

// NewPayrollAdjustmentRepository creates a new payroll adjustment repository
func NewPayrollAdjustmentRepository(db *gorm.DB) domainRepo.PayrollAdjustmentRepository {
	return &payrollAdjustmentRepository{db: db}
}

func (r *payrollAdjustmentRepository) Create(ctx context.Context, adjustment *entity.PayrollAdjustment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(adjustment).Error
}

func (r *payrollAdjustmentRepository) List(ctx context.Context, employeeID *uuid.UUID, year, month int) ([]entity.PayrollAdjustment, error) {
	var adjustments []entity.PayrollAdjustment
	query := r.db.WithContext(ctx).Where("year = ? AND month = ?", year, month)
	if employeeID != nil {
		query = query.Where("employee_id = ?", *employeeID)
	}
	err := query.Order("created_at ASC, id ASC").Find(&adjustments).Error
	return adjustments, err
}
