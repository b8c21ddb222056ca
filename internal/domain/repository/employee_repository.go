package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/backoffice-api/internal/domain/entity"
	"github.com/sangkips/backoffice-api/pkg/pagination"
)

// EmployeeRepository defines the interface for employee data operations
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error)
	GetByCode(ctx context.Context, code string) (*entity.Employee, error)
	Update(ctx context.Context, employee *entity.Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *EmployeeFilterParams) ([]entity.Employee, int64, error)
	// ListActive returns every active employee ordered by employee code.
	ListActive(ctx context.Context, department string) ([]entity.Employee, error)
}

type EmployeeFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Department string
	IsActive   *bool
}

// AttendanceRepository stores monthly attendance summaries.
type AttendanceRepository interface {
	// Upsert inserts or replaces the summary for (employee, year, month).
	Upsert(ctx context.Context, summary *entity.AttendanceSummary) error
	Get(ctx context.Context, employeeID uuid.UUID, year, month int) (*entity.AttendanceSummary, error)
	ListByPeriod(ctx context.Context, year, month int) ([]entity.AttendanceSummary, error)
}

// PayrollAdjustmentRepository stores append-only payroll overrides.
type PayrollAdjustmentRepository interface {
	Create(ctx context.Context, adjustment *entity.PayrollAdjustment) error
	// List returns adjustments in creation order. A nil employeeID matches all.
	List(ctx context.Context, employeeID *uuid.UUID, year, month int) ([]entity.PayrollAdjustment, error)
}
