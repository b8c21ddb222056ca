package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/backoffice-api/internal/domain/entity"
	"github.com/sangkips/backoffice-api/internal/domain/enum"
	"github.com/sangkips/backoffice-api/pkg/pagination"
)

// BillingRecordRepository defines the interface for billing record data operations
type BillingRecordRepository interface {
	Create(ctx context.Context, record *entity.BillingRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.BillingRecord, error)
	Update(ctx context.Context, record *entity.BillingRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *BillingFilterParams) ([]entity.BillingRecord, int64, error)
	ListAll(ctx context.Context, params *BillingFilterParams) ([]entity.BillingRecord, error)
}

type BillingFilterParams struct {
	Pagination   *pagination.PaginationParams
	Search       string
	BillingCycle *enum.BillingCycle
	Currency     string
}
