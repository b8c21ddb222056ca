package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/backoffice-api/internal/domain/entity"
	domainRepo "github.com/sangkips/backoffice-api/internal/domain/repository"
	"gorm.io/gorm"
)

type billingRecordRepository struct {
	db *gorm.DB
}

// NewBillingRecordRepository creates a new billing record repository
func NewBillingRecordRepository(db *gorm.DB) domainRepo.BillingRecordRepository {
	return &billingRecordRepository{db: db}
}

func (r *billingRecordRepository) Create(ctx context.Context, record *entity.BillingRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *billingRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.BillingRecord, error) {
	var record entity.BillingRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *billingRecordRepository) Update(ctx context.Context, record *entity.BillingRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *billingRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.BillingRecord{}, "id = ?", id).Error
}

func (r *billingRecordRepository) filtered(ctx context.Context, params *domainRepo.BillingFilterParams) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.BillingRecord{}).
		Scopes(SearchScope(params.Search, "client_name", "project_name"))

	if params.BillingCycle != nil {
		query = query.Where("billing_cycle = ?", *params.BillingCycle)
	}
	if params.Currency != "" {
		query = query.Where("currency = ?", params.Currency)
	}
	return query
}

func (r *billingRecordRepository) List(ctx context.Context, params *domainRepo.BillingFilterParams) ([]entity.BillingRecord, int64, error) {
	var records []entity.BillingRecord
	var total int64

	if err := r.filtered(ctx, params).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.filtered(ctx, params).
		Scopes(PaginateScope(params.Pagination)).
		Order("client_name ASC").
		Find(&records).Error

	return records, total, err
}

func (r *billingRecordRepository) ListAll(ctx context.Context, params *domainRepo.BillingFilterParams) ([]entity.BillingRecord, error) {
	var records []entity.BillingRecord
	err := r.filtered(ctx, params).Order("client_name ASC").Find(&records).Error
	return records, err
}
