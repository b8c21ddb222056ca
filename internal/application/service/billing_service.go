package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/backoffice-api/internal/domain/entity"
	"github.com/sangkips/backoffice-api/internal/domain/enum"
	"github.com/sangkips/backoffice-api/internal/domain/repository"
	"github.com/sangkips/backoffice-api/pkg/apperror"
	"github.com/sangkips/backoffice-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// BillingService handles billing record operations
type BillingService struct {
	billingRepo repository.BillingRecordRepository
}

// NewBillingService creates a new billing service
func NewBillingService(billingRepo repository.BillingRecordRepository) *BillingService {
	return &BillingService{billingRepo: billingRepo}
}

// BillingRecordInput represents the create and update billing record input
type BillingRecordInput struct {
	ClientName      string
	ProjectName     *string
	ContractValue   decimal.Decimal
	BilledToDate    decimal.Decimal
	BillingCycle    enum.BillingCycle
	NextBillingDate *time.Time
	Currency        string
	Notes           *string
}

func (in *BillingRecordInput) validate() error {
	var fieldErrs []apperror.FieldError
	if strings.TrimSpace(in.ClientName) == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "client_name", Message: "is required"})
	}
	if in.ContractValue.IsNegative() {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "contract_value", Message: "must not be negative"})
	}
	if in.BilledToDate.IsNegative() {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "billed_to_date", Message: "must not be negative"})
	}
	if !in.BillingCycle.IsValid() {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "billing_cycle", Message: "is not a valid billing cycle"})
	}
	if len(fieldErrs) > 0 {
		return apperror.NewValidationError(fieldErrs)
	}
	return nil
}

func (in *BillingRecordInput) applyTo(record *entity.BillingRecord) {
	record.ClientName = strings.TrimSpace(in.ClientName)
	record.ProjectName = trimmed(in.ProjectName)
	record.ContractValue = in.ContractValue.Round(2)
	record.BilledToDate = in.BilledToDate.Round(2)
	record.BillingCycle = in.BillingCycle
	record.NextBillingDate = istDate(in.NextBillingDate)
	record.Currency = normalizeCurrency(in.Currency)
	record.Notes = in.Notes
	record.RecomputeRemaining()
}

// CreateBillingRecord creates a new billing record
func (s *BillingService) CreateBillingRecord(ctx context.Context, input *BillingRecordInput) (*entity.BillingRecord, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	record := &entity.BillingRecord{}
	input.applyTo(record)

	if err := s.billingRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetBillingRecord retrieves a billing record by ID
func (s *BillingService) GetBillingRecord(ctx context.Context, id uuid.UUID) (*entity.BillingRecord, error) {
	record, err := s.billingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.NewNotFoundError("Billing record")
	}
	return record, nil
}

// ListBillingRecords lists billing records with filters
func (s *BillingService) ListBillingRecords(ctx context.Context, params *repository.BillingFilterParams) (*pagination.PaginatedResult[entity.BillingRecord], error) {
	records, total, err := s.billingRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.Paginate(records, params.Pagination, total), nil
}

// UpdateBillingRecord replaces a billing record's fields. The remaining
// amount is recomputed from the new contract and billed values.
func (s *BillingService) UpdateBillingRecord(ctx context.Context, id uuid.UUID, input *BillingRecordInput) (*entity.BillingRecord, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	record, err := s.GetBillingRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	input.applyTo(record)

	if err := s.billingRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// DeleteBillingRecord deletes a billing record
func (s *BillingService) DeleteBillingRecord(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetBillingRecord(ctx, id); err != nil {
		return err
	}
	return s.billingRepo.Delete(ctx, id)
}
