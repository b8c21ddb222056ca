package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/backoffice-api/internal/domain/entity"
	"github.com/sangkips/backoffice-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBillingService_CreateBillingRecord(t *testing.T) {
	repo := new(mockBillingRepo)
	svc := NewBillingService(repo)
	next := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.BillingRecord")).Return(nil)

	record, err := svc.CreateBillingRecord(context.Background(), &BillingRecordInput{
		ClientName:      "Acme",
		ContractValue:   dec("120000"),
		BilledToDate:    dec("45000.505"),
		BillingCycle:    enum.BillingCycleQuarterly,
		NextBillingDate: &next,
	})
	require.NoError(t, err)

	assert.Equal(t, "74999.49", record.RemainingAmount.StringFixed(2))
	assert.Equal(t, "INR", record.Currency)
	require.NotNil(t, record.NextBillingDate)
	assert.Equal(t, 1, record.NextBillingDate.Day())
}

func TestBillingService_CreateBillingRecord_Validation(t *testing.T) {
	svc := NewBillingService(new(mockBillingRepo))

	_, err := svc.CreateBillingRecord(context.Background(), &BillingRecordInput{
		ContractValue: dec("-1"),
		BillingCycle:  enum.BillingCycle(7),
	})

	appErr := assertAppError(t, err, http.StatusUnprocessableEntity)
	assert.Len(t, appErr.Errors, 3)
}

func TestBillingService_UpdateBillingRecord_RecomputesRemaining(t *testing.T) {
	repo := new(mockBillingRepo)
	svc := NewBillingService(repo)
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id).Return(&entity.BillingRecord{
		ID: id, ClientName: "Acme", ContractValue: dec("1000"), BilledToDate: dec("0"), RemainingAmount: dec("1000"),
	}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	record, err := svc.UpdateBillingRecord(context.Background(), id, &BillingRecordInput{
		ClientName:    "Acme",
		ContractValue: dec("1000"),
		BilledToDate:  dec("1250"),
		BillingCycle:  enum.BillingCycleOneTime,
		Currency:      "usd",
	})
	require.NoError(t, err)

	assert.Equal(t, "-250.00", record.RemainingAmount.StringFixed(2))
	assert.Equal(t, "USD", record.Currency)
}

func TestBillingService_GetBillingRecord_NotFound(t *testing.T) {
	repo := new(mockBillingRepo)
	svc := NewBillingService(repo)
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, nil)

	_, err := svc.GetBillingRecord(context.Background(), id)
	assertAppError(t, err, http.StatusNotFound)

	err = svc.DeleteBillingRecord(context.Background(), id)
	assertAppError(t, err, http.StatusNotFound)
}
