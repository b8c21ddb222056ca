package request

import (
	"github.com/sangkips/backoffice-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// BillingRecordRequest represents the billing record form
type BillingRecordRequest struct {
	ClientName      string            `json:"client_name" binding:"required,max=255"`
	ProjectName     *string           `json:"project_name" binding:"omitempty,max=255"`
	ContractValue   decimal.Decimal   `json:"contract_value" binding:"gte=0"`
	BilledToDate    decimal.Decimal   `json:"billed_to_date" binding:"gte=0"`
	BillingCycle    enum.BillingCycle `json:"billing_cycle" binding:"gte=0,lte=4"`
	NextBillingDate string            `json:"next_billing_date" binding:"omitempty,datetime=2006-01-02"`
	Currency        string            `json:"currency" binding:"omitempty,len=3"`
	Notes           *string           `json:"notes"`
}

// BillingFilterRequest represents billing record list and export filters
type BillingFilterRequest struct {
	Search       string `form:"search"`
	BillingCycle string `form:"billing_cycle" binding:"omitempty,oneof=monthly quarterly half_yearly yearly one_time"`
	Currency     string `form:"currency" binding:"omitempty,len=3"`
	Page         int    `form:"page"`
	PerPage      int    `form:"per_page"`
	Format       string `form:"format"`
}
