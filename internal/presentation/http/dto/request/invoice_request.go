package request

import (
	"github.com/sangkips/backoffice-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// TaskRequest is one invoice line item
type TaskRequest struct {
	TaskName    string          `json:"task_name" binding:"required,max=255"`
	Hours       decimal.Decimal `json:"hours" binding:"gt=0"`
	RatePerHour decimal.Decimal `json:"rate_per_hour" binding:"gt=0"`
}

// InvoiceRequest represents the invoice form, used for create and update.
// Tasks replace the stored list on update.
type InvoiceRequest struct {
	InvoiceNumber      string             `json:"invoice_number" binding:"omitempty,max=50"`
	InvoiceType        enum.InvoiceType   `json:"invoice_type" binding:"required,oneof=india global"`
	InvoiceDate        string             `json:"invoice_date" binding:"required,datetime=2006-01-02"`
	DueDate            string             `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	ClientName         string             `json:"client_name" binding:"required,max=255"`
	ClientAddress      *string            `json:"client_address"`
	ClientEmail        *string            `json:"client_email" binding:"omitempty,email"`
	ClientGSTIN        *string            `json:"client_gstin" binding:"omitempty,max=50"`
	ClientCountry      *string            `json:"client_country" binding:"omitempty,max=100"`
	ProjectName        *string            `json:"project_name" binding:"omitempty,max=255"`
	FinancePOC         *string            `json:"finance_poc" binding:"omitempty,max=255"`
	Currency           string             `json:"currency" binding:"omitempty,len=3"`
	InvoiceAmount      *decimal.Decimal   `json:"invoice_amount" binding:"omitempty,gte=0"`
	Status             enum.InvoiceStatus `json:"status" binding:"omitempty,oneof=in_progress partially_paid sent paid overdue"`
	AmountReceived     *decimal.Decimal   `json:"amount_received" binding:"omitempty,gte=0"`
	PaymentReceiveDate string             `json:"payment_receive_date" binding:"omitempty,datetime=2006-01-02"`
	Notes              *string            `json:"notes"`
	Tasks              []TaskRequest      `json:"tasks" binding:"omitempty,dive"`
}

// PreviewTotalsRequest is a draft of the amount fields of the invoice form
type PreviewTotalsRequest struct {
	Tasks          []TaskRequest      `json:"tasks" binding:"omitempty,dive"`
	InvoiceAmount  *decimal.Decimal   `json:"invoice_amount" binding:"omitempty,gte=0"`
	Status         enum.InvoiceStatus `json:"status" binding:"omitempty,oneof=in_progress partially_paid sent paid overdue"`
	AmountReceived *decimal.Decimal   `json:"amount_received" binding:"omitempty,gte=0"`
}

// NextNumberRequest asks for the number a new invoice would receive
type NextNumberRequest struct {
	InvoiceType string `form:"invoice_type" binding:"required,oneof=india global"`
	InvoiceDate string `form:"invoice_date" binding:"required,datetime=2006-01-02"`
}

// InvoiceFilterRequest represents invoice list and export filters
type InvoiceFilterRequest struct {
	Search      string `form:"search"`
	Status      string `form:"status" binding:"omitempty,oneof=in_progress partially_paid sent paid overdue"`
	InvoiceType string `form:"invoice_type" binding:"omitempty,oneof=india global"`
	ClientName  string `form:"client_name"`
	Currency    string `form:"currency" binding:"omitempty,len=3"`
	DateFrom    string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo      string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	SortBy      string `form:"sort_by"`
	SortOrder   string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
	Page        int    `form:"page"`
	PerPage     int    `form:"per_page"`
	Format      string `form:"format"`
}
