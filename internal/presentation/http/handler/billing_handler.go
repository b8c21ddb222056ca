package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/backoffice-api/internal/application/service"
	"github.com/sangkips/backoffice-api/internal/domain/enum"
	"github.com/sangkips/backoffice-api/internal/domain/repository"
	"github.com/sangkips/backoffice-api/internal/presentation/http/dto/request"
	"github.com/sangkips/backoffice-api/internal/presentation/http/dto/response"
	"github.com/sangkips/backoffice-api/pkg/apperror"
)

// BillingHandler handles billing record HTTP requests
type BillingHandler struct {
	billingService *service.BillingService
	exportService  *service.ExportService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *service.BillingService, exportService *service.ExportService) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
		exportService:  exportService,
	}
}

// List handles listing billing records
func (h *BillingHandler) List(c *gin.Context) {
	var filter request.BillingFilterRequest
	if !bindQuery(c, &filter) {
		return
	}
	params := billingFilterParams(&filter)
	params.Pagination = pageParams(filter.Page, filter.PerPage)

	result, err := h.billingService.ListBillingRecords(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Billing records retrieved successfully", result)
}

// Export handles downloading the filtered billing records
func (h *BillingHandler) Export(c *gin.Context) {
	var filter request.BillingFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	table, err := h.exportService.ExportBillingRecords(c.Request.Context(), billingFilterParams(&filter))
	if err != nil {
		response.Error(c, err)
		return
	}
	sendTable(c, filter.Format, table)
}

// Create handles creating a billing record
func (h *BillingHandler) Create(c *gin.Context) {
	var req request.BillingRecordRequest
	if !bindJSON(c, &req) {
		return
	}
	input, ok := billingInput(c, &req)
	if !ok {
		return
	}

	record, err := h.billingService.CreateBillingRecord(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Billing record created successfully", record)
}

// Get handles getting a single billing record
func (h *BillingHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	record, err := h.billingService.GetBillingRecord(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Billing record retrieved successfully", record)
}

// Update handles updating a billing record
func (h *BillingHandler) Update(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req request.BillingRecordRequest
	if !bindJSON(c, &req) {
		return
	}
	input, ok := billingInput(c, &req)
	if !ok {
		return
	}

	record, err := h.billingService.UpdateBillingRecord(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Billing record updated successfully", record)
}

// Delete handles deleting a billing record
func (h *BillingHandler) Delete(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	if err := h.billingService.DeleteBillingRecord(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Billing record deleted successfully", nil)
}

func billingFilterParams(filter *request.BillingFilterRequest) *repository.BillingFilterParams {
	params := &repository.BillingFilterParams{
		Search:   filter.Search,
		Currency: filter.Currency,
	}
	if cycle, err := enum.ParseBillingCycle(filter.BillingCycle); err == nil {
		params.BillingCycle = &cycle
	}
	return params
}

func billingInput(c *gin.Context, req *request.BillingRecordRequest) (*service.BillingRecordInput, bool) {
	var fieldErrs []apperror.FieldError
	next := dateField("next_billing_date", req.NextBillingDate, &fieldErrs)
	if len(fieldErrs) > 0 {
		response.ValidationError(c, fieldErrs)
		return nil, false
	}

	return &service.BillingRecordInput{
		ClientName:      req.ClientName,
		ProjectName:     req.ProjectName,
		ContractValue:   req.ContractValue,
		BilledToDate:    req.BilledToDate,
		BillingCycle:    req.BillingCycle,
		NextBillingDate: next,
		Currency:        req.Currency,
		Notes:           req.Notes,
	}, true
}
