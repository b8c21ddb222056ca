package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/backoffice-api/internal/application/service"
	"github.com/sangkips/backoffice-api/internal/presentation/http/dto/request"
	"github.com/sangkips/backoffice-api/internal/presentation/http/dto/response"
)

// PayrollHandler handles payroll HTTP requests
type PayrollHandler struct {
	payrollService *service.PayrollService
	exportService  *service.ExportService
}

// NewPayrollHandler creates a new payroll handler
func NewPayrollHandler(payrollService *service.PayrollService, exportService *service.ExportService) *PayrollHandler {
	return &PayrollHandler{
		payrollService: payrollService,
		exportService:  exportService,
	}
}

// List handles computing the payroll month of every active employee
func (h *PayrollHandler) List(c *gin.Context) {
	var req request.PayrollQueryRequest
	if !bindQuery(c, &req) {
		return
	}

	records, err := h.payrollService.ListPayroll(c.Request.Context(), &service.PayrollQuery{
		Year:       req.Year,
		Month:      req.Month,
		Department: req.Department,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payroll computed successfully", records)
}

// Export handles downloading the payroll month
func (h *PayrollHandler) Export(c *gin.Context) {
	var req request.PayrollQueryRequest
	if !bindQuery(c, &req) {
		return
	}

	table, err := h.exportService.ExportPayroll(c.Request.Context(), &service.PayrollQuery{
		Year:       req.Year,
		Month:      req.Month,
		Department: req.Department,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	sendTable(c, req.Format, table)
}

// Get handles computing one employee's payroll month
func (h *PayrollHandler) Get(c *gin.Context) {
	employeeID, ok := paramUUID(c, "employee_id")
	if !ok {
		return
	}

	var req request.PayrollQueryRequest
	if !bindQuery(c, &req) {
		return
	}

	record, err := h.payrollService.GetPayroll(c.Request.Context(), employeeID, req.Year, req.Month)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payroll computed successfully", record)
}

// CreateAdjustment handles appending a payroll adjustment
func (h *PayrollHandler) CreateAdjustment(c *gin.Context) {
	var req request.CreateAdjustmentRequest
	if !bindJSON(c, &req) {
		return
	}

	adjustment, err := h.payrollService.CreateAdjustment(c.Request.Context(), &service.AdjustmentInput{
		Actor:           actor(c),
		EmployeeID:      req.EmployeeID,
		Year:            req.Year,
		Month:           req.Month,
		BasicSalary:     req.BasicSalary,
		Allowances:      req.Allowances,
		OtherDeductions: req.OtherDeductions,
		Bonus:           req.Bonus,
		OvertimeHours:   req.OvertimeHours,
		Reason:          req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payroll adjustment recorded", adjustment)
}

// ListAdjustments handles listing adjustments for a month
func (h *PayrollHandler) ListAdjustments(c *gin.Context) {
	var req request.AdjustmentFilterRequest
	if !bindQuery(c, &req) {
		return
	}

	var employeeID *uuid.UUID
	if req.EmployeeID != "" {
		id, err := uuid.Parse(req.EmployeeID)
		if err != nil {
			response.BadRequest(c, "Invalid employee_id")
			return
		}
		employeeID = &id
	}

	adjustments, err := h.payrollService.ListAdjustments(c.Request.Context(), employeeID, req.Year, req.Month)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payroll adjustments retrieved successfully", adjustments)
}
