package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/backoffice-api/internal/application/service"
	"github.com/sangkips/backoffice-api/internal/domain/repository"
	"github.com/sangkips/backoffice-api/internal/presentation/http/dto/request"
	"github.com/sangkips/backoffice-api/internal/presentation/http/dto/response"
	"github.com/sangkips/backoffice-api/pkg/apperror"
)

// EmployeeHandler handles employee and attendance HTTP requests
type EmployeeHandler struct {
	employeeService *service.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// List handles listing employees
func (h *EmployeeHandler) List(c *gin.Context) {
	var filter request.EmployeeFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	result, err := h.employeeService.ListEmployees(c.Request.Context(), &repository.EmployeeFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		Search:     filter.Search,
		Department: filter.Department,
		IsActive:   filter.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Employees retrieved successfully", result)
}

// Create handles creating an employee
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req request.EmployeeRequest
	if !bindJSON(c, &req) {
		return
	}
	input, ok := employeeInput(c, &req)
	if !ok {
		return
	}

	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Employee created successfully", employee)
}

// Get handles getting a single employee
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	employee, err := h.employeeService.GetEmployee(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee retrieved successfully", employee)
}

// Update handles updating an employee
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req request.EmployeeRequest
	if !bindJSON(c, &req) {
		return
	}
	input, ok := employeeInput(c, &req)
	if !ok {
		return
	}

	employee, err := h.employeeService.UpdateEmployee(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee updated successfully", employee)
}

// Delete handles deleting an employee
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	if err := h.employeeService.DeleteEmployee(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee deleted successfully", nil)
}

// RecordAttendance handles storing an employee's attendance for a month
func (h *EmployeeHandler) RecordAttendance(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	year, errYear := strconv.Atoi(c.Param("year"))
	month, errMonth := strconv.Atoi(c.Param("month"))
	if errYear != nil || errMonth != nil {
		response.BadRequest(c, "Invalid year or month")
		return
	}

	var req request.AttendanceRequest
	if !bindJSON(c, &req) {
		return
	}

	summary, err := h.employeeService.RecordAttendance(c.Request.Context(), id, year, month, &service.AttendanceInput{
		TotalWorkingDays:  req.TotalWorkingDays,
		DaysPresent:       req.DaysPresent,
		ApprovedLeaveDays: req.ApprovedLeaveDays,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Attendance recorded successfully", summary)
}

func employeeInput(c *gin.Context, req *request.EmployeeRequest) (*service.EmployeeInput, bool) {
	var fieldErrs []apperror.FieldError
	joined := dateField("joining_date", req.JoiningDate, &fieldErrs)
	if len(fieldErrs) > 0 {
		response.ValidationError(c, fieldErrs)
		return nil, false
	}

	return &service.EmployeeInput{
		EmployeeCode: req.EmployeeCode,
		FullName:     req.FullName,
		Email:        req.Email,
		Department:   req.Department,
		Designation:  req.Designation,
		BasicSalary:  req.BasicSalary,
		Allowances:   req.Allowances,
		JoiningDate:  joined,
		IsActive:     req.IsActive,
	}, true
}
