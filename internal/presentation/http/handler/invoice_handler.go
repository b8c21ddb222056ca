package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/backoffice-api/internal/application/service"
	"github.com/sangkips/backoffice-api/internal/domain/enum"
	"github.com/sangkips/backoffice-api/internal/domain/repository"
	"github.com/sangkips/backoffice-api/internal/presentation/http/dto/request"
	"github.com/sangkips/backoffice-api/internal/presentation/http/dto/response"
	"github.com/sangkips/backoffice-api/pkg/apperror"
	"github.com/sangkips/backoffice-api/pkg/timeutil"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService  *service.InvoiceService
	documentService *service.DocumentService
	exportService   *service.ExportService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(
	invoiceService *service.InvoiceService,
	documentService *service.DocumentService,
	exportService *service.ExportService,
) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService:  invoiceService,
		documentService: documentService,
		exportService:   exportService,
	}
}

// List handles listing invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter request.InvoiceFilterRequest
	if !bindQuery(c, &filter) {
		return
	}
	params, ok := invoiceFilterParams(c, &filter)
	if !ok {
		return
	}
	params.Pagination = pageParams(filter.Page, filter.PerPage)

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Export handles downloading the filtered invoice list as CSV or XLSX
func (h *InvoiceHandler) Export(c *gin.Context) {
	var filter request.InvoiceFilterRequest
	if !bindQuery(c, &filter) {
		return
	}
	params, ok := invoiceFilterParams(c, &filter)
	if !ok {
		return
	}

	table, err := h.exportService.ExportInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	sendTable(c, filter.Format, table)
}

// Create handles creating an invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req request.InvoiceRequest
	if !bindJSON(c, &req) {
		return
	}
	input, ok := invoiceInput(c, &req)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// Get handles getting a single invoice with its tasks
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Update handles replacing an invoice and its tasks
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req request.InvoiceRequest
	if !bindJSON(c, &req) {
		return
	}
	input, ok := invoiceInput(c, &req)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice updated successfully", invoice)
}

// Delete handles deleting an invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), id, actor(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice deleted successfully", nil)
}

// NextNumber handles previewing the number a new invoice would receive
func (h *InvoiceHandler) NextNumber(c *gin.Context) {
	var req request.NextNumberRequest
	if !bindQuery(c, &req) {
		return
	}
	invoiceDate, err := timeutil.ParseDate(req.InvoiceDate)
	if err != nil {
		response.ValidationError(c, []apperror.FieldError{{Field: "invoice_date", Message: err.Error()}})
		return
	}

	number, err := h.invoiceService.PreviewNextNumber(c.Request.Context(), enum.InvoiceType(req.InvoiceType), invoiceDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Next invoice number", gin.H{"invoice_number": number})
}

// PreviewTotals handles recomputing the amount fields of a draft invoice
func (h *InvoiceHandler) PreviewTotals(c *gin.Context) {
	var req request.PreviewTotalsRequest
	if !bindJSON(c, &req) {
		return
	}

	preview, err := h.invoiceService.PreviewTotals(taskInputs(req.Tasks), req.InvoiceAmount, req.Status, req.AmountReceived)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice totals computed", preview)
}

// AuditLogs handles listing an invoice's change trail
func (h *InvoiceHandler) AuditLogs(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	logs, err := h.invoiceService.ListAuditLogs(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Audit logs retrieved successfully", logs)
}

// DownloadPDF handles rendering an invoice to PDF
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	doc, err := h.documentService.RenderInvoicePDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Download(c, doc.Filename, "application/pdf", doc.Content)
}

// ArchivePDF handles rendering an invoice to PDF and storing it
func (h *InvoiceHandler) ArchivePDF(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	url, err := h.documentService.ArchiveInvoicePDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice PDF archived", gin.H{"pdf_url": url})
}

func invoiceFilterParams(c *gin.Context, filter *request.InvoiceFilterRequest) (*repository.InvoiceFilterParams, bool) {
	var fieldErrs []apperror.FieldError
	params := &repository.InvoiceFilterParams{
		Search:     filter.Search,
		ClientName: filter.ClientName,
		Currency:   filter.Currency,
		DateFrom:   dateField("date_from", filter.DateFrom, &fieldErrs),
		DateTo:     dateField("date_to", filter.DateTo, &fieldErrs),
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
	}
	if len(fieldErrs) > 0 {
		response.ValidationError(c, fieldErrs)
		return nil, false
	}

	if filter.Status != "" {
		status := enum.InvoiceStatus(filter.Status)
		params.Status = &status
	}
	if filter.InvoiceType != "" {
		invoiceType := enum.InvoiceType(filter.InvoiceType)
		params.InvoiceType = &invoiceType
	}
	return params, true
}

func invoiceInput(c *gin.Context, req *request.InvoiceRequest) (*service.InvoiceInput, bool) {
	var fieldErrs []apperror.FieldError
	invoiceDate := dateField("invoice_date", req.InvoiceDate, &fieldErrs)
	dueDate := dateField("due_date", req.DueDate, &fieldErrs)
	paidOn := dateField("payment_receive_date", req.PaymentReceiveDate, &fieldErrs)
	if len(fieldErrs) > 0 {
		response.ValidationError(c, fieldErrs)
		return nil, false
	}

	input := &service.InvoiceInput{
		Actor:              actor(c),
		InvoiceNumber:      req.InvoiceNumber,
		InvoiceType:        req.InvoiceType,
		DueDate:            dueDate,
		ClientName:         req.ClientName,
		ClientAddress:      req.ClientAddress,
		ClientEmail:        req.ClientEmail,
		ClientGSTIN:        req.ClientGSTIN,
		ClientCountry:      req.ClientCountry,
		ProjectName:        req.ProjectName,
		FinancePOC:         req.FinancePOC,
		Currency:           req.Currency,
		InvoiceAmount:      req.InvoiceAmount,
		Status:             req.Status,
		AmountReceived:     req.AmountReceived,
		PaymentReceiveDate: paidOn,
		Notes:              req.Notes,
		Tasks:              taskInputs(req.Tasks),
	}
	if invoiceDate != nil {
		input.InvoiceDate = *invoiceDate
	}
	return input, true
}

func taskInputs(tasks []request.TaskRequest) []service.TaskInput {
	out := make([]service.TaskInput, len(tasks))
	for i, t := range tasks {
		out[i] = service.TaskInput{
			TaskName:    t.TaskName,
			Hours:       t.Hours,
			RatePerHour: t.RatePerHour,
		}
	}
	return out
}
