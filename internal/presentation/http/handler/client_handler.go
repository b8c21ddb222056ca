package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/backoffice-api/internal/application/service"
	"github.com/sangkips/backoffice-api/internal/presentation/http/dto/request"
	"github.com/sangkips/backoffice-api/internal/presentation/http/dto/response"
)

// ClientHandler handles ClientMaster HTTP requests
type ClientHandler struct {
	clientService *service.ClientService
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// List handles listing clients
func (h *ClientHandler) List(c *gin.Context) {
	var filter request.ClientFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	result, err := h.clientService.ListClients(c.Request.Context(), pageParams(filter.Page, filter.PerPage), filter.Search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Clients retrieved successfully", result)
}

// Lookup handles finding a client by exact name for invoice autofill
func (h *ClientHandler) Lookup(c *gin.Context) {
	client, err := h.clientService.LookupClient(c.Request.Context(), c.Query("name"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client retrieved successfully", client)
}

// Create handles creating a client
func (h *ClientHandler) Create(c *gin.Context) {
	var req request.CreateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), &service.ClientInput{
		ClientName:    req.ClientName,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		Country:       req.Country,
		GSTIN:         req.GSTIN,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Client created successfully", client)
}

// Get handles getting a single client
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	client, err := h.clientService.GetClient(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client retrieved successfully", client)
}

// Update handles updating a client
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req request.UpdateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), id, &service.ClientInput{
		ClientName:    req.ClientName,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		Country:       req.Country,
		GSTIN:         req.GSTIN,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client updated successfully", client)
}

// Delete handles deleting a client
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	if err := h.clientService.DeleteClient(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client deleted successfully", nil)
}
