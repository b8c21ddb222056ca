package request

// CreateClientRequest represents a ClientMaster creation request
type CreateClientRequest struct {
	ClientName    string  `json:"client_name" binding:"required,max=255"`
	ContactPerson *string `json:"contact_person" binding:"omitempty,max=255"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         *string `json:"phone" binding:"omitempty,max=50"`
	Address       *string `json:"address"`
	Country       *string `json:"country" binding:"omitempty,max=100"`
	GSTIN         *string `json:"gstin" binding:"omitempty,max=50"`
}

// UpdateClientRequest represents a ClientMaster update request. A blank
// client_name keeps the current name.
type UpdateClientRequest struct {
	ClientName    string  `json:"client_name" binding:"omitempty,max=255"`
	ContactPerson *string `json:"contact_person" binding:"omitempty,max=255"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         *string `json:"phone" binding:"omitempty,max=50"`
	Address       *string `json:"address"`
	Country       *string `json:"country" binding:"omitempty,max=100"`
	GSTIN         *string `json:"gstin" binding:"omitempty,max=50"`
}

// ClientFilterRequest represents client list filters
type ClientFilterRequest struct {
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
