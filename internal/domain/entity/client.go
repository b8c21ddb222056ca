package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a ClientMaster entry. ClientName is the exact-match key used to
// autofill invoice address fields.
type Client struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ClientName    string         `gorm:"size:255;not null;uniqueIndex" json:"client_name"`
	ContactPerson *string        `gorm:"size:255" json:"contact_person,omitempty"`
	Email         *string        `gorm:"size:255" json:"email,omitempty"`
	Phone         *string        `gorm:"size:50" json:"phone,omitempty"`
	Address       *string        `gorm:"type:text" json:"address,omitempty"`
	Country       *string        `gorm:"size:100" json:"country,omitempty"`
	GSTIN         *string        `gorm:"size:50;column:gstin" json:"gstin,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new client
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Client model
func (Client) TableName() string {
	return "clients"
}
