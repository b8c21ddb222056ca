package entity

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyKey is a processed write. A retried invoice or adjustment
// submission with the same key on the same endpoint gets this response back
// instead of creating a second record.
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_idempotency_scope,priority:1"`
	Endpoint     string    `gorm:"size:255;not null;uniqueIndex:idx_idempotency_scope,priority:2"` // "POST /api/v1/invoices"
	Key          string    `gorm:"size:255;not null;uniqueIndex:idx_idempotency_scope,priority:3"`
	RequestHash  string    `gorm:"size:64"` // hex SHA-256 of the body
	ResponseCode int       `gorm:"not null"`
	ContentType  string    `gorm:"size:100"`
	ResponseBody []byte    `gorm:"type:bytea"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired reports whether the key may be reused for a new request.
func (i *IdempotencyKey) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// Matches reports whether a retried body is the one originally stored.
func (i *IdempotencyKey) Matches(requestHash string) bool {
	return i.RequestHash == "" || i.RequestHash == requestHash
}
