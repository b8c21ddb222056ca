package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/backoffice-api/internal/domain/entity"
)

// IdempotencyRepository stores replayable responses, keyed by user, endpoint
// and client-chosen key.
type IdempotencyRepository interface {
	Find(ctx context.Context, userID uuid.UUID, endpoint, key string) (*entity.IdempotencyKey, error)
	// Save returns ErrDuplicate when a concurrent request stored the key first.
	Save(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes keys that expired before now and reports how many went.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
