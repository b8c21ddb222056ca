package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/backoffice-api/internal/domain/entity"
	"github.com/sangkips/backoffice-api/internal/domain/repository"
	"github.com/sangkips/backoffice-api/internal/presentation/http/dto/response"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
	// IdempotencyReplayedHeader marks a response served from the key store
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo   repository.IdempotencyRepository
	Logger *zap.Logger
}

// capturingWriter tees the response body so it can be stored
type capturingWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w capturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a client retries a write with
// the same Idempotency-Key on the same endpoint. Reusing a key with a
// different body is rejected. Requests without the header pass through.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" || (c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut) {
			c.Next()
			return
		}

		userID, ok := c.Get("user_id")
		uid, isUUID := userID.(uuid.UUID)
		if !ok || !isUUID {
			c.Next()
			return
		}

		log := GetLogger(c, config.Logger)
		endpoint := c.Request.Method + " " + c.FullPath()

		body, err := readBody(c)
		if err != nil {
			response.BadRequest(c, "Could not read request body")
			c.Abort()
			return
		}
		requestHash := hashBody(body)

		existing, err := config.Repo.Find(c.Request.Context(), uid, endpoint, key)
		if err != nil {
			log.Warn("idempotency lookup failed", zap.Error(err))
			c.Next()
			return
		}
		if existing != nil && !existing.IsExpired(time.Now()) {
			if !existing.Matches(requestHash) {
				response.ErrorWithCode(c, http.StatusUnprocessableEntity, "Idempotency-Key was already used with a different request")
				c.Abort()
				return
			}
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(existing.ResponseCode, existing.ContentType, existing.ResponseBody)
			c.Abort()
			return
		}

		w := &capturingWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		// Server errors are not stored so the client can retry them.
		status := c.Writer.Status()
		if status >= http.StatusInternalServerError {
			return
		}

		err = config.Repo.Save(c.Request.Context(), &entity.IdempotencyKey{
			UserID:       uid,
			Endpoint:     endpoint,
			Key:          key,
			RequestHash:  requestHash,
			ResponseCode: status,
			ContentType:  c.Writer.Header().Get("Content-Type"),
			ResponseBody: w.body.Bytes(),
			ExpiresAt:    time.Now().Add(IdempotencyKeyTTL),
		})
		if err != nil {
			level := zap.WarnLevel
			if errors.Is(err, repository.ErrDuplicate) {
				level = zap.DebugLevel
			}
			log.Log(level, "idempotency key not stored", zap.String("endpoint", endpoint), zap.Error(err))
		}
	}
}

func readBody(c *gin.Context) ([]byte, error) {
	if c.Request.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}

func hashBody(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}
