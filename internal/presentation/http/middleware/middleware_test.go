package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/sangkips/backoffice-api/internal/config"
	"github.com/sangkips/backoffice-api/internal/domain/entity"
	"github.com/sangkips/backoffice-api/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "test-secret-key-32-characters-long"

func newAuthedRouter(permission string) (*gin.Engine, *utils.JWTManager) {
	jwtManager := utils.NewJWTManager(testSecret, "backoffice", time.Hour)
	r := gin.New()
	r.GET("/secure", AuthMiddleware(jwtManager), RequirePermission(permission), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("user_email"))
	})
	return r, jwtManager
}

func TestAuthMiddleware(t *testing.T) {
	r, jwtManager := newAuthedRouter("manage-invoices")

	tests := []struct {
		name   string
		header func() string
		want   int
	}{
		{"missing header", func() string { return "" }, http.StatusUnauthorized},
		{"wrong scheme", func() string { return "Basic abc" }, http.StatusUnauthorized},
		{"invalid token", func() string { return "Bearer nope" }, http.StatusUnauthorized},
		{"missing permission", func() string {
			token, _ := jwtManager.GenerateAccessToken(uuid.New(), "a@example.com", nil, []string{"view-payroll"})
			return "Bearer " + token
		}, http.StatusForbidden},
		{"granted", func() string {
			token, _ := jwtManager.GenerateAccessToken(uuid.New(), "a@example.com", nil, []string{"manage-invoices"})
			return "Bearer " + token
		}, http.StatusOK},
		{"super admin", func() string {
			token, _ := jwtManager.GenerateAccessToken(uuid.New(), "root@example.com", []string{SuperAdminRole}, nil)
			return "Bearer " + token
		}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			if h := tt.header(); h != "" {
				req.Header.Set("Authorization", h)
			}
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestLoggerMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := gin.New()
	r.Use(LoggerMiddleware(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) {
		GetLogger(c, nil).Info("inside")
		c.Status(http.StatusOK)
	})
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	t.Run("propagates request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set("X-Request-ID", "abc-123")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
		entries := logs.TakeAll()
		require.Len(t, entries, 2)
		assert.Equal(t, "inside", entries[0].Message)
		assert.Equal(t, "abc-123", entries[0].ContextMap()["request_id"])
		assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	})

	t.Run("client errors log at warn", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	})
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	r := gin.New()
	r.Use(Recovery(zap.New(core)))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestUserRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewUserRateLimiter(ctx, RateLimiterConfig{
		RequestsPerSecond: 0.001,
		BurstSize:         2,
		CleanupInterval:   time.Hour,
		EntryTTL:          time.Minute,
	})
	userA, userB := uuid.New(), uuid.New()
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if c.GetHeader("X-User") == "b" {
			c.Set("user_id", userB)
		} else {
			c.Set("user_id", userA)
		}
	}, rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(user string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-User", user)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("a"))
	assert.Equal(t, http.StatusOK, call("a"))
	assert.Equal(t, http.StatusTooManyRequests, call("a"))
	assert.Equal(t, http.StatusOK, call("b"))

	rl.cleanup(time.Now().Add(2 * time.Minute))
	assert.Empty(t, rl.limiters)
}

func TestNewRateLimiterConfig(t *testing.T) {
	cfg := NewRateLimiterConfig(120, 60)
	assert.Equal(t, 2.0, cfg.RequestsPerSecond)
	assert.Equal(t, 120, cfg.BurstSize)

	cfg = NewRateLimiterConfig(0, 0)
	assert.Equal(t, 100, cfg.BurstSize)
}

type memoryIdempotencyRepo struct {
	mu   sync.Mutex
	keys map[string]*entity.IdempotencyKey
}

func (m *memoryIdempotencyRepo) Find(_ context.Context, userID uuid.UUID, endpoint, key string) (*entity.IdempotencyKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.keys[userID.String()+endpoint+key], nil
}

func (m *memoryIdempotencyRepo) Save(_ context.Context, ikey *entity.IdempotencyKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[ikey.UserID.String()+ikey.Endpoint+ikey.Key] = ikey
	return nil
}

func (m *memoryIdempotencyRepo) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func TestIdempotency(t *testing.T) {
	repo := &memoryIdempotencyRepo{keys: map[string]*entity.IdempotencyKey{}}
	userID := uuid.New()
	calls := 0

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", userID) }, Idempotency(IdempotencyConfig{Repo: repo, Logger: zap.NewNop()}))
	handle := func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"call": calls})
	}
	r.POST("/invoices", handle)
	r.POST("/payroll/adjustments", handle)

	post := func(path, key, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	first := post("/invoices", "k1", `{"client_name":"Acme"}`)
	assert.Equal(t, http.StatusCreated, first.Code)

	replay := post("/invoices", "k1", `{"client_name":"Acme"}`)
	assert.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "true", replay.Header().Get(IdempotencyReplayedHeader))
	assert.Equal(t, first.Header().Get("Content-Type"), replay.Header().Get("Content-Type"))
	assert.JSONEq(t, first.Body.String(), replay.Body.String())
	assert.Equal(t, 1, calls)

	conflict := post("/invoices", "k1", `{"client_name":"Other"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, conflict.Code)
	assert.Equal(t, 1, calls)

	other := post("/payroll/adjustments", "k1", `{"client_name":"Acme"}`)
	assert.Equal(t, http.StatusCreated, other.Code)
	assert.Empty(t, other.Header().Get(IdempotencyReplayedHeader))
	assert.Equal(t, 2, calls)

	post("/invoices", "", `{}`)
	assert.Equal(t, 3, calls)
}

func TestIdempotency_ExpiredKeyRunsHandler(t *testing.T) {
	userID := uuid.New()
	repo := &memoryIdempotencyRepo{keys: map[string]*entity.IdempotencyKey{
		userID.String() + "POST /invoices" + "old": {
			UserID: userID, Endpoint: "POST /invoices", Key: "old",
			ResponseCode: http.StatusCreated, ExpiresAt: time.Now().Add(-time.Minute),
		},
	}}
	calls := 0

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", userID) }, Idempotency(IdempotencyConfig{Repo: repo, Logger: zap.NewNop()}))
	r.POST("/invoices", func(c *gin.Context) {
		calls++
		c.Status(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(`{}`))
	req.Header.Set(IdempotencyKeyHeader, "old")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 1, calls)
	assert.Empty(t, w.Header().Get(IdempotencyReplayedHeader))
}

func TestFieldErrors(t *testing.T) {
	SetupValidator()

	type task struct {
		Hours decimal.Decimal `json:"hours" binding:"gt=0"`
	}
	type payload struct {
		Name     string           `json:"client_name" binding:"required"`
		Amount   *decimal.Decimal `json:"invoice_amount" binding:"omitempty,gte=0"`
		Date     string           `json:"invoice_date" binding:"omitempty,datetime=2006-01-02"`
		Currency string           `json:"currency" binding:"omitempty,len=3"`
		Tasks    []task           `json:"tasks" binding:"omitempty,dive"`
	}

	negative := decimal.NewFromInt(-5)
	err := binding.Validator.ValidateStruct(&payload{
		Amount:   &negative,
		Date:     "31/12/2025",
		Currency: "RUPEE",
		Tasks:    []task{{Hours: decimal.NewFromInt(1)}, {Hours: decimal.Zero}},
	})
	require.Error(t, err)

	got := map[string]string{}
	for _, fe := range FieldErrors(err) {
		got[fe.Field] = fe.Message
	}
	assert.Equal(t, map[string]string{
		"client_name":    "is required",
		"invoice_amount": "must not be less than 0",
		"invoice_date":   "must be a date in YYYY-MM-DD format",
		"currency":       "must be exactly 3 characters",
		"tasks[1].hours": "must be greater than 0",
	}, got)

	assert.Nil(t, FieldErrors(errors.New("unexpected EOF")))
}

func TestCORSConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c := corsConfig(&config.CORSConfig{})

		assert.Equal(t, defaultCORSOrigins, c.AllowOrigins)
		assert.Contains(t, c.AllowHeaders, IdempotencyKeyHeader)
		assert.Contains(t, c.ExposeHeaders, "Content-Disposition")
	})

	t.Run("configured headers keep required ones", func(t *testing.T) {
		c := corsConfig(&config.CORSConfig{
			AllowedOrigins: []string{"https://admin.example.com"},
			AllowedHeaders: []string{"Content-Type"},
		})

		assert.Equal(t, []string{"https://admin.example.com"}, c.AllowOrigins)
		assert.Equal(t, []string{"Content-Type", "Authorization", IdempotencyKeyHeader}, c.AllowHeaders)
	})

	t.Run("preflight from allowed origin", func(t *testing.T) {
		r := gin.New()
		r.Use(CORSMiddleware(&config.CORSConfig{AllowedOrigins: []string{"https://admin.example.com"}}))
		r.POST("/invoices", func(c *gin.Context) { c.Status(http.StatusCreated) })

		req := httptest.NewRequest(http.MethodOptions, "/invoices", nil)
		req.Header.Set("Origin", "https://admin.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://admin.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})
}
