package middleware

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/backoffice-api/internal/config"
)

var (
	defaultCORSOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	defaultCORSMethods = []string{
		http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
	}
	defaultCORSHeaders = []string{"Accept", "Authorization", "Content-Type", "Origin", "X-Request-ID"}

	// Headers the admin UI cannot work without, added to any configured list.
	requiredCORSHeaders = []string{"Authorization", IdempotencyKeyHeader}
)

// CORSMiddleware creates a CORS middleware with the provided configuration.
// Download endpoints need Content-Disposition exposed for the browser to
// read the file name.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	return cors.New(corsConfig(cfg))
}

func corsConfig(cfg *config.CORSConfig) cors.Config {
	c := cors.Config{
		AllowOrigins: orDefault(cfg.AllowedOrigins, defaultCORSOrigins),
		AllowMethods: orDefault(cfg.AllowedMethods, defaultCORSMethods),
		AllowHeaders: slices.Clone(orDefault(cfg.AllowedHeaders, defaultCORSHeaders)),
		ExposeHeaders: []string{
			"Content-Length", "Content-Type", "Content-Disposition",
			"X-Request-ID", IdempotencyReplayedHeader,
		},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, h := range requiredCORSHeaders {
		if !slices.Contains(c.AllowHeaders, h) {
			c.AllowHeaders = append(c.AllowHeaders, h)
		}
	}
	return c
}

func orDefault(values, fallback []string) []string {
	if len(values) == 0 {
		return fallback
	}
	return values
}
