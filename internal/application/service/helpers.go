package service

import (
	"strings"
	"time"

	"github.com/sangkips/backoffice-api/pkg/timeutil"
	"github.com/shopspring/decimal"
)

const defaultCurrency = "INR"

func strPtr(s string) *string {
	return &s
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func istDate(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	d := timeutil.ToIST(*t)
	return &d
}

func normalizeCurrency(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return defaultCurrency
	}
	return c
}

// fillBlank returns fallback when current is nil or blank.
func fillBlank(current, fallback *string) *string {
	if current != nil && strings.TrimSpace(*current) != "" {
		return current
	}
	if fallback == nil || strings.TrimSpace(*fallback) == "" {
		return current
	}
	v := *fallback
	return &v
}

// trimmed returns nil for a nil or blank string.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
