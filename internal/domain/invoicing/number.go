// Package invoicing holds the pure invoice rules: number allocation, total
// reconciliation and the field-level change log.
package invoicing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sangkips/backoffice-api/internal/domain/enum"
	"github.com/sangkips/backoffice-api/pkg/timeutil"
)

// NumberedInvoice is the slice of an existing invoice the allocator reads.
type NumberedInvoice struct {
	InvoiceNumber string
	InvoiceType   enum.InvoiceType
	InvoiceDate   time.Time
}

// Scope is the (type, year, month) window an invoice number is unique in.
type Scope struct {
	Type  enum.InvoiceType
	Year  int
	Month int
}

// ScopeOf returns the numbering window of an invoice dated invoiceDate.
func ScopeOf(invoiceType enum.InvoiceType, invoiceDate time.Time) Scope {
	y, m, _ := invoiceDate.In(timeutil.IST).Date()
	return Scope{Type: invoiceType, Year: y, Month: int(m)}
}

// Key is a stable identifier for the scope, used as a lock name.
func (s Scope) Key() string {
	return fmt.Sprintf("%s:%04d-%02d", s.Type, s.Year, s.Month)
}

// NumberPattern returns PREFIX+MON for the invoice, e.g. "MECH/DEC".
func NumberPattern(invoiceType enum.InvoiceType, invoiceDate time.Time) string {
	return invoiceType.NumberPrefix() + timeutil.MonthAbbr(invoiceDate)
}

// Allocate returns the next invoice number for invoiceDate and invoiceType
// given the invoices already issued. Only invoices of the same type dated in
// the same IST month whose number is PATTERN followed by three or more digits
// count; the result is PATTERN + (max suffix + 1) padded to three digits.
//
// The result is a hint. Concurrent callers reading the same snapshot get the
// same number; the store's unique index decides the winner.
func Allocate(invoiceDate time.Time, invoiceType enum.InvoiceType, existing []NumberedInvoice) string {
	pattern := NumberPattern(invoiceType, invoiceDate)
	re := regexp.MustCompile("^" + regexp.QuoteMeta(pattern) + `(\d{3,})$`)

	highest := 0
	for _, inv := range existing {
		if inv.InvoiceType != invoiceType || !timeutil.SameMonth(inv.InvoiceDate, invoiceDate) {
			continue
		}
		if !strings.HasPrefix(inv.InvoiceNumber, pattern) {
			continue
		}
		m := re.FindStringSubmatch(inv.InvoiceNumber)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}

	return fmt.Sprintf("%s%03d", pattern, highest+1)
}
