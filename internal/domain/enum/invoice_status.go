package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// InvoiceStatus is the payment state of an invoice. Any status may be set
// from any other; there is no transition guard.
type InvoiceStatus string

const (
	InvoiceStatusInProgress    InvoiceStatus = "in_progress"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusSent          InvoiceStatus = "sent"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusOverdue       InvoiceStatus = "overdue"
)

// InvoiceStatuses lists every status in display order.
var InvoiceStatuses = []InvoiceStatus{
	InvoiceStatusInProgress,
	InvoiceStatusPartiallyPaid,
	InvoiceStatusSent,
	InvoiceStatusPaid,
	InvoiceStatusOverdue,
}

func (s InvoiceStatus) String() string {
	return string(s)
}

// Label returns the human readable status used in exports and documents.
func (s InvoiceStatus) Label() string {
	switch s {
	case InvoiceStatusInProgress:
		return "In Progress"
	case InvoiceStatusPartiallyPaid:
		return "Partially Paid"
	case InvoiceStatusSent:
		return "Sent"
	case InvoiceStatusPaid:
		return "Paid"
	case InvoiceStatusOverdue:
		return "Overdue"
	}
	return string(s)
}

func (s InvoiceStatus) IsValid() bool {
	for _, v := range InvoiceStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s InvoiceStatus) IsPaid() bool {
	return s == InvoiceStatusPaid
}

func ParseInvoiceStatus(str string) (InvoiceStatus, error) {
	s := InvoiceStatus(str)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid invoice status %q", str)
	}
	return s, nil
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = InvoiceStatus(str)
	return nil
}

func (s InvoiceStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceStatusInProgress
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = InvoiceStatus(v)
	case []byte:
		*s = InvoiceStatus(string(v))
	}
	return nil
}
