package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// InvoiceType identifies the issuing legal entity of an invoice. Each entity
// keeps its own numbering sequence.
type InvoiceType string

const (
	InvoiceTypeIndia  InvoiceType = "india"
	InvoiceTypeGlobal InvoiceType = "global"
)

func (t InvoiceType) String() string {
	return string(t)
}

// Label is the display name used in exports.
func (t InvoiceType) Label() string {
	switch t {
	case InvoiceTypeIndia:
		return "India"
	case InvoiceTypeGlobal:
		return "Global"
	}
	return string(t)
}

// NumberPrefix returns the invoice number prefix for the entity.
func (t InvoiceType) NumberPrefix() string {
	if t == InvoiceTypeIndia {
		return "MT/"
	}
	return "MECH/"
}

func (t InvoiceType) IsValid() bool {
	switch t {
	case InvoiceTypeIndia, InvoiceTypeGlobal:
		return true
	}
	return false
}

func ParseInvoiceType(s string) (InvoiceType, error) {
	t := InvoiceType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid invoice type %q", s)
	}
	return t, nil
}

func (t InvoiceType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *InvoiceType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = InvoiceType(str)
	return nil
}

func (t InvoiceType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *InvoiceType) Scan(value interface{}) error {
	if value == nil {
		*t = InvoiceTypeGlobal
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = InvoiceType(v)
	case []byte:
		*t = InvoiceType(string(v))
	}
	return nil
}
