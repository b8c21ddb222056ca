package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// BillingCycle represents how often a contract is billed
type BillingCycle int

const (
	BillingCycleMonthly    BillingCycle = 0
	BillingCycleQuarterly  BillingCycle = 1
	BillingCycleHalfYearly BillingCycle = 2
	BillingCycleYearly     BillingCycle = 3
	BillingCycleOneTime    BillingCycle = 4
)

var billingCycleNames = [...]string{"monthly", "quarterly", "half_yearly", "yearly", "one_time"}

func (c BillingCycle) String() string {
	if c < 0 || int(c) >= len(billingCycleNames) {
		return "unknown"
	}
	return billingCycleNames[c]
}

var billingCycleLabels = [...]string{"Monthly", "Quarterly", "Half-yearly", "Yearly", "One-time"}

// Label is the display name used in exports.
func (c BillingCycle) Label() string {
	if !c.IsValid() {
		return "Unknown"
	}
	return billingCycleLabels[c]
}

func (c BillingCycle) IsValid() bool {
	return c >= BillingCycleMonthly && c <= BillingCycleOneTime
}

func ParseBillingCycle(s string) (BillingCycle, error) {
	for i, name := range billingCycleNames {
		if name == s {
			return BillingCycle(i), nil
		}
	}
	return 0, fmt.Errorf("invalid billing cycle %q", s)
}

func (c BillingCycle) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *BillingCycle) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*c = BillingCycle(i)
		return nil
	}
	parsed, err := ParseBillingCycle(str)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c BillingCycle) Value() (driver.Value, error) {
	return int64(c), nil
}

func (c *BillingCycle) Scan(value interface{}) error {
	if value == nil {
		*c = BillingCycleMonthly
		return nil
	}
	switch v := value.(type) {
	case int64:
		*c = BillingCycle(v)
	case int32:
		*c = BillingCycle(v)
	case int:
		*c = BillingCycle(v)
	}
	return nil
}
