package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceType_NumberPrefix(t *testing.T) {
	assert.Equal(t, "MT/", InvoiceTypeIndia.NumberPrefix())
	assert.Equal(t, "MECH/", InvoiceTypeGlobal.NumberPrefix())

	_, err := ParseInvoiceType("domestic")
	assert.Error(t, err)
}

func TestInvoiceStatus_IsValid(t *testing.T) {
	for _, s := range InvoiceStatuses {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, InvoiceStatus("cancelled").IsValid())
	assert.Equal(t, "Partially Paid", InvoiceStatusPartiallyPaid.Label())
	assert.True(t, InvoiceStatusPaid.IsPaid())
}

func TestBillingCycle_JSON(t *testing.T) {
	var payload struct {
		Cycle BillingCycle `json:"cycle"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"cycle":"half_yearly"}`), &payload))
	assert.Equal(t, BillingCycleHalfYearly, payload.Cycle)

	require.NoError(t, json.Unmarshal([]byte(`{"cycle":3}`), &payload))
	assert.Equal(t, BillingCycleYearly, payload.Cycle)

	assert.Error(t, json.Unmarshal([]byte(`{"cycle":"weekly"}`), &payload))

	out, err := json.Marshal(BillingCycleOneTime)
	require.NoError(t, err)
	assert.JSONEq(t, `"one_time"`, string(out))
}

func TestBillingCycle_Scan(t *testing.T) {
	var c BillingCycle
	require.NoError(t, c.Scan(int64(1)))
	assert.Equal(t, BillingCycleQuarterly, c)

	require.NoError(t, c.Scan(nil))
	assert.Equal(t, BillingCycleMonthly, c)
	assert.Equal(t, "unknown", BillingCycle(9).String())
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "India", InvoiceTypeIndia.Label())
	assert.Equal(t, "Global", InvoiceTypeGlobal.Label())
	assert.Equal(t, "Half-yearly", BillingCycleHalfYearly.Label())
	assert.Equal(t, "Unknown", BillingCycle(-1).Label())
}
