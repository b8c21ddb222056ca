package invoicing

import (
	"github.com/shopspring/decimal"
)

// Scale is the number of decimal places stored for hours, rates and amounts.
const Scale = 2

// TaskLine is an hours × rate line item.
type TaskLine struct {
	Hours       decimal.Decimal
	RatePerHour decimal.Decimal
}

// Normalize rounds hours and rate to the stored scale.
func (t TaskLine) Normalize() TaskLine {
	return TaskLine{Hours: t.Hours.Round(Scale), RatePerHour: t.RatePerHour.Round(Scale)}
}

// LineAmount returns hours × rate on the normalized line, rounded to Scale.
func (t TaskLine) LineAmount() decimal.Decimal {
	n := t.Normalize()
	return n.Hours.Mul(n.RatePerHour).Round(Scale)
}

// ComputeTotal sums the line amounts, so a total always equals the sum of
// the amounts printed on its lines.
func ComputeTotal(tasks []TaskLine) decimal.Decimal {
	total := decimal.Zero
	for _, t := range tasks {
		total = total.Add(t.LineAmount())
	}
	return total
}

// ResolveAmount applies the two-branch amount policy: with tasks the computed
// total wins over any manual amount; without tasks the manual amount is used
// verbatim, or zero when absent.
func ResolveAmount(tasks []TaskLine, manual *decimal.Decimal) decimal.Decimal {
	if len(tasks) > 0 {
		return ComputeTotal(tasks)
	}
	if manual == nil {
		return decimal.Zero
	}
	return *manual
}

// ComputePending returns max(0, total - received).
func ComputePending(total, received decimal.Decimal) decimal.Decimal {
	pending := total.Sub(received)
	if pending.IsNegative() {
		return decimal.Zero
	}
	return pending
}
