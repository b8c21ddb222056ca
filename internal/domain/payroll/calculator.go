// Package payroll computes monthly net pay from a salary baseline, attendance
// and administrator overrides.
package payroll

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

var (
	hraRate         = decimal.RequireFromString("0.30")
	taxRate         = decimal.RequireFromString("0.10")
	pfRate          = decimal.RequireFromString("0.12")
	esiRate         = decimal.RequireFromString("0.0075")
	professionalTax = decimal.NewFromInt(200)
	hoursPerDay     = decimal.NewFromInt(8)
)

// Baseline is an employee's unadjusted monthly salary inputs.
type Baseline struct {
	BasicSalary decimal.Decimal
	Allowances  decimal.Decimal
}

// Overrides replaces baseline inputs. Nil fields keep the baseline value;
// bonus, overtime hours and other deductions default to zero.
type Overrides struct {
	BasicSalary     *decimal.Decimal
	Allowances      *decimal.Decimal
	OtherDeductions *decimal.Decimal
	Bonus           *decimal.Decimal
	OvertimeHours   *decimal.Decimal
}

// Merge layers next over o; non-nil fields of next win.
func (o Overrides) Merge(next Overrides) Overrides {
	if next.BasicSalary != nil {
		o.BasicSalary = next.BasicSalary
	}
	if next.Allowances != nil {
		o.Allowances = next.Allowances
	}
	if next.OtherDeductions != nil {
		o.OtherDeductions = next.OtherDeductions
	}
	if next.Bonus != nil {
		o.Bonus = next.Bonus
	}
	if next.OvertimeHours != nil {
		o.OvertimeHours = next.OvertimeHours
	}
	return o
}

// IsEmpty reports whether no field is overridden.
func (o Overrides) IsEmpty() bool {
	return o.BasicSalary == nil && o.Allowances == nil && o.OtherDeductions == nil &&
		o.Bonus == nil && o.OvertimeHours == nil
}

// Fold merges overrides in order, later entries winning.
func Fold(all []Overrides) Overrides {
	var out Overrides
	for _, o := range all {
		out = out.Merge(o)
	}
	return out
}

// Attendance is one employee's month. Half days are allowed.
type Attendance struct {
	TotalWorkingDays  int
	DaysPresent       decimal.Decimal
	ApprovedLeaveDays decimal.Decimal
}

// Ratio returns min(present + leave, total) / total. A nil or empty summary
// yields 1 with missing set, so pay is not prorated.
func Ratio(a *Attendance) (ratio decimal.Decimal, missing bool) {
	if a == nil || a.TotalWorkingDays <= 0 {
		return decimal.NewFromInt(1), true
	}
	total := decimal.NewFromInt(int64(a.TotalWorkingDays))
	effective := a.DaysPresent.Add(a.ApprovedLeaveDays)
	if effective.GreaterThan(total) {
		effective = total
	}
	if effective.IsNegative() {
		effective = decimal.Zero
	}
	return effective.Div(total), false
}

// Result is a computed payslip. Amounts are exact so that NetPay stays linear
// in the attendance ratio; Rounded gives the two-place figures shown to users.
type Result struct {
	BasicSalary     decimal.Decimal `json:"basic_salary"`
	HRA             decimal.Decimal `json:"hra"`
	Allowances      decimal.Decimal `json:"allowances"`
	Bonus           decimal.Decimal `json:"bonus"`
	OvertimeHours   decimal.Decimal `json:"overtime_hours"`
	OvertimePay     decimal.Decimal `json:"overtime_pay"`
	GrossPay        decimal.Decimal `json:"gross_pay"`
	Tax             decimal.Decimal `json:"tax"`
	PF              decimal.Decimal `json:"pf"`
	ESI             decimal.Decimal `json:"esi"`
	ProfessionalTax decimal.Decimal `json:"professional_tax"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	AttendanceRatio decimal.Decimal `json:"attendance_ratio"`
	NetPay          decimal.Decimal `json:"net_pay"`
}

// Compute applies the fixed-percentage model:
//
//	hra      = 0.30 × basic
//	gross    = basic + hra + allowances + bonus + overtime pay
//	deduct   = 0.10×gross + 0.12×gross + 0.0075×gross + 200 + other
//	net      = max(0, gross − deduct) × ratio
//
// Overtime is paid at the basic hourly rate, basic / (workingDays × 8).
func Compute(base Baseline, ratio decimal.Decimal, workingDays int, o Overrides) Result {
	basic := valueOr(o.BasicSalary, base.BasicSalary)
	allowances := valueOr(o.Allowances, base.Allowances)
	bonus := valueOr(o.Bonus, decimal.Zero)
	overtimeHours := valueOr(o.OvertimeHours, decimal.Zero)
	other := valueOr(o.OtherDeductions, decimal.Zero)

	overtimePay := decimal.Zero
	if workingDays > 0 && overtimeHours.IsPositive() {
		hourly := basic.Div(decimal.NewFromInt(int64(workingDays)).Mul(hoursPerDay))
		overtimePay = overtimeHours.Mul(hourly)
	}

	hra := basic.Mul(hraRate)
	gross := basic.Add(hra).Add(allowances).Add(bonus).Add(overtimePay)

	tax := gross.Mul(taxRate)
	pf := gross.Mul(pfRate)
	esi := gross.Mul(esiRate)
	deductions := tax.Add(pf).Add(esi).Add(professionalTax).Add(other)

	net := gross.Sub(deductions)
	if net.IsNegative() {
		net = decimal.Zero
	}
	net = net.Mul(ratio)

	return Result{
		BasicSalary:     basic,
		HRA:             hra,
		Allowances:      allowances,
		Bonus:           bonus,
		OvertimeHours:   overtimeHours,
		OvertimePay:     overtimePay,
		GrossPay:        gross,
		Tax:             tax,
		PF:              pf,
		ESI:             esi,
		ProfessionalTax: professionalTax,
		OtherDeductions: other,
		TotalDeductions: deductions,
		AttendanceRatio: ratio,
		NetPay:          net,
	}
}

// Rounded returns r with amounts at two places and the ratio at four.
func (r Result) Rounded() Result {
	return Result{
		BasicSalary:     r.BasicSalary.Round(2),
		HRA:             r.HRA.Round(2),
		Allowances:      r.Allowances.Round(2),
		Bonus:           r.Bonus.Round(2),
		OvertimeHours:   r.OvertimeHours.Round(2),
		OvertimePay:     r.OvertimePay.Round(2),
		GrossPay:        r.GrossPay.Round(2),
		Tax:             r.Tax.Round(2),
		PF:              r.PF.Round(2),
		ESI:             r.ESI.Round(2),
		ProfessionalTax: r.ProfessionalTax.Round(2),
		OtherDeductions: r.OtherDeductions.Round(2),
		TotalDeductions: r.TotalDeductions.Round(2),
		AttendanceRatio: r.AttendanceRatio.Round(4),
		NetPay:          r.NetPay.Round(2),
	}
}

// MarshalJSON writes the rounded figures.
func (r Result) MarshalJSON() ([]byte, error) {
	type plain Result
	return json.Marshal(plain(r.Rounded()))
}

func valueOr(v *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if v == nil {
		return fallback
	}
	return *v
}
