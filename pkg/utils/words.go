package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

func belowThousand(n int64) string {
	switch {
	case n == 0:
		return ""
	case n < 20:
		return ones[n]
	case n < 100:
		return strings.TrimSpace(tens[n/10] + " " + ones[n%10])
	default:
		return strings.TrimSpace(ones[n/100] + " Hundred " + belowThousand(n%100))
	}
}

// IndianNumberToWords spells n using the lakh/crore grouping.
func IndianNumberToWords(n int64) string {
	switch {
	case n == 0:
		return "Zero"
	case n < 1000:
		return belowThousand(n)
	case n < 100000:
		return joinWords(belowThousand(n/1000)+" Thousand", n%1000, IndianNumberToWords)
	case n < 10000000:
		return joinWords(belowThousand(n/100000)+" Lakh", n%100000, IndianNumberToWords)
	default:
		return joinWords(IndianNumberToWords(n/10000000)+" Crore", n%10000000, IndianNumberToWords)
	}
}

var scales = []string{"", " Thousand", " Million", " Billion", " Trillion"}

// NumberToWords spells n using the international thousand/million grouping.
func NumberToWords(n int64) string {
	if n == 0 {
		return "Zero"
	}
	var groups []string
	for i := 0; n > 0 && i < len(scales); i++ {
		if g := n % 1000; g > 0 {
			groups = append([]string{belowThousand(g) + scales[i]}, groups...)
		}
		n /= 1000
	}
	return strings.Join(groups, " ")
}

func joinWords(head string, rest int64, spell func(int64) string) string {
	if rest == 0 {
		return head
	}
	return head + " " + spell(rest)
}

// AmountInWords renders a money amount for printed documents. INR uses
// Rupees/Paise with Indian grouping; other currencies use the ISO code with
// international grouping and cents.
func AmountInWords(amount decimal.Decimal, currency string) string {
	amount = amount.Abs().Round(2)
	whole := amount.IntPart()
	fraction := amount.Sub(decimal.NewFromInt(whole)).Mul(decimal.NewFromInt(100)).IntPart()

	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" || currency == "INR" {
		if whole == 0 && fraction == 0 {
			return "Zero Rupees Only"
		}
		var parts []string
		if whole > 0 {
			parts = append(parts, IndianNumberToWords(whole)+" Rupees")
		}
		if fraction > 0 {
			parts = append(parts, IndianNumberToWords(fraction)+" Paise")
		}
		return strings.Join(parts, " and ") + " Only"
	}

	words := fmt.Sprintf("%s %s", currency, NumberToWords(whole))
	if fraction > 0 {
		words += fmt.Sprintf(" and %s Cents", NumberToWords(fraction))
	}
	return words + " Only"
}
