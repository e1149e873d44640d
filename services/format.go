package services

import (
	"fmt"
	"math"
	"strings"
)

// FormatINR formats an amount in Indian Rupee notation with the Indian
// grouping scheme (rightmost 3 digits, then pairs): ₹1,23,45,678.90.
// Always two decimal places.
func FormatINR(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)

	result := "₹" + indianGrouping(parts[0]) + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// FormatAmount renders a monetary value for bill cells: two decimals, no
// currency symbol or grouping.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// FormatQty renders a measured quantity for bill cells: three decimals, the
// precision of the measurement book.
func FormatQty(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

func indianGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}
	return result
}

// AmountToWords converts an amount to Indian English words for the bill
// footer. Example: 913183.00 → "Nine Lakhs Thirteen Thousand One Hundred
// and Eighty Three Rupees Only/-".
func AmountToWords(amount float64) string {
	if amount < 0 {
		return "Negative " + AmountToWords(-amount)
	}

	rupees := int64(math.Round(amount))
	if rupees == 0 {
		return "Zero Rupees Only/-"
	}
	return indianWords(rupees) + " Rupees Only/-"
}

func indianWords(n int64) string {
	var parts []string

	if n >= 10000000 {
		parts = append(parts, wordsUnder100(n/10000000)+" Crores")
		n %= 10000000
	}
	if n >= 100000 {
		parts = append(parts, wordsUnder100(n/100000)+" Lakhs")
		n %= 100000
	}
	if n >= 1000 {
		parts = append(parts, wordsUnder100(n/1000)+" Thousand")
		n %= 1000
	}
	if n >= 100 {
		parts = append(parts, onesWords[n/100]+" Hundred")
		n %= 100
	}
	if n > 0 {
		if len(parts) > 0 {
			parts = append(parts, "and "+wordsUnder100(n))
		} else {
			parts = append(parts, wordsUnder100(n))
		}
	}

	return strings.Join(parts, " ")
}

func wordsUnder100(n int64) string {
	if n < 20 {
		return onesWords[n]
	}
	result := tensWords[n/10]
	if n%10 != 0 {
		result += " " + onesWords[n%10]
	}
	return result
}

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}
