package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// MinorDigits returns how many decimal places a currency's minor unit has.
func MinorDigits(currency string) int {
	switch strings.ToUpper(strings.TrimSpace(currency)) {
	case "JPY", "KRW", "VND":
		return 0
	default:
		return 2
	}
}

// ParseDecimalMinor parses a non-negative decimal string ("150", "150.5", "150.50")
// into an integer amount with the given number of fractional digits.
// Extra fractional digits are rounded half-up.
func ParseDecimalMinor(s string, digits int) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	s = strings.TrimPrefix(s, "+")

	intPart, fracPart, _ := strings.Cut(s, ".")
	if intPart == "" {
		intPart = "0"
	}
	if !allDigits(intPart) || (fracPart != "" && !allDigits(fracPart)) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	roundUp := false
	if len(fracPart) > digits {
		roundUp = fracPart[digits] >= '5'
		fracPart = fracPart[:digits]
	}
	fracPart += strings.Repeat("0", digits-len(fracPart))

	n, err := strconv.ParseInt(intPart+fracPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if roundUp {
		n++
	}
	return n, nil
}

// FormatMinor renders a minor-unit amount as a plain decimal string ("225.00").
func FormatMinor(amount int64, digits int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	if digits <= 0 {
		return sign + strconv.FormatInt(amount, 10)
	}
	str := strconv.FormatInt(amount, 10)
	if len(str) <= digits {
		str = strings.Repeat("0", digits-len(str)+1) + str
	}
	cut := len(str) - digits
	return sign + str[:cut] + "." + str[cut:]
}

// FormatMoney renders an amount for documents, e.g. "IDR 1.250.000,00".
func FormatMoney(amount int64, currency string) string {
	digits := MinorDigits(currency)
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	unit := int64(1)
	for i := 0; i < digits; i++ {
		unit *= 10
	}
	out := fmt.Sprintf("%s %s%s", strings.ToUpper(currency), sign, formatThousand(amount/unit))
	if digits > 0 {
		out += fmt.Sprintf(",%0*d", digits, amount%unit)
	}
	return out
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(c)
	}
	return out.String()
}

func allDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}
