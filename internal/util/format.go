package util //nolint:revive // package name util hosts shared formatting helpers used across HTTP templates

import (
	"strconv"
	"strings"
)

// FormatMoney renders an amount with two decimals and thousands separators.
// Returns "-" for values that do not parse.
func FormatMoney(amount string) string {
	f, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil {
		return "-"
	}
	s := strconv.FormatFloat(f, 'f', 2, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	return GroupThousands(intPart) + "." + frac
}

// GroupThousands inserts commas into a run of digits, keeping a leading sign.
func GroupThousands(digits string) string {
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if len(digits) <= 3 {
		return sign + digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return sign + b.String()
}
