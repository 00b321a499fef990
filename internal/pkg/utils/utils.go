package utils

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var amountPattern = regexp.MustCompile(`\d(?:[\d.,]*\d)?`)

// ConvertMinutesToDuration convert minutes to duration format string
// Example: 125 -> "2h 5m"
func ConvertMinutesToDuration(durationInMinutes int64) string {

	h := durationInMinutes / 60
	m := durationInMinutes % 60

	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}

	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}

	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatMoney formats an amount with thousands separators and the currency code.
// Example: 1234.5, "USD" -> "USD 1,234.50"
func FormatMoney(amount float64, currency string) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	whole := int64(amount)
	cents := int64(math.Round((amount - float64(whole)) * 100))
	if cents == 100 {
		whole++
		cents = 0
	}

	var result []byte
	str := strconv.FormatInt(whole, 10)

	count := 0
	for i := len(str) - 1; i >= 0; i-- {
		result = append([]byte{str[i]}, result...)
		count++
		if count%3 == 0 && i != 0 {
			result = append([]byte{','}, result...)
		}
	}

	formatted := string(result)
	if cents > 0 {
		formatted = fmt.Sprintf("%s.%02d", formatted, cents)
	}

	if negative {
		formatted = "-" + formatted
	}

	if currency == "" {
		return formatted
	}

	return currency + " " + formatted
}

// ExtractAmount reads the first number out of a display price. Both
// "1,249.00" and "1.249,00" are read as 1249. With a single separator kind,
// one comma or dot followed by exactly three digits groups thousands, any
// other single separator marks decimals.
// Example: "$1,249 total" -> 1249
func ExtractAmount(value string) (float64, bool) {
	match := amountPattern.FindString(value)
	if match == "" {
		return 0, false
	}

	amount, err := strconv.ParseFloat(normalizeAmount(match), 64)
	if err != nil {
		return 0, false
	}

	return amount, true
}

// normalizeAmount rewrites a grouped number into plain dot-decimal form.
func normalizeAmount(number string) string {
	lastComma := strings.LastIndex(number, ",")
	lastDot := strings.LastIndex(number, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		// the rightmost separator is the decimal one
		if lastComma > lastDot {
			return strings.ReplaceAll(strings.ReplaceAll(number, ".", ""), ",", ".")
		}
		return strings.ReplaceAll(number, ",", "")
	case lastComma >= 0:
		return normalizeSingleSeparator(number, ",")
	case lastDot >= 0:
		return normalizeSingleSeparator(number, ".")
	}

	return number
}

func normalizeSingleSeparator(number, separator string) string {
	if strings.Count(number, separator) > 1 || len(number)-strings.LastIndex(number, separator)-1 == 3 {
		return strings.ReplaceAll(number, separator, "")
	}

	return strings.Replace(number, separator, ".", 1)
}
