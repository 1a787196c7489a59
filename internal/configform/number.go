package configform

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseInteger reads a leading integer from text: optional whitespace,
// an optional sign, then decimal digits. Anything after the digits is
// ignored. Text with no digits yields NaN.
func ParseInteger(text string) float64 {
	s := strings.TrimLeftFunc(text, unicode.IsSpace)

	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = "-"
		}
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return math.NaN()
	}

	v, err := strconv.ParseFloat(sign+s[:end], 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// IsInvalidNumber reports whether v is a NaN number.
func IsInvalidNumber(v any) bool {
	switch n := v.(type) {
	case float64:
		return math.IsNaN(n)
	case float32:
		return math.IsNaN(float64(n))
	}
	return false
}

// FormatNumber renders a stored numeric value for an input field.
func FormatNumber(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case float64:
		if math.IsNaN(n) {
			return "NaN"
		}
		return strconv.FormatFloat(n, 'f', -1, 64)
	case float32:
		return FormatNumber(float64(n))
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case string:
		return n
	}
	return ""
}
