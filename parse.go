package main

import (
	"strconv"
	"strings"
)

// parseFloatOrZero returns the value of the longest numeric prefix of s,
// or 0 if s does not start with a number. "3.5abc" is 3.5, "abc" is 0.
func parseFloatOrZero(s string) float64 {
	prefix := numericPrefix(s, true)
	if prefix == "" {
		return 0
	}

	// on overflow ParseFloat still returns ±Inf along with ErrRange
	f, _ := strconv.ParseFloat(prefix, 64)
	return f
}

// parseIntOrZero is the integer analogue of parseFloatOrZero, "2.9" is 2.
func parseIntOrZero(s string) int {
	prefix := numericPrefix(s, false)
	if prefix == "" {
		return 0
	}

	// on overflow ParseInt returns the saturated value
	n, _ := strconv.ParseInt(prefix, 10, 0)
	return int(n)
}

// numericPrefix extracts a sign, digits (single underscores allowed between
// digits and dropped), and when withFraction is set an optional fraction and
// exponent from the start of s.
func numericPrefix(s string, withFraction bool) string {
	s = strings.TrimLeftFunc(s, isFieldSeparator)

	var b strings.Builder
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		b.WriteByte(s[i])
		i++
	}

	digits := func() int {
		n := 0
		for i < len(s) {
			switch c := s[i]; {
			case isDigit(c):
				b.WriteByte(c)
				n++
				i++
			case c == '_' && n > 0 && i+1 < len(s) && isDigit(s[i+1]):
				i++
			default:
				return n
			}
		}
		return n
	}

	mantissa := digits()
	if !withFraction {
		if mantissa == 0 {
			return ""
		}
		return b.String()
	}

	if i+1 < len(s) && s[i] == '.' && isDigit(s[i+1]) {
		b.WriteByte('.')
		i++
		mantissa += digits()
	}
	if mantissa == 0 {
		return ""
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			b.WriteString(s[i:j])
			i = j
			digits()
		}
	}

	return b.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
