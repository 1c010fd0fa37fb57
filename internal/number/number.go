// Copyright (C) 2025 Joshua M. Kriegshauser. All Rights Reserved.

// Package number converts between numeric text and float64 values.
//
// The parser is deliberately tolerant: it reads as much of a plausible
// number as it can and stops at the first character that does not fit,
// so non-numeric text yields zero rather than an error.
package number

import (
	"math"
	"strconv"

	"go4.org/mem"
)

// Parse converts src to a float64. The literal "true" parses as 1.
// Parsing stops at the first character that does not belong to a
// number; an empty or entirely non-numeric src yields 0.
func Parse(src mem.RO) float64 {
	if src.Equal(mem.S("true")) {
		return 1
	}
	n := src.Len()
	i := 0
	neg := false
	if i < n && src.At(i) == '-' {
		neg = true
		i++
	}
	var val float64
	for i < n {
		c := src.At(i)
		if c < '0' || c > '9' {
			break
		}
		val = val*10 + float64(c-'0')
		i++
	}
	if i < n && src.At(i) == '.' {
		i++
		fact := 0.1
		for i < n {
			c := src.At(i)
			if c < '0' || c > '9' {
				break
			}
			val += float64(c-'0') * fact
			fact /= 10
			i++
		}
	}
	if i < n && (src.At(i) == 'e' || src.At(i) == 'E') {
		i++
		expNeg := false
		if i < n {
			switch src.At(i) {
			case '-':
				expNeg = true
				i++
			case '+':
				i++
			}
		}
		exp := 0
		for i < n {
			c := src.At(i)
			if c < '0' || c > '9' {
				break
			}
			exp = exp*10 + int(c-'0')
			i++
		}
		if expNeg {
			exp = -exp
		}
		val *= math.Pow(10, float64(exp))
	}
	if neg {
		val = -val
	}
	return val
}

// ParseBool converts src to a bool. The literals "true" and "false"
// convert directly; any other text is true if it parses to a nonzero
// number.
func ParseBool(src mem.RO) bool {
	if src.Equal(mem.S("true")) {
		return true
	}
	if src.Equal(mem.S("false")) {
		return false
	}
	return Parse(src) != 0
}

// Format appends the textual form of v to dst. The second result is
// false when v is not a finite number; the appended text is then one
// of "NaN", "Inf" or "-Inf", which are not valid JSON numbers.
func Format(dst []byte, v float64) ([]byte, bool) {
	if math.IsNaN(v) {
		return append(dst, "NaN"...), false
	}
	if math.IsInf(v, 1) {
		return append(dst, "Inf"...), false
	}
	if math.IsInf(v, -1) {
		return append(dst, "-Inf"...), false
	}
	abs := math.Abs(v)
	if abs < 1e-12 {
		return append(dst, '0'), true
	}
	if abs < 1e-9 || abs > 1e12 {
		return strconv.AppendFloat(dst, v, 'g', 12, 64), true
	}
	start := len(dst)
	dst = strconv.AppendFloat(dst, v, 'f', 12, 64)

	// Drop trailing fractional zeros, and the point itself if the
	// fraction vanishes entirely.
	end := len(dst)
	for end > start && dst[end-1] == '0' {
		end--
	}
	if end > start && dst[end-1] == '.' {
		end--
	}
	return dst[:end], true
}
