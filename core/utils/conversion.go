package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ToFloat converts various types to float64 using explicit type switching.
// Provider billing APIs return monetary amounts as floats, integers (often
// cents) or strings depending on the vendor, so adapters funnel everything
// through this helper.
func ToFloat(val any) float64 {
	switch v := val.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case int32:
		return float64(v)
	case uint:
		return float64(v)
	case uint64:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f
	case []byte:
		f, _ := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
		return f
	default:
		s := fmt.Sprintf("%v", v)
		f, _ := strconv.ParseFloat(s, 64)
		return f
	}
}

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// CentsToAmount converts an integer cent value into a major-unit amount.
func CentsToAmount(cents int64) float64 {
	return float64(cents) / 100
}
