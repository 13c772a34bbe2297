package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToInt converts various types to int using explicit type switching.
// It handles standard integer types, floats, strings, and byte slices.
// Unparseable values yield 0.
func ToInt(val any) int {
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	case int16:
		return int(v)
	case int8:
		return int(v)
	case uint:
		return int(v)
	case uint64:
		return int(v)
	case uint32:
		return int(v)
	case uint16:
		return int(v)
	case uint8:
		return int(v)
	case float64:
		return int(v)
	case float32:
		return int(v)
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(v))
		return i
	case []byte:
		i, _ := strconv.Atoi(strings.TrimSpace(string(v)))
		return i
	default:
		s := fmt.Sprintf("%v", v)
		i, _ := strconv.Atoi(s)
		return i
	}
}

// ParseID coerces an external identifier into a positive integer.
// Unlike ToInt it reports whether the value was actually numeric: nil, empty
// strings, non-numeric text, fractional floats and non-positive numbers all
// return ok == false.
func ParseID(val any) (int, bool) {
	switch v := val.(type) {
	case nil:
		return 0, false
	case *int:
		if v == nil {
			return 0, false
		}
		return positive(*v)
	case *string:
		if v == nil {
			return 0, false
		}
		return ParseID(*v)
	case float64:
		return parseFloat(v)
	case float32:
		return parseFloat(float64(v))
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		if i, err := strconv.Atoi(s); err == nil {
			return positive(i)
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return parseFloat(f)
	case []byte:
		return ParseID(string(v))
	case int, int64, int32, int16, int8, uint, uint64, uint32, uint16, uint8:
		return positive(ToInt(v))
	default:
		return 0, false
	}
}

func parseFloat(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f > 1<<53 {
		return 0, false
	}
	return positive(int(f))
}

func positive(i int) (int, bool) {
	if i <= 0 {
		return 0, false
	}
	return i, true
}
