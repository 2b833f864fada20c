package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// dateLayouts are the ISO-8601 forms accepted by ToDate.
var dateLayouts = []string{time.DateOnly, time.RFC3339Nano}

// ToInt converts a wire value to int.
// Floats are accepted only when integral, since JSON numbers decode as float64.
// Strings are always read in base 10.
func ToInt(val any) (int, error) {
	switch v := val.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%v is not an integer", v)
		}
		return int(v), nil
	case float32:
		if float64(v) != math.Trunc(float64(v)) {
			return 0, fmt.Errorf("%v is not an integer", v)
		}
		return int(v), nil
	case bool:
		return 0, fmt.Errorf("%v is not an integer", v)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 0)
		if err != nil {
			return 0, fmt.Errorf("%q is not a base 10 integer", v)
		}
		return int(n), nil
	default:
		return cast.ToIntE(v)
	}
}

// ToString converts a wire value to string. Numbers are formatted without exponent.
func ToString(val any) (string, error) {
	switch v := val.(type) {
	case bool, map[string]any, []any:
		return "", fmt.Errorf("unable to cast %#v of type %T to string", v, v)
	default:
		return cast.ToStringE(v)
	}
}

// ToBool converts a wire value to bool.
// It handles bool, the numbers 0 and 1, and strings ("1", "true", "false"...).
func ToBool(val any) (bool, error) {
	switch v := val.(type) {
	case bool:
		return v, nil
	case string:
		return cast.ToBoolE(strings.ToLower(strings.TrimSpace(v)))
	}

	n, err := ToInt(val)
	if err != nil {
		return false, fmt.Errorf("unable to cast %#v of type %T to bool", val, val)
	}
	switch n {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%v is not a boolean", val)
	}
}

// ToDate parses an ISO-8601 date (2006-01-02) or RFC 3339 timestamp and returns the
// calendar date at UTC midnight.
func ToDate(val any) (time.Time, error) {
	var t time.Time
	switch v := val.(type) {
	case time.Time:
		t = v
	case string:
		parsed, err := parseISODate(strings.TrimSpace(v))
		if err != nil {
			return time.Time{}, err
		}
		t = parsed
	default:
		return time.Time{}, fmt.Errorf("unable to cast %#v of type %T to date", v, v)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func parseISODate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not an ISO-8601 date", s)
}
