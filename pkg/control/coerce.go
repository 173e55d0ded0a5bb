package control

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// Wire formats for the temporal control variants. Date and Time also accept
// full RFC 3339 stamps so values that round-tripped through a generic JSON
// encode (which always emits RFC 3339 for time.Time) coerce back cleanly.
const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

func coerceString(value any) (string, error) {
	switch typed := value.(type) {
	case string:
		return typed, nil
	case []byte:
		return string(typed), nil
	case bool:
		return strconv.FormatBool(typed), nil
	case int:
		return strconv.Itoa(typed), nil
	case int64:
		return strconv.FormatInt(typed, 10), nil
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), nil
	case json.Number:
		return typed.String(), nil
	default:
		return "", fmt.Errorf("control: cannot coerce %T into string", value)
	}
}

func coerceBool(value any) (bool, error) {
	switch typed := value.(type) {
	case bool:
		return typed, nil
	case string:
		parsed, err := strconv.ParseBool(typed)
		if err != nil {
			return false, fmt.Errorf("control: parse %q as boolean: %w", typed, err)
		}
		return parsed, nil
	case float64:
		return typed != 0, nil
	case int:
		return typed != 0, nil
	default:
		return false, fmt.Errorf("control: cannot coerce %T into boolean", value)
	}
}

func coerceInt(value any) (int, error) {
	switch typed := value.(type) {
	case int:
		return typed, nil
	case int32:
		return int(typed), nil
	case int64:
		return int(typed), nil
	case float64:
		if typed != math.Trunc(typed) {
			return 0, fmt.Errorf("control: %v is not an integer", typed)
		}
		return int(typed), nil
	case json.Number:
		parsed, err := typed.Int64()
		if err != nil {
			return 0, fmt.Errorf("control: parse %q as integer: %w", typed.String(), err)
		}
		return int(parsed), nil
	case string:
		parsed, err := strconv.Atoi(typed)
		if err != nil {
			return 0, fmt.Errorf("control: parse %q as integer: %w", typed, err)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("control: cannot coerce %T into integer", value)
	}
}

func coerceFloat(value any) (float64, error) {
	switch typed := value.(type) {
	case float64:
		return typed, nil
	case float32:
		return float64(typed), nil
	case int:
		return float64(typed), nil
	case int64:
		return float64(typed), nil
	case json.Number:
		parsed, err := typed.Float64()
		if err != nil {
			return 0, fmt.Errorf("control: parse %q as number: %w", typed.String(), err)
		}
		return parsed, nil
	case string:
		parsed, err := strconv.ParseFloat(typed, 64)
		if err != nil {
			return 0, fmt.Errorf("control: parse %q as number: %w", typed, err)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("control: cannot coerce %T into number", value)
	}
}

func coerceTime(value any, layouts ...string) (time.Time, error) {
	switch typed := value.(type) {
	case time.Time:
		return typed, nil
	case string:
		for _, layout := range layouts {
			if parsed, err := time.Parse(layout, typed); err == nil {
				return parsed, nil
			}
		}
		return time.Time{}, fmt.Errorf("control: parse %q as time using %v", typed, layouts)
	default:
		return time.Time{}, fmt.Errorf("control: cannot coerce %T into time", value)
	}
}
