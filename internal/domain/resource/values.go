package resource

import (
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Values holds typed column values keyed by field name. Each value is
// nil or one of string, int64, float64, bool, decimal.Decimal,
// time.Time or json.RawMessage.
type Values map[string]any

// Record is one persisted row.
type Record struct {
	ID        int64
	Values    Values
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// isoLayout renders timestamps without a zone; they are stored as UTC.
const isoLayout = "2006-01-02T15:04:05.999999"

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTime accepts ISO-8601 date and date-time strings. Values with an
// offset are converted to UTC; values without one are taken as UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var firstErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// FormatTime renders t as an ISO-8601 string in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

func isEmpty(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case map[string]any:
		return len(v) == 0
	case []any:
		return len(v) == 0
	default:
		return false
	}
}

// normalize converts a decoded payload value into the typed value stored
// for f.
func normalize(f Field, raw any) (any, error) {
	if raw == nil {
		if f.NotNull {
			return nil, newValidationError(f.Name, "%s cannot be null", f.Name)
		}
		return nil, nil
	}

	switch f.Kind {
	case KindString, KindText:
		s, ok := raw.(string)
		if !ok {
			return nil, newValidationError(f.Name, "%s must be a string", f.Name)
		}
		if f.MaxLen > 0 && utf8.RuneCountInString(s) > f.MaxLen {
			return nil, newValidationError(f.Name, "%s must be %d characters or less", f.Name, f.MaxLen)
		}
		if f.Email && !strings.Contains(s, "@") {
			return nil, newValidationError(f.Name, "Invalid email format")
		}
		return s, nil

	case KindEnum:
		s, ok := raw.(string)
		if !ok || !slices.Contains(f.Values, s) {
			return nil, newValidationError(f.Name, "%s must be one of: %s", f.Name, strings.Join(f.Values, ", "))
		}
		return s, nil

	case KindInt:
		n, ok := toInt64(raw)
		if !ok {
			return nil, newValidationError(f.Name, "%s must be an integer", f.Name)
		}
		return n, nil

	case KindFloat:
		n, ok := toFloat64(raw)
		if !ok {
			return nil, newValidationError(f.Name, "%s must be a number", f.Name)
		}
		return n, nil

	case KindDecimal:
		d, ok := toDecimal(raw)
		if !ok {
			return nil, newValidationError(f.Name, "%s must be a decimal number", f.Name)
		}
		if !d.Equal(d.Round(DecimalScale)) {
			return nil, newValidationError(f.Name, "%s must have at most %d decimal places", f.Name, DecimalScale)
		}
		if d.Abs().GreaterThanOrEqual(decimal.New(1, DecimalPrecision-DecimalScale)) {
			return nil, newValidationError(f.Name, "%s is out of range", f.Name)
		}
		return d.Round(DecimalScale), nil

	case KindBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, newValidationError(f.Name, "%s must be true or false", f.Name)
		}
		return b, nil

	case KindTime:
		switch v := raw.(type) {
		case time.Time:
			return v.UTC(), nil
		case string:
			t, err := ParseTime(v)
			if err != nil {
				return nil, &FormatError{Field: f.Name}
			}
			return t, nil
		default:
			return nil, &FormatError{Field: f.Name}
		}

	case KindJSON:
		if v, ok := raw.(json.RawMessage); ok {
			if !json.Valid(v) {
				return nil, newValidationError(f.Name, "%s must be valid JSON", f.Name)
			}
			return v, nil
		}
		b, err := json.Marshal(raw)
		if err != nil {
			return nil, newValidationError(f.Name, "%s must be valid JSON", f.Name)
		}
		return json.RawMessage(b), nil
	}

	return nil, newValidationError(f.Name, "%s has an unsupported type", f.Name)
}

func toInt64(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		if v != math.Trunc(v) || math.Abs(v) >= 1<<63 {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n, err == nil
	}
	return 0, false
}

func toFloat64(raw any) (float64, bool) {
	switch v := raw.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, !math.IsNaN(v) && !math.IsInf(v, 0)
	case json.Number:
		n, err := v.Float64()
		return n, err == nil
	}
	return 0, false
}

func toDecimal(raw any) (decimal.Decimal, bool) {
	switch v := raw.(type) {
	case decimal.Decimal:
		return v, true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(v), true
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		return d, err == nil
	}
	return decimal.Decimal{}, false
}
