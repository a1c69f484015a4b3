package extract

import (
	"strconv"
	"strings"
)

// coerceString implements the "string" coercion of §4.6: trim.
func coerceString(s string) string {
	return strings.TrimSpace(s)
}

// coerceNumber implements the "number" coercion of §4.6: keep only
// digit/dot/minus characters, parse as floating point. Parse failure
// reports ok=false, which coercePrimitive turns into nil.
func coerceNumber(s string) (float64, bool) {
	cleaned := filterNumeric(s)
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// coerceInteger implements the "integer" coercion of §4.6: same character
// filter, preferring an integer parse.
func coerceInteger(s string) (int64, bool) {
	cleaned := filterNumeric(s)
	if cleaned == "" {
		return 0, false
	}
	if v, err := strconv.ParseInt(cleaned, 10, 64); err == nil {
		return v, true
	}
	if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return int64(f), true
	}
	return 0, false
}

func filterNumeric(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// coerceBoolean implements the "boolean" coercion of §4.6: true iff the
// lower-cased text equals one of {true, yes, checked, 1}.
func coerceBoolean(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "checked", "1":
		return true
	}
	return false
}

// coercePrimitive dispatches by schema type, returning nil on unrecoverable
// parse failure for numeric types (§4.6).
func coercePrimitive(schemaType, text string) any {
	switch schemaType {
	case "number":
		if v, ok := coerceNumber(text); ok {
			return v
		}
		return nil
	case "integer":
		if v, ok := coerceInteger(text); ok {
			return v
		}
		return nil
	case "boolean":
		return coerceBoolean(text)
	default:
		return coerceString(text)
	}
}
