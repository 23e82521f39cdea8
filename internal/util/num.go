package util

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reThousandDot   = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})+$`)
	reThousandComma = regexp.MustCompile(`^\d{1,3}(?:,\d{3})+$`)
)

// ParseNumber coerces a raw cell value to float64. Spreadsheet readers hand
// back strings, JSON decoding hands back float64, and transactional exports
// mix in thousand separators and decimal commas.
func ParseNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		return parseNumericString(v)
	}
	return 0, false
}

func parseNumericString(s string) (float64, bool) {
	compact := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	compact = strings.ReplaceAll(compact, " ", "")
	if compact == "" {
		return 0, false
	}

	neg := strings.HasPrefix(compact, "-")
	body := strings.TrimPrefix(compact, "-")

	switch {
	case reThousandDot.MatchString(body):
		body = strings.ReplaceAll(body, ".", "")
	case reThousandComma.MatchString(body):
		body = strings.ReplaceAll(body, ",", "")
	case strings.Contains(body, ",") && !strings.Contains(body, "."):
		body = strings.ReplaceAll(body, ",", ".")
	default:
		body = strings.ReplaceAll(body, ",", "")
	}

	parsed, err := strconv.ParseFloat(body, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		parsed = -parsed
	}
	return parsed, true
}
