package infer

import (
	"strconv"
	"strings"
	"time"
)

// strictTimestampLayouts is the strict date grammar used at read time and
// during inference. These are the only formats present in the Olist extracts.
var strictTimestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// permissiveTimestampLayouts extends the strict grammar for the datetime
// coercion fallback. Any value the strict grammar accepts parses to the
// same instant here; the extra layouts only widen acceptance.
var permissiveTimestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006-01-02 15:04:05.999999999",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
}

// ParseTimestamp parses a value against the strict date grammar.
func ParseTimestamp(value string) (time.Time, bool) {
	return parseTimestamp(value, strictTimestampLayouts)
}

// ParseTimestampPermissive parses a value against the widened grammar used
// by the datetime coercion fallback.
func ParseTimestampPermissive(value string) (time.Time, bool) {
	return parseTimestamp(value, permissiveTimestampLayouts)
}

func parseTimestamp(value string, layouts []string) (time.Time, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, v); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// ParseNumber parses a value as a number using the standard numeric
// literal grammar (integer or floating point).
func ParseNumber(value string) (float64, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// missingTokens mirrors the null markers the original extracts carry.
// Matching is exact (case-sensitive), same as the source conventions.
var missingTokens = map[string]struct{}{
	"":     {},
	"nan":  {},
	"NaN":  {},
	"NA":   {},
	"N/A":  {},
	"n/a":  {},
	"null": {},
	"NULL": {},
	"None": {},
}

// IsMissing reports whether a raw cell is the source's null-marker token.
func IsMissing(value string) bool {
	_, ok := missingTokens[strings.TrimSpace(value)]
	return ok
}
