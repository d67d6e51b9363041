// Package infer classifies raw text columns into logical types and
// produces per-column summary profiles. Inference is pure and total: it
// never fails and never mutates its input.
package infer

import (
	"github.com/olistdata/olistload/pkg/olistload"
)

// numericStorageTypes are raw storage dtypes that are already numeric
// machine types; columns stored this way classify as numeric without
// sampling. CSV columns always arrive as "text".
var numericStorageTypes = map[string]struct{}{
	"int":              {},
	"int64":            {},
	"float":            {},
	"float64":          {},
	"smallint":         {},
	"integer":          {},
	"bigint":           {},
	"real":             {},
	"double precision": {},
	"numeric":          {},
}

// Infer returns the best-guess logical type for a column.
//
// storageDType is the raw storage type the column arrived with; a numeric
// machine type short-circuits to numeric. Otherwise the first sampleSize
// non-null values are parsed: all-timestamps wins datetime, all-numbers
// wins numeric, anything else is string. sampleSize <= 0 means unbounded.
//
// An empty column (zero non-null values) classifies as string; this is a
// defined default, not an error.
func Infer(storageDType string, values []string, sampleSize int) olistload.InferredType {
	if _, ok := numericStorageTypes[storageDType]; ok {
		return olistload.InferredNumeric
	}

	sample := sampleNonNull(values, sampleSize)
	if len(sample) == 0 {
		return olistload.InferredString
	}

	if allParse(sample, func(v string) bool {
		_, ok := ParseTimestamp(v)
		return ok
	}) {
		return olistload.InferredDatetime
	}

	if allParse(sample, func(v string) bool {
		_, ok := ParseNumber(v)
		return ok
	}) {
		return olistload.InferredNumeric
	}

	return olistload.InferredString
}

// ProfileColumn computes the immutable summary profile of a column:
// null/non-null counts, distinct non-null values, up to MaxSampleValues
// samples in file order, and the inferred type.
func ProfileColumn(storageDType string, values []string, sampleSize int) olistload.ColumnProfile {
	profile := olistload.ColumnProfile{
		DType:        storageDType,
		SampleValues: []string{},
	}

	distinct := make(map[string]struct{})
	for _, v := range values {
		if IsMissing(v) {
			profile.NullCount++
			continue
		}
		profile.NonNullCount++
		distinct[v] = struct{}{}
		if len(profile.SampleValues) < olistload.MaxSampleValues {
			profile.SampleValues = append(profile.SampleValues, v)
		}
	}
	profile.UniqueCount = len(distinct)
	profile.SuggestedType = Infer(storageDType, values, sampleSize)

	return profile
}

// sampleNonNull collects up to limit non-null values. limit <= 0 means all.
func sampleNonNull(values []string, limit int) []string {
	var sample []string
	for _, v := range values {
		if IsMissing(v) {
			continue
		}
		sample = append(sample, v)
		if limit > 0 && len(sample) >= limit {
			break
		}
	}
	return sample
}

func allParse(sample []string, parses func(string) bool) bool {
	for _, v := range sample {
		if !parses(v) {
			return false
		}
	}
	return true
}
