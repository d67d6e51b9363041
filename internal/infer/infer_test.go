package infer

import (
	"testing"

	"github.com/olistdata/olistload/pkg/olistload"
	"github.com/stretchr/testify/assert"
)

func TestInfer_Classification(t *testing.T) {
	tests := []struct {
		name   string
		dtype  string
		values []string
		want   olistload.InferredType
	}{
		{"pure integers", "text", []string{"1", "2", "42"}, olistload.InferredNumeric},
		{"pure floats", "text", []string{"129.90", "19.59", "0.5"}, olistload.InferredNumeric},
		{"scientific notation", "text", []string{"1e3", "2.5e-2"}, olistload.InferredNumeric},
		{"iso dates", "text", []string{"2017-10-02", "2018-08-29"}, olistload.InferredDatetime},
		{"iso timestamps", "text", []string{"2017-10-02 10:56:33", "2018-08-29 00:00:00"}, olistload.InferredDatetime},
		{"one bad timestamp disqualifies", "text", []string{"2017-10-02", "2017-45-99"}, olistload.InferredString},
		{"mixed date and text", "text", []string{"2017-10-02", "pending"}, olistload.InferredString},
		{"mixed number and text", "text", []string{"3", "maybe"}, olistload.InferredString},
		{"free text", "text", []string{"sao paulo", "rio de janeiro"}, olistload.InferredString},
		{"zero padded codes look numeric", "text", []string{"01310", "04538"}, olistload.InferredNumeric},
		{"numeric storage short-circuits", "float64", []string{"whatever"}, olistload.InferredNumeric},
		{"bigint storage short-circuits", "bigint", nil, olistload.InferredNumeric},
		{"empty column defaults to string", "text", nil, olistload.InferredString},
		{"all nulls defaults to string", "text", []string{"", "nan", "N/A"}, olistload.InferredString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Infer(tt.dtype, tt.values, olistload.DefaultSampleSize))
		})
	}
}

func TestInfer_SampleSizeBoundsTheCheck(t *testing.T) {
	// 100 clean dates followed by junk: a sample of 100 never sees the
	// junk and still classifies datetime.
	values := make([]string, 0, 101)
	for i := 0; i < 100; i++ {
		values = append(values, "2017-10-02")
	}
	values = append(values, "not a date")

	assert.Equal(t, olistload.InferredDatetime, Infer("text", values, 100))
	assert.Equal(t, olistload.InferredString, Infer("text", values, 0), "unbounded sample sees the junk")
}

func TestInfer_NullsAreSkippedNotCounted(t *testing.T) {
	// Missing tokens do not disqualify the datetime branch.
	values := []string{"2017-10-02", "", "nan", "2018-01-01"}
	assert.Equal(t, olistload.InferredDatetime, Infer("text", values, 0))
}

func TestProfileColumn(t *testing.T) {
	values := []string{"credit_card", "", "boleto", "credit_card", "nan", "voucher"}

	p := ProfileColumn("text", values, olistload.DefaultSampleSize)

	assert.Equal(t, "text", p.DType)
	assert.Equal(t, 4, p.NonNullCount)
	assert.Equal(t, 2, p.NullCount)
	assert.Equal(t, 3, p.UniqueCount)
	assert.Equal(t, []string{"credit_card", "boleto", "credit_card"}, p.SampleValues)
	assert.Equal(t, olistload.InferredString, p.SuggestedType)
}

func TestProfileColumn_EmptyColumn(t *testing.T) {
	p := ProfileColumn("text", nil, olistload.DefaultSampleSize)

	assert.Zero(t, p.NonNullCount)
	assert.Zero(t, p.NullCount)
	assert.Zero(t, p.UniqueCount)
	assert.Empty(t, p.SampleValues)
	assert.NotNil(t, p.SampleValues, "sample list is empty, not nil")
	assert.Equal(t, olistload.InferredString, p.SuggestedType)
}

func TestIsMissing(t *testing.T) {
	for _, v := range []string{"", "nan", "NaN", "N/A", "n/a", "NA", "null", "NULL", "None", "  "} {
		assert.True(t, IsMissing(v), "expected %q to be missing", v)
	}
	for _, v := range []string{"0", "01310", "nana", "none at all"} {
		assert.False(t, IsMissing(v), "expected %q to be present", v)
	}
}

func TestParseTimestamp_StrictAndPermissiveAgree(t *testing.T) {
	// Any value the strict grammar accepts must parse identically under
	// the permissive grammar.
	for _, v := range []string{"2017-10-02 10:56:33", "2017-10-02T10:56:33", "2017-10-02"} {
		strict, ok := ParseTimestamp(v)
		assert.True(t, ok, "strict parse of %q", v)

		permissive, ok := ParseTimestampPermissive(v)
		assert.True(t, ok, "permissive parse of %q", v)
		assert.True(t, strict.Equal(permissive), "grammars disagree on %q", v)
	}
}

func TestParseTimestamp_PermissiveOnlyFormats(t *testing.T) {
	permissiveOnly := []string{
		"2018-08-29 00:14:07.123456",
		"2018-08-29T00:14:07Z",
		"2018-08-29T00:14:07-03:00",
	}
	for _, v := range permissiveOnly {
		_, ok := ParseTimestamp(v)
		assert.False(t, ok, "strict grammar should reject %q", v)

		_, ok = ParseTimestampPermissive(v)
		assert.True(t, ok, "permissive grammar should accept %q", v)
	}
}

func TestParseNumber(t *testing.T) {
	f, ok := ParseNumber("129.90")
	assert.True(t, ok)
	assert.InDelta(t, 129.90, f, 1e-9)

	_, ok = ParseNumber("twelve")
	assert.False(t, ok)
	_, ok = ParseNumber("")
	assert.False(t, ok)
}
